package profile

import (
	"errors"

	"backend-alpsconnect/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, store *Store, authMiddleware fiber.Handler) {
	r.Get("/client", authMiddleware, auth.RequireRole(auth.RoleClient), func(c *fiber.Ctx) error {
		client, err := store.Client(auth.UserID(c))
		if errors.Is(err, ErrClientNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(client)
	})

	r.Get("/guide", func(c *fiber.Ctx) error {
		return c.JSON(store.Guide())
	})
}
