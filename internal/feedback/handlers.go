package feedback

import (
	"errors"

	"backend-alpsconnect/internal/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req Feedback
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "message required")
		}
		item, err := svc.Submit(c.UserContext(), req)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})

	r.Get("/", authMiddleware, auth.RequireRole(auth.RoleGuide), func(c *fiber.Ctx) error {
		items, err := svc.Recent(c.UserContext(), c.QueryInt("limit"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(items)
	})
}

func toHTTPError(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
