package chat

import (
	"errors"

	"backend-alpsconnect/internal/auth"
	"backend-alpsconnect/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type sendRequest struct {
	SenderID string `json:"sender_id" validate:"omitempty,max=64"`
	Text     string `json:"text" validate:"required,max=2000"`
}

func RegisterRoutes(r fiber.Router, store *Store, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)

	r.Get("/:audience", func(c *fiber.Ctx) error {
		aud, err := audienceFor(c)
		if err != nil {
			return err
		}
		convs, err := store.List(aud)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(convs)
	})

	r.Get("/:audience/:id", func(c *fiber.Ctx) error {
		aud, err := audienceFor(c)
		if err != nil {
			return err
		}
		conv, err := store.Get(aud, c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(conv)
	})

	r.Post("/:audience/:id/messages", func(c *fiber.Ctx) error {
		aud, err := audienceFor(c)
		if err != nil {
			return err
		}
		var req sendRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "text required")
		}
		// The caller owns the inbox, so every message it posts is its own.
		switch req.SenderID {
		case "", domain.SenderSelf, auth.UserID(c):
		default:
			return fiber.NewError(fiber.StatusForbidden, "cannot post as another participant")
		}
		msg, err := store.Send(aud, c.Params("id"), domain.SenderSelf, req.Text)
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(msg)
	})

	r.Post("/:audience/:id/read", func(c *fiber.Ctx) error {
		aud, err := audienceFor(c)
		if err != nil {
			return err
		}
		conv, err := store.MarkRead(aud, c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(conv)
	})
}

// audienceFor only lets callers open the inbox matching their role.
func audienceFor(c *fiber.Ctx) (Audience, error) {
	aud, err := ParseAudience(c.Params("audience"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if auth.Role(c) != string(aud) {
		return "", fiber.NewError(fiber.StatusForbidden, "inbox belongs to another role")
	}
	return aud, nil
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrConversationNotFound), errors.Is(err, ErrUnknownAudience):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
