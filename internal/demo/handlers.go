package demo

import (
	"errors"

	"backend-alpsconnect/internal/mockdata"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type languageRequest struct {
	Lang string `json:"lang" validate:"required,max=8"`
}

type languageResponse struct {
	Lang  string `json:"lang"`
	Trips int    `json:"trips"`
}

func RegisterRoutes(r fiber.Router, env *Environment) {
	r.Get("/language", func(c *fiber.Ctx) error {
		return c.JSON(languageResponse{Lang: env.Language(), Trips: env.trips.Len()})
	})

	r.Put("/language", func(c *fiber.Ctx) error {
		var req languageRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lang required")
		}
		snap, err := env.Load(req.Lang)
		if errors.Is(err, mockdata.ErrUnsupportedLanguage) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(languageResponse{Lang: snap.Lang, Trips: len(snap.Trips)})
	})

	r.Get("/snapshot", func(c *fiber.Ctx) error {
		return c.JSON(env.Snapshot())
	})
}
