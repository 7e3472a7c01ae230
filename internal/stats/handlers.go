package stats

import "github.com/gofiber/fiber/v2"

const VisitorHeader = "X-Visitor-ID"

func RegisterRoutes(r fiber.Router, tracker *Tracker) {
	r.Post("/visit", func(c *fiber.Ctx) error {
		return c.JSON(tracker.RecordVisit(c.UserContext(), c.Get(VisitorHeader)))
	})

	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(tracker.Read(c.UserContext(), c.Get(VisitorHeader)))
	})
}
