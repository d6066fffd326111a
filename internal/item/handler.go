package item

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MaksimSeniw/HatHub/internal/customer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/items", h.listItems)
}

func (h *Handler) listItems(c *fiber.Ctx) error {
	// a failed catalog read renders an empty page rather than an error
	return customer.RenderPage(c, fiber.Map{"items": h.service.List()})
}
