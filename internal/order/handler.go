package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/MaksimSeniw/HatHub/internal/customer"
)

// Handler delegates order operations to the order service. It needs the
// customer service to resolve the session's customer, cart and email address.
type Handler struct {
	service   *Service
	customers *customer.Service
	store     *session.Store
}

func NewHandler(service *Service, customers *customer.Service, store *session.Store) *Handler {
	return &Handler{service: service, customers: customers, store: store}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/orders", h.listOrders)
	app.Post("/orders/create", h.createOrder)
	app.Post("/orders/delete", h.deleteOrder)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	orders, err := h.service.ListByCart(cust.CartID)
	if err != nil {
		// a failed read renders an empty order history
		orders = []Order{}
	}

	return customer.RenderPage(c, fiber.Map{"orders": orders})
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	zip, err := strconv.Atoi(c.FormValue("shipping_zip"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/orders", true, "Failed to create order")
	}

	_, err = h.service.Create(cust, Shipping{
		Address: c.FormValue("shipping_address"),
		City:    c.FormValue("shipping_city"),
		State:   c.FormValue("shipping_state"),
		Country: c.FormValue("shipping_country"),
		Zip:     zip,
	})
	if err != nil {
		if err == ErrInsufficientFunds {
			return customer.RedirectWithMessage(c, "/orders", true, "Failed to create order - Insufficient funds")
		}
		return customer.RedirectWithMessage(c, "/orders", true, "Failed to create order")
	}

	return customer.RedirectWithMessage(c, "/orders", false, "Successfully created order")
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	if _, err := h.currentCustomer(c); err != nil {
		return c.Redirect("/login")
	}

	orderID, err := strconv.Atoi(c.FormValue("order_id"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/orders", true, "Failed to remove order")
	}

	if err := h.service.Delete(orderID); err != nil {
		return customer.RedirectWithMessage(c, "/orders", true, "Failed to remove order")
	}

	return customer.RedirectWithMessage(c, "/orders", false, "Successfully removed order")
}

func (h *Handler) currentCustomer(c *fiber.Ctx) (customer.Customer, error) {
	id, err := customer.IDFromSession(h.store, c)
	if err != nil {
		return customer.Customer{}, err
	}
	return h.customers.GetByID(id)
}
