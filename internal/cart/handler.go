package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/MaksimSeniw/HatHub/internal/customer"
)

// Handler delegates cart operations to the cart service. It needs the
// customer service to resolve the session's customer and their cart id.
type Handler struct {
	service   *Service
	customers *customer.Service
	store     *session.Store
}

func NewHandler(service *Service, customers *customer.Service, store *session.Store) *Handler {
	return &Handler{service: service, customers: customers, store: store}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/cart", h.viewCart)
	app.Post("/cart/add", h.addToCart)
	app.Post("/cart/delete", h.removeFromCart)
	app.Post("/cart/move-to-cart", h.moveToCart)
	app.Post("/cart/save-for-later", h.saveForLater)
	app.Post("/cart/delete-saved-item", h.deleteSavedItem)
}

func (h *Handler) viewCart(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	view := h.service.View(cust.CartID, cust.ID)
	return customer.RenderPage(c, fiber.Map{
		"cart_lines":      view.CartLines,
		"saved_for_later": view.SavedForLater,
	})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	itemID, err := strconv.Atoi(c.FormValue("item_id"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/items", true, "Failed to update cart")
	}
	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/items", true, "Failed to update cart")
	}

	if err := h.service.AddToCart(cust.CartID, itemID, quantity); err != nil {
		return customer.RedirectWithMessage(c, "/items", true, "Failed to update cart")
	}

	return customer.RedirectWithMessage(c, "/items", false, "Successfully updated cart")
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	itemID, err := strconv.Atoi(c.FormValue("item_id"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to delete from cart")
	}

	if err := h.service.RemoveFromCart(cust.CartID, itemID); err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to delete from cart")
	}

	return customer.RedirectWithMessage(c, "/cart", false, "Successfully deleted from cart")
}

func (h *Handler) moveToCart(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	itemID, err := strconv.Atoi(c.FormValue("item_id"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to move item to cart")
	}

	if err := h.service.MoveToCart(cust.ID, cust.CartID, itemID); err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to move item to cart")
	}

	return c.Redirect("/cart")
}

func (h *Handler) saveForLater(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	itemID, err := strconv.Atoi(c.FormValue("item_id"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to save item for later")
	}

	if err := h.service.SaveForLater(cust.CartID, cust.ID, itemID); err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to save item for later")
	}

	return c.Redirect("/cart")
}

func (h *Handler) deleteSavedItem(c *fiber.Ctx) error {
	cust, err := h.currentCustomer(c)
	if err != nil {
		return c.Redirect("/login")
	}

	itemID, err := strconv.Atoi(c.FormValue("item_id"))
	if err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to delete item from Saved For Later")
	}

	if err := h.service.DeleteSaved(cust.ID, itemID); err != nil {
		return customer.RedirectWithMessage(c, "/cart", true, "Failed to delete item from Saved For Later")
	}

	return c.Redirect("/cart")
}

func (h *Handler) currentCustomer(c *fiber.Ctx) (customer.Customer, error) {
	id, err := customer.IDFromSession(h.store, c)
	if err != nil {
		return customer.Customer{}, err
	}
	return h.customers.GetByID(id)
}
