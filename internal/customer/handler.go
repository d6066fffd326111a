package customer

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

type Handler struct {
	service *Service
	store   *session.Store
}

func NewHandler(service *Service, store *session.Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/welcometest", h.welcome)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login")
	})
	app.Get("/login", h.loginPage)
	app.Post("/login", h.login)
	app.Get("/register", h.registerPage)
	app.Post("/register", h.register)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/logout", h.logout)
	app.Get("/profile", h.profile)
	app.Get("/edit_profile", h.editProfilePage)
	app.Post("/edit_profile", h.editProfile)
}

func (h *Handler) welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success", "message": "Welcome!"})
}

func (h *Handler) loginPage(c *fiber.Ctx) error {
	return RenderPage(c, fiber.Map{})
}

func (h *Handler) registerPage(c *fiber.Ctx) error {
	return RenderPage(c, fiber.Map{})
}

func (h *Handler) login(c *fiber.Ctx) error {
	cust, err := h.service.Authenticate(c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return RedirectWithMessage(c, "/login", true, "Incorrect Username or Password")
	}

	if err := SaveSession(h.store, c, cust.ID); err != nil {
		return RedirectWithMessage(c, "/login", true, "An error occurred during login")
	}

	return c.Redirect("/items")
}

func (h *Handler) register(c *fiber.Ctx) error {
	_, err := h.service.Register(Customer{
		FirstName:    c.FormValue("first_name"),
		LastName:     c.FormValue("last_name"),
		Username:     c.FormValue("username"),
		Password:     c.FormValue("password"),
		FavoriteType: c.FormValue("favorite_type"),
		Email:        c.FormValue("email"),
	})
	if err != nil {
		return RedirectWithMessage(c, "/register", true, "Failed to insert user into database")
	}

	return c.Redirect("/login")
}

func (h *Handler) logout(c *fiber.Ctx) error {
	_ = ClearSession(h.store, c)

	// forward a message handed over by edit_profile, otherwise confirm logout
	message := c.Query("message")
	isError := c.Query("error") == "true"
	if message == "" {
		message = "Logged out Successfully"
		isError = false
	}
	return RedirectWithMessage(c, "/login", isError, message)
}

func (h *Handler) profile(c *fiber.Ctx) error {
	id, err := IDFromSession(h.store, c)
	if err != nil {
		return c.Redirect("/login")
	}

	cust, err := h.service.GetByID(id)
	if err != nil {
		return c.Redirect("/login")
	}

	return RenderPage(c, fiber.Map{"profile": sanitizeCustomer(cust)})
}

func (h *Handler) editProfilePage(c *fiber.Ctx) error {
	return RenderPage(c, fiber.Map{})
}

func (h *Handler) editProfile(c *fiber.Ctx) error {
	id, err := IDFromSession(h.store, c)
	if err != nil {
		return c.Redirect("/login")
	}

	_, err = h.service.UpdateProfile(id, ProfileUpdate{
		FirstName:    c.FormValue("first_name"),
		LastName:     c.FormValue("last_name"),
		Username:     c.FormValue("username"),
		FavoriteType: c.FormValue("favorite_type"),
		Email:        c.FormValue("email"),
		Password:     c.FormValue("password"),
		FundsDelta:   c.FormValue("funds_avail"),
	})
	if err != nil {
		return RedirectWithMessage(c, "/profile", true, "Failed to update profile information")
	}

	// the row changed under the session, force a fresh login
	return RedirectWithMessage(c, "/logout", false, "Successfully updated profile. Please login again.")
}

// RenderPage emits the page's data as JSON, echoing the error flag and message
// passed along by redirects. Template rendering itself lives with the frontend.
func RenderPage(c *fiber.Ctx, data fiber.Map) error {
	data["error"] = c.Query("error")
	data["message"] = c.Query("message")
	return c.JSON(data)
}

func sanitizeCustomer(cust Customer) Customer {
	cust.Password = ""
	return cust
}
