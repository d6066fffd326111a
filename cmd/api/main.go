package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/shopspring/decimal"

	"github.com/MaksimSeniw/HatHub/internal/cart"
	"github.com/MaksimSeniw/HatHub/internal/config"
	"github.com/MaksimSeniw/HatHub/internal/customer"
	"github.com/MaksimSeniw/HatHub/internal/item"
	"github.com/MaksimSeniw/HatHub/internal/order"
)

// main wires the storefront against in-memory repositories so it can run
// locally without Postgres or Mailjet credentials.
func main() {
	cfg := config.Load()

	catalog := []item.Item{
		{ID: 1, Name: "Fedora", Price: decimal.RequireFromString("25.00")},
		{ID: 2, Name: "Top Hat", Price: decimal.RequireFromString("40.00")},
		{ID: 3, Name: "Beanie", Price: decimal.RequireFromString("12.50")},
	}

	customerRepo := customer.NewInMemoryRepository(nil)
	cartRepo := cart.NewInMemoryRepository(catalog)
	orderRepo := order.NewInMemoryRepository(cartRepo, customerRepo)

	app := fiber.New()
	store := session.New(session.Config{
		KeyLookup:      "cookie:hathub_session",
		CookieHTTPOnly: true,
	})

	customerService := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerService, store)
	itemHandler := item.NewHandler(item.NewService(item.NewInMemoryRepository(catalog)))
	cartHandler := cart.NewHandler(cart.NewService(cartRepo), customerService, store)
	orderHandler := order.NewHandler(order.NewService(orderRepo, nil), customerService, store)

	customerHandler.RegisterPublicRoutes(app)
	app.Static("/images", cfg.ImageDir)

	app.Use(customer.RequireLogin(store))

	customerHandler.RegisterProtectedRoutes(app)
	itemHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("starting in-memory server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
