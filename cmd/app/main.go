package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/session"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/MaksimSeniw/HatHub/internal/cart"
	"github.com/MaksimSeniw/HatHub/internal/config"
	"github.com/MaksimSeniw/HatHub/internal/customer"
	"github.com/MaksimSeniw/HatHub/internal/item"
	"github.com/MaksimSeniw/HatHub/internal/mail"
	"github.com/MaksimSeniw/HatHub/internal/order"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	ensureSchema(db)
	seedItems(db)

	app := fiber.New()
	setupCORS(app)

	cookieKey := customer.CookieKey(cfg.SessionSecret)
	if cfg.SessionSecret == "" {
		cookieKey = encryptcookie.GenerateKey()
		log.Println("SESSION_SECRET not set, using an ephemeral cookie-encryption key")
	}
	app.Use(encryptcookie.New(encryptcookie.Config{Key: cookieKey}))

	store := session.New(session.Config{
		KeyLookup:      "cookie:hathub_session",
		CookieHTTPOnly: true,
	})

	customerService := customer.NewService(customer.NewPostgresRepository(db))
	customerHandler := customer.NewHandler(customerService, store)

	itemHandler := item.NewHandler(item.NewService(item.NewPostgresRepository(db)))
	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db)), customerService, store)

	var notifier order.Notifier
	if cfg.MailjetAPIKey != "" && cfg.MailjetSecretKey != "" {
		notifier = mail.NewClient(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.MailFromEmail, cfg.MailFromName)
	} else {
		log.Println("mailjet keys not set, purchase confirmation emails disabled")
	}
	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), notifier), customerService, store)

	customerHandler.RegisterPublicRoutes(app)
	app.Static("/images", cfg.ImageDir)

	// everything below requires a logged-in session
	app.Use(customer.RequireLogin(store))

	customerHandler.RegisterProtectedRoutes(app)
	itemHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS carts (cart_id SERIAL PRIMARY KEY)`,
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id SERIAL PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			funds_avail NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (funds_avail >= 0),
			favorite_type TEXT,
			email TEXT,
			cart_id INT NOT NULL REFERENCES carts (cart_id)
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			item_id SERIAL PRIMARY KEY,
			item_name TEXT NOT NULL,
			item_price NUMERIC(12,2) NOT NULL,
			item_desc TEXT,
			item_img TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS cart_lines (
			line_id SERIAL PRIMARY KEY,
			cart_id INT NOT NULL REFERENCES carts (cart_id),
			item_id INT NOT NULL REFERENCES items (item_id),
			quantity INT NOT NULL CHECK (quantity > 0),
			UNIQUE (cart_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS saved_for_later (
			customer_id INT NOT NULL REFERENCES customers (customer_id),
			item_id INT NOT NULL REFERENCES items (item_id),
			quantity INT NOT NULL,
			UNIQUE (customer_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			order_date TEXT NOT NULL,
			shipping_address TEXT,
			shipping_city TEXT,
			shipping_state TEXT,
			shipping_country TEXT,
			shipping_zip INT,
			order_total NUMERIC(12,2) NOT NULL,
			cart_id INT NOT NULL REFERENCES carts (cart_id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			order_id INT NOT NULL REFERENCES orders (order_id),
			item_id INT NOT NULL REFERENCES items (item_id),
			quantity INT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

// seedItems fills the catalog with a starter assortment when it is empty.
func seedItems(db *sql.DB) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&count); err != nil || count > 0 {
		return
	}

	seed := []struct {
		name, price, desc, img string
	}{
		{"Fedora", "25.00", "A classic wool fedora", "/images/fedora.jpg"},
		{"Top Hat", "40.00", "Formal silk top hat", "/images/top_hat.jpg"},
		{"Beanie", "12.50", "Knit winter beanie", "/images/beanie.jpg"},
		{"Cowboy Hat", "35.00", "Wide-brim western hat", "/images/cowboy_hat.jpg"},
		{"Baseball Cap", "15.00", "Adjustable cotton cap", "/images/baseball_cap.jpg"},
		{"Beret", "18.00", "Soft French beret", "/images/beret.jpg"},
	}
	for _, s := range seed {
		if _, err := db.Exec(
			`INSERT INTO items (item_name, item_price, item_desc, item_img) VALUES ($1, $2, $3, $4)`,
			s.name, s.price, s.desc, s.img,
		); err != nil {
			log.Printf("warning: could not seed item %q: %v", s.name, err)
		}
	}
}
