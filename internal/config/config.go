package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	SessionSecret string
	ImageDir      string

	MailjetAPIKey    string
	MailjetSecretKey string
	MailFromEmail    string
	MailFromName     string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("HATHUB_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	imageDir := os.Getenv("HATHUB_IMAGE_DIR")
	if imageDir == "" {
		imageDir = "./resources/img"
	}

	fromName := os.Getenv("MAIL_FROM_NAME")
	if fromName == "" {
		fromName = "Hat Hub"
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		ImageDir:      imageDir,

		MailjetAPIKey:    os.Getenv("MJ_APIKEY_PUBLIC"),
		MailjetSecretKey: os.Getenv("MJ_APIKEY_PRIVATE"),
		MailFromEmail:    os.Getenv("MAIL_FROM_EMAIL"),
		MailFromName:     fromName,
	}
}
