package customer

import (
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// The session holds the customer id and nothing else; profile data is re-read
// from storage at the point of use.
const sessionCustomerKey = "customer_id"

// CookieKey turns the configured session secret into the base64-encoded
// 32-byte key the cookie-encryption middleware requires. Operators supply an
// arbitrary secret string, so it is hashed rather than used verbatim.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// SaveSession records the authenticated customer on the browser session.
func SaveSession(store *session.Store, c *fiber.Ctx, customerID int) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionCustomerKey, customerID)
	return sess.Save()
}

// ClearSession destroys the browser session.
func ClearSession(store *session.Store, c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// IDFromSession returns the customer id stored on the session. Several
// packages gate their routes on it, so it is exported here for reuse.
func IDFromSession(store *session.Store, c *fiber.Ctx) (int, error) {
	sess, err := store.Get(c)
	if err != nil {
		return 0, fiber.ErrUnauthorized
	}
	id, ok := sess.Get(sessionCustomerKey).(int)
	if !ok || id <= 0 {
		return 0, fiber.ErrUnauthorized
	}
	return id, nil
}

// RequireLogin redirects unauthenticated requests to the login page. It is
// installed after the public routes so everything registered later is gated.
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := IDFromSession(store, c); err != nil {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RedirectWithMessage redirects carrying the error flag and URL-encoded
// message query parameters the target page displays.
func RedirectWithMessage(c *fiber.Ctx, path string, isError bool, message string) error {
	return c.Redirect(path + "?error=" + strconv.FormatBool(isError) + "&message=" + url.QueryEscape(message))
}
