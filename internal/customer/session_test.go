package customer

import (
	"encoding/base64"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func TestCookieKeyIsValidAESKey(t *testing.T) {
	for _, secret := range []string{"mysecret", "correct horse battery staple", "deadbeef"} {
		raw, err := base64.StdEncoding.DecodeString(CookieKey(secret))
		if err != nil {
			t.Fatalf("key for %q is not base64: %v", secret, err)
		}
		if len(raw) != 32 {
			t.Fatalf("key for %q is %d bytes, want 32", secret, len(raw))
		}
	}
	if CookieKey("mysecret") != CookieKey("mysecret") {
		t.Fatal("the derived key must be stable across restarts")
	}
	if CookieKey("mysecret") == CookieKey("othersecret") {
		t.Fatal("different secrets must derive different keys")
	}
}

func TestLoginWithEncryptedCookiesAndPlainSecret(t *testing.T) {
	app := fiber.New()
	app.Use(encryptcookie.New(encryptcookie.Config{Key: CookieKey("mysecret")}))
	store := session.New(session.Config{KeyLookup: "cookie:hathub_session"})

	handler := NewHandler(NewService(NewInMemoryRepository(nil)), store)
	handler.RegisterPublicRoutes(app)
	app.Use(RequireLogin(store))
	handler.RegisterProtectedRoutes(app)

	if _, err := app.Test(formRequest("/register", url.Values{
		"username": {"alice"},
		"password": {"secret"},
	})); err != nil {
		t.Fatal(err)
	}

	res, err := app.Test(formRequest("/login", url.Values{
		"username": {"alice"},
		"password": {"secret"},
	}))
	if err != nil {
		t.Fatal(err)
	}
	if loc := res.Header.Get("Location"); loc != "/items" {
		t.Fatalf("expected redirect to /items after login, got %q", loc)
	}
	cookie := sessionCookie(res)
	if cookie == "" {
		t.Fatalf("expected a session cookie after login")
	}

	req := httptest.NewRequest("GET", "/profile", nil)
	req.Header.Set("Cookie", cookie)
	profileRes, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if profileRes.StatusCode != fiber.StatusOK {
		t.Fatalf("expected the encrypted cookie to authenticate, got %d", profileRes.StatusCode)
	}
}
