package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendPurchaseConfirmation(t *testing.T) {
	var got sendRequest
	var authUser, authPass string
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		authUser, authPass, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("key", "secret", "shop@hathub.test", "Hat Hub")
	client.baseURL = server.URL

	if err := client.SendPurchaseConfirmation(context.Background(), "alice@example.com", "alice"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if gotPath != "/v3.1/send" {
		t.Errorf("posted to %q", gotPath)
	}
	if authUser != "key" || authPass != "secret" {
		t.Errorf("basic auth was %q/%q", authUser, authPass)
	}
	if len(got.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got.Messages))
	}
	msg := got.Messages[0]
	if msg.From.Email != "shop@hathub.test" || msg.From.Name != "Hat Hub" {
		t.Errorf("unexpected sender %+v", msg.From)
	}
	if len(msg.To) != 1 || msg.To[0].Email != "alice@example.com" || msg.To[0].Name != "alice" {
		t.Errorf("unexpected recipient %+v", msg.To)
	}
	if msg.Subject != "Hat Hub Purchase" {
		t.Errorf("unexpected subject %q", msg.Subject)
	}
	if msg.TextPart == "" {
		t.Error("expected a text body")
	}
	if msg.CustomID == "" {
		t.Error("expected a generated CustomID")
	}
}

func TestSendPurchaseConfirmationRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("key", "wrong", "shop@hathub.test", "Hat Hub")
	client.baseURL = server.URL

	if err := client.SendPurchaseConfirmation(context.Background(), "alice@example.com", "alice"); err == nil {
		t.Fatal("expected an error for a rejected send")
	}
}

func TestSendPurchaseConfirmationHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("key", "secret", "shop@hathub.test", "Hat Hub")
	client.baseURL = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.SendPurchaseConfirmation(ctx, "alice@example.com", "alice"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
