package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaksimSeniw/HatHub/internal/cart"
	"github.com/MaksimSeniw/HatHub/internal/customer"
	"github.com/MaksimSeniw/HatHub/internal/item"
)

type recordingNotifier struct {
	sent chan string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan string, 1)}
}

func (n *recordingNotifier) SendPurchaseConfirmation(ctx context.Context, email, name string) error {
	n.sent <- email
	return nil
}

func testCatalog() []item.Item {
	return []item.Item{
		{ID: 1, Name: "Fedora", Price: decimal.RequireFromString("25.00")},
		{ID: 2, Name: "Beanie", Price: decimal.RequireFromString("12.50")},
	}
}

func newTestService(notifier Notifier) (*Service, *customer.InMemoryRepository, *cart.InMemoryRepository) {
	customers := customer.NewInMemoryRepository(nil)
	carts := cart.NewInMemoryRepository(testCatalog())
	svc := NewService(NewInMemoryRepository(carts, customers), notifier)
	svc.now = func() time.Time { return time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC) }
	return svc, customers, carts
}

func registerTestCustomer(t *testing.T, customers *customer.InMemoryRepository) customer.Customer {
	t.Helper()
	cust, err := customers.CreateWithCart(customer.Customer{
		Username:   "alice",
		Email:      "alice@example.com",
		FundsAvail: customer.StartingFunds,
	})
	if err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	return cust
}

func TestCreateFormatsDateAndTotals(t *testing.T) {
	svc, customers, carts := newTestService(nil)
	cust := registerTestCustomer(t, customers)

	if err := carts.AddItem(cust.CartID, 1, 2); err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}
	if err := carts.AddItem(cust.CartID, 2, 1); err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}

	ord, err := svc.Create(cust, Shipping{Address: "12 Elm St", City: "Boulder", State: "CO", Country: "USA", Zip: 80301})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if ord.Date != "Mon Mar 04 2024" {
		t.Errorf("expected date Mon Mar 04 2024, got %q", ord.Date)
	}
	if !ord.Total.Equal(decimal.RequireFromString("62.50")) {
		t.Errorf("expected total 62.50, got %s", ord.Total)
	}

	lines, err := carts.Lines(cust.CartID)
	if err != nil {
		t.Fatalf("failed to read cart: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected cart to be cleared, got %d lines", len(lines))
	}

	after, err := customers.GetByID(cust.ID)
	if err != nil {
		t.Fatalf("failed to read customer: %v", err)
	}
	if !after.FundsAvail.Equal(decimal.RequireFromString("37.50")) {
		t.Errorf("expected remaining funds 37.50, got %s", after.FundsAvail)
	}
}

func TestCreateSendsConfirmation(t *testing.T) {
	notifier := newRecordingNotifier()
	svc, customers, carts := newTestService(notifier)
	cust := registerTestCustomer(t, customers)

	if err := carts.AddItem(cust.CartID, 2, 1); err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}
	if _, err := svc.Create(cust, Shipping{}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	select {
	case email := <-notifier.sent:
		if email != "alice@example.com" {
			t.Errorf("confirmation sent to %q", email)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a purchase confirmation to be sent")
	}
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	notifier := newRecordingNotifier()
	svc, customers, _ := newTestService(notifier)
	cust := registerTestCustomer(t, customers)

	if _, err := svc.Create(cust, Shipping{}); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	select {
	case <-notifier.sent:
		t.Fatal("no confirmation should be sent for a failed checkout")
	default:
	}
}

func TestCreateRejectsInsufficientFunds(t *testing.T) {
	notifier := newRecordingNotifier()
	svc, customers, carts := newTestService(notifier)
	cust := registerTestCustomer(t, customers)

	// 5 fedoras at 25.00 outruns the 100.00 starting balance.
	if err := carts.AddItem(cust.CartID, 1, 5); err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}
	if _, err := svc.Create(cust, Shipping{}); err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	lines, err := carts.Lines(cust.CartID)
	if err != nil {
		t.Fatalf("failed to read cart: %v", err)
	}
	if len(lines) != 1 {
		t.Errorf("cart should be untouched after a failed checkout, got %d lines", len(lines))
	}
	after, err := customers.GetByID(cust.ID)
	if err != nil {
		t.Fatalf("failed to read customer: %v", err)
	}
	if !after.FundsAvail.Equal(customer.StartingFunds) {
		t.Errorf("funds should be untouched, got %s", after.FundsAvail)
	}
	select {
	case <-notifier.sent:
		t.Fatal("no confirmation should be sent for a failed checkout")
	default:
	}
}

func TestDeleteRemovesOrderAndLines(t *testing.T) {
	svc, customers, carts := newTestService(nil)
	cust := registerTestCustomer(t, customers)

	if err := carts.AddItem(cust.CartID, 1, 1); err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}
	ord, err := svc.Create(cust, Shipping{})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ord.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	orders, err := svc.ListByCart(cust.CartID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders left, got %d", len(orders))
	}
	lines, err := svc.Lines(ord.ID)
	if err != nil {
		t.Fatalf("lines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines left, got %d", len(lines))
	}

	if err := svc.Delete(ord.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
