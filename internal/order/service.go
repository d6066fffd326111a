package order

import (
	"context"
	"log"
	"time"

	"github.com/MaksimSeniw/HatHub/internal/customer"
)

// order_date mirrors the storefront's human-readable date format.
const dateLayout = "Mon Jan 02 2006"

// Notifier sends the purchase confirmation email.
type Notifier interface {
	SendPurchaseConfirmation(ctx context.Context, email, name string) error
}

// Service provides business logic for orders.
type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// Create converts the customer's cart into an order and fires the purchase
// confirmation. The email is best-effort: it never blocks or fails the
// checkout, and a delivery failure is only logged.
func (s *Service) Create(cust customer.Customer, ship Shipping) (Order, error) {
	ord, err := s.repo.Create(cust.ID, cust.CartID, ship, s.now().Format(dateLayout))
	if err != nil {
		return Order{}, err
	}

	if s.notifier != nil {
		go func(email, name string, orderID int) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.SendPurchaseConfirmation(ctx, email, name); err != nil {
				log.Printf("order %d: purchase confirmation not sent: %v", orderID, err)
			}
		}(cust.Email, cust.Username, ord.ID)
	}

	return ord, nil
}

func (s *Service) Delete(orderID int) error {
	return s.repo.Delete(orderID)
}

func (s *Service) ListByCart(cartID int) ([]Order, error) {
	return s.repo.ListByCart(cartID)
}

func (s *Service) Lines(orderID int) ([]LineItem, error) {
	return s.repo.Lines(orderID)
}
