package order

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MaksimSeniw/HatHub/internal/cart"
	"github.com/MaksimSeniw/HatHub/internal/customer"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Repository persists orders. Create performs the whole checkout transition
// as one atomic unit: price the cart, check and debit the customer's funds,
// write the order and its lines, and clear the cart.
type Repository interface {
	Create(customerID, cartID int, ship Shipping, date string) (Order, error)
	Delete(orderID int) error
	ListByCart(cartID int) ([]Order, error)
	Lines(orderID int) ([]LineItem, error)
}

// InMemoryRepository is used for tests and local scenarios. It settles
// checkouts against the in-memory cart and customer stores, mirroring what
// the Postgres implementation does in a transaction.
type InMemoryRepository struct {
	mu        sync.RWMutex
	carts     *cart.InMemoryRepository
	customers *customer.InMemoryRepository
	orders    []Order
	lines     []LineItem
	nextID    int
}

func NewInMemoryRepository(carts *cart.InMemoryRepository, customers *customer.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{carts: carts, customers: customers, nextID: 1}
}

func (r *InMemoryRepository) Create(customerID, cartID int, ship Shipping, date string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cartLines, err := r.carts.Lines(cartID)
	if err != nil {
		return Order{}, err
	}
	if len(cartLines) == 0 {
		return Order{}, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range cartLines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	cust, err := r.customers.GetByID(customerID)
	if err != nil {
		return Order{}, err
	}
	if cust.FundsAvail.LessThan(total) {
		return Order{}, ErrInsufficientFunds
	}

	ord := Order{
		ID:              r.nextID,
		Date:            date,
		ShippingAddress: ship.Address,
		ShippingCity:    ship.City,
		ShippingState:   ship.State,
		ShippingCountry: ship.Country,
		ShippingZip:     ship.Zip,
		Total:           total,
		CartID:          cartID,
	}
	r.nextID++

	for _, line := range cartLines {
		r.lines = append(r.lines, LineItem{OrderID: ord.ID, ItemID: line.ItemID, Quantity: line.Quantity})
	}
	r.orders = append(r.orders, ord)

	r.carts.ClearCart(cartID)
	if err := r.customers.DeductFunds(customerID, total); err != nil {
		return Order{}, err
	}

	return ord, nil
}

func (r *InMemoryRepository) Delete(orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.lines[:0]
	for _, line := range r.lines {
		if line.OrderID != orderID {
			kept = append(kept, line)
		}
	}
	r.lines = kept

	for i, ord := range r.orders {
		if ord.ID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func (r *InMemoryRepository) ListByCart(cartID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.CartID == cartID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Lines(orderID int) ([]LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LineItem, 0)
	for _, line := range r.lines {
		if line.OrderID == orderID {
			out = append(out, line)
		}
	}
	return out, nil
}
