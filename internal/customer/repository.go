package customer

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrUsernameRequired   = errors.New("username is required")
	ErrNegativeFunds      = errors.New("added funds must not be negative")
)

// Repository provides access to customer rows. Every customer owns exactly one
// cart, so creation allocates the cart and the customer together.
type Repository interface {
	GetByID(id int) (Customer, error)
	GetByUsername(username string) (Customer, error)
	CreateWithCart(cust Customer) (Customer, error)
	Update(id int, cust Customer) (Customer, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	customers  []Customer
	nextID     int
	nextCartID int
}

func NewInMemoryRepository(seed []Customer) *InMemoryRepository {
	repo := &InMemoryRepository{
		customers:  make([]Customer, 0, len(seed)),
		nextID:     1,
		nextCartID: 1,
	}

	maxID := 0
	maxCartID := 0
	for _, cust := range seed {
		repo.customers = append(repo.customers, cust)
		if cust.ID > maxID {
			maxID = cust.ID
		}
		if cust.CartID > maxCartID {
			maxCartID = cust.CartID
		}
	}

	repo.nextID = maxID + 1
	repo.nextCartID = maxCartID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cust := range r.customers {
		if cust.ID == id {
			return cust, nil
		}
	}

	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) GetByUsername(username string) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cust := range r.customers {
		if cust.Username == username {
			return cust, nil
		}
	}

	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) CreateWithCart(cust Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.customers {
		if existing.Username == cust.Username {
			return Customer{}, ErrUsernameExists
		}
	}

	if cust.ID == 0 {
		cust.ID = r.nextID
		r.nextID++
	}
	cust.CartID = r.nextCartID
	r.nextCartID++

	r.customers = append(r.customers, cust)
	return cust, nil
}

func (r *InMemoryRepository) Update(id int, update Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cust := range r.customers {
		if cust.ID == id {
			update.ID = cust.ID
			update.CartID = cust.CartID
			r.customers[i] = update
			return update, nil
		}
	}

	return Customer{}, ErrNotFound
}

// DeductFunds subtracts amount from a customer's balance. The order
// repository uses it to settle a purchase against the in-memory store.
func (r *InMemoryRepository) DeductFunds(id int, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, cust := range r.customers {
		if cust.ID == id {
			if cust.FundsAvail.LessThan(amount) {
				return ErrNegativeFunds
			}
			cust.FundsAvail = cust.FundsAvail.Sub(amount)
			r.customers[i] = cust
			return nil
		}
	}

	return ErrNotFound
}
