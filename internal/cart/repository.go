package cart

import (
	"errors"
	"sort"
	"sync"

	"github.com/MaksimSeniw/HatHub/internal/item"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Repository provides access to cart lines and the saved-for-later list.
// Moves between the two are a single atomic operation, never a copy.
type Repository interface {
	Lines(cartID int) ([]Line, error)
	SavedLines(customerID int) ([]Line, error)
	AddItem(cartID, itemID, quantity int) error
	RemoveItem(cartID, itemID int) error
	SaveForLater(cartID, customerID, itemID int) error
	MoveToCart(customerID, cartID, itemID int) error
	DeleteSaved(customerID, itemID int) error
}

// InMemoryRepository is used for tests and local scenarios. It holds a copy of
// the catalog so that line reads can be joined with item details.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[int]item.Item
	lines map[int]map[int]int // cartID -> itemID -> quantity
	saved map[int]map[int]int // customerID -> itemID -> quantity
}

func NewInMemoryRepository(catalog []item.Item) *InMemoryRepository {
	items := make(map[int]item.Item, len(catalog))
	for _, it := range catalog {
		items[it.ID] = it
	}
	return &InMemoryRepository{
		items: items,
		lines: make(map[int]map[int]int),
		saved: make(map[int]map[int]int),
	}
}

func (r *InMemoryRepository) Lines(cartID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.join(r.lines[cartID]), nil
}

func (r *InMemoryRepository) SavedLines(customerID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.join(r.saved[customerID]), nil
}

func (r *InMemoryRepository) AddItem(cartID, itemID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lines[cartID] == nil {
		r.lines[cartID] = make(map[int]int)
	}
	r.lines[cartID][itemID] += quantity
	return nil
}

func (r *InMemoryRepository) RemoveItem(cartID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines[cartID], itemID)
	return nil
}

func (r *InMemoryRepository) SaveForLater(cartID, customerID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines[cartID], itemID)
	if r.saved[customerID] == nil {
		r.saved[customerID] = make(map[int]int)
	}
	r.saved[customerID][itemID]++
	return nil
}

func (r *InMemoryRepository) MoveToCart(customerID, cartID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.saved[customerID], itemID)
	if r.lines[cartID] == nil {
		r.lines[cartID] = make(map[int]int)
	}
	r.lines[cartID][itemID]++
	return nil
}

func (r *InMemoryRepository) DeleteSaved(customerID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.saved[customerID], itemID)
	return nil
}

// ClearCart empties a cart. The order repository uses it to settle a purchase
// against the in-memory store.
func (r *InMemoryRepository) ClearCart(cartID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.lines, cartID)
}

func (r *InMemoryRepository) join(quantities map[int]int) []Line {
	out := make([]Line, 0, len(quantities))
	for itemID, qty := range quantities {
		line := Line{ItemID: itemID, Quantity: qty}
		if it, ok := r.items[itemID]; ok {
			line.Name = it.Name
			line.Price = it.Price
			line.Image = it.Image
		}
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
