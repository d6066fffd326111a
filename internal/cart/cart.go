package cart

import "github.com/shopspring/decimal"

// Line is an item joined with its quantity, either in a cart or on the
// saved-for-later list.
type Line struct {
	ItemID   int             `json:"itemId"`
	Name     string          `json:"itemName"`
	Price    decimal.Decimal `json:"itemPrice"`
	Image    string          `json:"itemImg,omitempty"`
	Quantity int             `json:"quantity"`
}

// View is everything the cart page shows.
type View struct {
	CartLines     []Line `json:"cart_lines"`
	SavedForLater []Line `json:"saved_for_later"`
}
