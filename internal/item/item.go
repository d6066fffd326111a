package item

import "github.com/shopspring/decimal"

// Item is a row of the read-only catalog.
type Item struct {
	ID          int             `json:"itemId"`
	Name        string          `json:"itemName"`
	Price       decimal.Decimal `json:"itemPrice"`
	Description string          `json:"itemDesc,omitempty"`
	Image       string          `json:"itemImg,omitempty"`
}
