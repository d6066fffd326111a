package order

import "github.com/shopspring/decimal"

// Order is an immutable record of a completed purchase.
type Order struct {
	ID              int             `json:"orderId"`
	Date            string          `json:"orderDate"`
	ShippingAddress string          `json:"shippingAddress"`
	ShippingCity    string          `json:"shippingCity"`
	ShippingState   string          `json:"shippingState"`
	ShippingCountry string          `json:"shippingCountry"`
	ShippingZip     int             `json:"shippingZip"`
	Total           decimal.Decimal `json:"orderTotal"`
	CartID          int             `json:"cartId"`
}

// LineItem is one order line, copied from a cart line at creation time.
type LineItem struct {
	OrderID  int `json:"orderId"`
	ItemID   int `json:"itemId"`
	Quantity int `json:"quantity"`
}

// Shipping carries the checkout form's destination fields.
type Shipping struct {
	Address string
	City    string
	State   string
	Country string
	Zip     int
}
