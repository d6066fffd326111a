package customer

import "github.com/shopspring/decimal"

// StartingFunds is the balance every new account opens with.
var StartingFunds = decimal.RequireFromString("100.00")

// Customer maps to the customers table. Password holds the bcrypt hash and is
// blanked before the record leaves the server.
type Customer struct {
	ID           int             `json:"customerId"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	Username     string          `json:"username"`
	Password     string          `json:"password,omitempty"`
	FundsAvail   decimal.Decimal `json:"fundsAvail"`
	FavoriteType string          `json:"favoriteType"`
	Email        string          `json:"email"`
	CartID       int             `json:"cartId"`
}
