package order

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	cartPricesQuery = `
		SELECT i.item_price, cl.quantity
		FROM items i
		JOIN cart_lines cl ON cl.item_id = i.item_id
		WHERE cl.cart_id = $1
	`
	lockFundsQuery = `SELECT funds_avail FROM customers WHERE customer_id = $1 FOR UPDATE`

	insertOrderQuery = `
		INSERT INTO orders (order_date, shipping_address, shipping_city, shipping_state, shipping_country, shipping_zip, order_total, cart_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING order_id
	`
	copyLinesQuery = `
		INSERT INTO order_lines (order_id, item_id, quantity)
		SELECT $1, item_id, quantity FROM cart_lines WHERE cart_id = $2
	`
	clearCartQuery   = `DELETE FROM cart_lines WHERE cart_id = $1`
	deductFundsQuery = `UPDATE customers SET funds_avail = funds_avail - $1 WHERE customer_id = $2`

	deleteOrderLinesQuery = `DELETE FROM order_lines WHERE order_id = $1`
	deleteOrderQuery      = `DELETE FROM orders WHERE order_id = $1`

	listOrdersByCartQuery = `
		SELECT order_id, order_date, shipping_address, shipping_city, shipping_state, shipping_country, shipping_zip, order_total, cart_id
		FROM orders
		WHERE cart_id = $1
		ORDER BY order_id
	`
	orderLinesQuery = `
		SELECT order_id, item_id, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY item_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create runs the whole checkout in one transaction. The customer row is
// locked before the funds check so concurrent checkouts of the same account
// cannot both pass it, and any failure rolls every step back.
func (r *PostgresRepository) Create(customerID, cartID int, ship Shipping, date string) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(cartPricesQuery, cartID)
	if err != nil {
		return Order{}, err
	}

	total := decimal.Zero
	count := 0
	for rows.Next() {
		var price decimal.Decimal
		var quantity int
		if err := rows.Scan(&price, &quantity); err != nil {
			rows.Close()
			return Order{}, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
		count++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Order{}, err
	}
	rows.Close()

	if count == 0 {
		return Order{}, ErrEmptyCart
	}

	var funds decimal.Decimal
	if err := tx.QueryRow(lockFundsQuery, customerID).Scan(&funds); err != nil {
		return Order{}, err
	}
	if funds.LessThan(total) {
		return Order{}, ErrInsufficientFunds
	}

	ord := Order{
		Date:            date,
		ShippingAddress: ship.Address,
		ShippingCity:    ship.City,
		ShippingState:   ship.State,
		ShippingCountry: ship.Country,
		ShippingZip:     ship.Zip,
		Total:           total,
		CartID:          cartID,
	}
	if err := tx.QueryRow(
		insertOrderQuery,
		ord.Date,
		ord.ShippingAddress,
		ord.ShippingCity,
		ord.ShippingState,
		ord.ShippingCountry,
		ord.ShippingZip,
		ord.Total,
		ord.CartID,
	).Scan(&ord.ID); err != nil {
		return Order{}, err
	}

	if _, err := tx.Exec(copyLinesQuery, ord.ID, cartID); err != nil {
		return Order{}, err
	}
	if _, err := tx.Exec(clearCartQuery, cartID); err != nil {
		return Order{}, err
	}
	if _, err := tx.Exec(deductFundsQuery, total, customerID); err != nil {
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	return ord, nil
}

// Delete removes the order's lines and the order itself together.
func (r *PostgresRepository) Delete(orderID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteOrderLinesQuery, orderID); err != nil {
		return err
	}

	result, err := tx.Exec(deleteOrderQuery, orderID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *PostgresRepository) ListByCart(cartID int) ([]Order, error) {
	rows, err := r.db.Query(listOrdersByCartQuery, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(
			&ord.ID,
			&ord.Date,
			&ord.ShippingAddress,
			&ord.ShippingCity,
			&ord.ShippingState,
			&ord.ShippingCountry,
			&ord.ShippingZip,
			&ord.Total,
			&ord.CartID,
		); err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}

	return orders, rows.Err()
}

func (r *PostgresRepository) Lines(orderID int) ([]LineItem, error) {
	rows, err := r.db.Query(orderLinesQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]LineItem, 0)
	for rows.Next() {
		var line LineItem
		if err := rows.Scan(&line.OrderID, &line.ItemID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
