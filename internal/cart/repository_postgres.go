package cart

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	cartLinesQuery = `
		SELECT i.item_id, i.item_name, i.item_price, i.item_img, cl.quantity
		FROM items i
		INNER JOIN cart_lines cl ON i.item_id = cl.item_id
		WHERE cl.cart_id = $1
		ORDER BY i.item_id
	`
	savedLinesQuery = `
		SELECT i.item_id, i.item_name, i.item_price, i.item_img, sfl.quantity
		FROM items i
		INNER JOIN saved_for_later sfl ON i.item_id = sfl.item_id
		WHERE sfl.customer_id = $1
		ORDER BY i.item_id
	`

	// an existing (cart_id, item_id) line has the quantity added to it
	addItemQuery = `
		INSERT INTO cart_lines (cart_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, item_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
	`
	removeItemQuery = `DELETE FROM cart_lines WHERE cart_id = $1 AND item_id = $2`

	insertSavedQuery = `
		INSERT INTO saved_for_later (customer_id, item_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (customer_id, item_id) DO UPDATE SET quantity = saved_for_later.quantity + 1
	`
	insertLineFromSavedQuery = `
		INSERT INTO cart_lines (cart_id, item_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (cart_id, item_id) DO UPDATE SET quantity = cart_lines.quantity + 1
	`
	deleteSavedQuery = `DELETE FROM saved_for_later WHERE customer_id = $1 AND item_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Lines(cartID int) ([]Line, error) {
	return r.queryLines(cartLinesQuery, cartID)
}

func (r *PostgresRepository) SavedLines(customerID int) ([]Line, error) {
	return r.queryLines(savedLinesQuery, customerID)
}

func (r *PostgresRepository) AddItem(cartID, itemID, quantity int) error {
	_, err := r.db.Exec(addItemQuery, cartID, itemID, quantity)
	return err
}

// RemoveItem deletes the line unconditionally; a missing row is not an error.
func (r *PostgresRepository) RemoveItem(cartID, itemID int) error {
	_, err := r.db.Exec(removeItemQuery, cartID, itemID)
	return err
}

// SaveForLater moves a line out of the cart onto the saved-for-later list in
// one transaction, so a failure cannot leave the item in both places or
// neither.
func (r *PostgresRepository) SaveForLater(cartID, customerID, itemID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(removeItemQuery, cartID, itemID); err != nil {
		return err
	}
	if _, err := tx.Exec(insertSavedQuery, customerID, itemID); err != nil {
		return err
	}

	return tx.Commit()
}

// MoveToCart is the inverse move, also transactional. An item already in the
// cart has its quantity increased by one instead of gaining a duplicate line.
func (r *PostgresRepository) MoveToCart(customerID, cartID, itemID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteSavedQuery, customerID, itemID); err != nil {
		return err
	}
	if _, err := tx.Exec(insertLineFromSavedQuery, cartID, itemID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteSaved(customerID, itemID int) error {
	_, err := r.db.Exec(deleteSavedQuery, customerID, itemID)
	return err
}

func (r *PostgresRepository) queryLines(query string, key int) ([]Line, error) {
	rows, err := r.db.Query(query, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var line Line
		var img sql.NullString
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Price, &img, &line.Quantity); err != nil {
			return nil, err
		}
		if img.Valid {
			line.Image = img.String
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
