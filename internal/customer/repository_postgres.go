package customer

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getCustomerByIDQuery = `
		SELECT customer_id, first_name, last_name, username, password, funds_avail, favorite_type, email, cart_id
		FROM customers
		WHERE customer_id = $1
	`
	getCustomerByUsernameQuery = `
		SELECT customer_id, first_name, last_name, username, password, funds_avail, favorite_type, email, cart_id
		FROM customers
		WHERE username = $1
	`
	insertCartQuery = `INSERT INTO carts (cart_id) VALUES (DEFAULT) RETURNING cart_id`

	insertCustomerQuery = `
		INSERT INTO customers (first_name, last_name, username, password, funds_avail, favorite_type, email, cart_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING customer_id
	`
	updateCustomerQuery = `
		UPDATE customers
		SET first_name = $1,
			last_name = $2,
			username = $3,
			password = $4,
			funds_avail = $5,
			favorite_type = $6,
			email = $7
		WHERE customer_id = $8
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Customer, error) {
	cust, err := scanCustomer(r.db.QueryRow(getCustomerByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}

	return cust, nil
}

func (r *PostgresRepository) GetByUsername(username string) (Customer, error) {
	cust, err := scanCustomer(r.db.QueryRow(getCustomerByUsernameQuery, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}

	return cust, nil
}

// CreateWithCart allocates the customer's cart and inserts the customer row in
// a single transaction, so a failed registration never leaves an orphan cart.
func (r *PostgresRepository) CreateWithCart(cust Customer) (Customer, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Customer{}, err
	}
	defer tx.Rollback()

	var cartID int
	if err := tx.QueryRow(insertCartQuery).Scan(&cartID); err != nil {
		return Customer{}, err
	}

	var customerID int
	err = tx.QueryRow(
		insertCustomerQuery,
		cust.FirstName,
		cust.LastName,
		cust.Username,
		cust.Password,
		cust.FundsAvail,
		cust.FavoriteType,
		cust.Email,
		cartID,
	).Scan(&customerID)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, ErrUsernameExists
		}
		return Customer{}, err
	}

	if err := tx.Commit(); err != nil {
		return Customer{}, err
	}

	cust.ID = customerID
	cust.CartID = cartID
	return cust, nil
}

func (r *PostgresRepository) Update(id int, update Customer) (Customer, error) {
	result, err := r.db.Exec(
		updateCustomerQuery,
		update.FirstName,
		update.LastName,
		update.Username,
		update.Password,
		update.FundsAvail,
		update.FavoriteType,
		update.Email,
		id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Customer{}, ErrUsernameExists
		}
		return Customer{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Customer{}, err
	}
	if affected == 0 {
		return Customer{}, ErrNotFound
	}

	return r.GetByID(id)
}

func scanCustomer(scanner rowScanner) (Customer, error) {
	cust := Customer{}
	var favoriteType sql.NullString
	var email sql.NullString

	if err := scanner.Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Username,
		&cust.Password,
		&cust.FundsAvail,
		&favoriteType,
		&email,
		&cust.CartID,
	); err != nil {
		return Customer{}, err
	}

	if favoriteType.Valid {
		cust.FavoriteType = favoriteType.String
	}
	if email.Valid {
		cust.Email = email.String
	}

	return cust, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
