package item

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listItemsQuery = `
		SELECT item_id, item_name, item_price, item_desc, item_img
		FROM items
		ORDER BY item_id
	`
	getItemByIDQuery = `
		SELECT item_id, item_name, item_price, item_desc, item_img
		FROM items
		WHERE item_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Item {
	rows, err := r.db.Query(listItemsQuery)
	if err != nil {
		return []Item{}
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			continue
		}
		items = append(items, it)
	}

	return items
}

func (r *PostgresRepository) GetByID(id int) (Item, error) {
	it, err := scanItem(r.db.QueryRow(getItemByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}

	return it, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(scanner rowScanner) (Item, error) {
	it := Item{}
	var desc sql.NullString
	var img sql.NullString

	if err := scanner.Scan(&it.ID, &it.Name, &it.Price, &desc, &img); err != nil {
		return Item{}, err
	}

	if desc.Valid {
		it.Description = desc.String
	}
	if img.Valid {
		it.Image = img.String
	}

	return it, nil
}
