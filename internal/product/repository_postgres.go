package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, price, category, image
		FROM products
		ORDER BY ord, id
	`
	getProductByIDQuery = `
		SELECT id, name, price, category, image
		FROM products
		WHERE id = $1
	`
	listProductsByIDsQuery = `
		SELECT id, name, price, category, image
		FROM products
		WHERE id = ANY($1::text[])
		ORDER BY ord, id
	`
	insertProductQuery = `
		INSERT INTO products (id, name, price, category, image, ord)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the whole catalog in seed order. Query failures yield an
// empty catalog so callers degrade instead of crashing.
func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListByIDs(ids []string) []Product {
	if len(ids) == 0 {
		return []Product{}
	}
	rows, err := r.db.Query(listProductsByIDsQuery, pq.Array(ids))
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Reload is a no-op: every read goes to the database already.
func (r *PostgresRepository) Reload() error { return nil }

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		count = 0
	}
	if _, err := r.db.Exec(insertProductQuery, p.ID, p.Name, p.Price, p.Category, p.Image, count); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteProductQuery, id)
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
	return nil
}

// Reset deletes all products and inserts the provided list in a single
// transaction, preserving slice order via the ord column.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	for i, p := range products {
		if _, err := tx.Exec(insertProductQuery, p.ID, p.Name, p.Price, p.Category, p.Image, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var category sql.NullString
	var image sql.NullString

	if err := scanner.Scan(&p.ID, &p.Name, &p.Price, &category, &image); err != nil {
		return Product{}, err
	}
	if category.Valid {
		p.Category = category.String
	}
	if image.Valid {
		p.Image = image.String
	}
	return p, nil
}
