package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/ecoscan/internal/model"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id                   TEXT PRIMARY KEY,
    barcode              TEXT NOT NULL UNIQUE,
    name                 TEXT NOT NULL,
    price                REAL NOT NULL CHECK (price >= 0),
    sustainability_score TEXT NOT NULL DEFAULT '',
    description          TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT ''
)`

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type SQLRepository struct {
	DB *sqlx.DB
}

// OpenSQLite opens (creating if needed) a sqlite catalog at path.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	// One writer is all sqlite supports.
	db.SetMaxOpenConns(1)
	return db, nil
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) Migrate(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// Seed upserts products keyed by id.
func (r *SQLRepository) Seed(ctx context.Context, products []model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO products (id, barcode, name, price, sustainability_score, description, status)
        VALUES (:id, :barcode, :name, :price, :sustainability_score, :description, :status)
        ON CONFLICT(id) DO UPDATE SET
            barcode = excluded.barcode,
            name = excluded.name,
            price = excluded.price,
            sustainability_score = excluded.sustainability_score,
            description = excluded.description,
            status = excluded.status
    `
	for _, p := range products {
		p.Barcode = p.Code()
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE barcode = ? LIMIT 1`
	err := r.DB.GetContext(ctx, &p, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.DB.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return products, nil
}
