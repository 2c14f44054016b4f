package cart

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	loadCartQuery = `
		SELECT c.product_id, p.name, c.quantity, p.price, p.stock
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.profile_id = $1
		ORDER BY c.position, c.product_id
	`
	pruneCartQuery = `
		DELETE FROM cart_items
		WHERE profile_id = $1 AND NOT (product_id = ANY($2::int[]))
	`
	upsertCartItemQuery = `
		INSERT INTO cart_items (profile_id, product_id, quantity, position, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
			position = EXCLUDED.position,
			updated_at = EXCLUDED.updated_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Load joins the stored quantities with current catalog name, price and
// stock so a cart never carries a stale price.
func (r *PostgresRepository) Load(profileID int) ([]Item, error) {
	rows, err := r.db.Query(loadCartQuery, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice, &it.Stock); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Save(profileID int, items []Item, updatedAt string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	if _, err := tx.Exec(pruneCartQuery, profileID, pq.Array(ids)); err != nil {
		return err
	}

	for pos, it := range items {
		if _, err := tx.Exec(upsertCartItemQuery, profileID, it.ProductID, it.Quantity, pos, updatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
