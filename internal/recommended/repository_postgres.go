package recommended

import (
	"database/sql"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Cancelled orders do not count as sales. Products nobody bought yet still
// appear, after the sellers.
const bestsellersQuery = `
	SELECT p.id, p.name, p.price,
		(SELECT url FROM product_images pi WHERE pi.product_id = p.id ORDER BY position LIMIT 1) AS image_url,
		COALESCE(SUM(oi.quantity) FILTER (WHERE o.status IS NOT NULL AND o.status <> 'cancelled'), 0) AS units_sold
	FROM products p
	LEFT JOIN order_items oi ON oi.product_id = p.id
	LEFT JOIN orders o ON o.id = oi.order_id
	WHERE p.is_active
	GROUP BY p.id
	ORDER BY units_sold DESC, p.id
	LIMIT $1 OFFSET $2
`

func (r *PostgresRepository) List(limit, offset int) ([]Item, error) {
	rows, err := r.db.Query(bestsellersQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var (
			it  Item
			img sql.NullString
		)
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &img, &it.UnitsSold); err != nil {
			return nil, err
		}
		it.ImageURL = img.String
		out = append(out, it)
	}
	return out, rows.Err()
}
