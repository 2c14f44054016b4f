package favorite

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertFavoriteQuery = `
		INSERT INTO favorites (profile_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, product_id) DO NOTHING
	`
	deleteFavoriteQuery = `DELETE FROM favorites WHERE profile_id = $1 AND product_id = $2`
	listFavoritesQuery  = `SELECT product_id FROM favorites WHERE profile_id = $1 ORDER BY created_at, product_id`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(profileID, productID int, createdAt string) error {
	res, err := r.db.Exec(insertFavoriteQuery, profileID, productID, createdAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyFavorite
	}
	return nil
}

func (r *PostgresRepository) Remove(profileID, productID int) error {
	res, err := r.db.Exec(deleteFavoriteQuery, profileID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFavorite
	}
	return nil
}

func (r *PostgresRepository) List(profileID int) ([]int, error) {
	rows, err := r.db.Query(listFavoritesQuery, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
