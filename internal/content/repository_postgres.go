package content

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

const (
	listBannersQuery = `
		SELECT id, image_url, link, alt, position, created_at
		FROM banners
		ORDER BY position, id
		LIMIT $1
	`
	insertBannerQuery = `
		INSERT INTO banners (image_url, link, alt, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
)

func (r *PostgresRepository) List(limit int) ([]Banner, error) {
	rows, err := r.db.Query(listBannersQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Banner, 0)
	for rows.Next() {
		var (
			b         Banner
			link      sql.NullString
			alt       sql.NullString
			createdAt sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.ImageURL, &link, &alt, &b.Position, &createdAt); err != nil {
			return nil, err
		}
		b.Link = link.String
		b.Alt = alt.String
		b.CreatedAt = createdAt.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(b Banner) (Banner, error) {
	err := r.db.QueryRow(insertBannerQuery,
		b.ImageURL,
		sql.NullString{String: b.Link, Valid: b.Link != ""},
		sql.NullString{String: b.Alt, Valid: b.Alt != ""},
		b.Position,
		b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return Banner{}, err
	}
	return b, nil
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM banners WHERE id = $1`, id)
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
