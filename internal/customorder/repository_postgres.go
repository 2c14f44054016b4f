package customorder

import (
	"database/sql"
	"errors"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	requestColumns = `id, name, email, phone, description, quantity, status, created_at, updated_at`

	insertRequestQuery = `
		INSERT INTO custom_orders (name, email, phone, description, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	getRequestQuery   = `SELECT ` + requestColumns + ` FROM custom_orders WHERE id = $1`
	listRequestsQuery = `
		SELECT ` + requestColumns + `
		FROM custom_orders
		WHERE ($1::text = '' OR status = $1)
		ORDER BY id DESC
	`
	updateStatusQuery = `
		UPDATE custom_orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + requestColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(req Request) (Request, error) {
	err := r.db.QueryRow(insertRequestQuery,
		req.Name,
		req.Email,
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		req.Description,
		req.Quantity,
		string(req.Status),
		req.CreatedAt,
		req.UpdatedAt,
	).Scan(&req.ID)
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r *PostgresRepository) GetByID(id int) (Request, error) {
	req, err := scanRequest(r.db.QueryRow(getRequestQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (r *PostgresRepository) List(status Status) ([]Request, error) {
	rows, err := r.db.Query(listRequestsQuery, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id int, from, to Status, updatedAt string) (Request, error) {
	req, err := scanRequest(r.db.QueryRow(updateStatusQuery, string(to), updatedAt, id, string(from)))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Request{}, err
	}
	// no row matched: either the id is unknown or the status moved on
	if _, getErr := r.GetByID(id); getErr != nil {
		return Request{}, getErr
	}
	return Request{}, ErrStatusConflict
}

func scanRequest(scanner rowScanner) (Request, error) {
	var (
		req       Request
		phone     sql.NullString
		status    string
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(&req.ID, &req.Name, &req.Email, &phone, &req.Description, &req.Quantity, &status, &createdAt, &updatedAt); err != nil {
		return Request{}, err
	}
	req.Phone = phone.String
	req.Status = Status(status)
	req.CreatedAt = createdAt.String
	req.UpdatedAt = updatedAt.String
	return req, nil
}
