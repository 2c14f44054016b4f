package address

import (
	"database/sql"
	"errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addressColumns = `id, profile_id, label, line, city, state, pincode, phone, is_default, created_at, updated_at`

	listAddressesQuery = `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE profile_id = $1
		ORDER BY is_default DESC, id
	`
	insertAddressQuery = `
		INSERT INTO addresses (profile_id, label, line, city, state, pincode, phone, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + addressColumns
	updateAddressQuery = `
		UPDATE addresses
		SET label = $3, line = $4, city = $5, state = $6, pincode = $7, phone = $8, is_default = $9, updated_at = $10
		WHERE profile_id = $1 AND id = $2
		RETURNING ` + addressColumns
	clearDefaultQuery  = `UPDATE addresses SET is_default = FALSE WHERE profile_id = $1 AND is_default`
	deleteAddressQuery = `DELETE FROM addresses WHERE profile_id = $1 AND id = $2`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(profileID int) ([]Address, error) {
	rows, err := r.db.Query(listAddressesQuery, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	return r.write(a, func(tx *sql.Tx) *sql.Row {
		return tx.QueryRow(insertAddressQuery,
			a.ProfileID, a.Label, a.Line, a.City, a.State, a.Pincode, a.Phone, a.IsDefault, a.CreatedAt, a.UpdatedAt)
	})
}

func (r *PostgresRepository) Update(a Address) (Address, error) {
	return r.write(a, func(tx *sql.Tx) *sql.Row {
		return tx.QueryRow(updateAddressQuery,
			a.ProfileID, a.ID, a.Label, a.Line, a.City, a.State, a.Pincode, a.Phone, a.IsDefault, a.UpdatedAt)
	})
}

// write runs one insert or update, demoting the previous default first when
// a becomes the default.
func (r *PostgresRepository) write(a Address, query func(tx *sql.Tx) *sql.Row) (Address, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Address{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if a.IsDefault {
		if _, err := tx.Exec(clearDefaultQuery, a.ProfileID); err != nil {
			return Address{}, err
		}
	}

	out, err := scanAddress(query(tx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Address{}, ErrNotFound
		}
		return Address{}, err
	}
	if err := tx.Commit(); err != nil {
		return Address{}, err
	}
	return out, nil
}

func (r *PostgresRepository) Delete(profileID, id int) error {
	res, err := r.db.Exec(deleteAddressQuery, profileID, id)
	if err != nil {
		return err
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAddress(scanner rowScanner) (Address, error) {
	var (
		a         Address
		label     sql.NullString
		phone     sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(&a.ID, &a.ProfileID, &label, &a.Line, &a.City, &a.State, &a.Pincode, &phone, &a.IsDefault, &createdAt, &updatedAt); err != nil {
		return Address{}, err
	}
	a.Label = label.String
	a.Phone = phone.String
	a.CreatedAt = createdAt.String
	a.UpdatedAt = updatedAt.String
	return a, nil
}
