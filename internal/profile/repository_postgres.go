package profile

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	profileColumns = `id, email, password, first_name, last_name, phone, is_guest, is_admin, created_at, updated_at`

	listProfilesQuery = `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY id
	`
	getProfileByIDQuery = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id = $1
	`
	getProfileByEmailQuery = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE email = $1
	`
	getProfileByPhoneQuery = `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE phone = $1
	`
	insertProfileQuery = `
		INSERT INTO profiles (email, password, first_name, last_name, phone, is_guest, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	updateProfileQuery = `
		UPDATE profiles
		SET email = $1,
			first_name = $2,
			last_name = $3,
			phone = $4,
			is_guest = $5,
			is_admin = $6,
			password = COALESCE(NULLIF($7, ''), password),
			updated_at = $8
		WHERE id = $9
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Profile, error) {
	rows, err := r.db.Query(listProfilesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Profile, error) {
	return r.getOne(getProfileByIDQuery, id)
}

func (r *PostgresRepository) GetByEmail(email string) (Profile, error) {
	if email == "" {
		return Profile{}, ErrNotFound
	}
	return r.getOne(getProfileByEmailQuery, email)
}

func (r *PostgresRepository) GetByPhone(phone string) (Profile, error) {
	if phone == "" {
		return Profile{}, ErrNotFound
	}
	return r.getOne(getProfileByPhoneQuery, phone)
}

func (r *PostgresRepository) getOne(query string, arg any) (Profile, error) {
	p, err := scanProfile(r.db.QueryRow(query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Profile) (Profile, error) {
	var id int
	err := r.db.QueryRow(
		insertProfileQuery,
		nullable(p.Email),
		p.Password,
		p.FirstName,
		p.LastName,
		nullable(p.Phone),
		p.IsGuest,
		p.IsAdmin,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Profile{}, translateUniqueViolation(err)
	}

	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Profile) (Profile, error) {
	result, err := r.db.Exec(
		updateProfileQuery,
		nullable(p.Email),
		p.FirstName,
		p.LastName,
		nullable(p.Phone),
		p.IsGuest,
		p.IsAdmin,
		p.Password,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Profile{}, translateUniqueViolation(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Profile{}, err
	}
	if affected == 0 {
		return Profile{}, ErrNotFound
	}
	return r.GetByID(id)
}

// translateUniqueViolation maps the profiles_phone_key / profiles_email_key
// constraint errors onto the package sentinels.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "phone") {
			return ErrPhoneExists
		}
		return ErrEmailExists
	}
	return err
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func scanProfile(scanner rowScanner) (Profile, error) {
	var (
		p         Profile
		email     sql.NullString
		password  sql.NullString
		phone     sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(
		&p.ID,
		&email,
		&password,
		&p.FirstName,
		&p.LastName,
		&phone,
		&p.IsGuest,
		&p.IsAdmin,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Profile{}, err
	}

	p.Email = email.String
	p.Password = password.String
	p.Phone = phone.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}
