package product

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `id, name, description, price, stock, category, is_active, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::text = '' OR category = $1)
		ORDER BY id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, stock, category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			stock = $4,
			category = $5,
			is_active = $6,
			updated_at = $7
		WHERE id = $8
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`

	listImagesQuery = `
		SELECT product_id, url, position
		FROM product_images
		WHERE product_id = ANY($1::int[])
		ORDER BY product_id, position
	`
	listColorsQuery = `
		SELECT product_id, name, hex, image_url
		FROM product_colors
		WHERE product_id = ANY($1::int[])
		ORDER BY product_id, id
	`
	insertImageQuery = `INSERT INTO product_images (product_id, url, position) VALUES ($1, $2, $3)`
	insertColorQuery = `INSERT INTO product_colors (product_id, name, hex, image_url) VALUES ($1, $2, $3, $4)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(category string) ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachVariants(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}

	products := []Product{p}
	if err := r.attachVariants(products); err != nil {
		return Product{}, err
	}
	return products[0], nil
}

// attachVariants loads images and colours for all products in two queries.
func (r *PostgresRepository) attachVariants(products []Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int, len(products))
	index := make(map[int]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	imgRows, err := r.db.Query(listImagesQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var (
			pid int
			img Image
		)
		if err := imgRows.Scan(&pid, &img.URL, &img.Position); err != nil {
			return err
		}
		if i, ok := index[pid]; ok {
			products[i].Images = append(products[i].Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return err
	}

	colorRows, err := r.db.Query(listColorsQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer colorRows.Close()
	for colorRows.Next() {
		var (
			pid      int
			c        Color
			imageURL sql.NullString
		)
		if err := colorRows.Scan(&pid, &c.Name, &c.Hex, &imageURL); err != nil {
			return err
		}
		c.ImageURL = imageURL.String
		if i, ok := index[pid]; ok {
			products[i].Colors = append(products[i].Colors, c)
		}
	}
	return colorRows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Product{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	id, err := insertProduct(tx, p)
	if err != nil {
		return Product{}, err
	}
	p.ID = id

	if err := replaceImages(tx, id, p.Images); err != nil {
		return Product{}, err
	}
	if err := replaceColors(tx, id, p.Colors); err != nil {
		return Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	result, err := r.db.Exec(updateProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.Category,
		p.IsActive,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
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

func (r *PostgresRepository) SetColors(id int, colors []Color) error {
	return r.withProduct(id, func(tx *sql.Tx) error {
		return replaceColors(tx, id, colors)
	})
}

func (r *PostgresRepository) SetImages(id int, images []Image) error {
	return r.withProduct(id, func(tx *sql.Tx) error {
		return replaceImages(tx, id, images)
	})
}

// withProduct runs fn in a transaction after checking the product exists.
func (r *PostgresRepository) withProduct(id int, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Reset deletes all products and inserts the provided list in a single
// transaction. Images and colours cascade with their product.
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

	for _, p := range products {
		id, err := insertProduct(tx, p)
		if err != nil {
			return err
		}
		if err := replaceImages(tx, id, p.Images); err != nil {
			return err
		}
		if err := replaceColors(tx, id, p.Colors); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertProduct(tx *sql.Tx, p Product) (int, error) {
	var id int
	err := tx.QueryRow(insertProductQuery,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.Category,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	return id, err
}

func replaceImages(tx *sql.Tx, id int, images []Image) error {
	if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = $1`, id); err != nil {
		return err
	}
	for _, img := range images {
		if _, err := tx.Exec(insertImageQuery, id, img.URL, img.Position); err != nil {
			return err
		}
	}
	return nil
}

func replaceColors(tx *sql.Tx, id int, colors []Color) error {
	if _, err := tx.Exec(`DELETE FROM product_colors WHERE product_id = $1`, id); err != nil {
		return err
	}
	for _, c := range colors {
		if _, err := tx.Exec(insertColorQuery, id, c.Name, c.Hex, sql.NullString{String: c.ImageURL, Valid: c.ImageURL != ""}); err != nil {
			return err
		}
	}
	return nil
}

func scanProduct(scanner rowScanner) (Product, error) {
	var (
		p           Product
		description sql.NullString
		createdAt   sql.NullString
		updatedAt   sql.NullString
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.Price,
		&p.Stock,
		&p.Category,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}
	p.Description = description.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}
