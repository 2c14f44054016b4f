package order

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `id, customer_id, customer_name, email, phone, is_guest, subtotal, delivery_fee, total_amount, currency,
		status, address_line, city, state, pincode, gateway_order_id, gateway_payment_id, created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (gateway_payment_id) DO NOTHING
		RETURNING id
	`
	insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	getOrderByIDQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	getOrderByPaymentQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE gateway_payment_id = $1
	`
	listOrdersByCustomerQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`
	listOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC
	`
	listItemsQuery = `
		SELECT order_id, product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, id
	`
	updateStatusQuery = `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert relies on the unique constraint on gateway_payment_id: a replayed
// verification inserts nothing and reads back the order already stored.
func (r *PostgresRepository) Upsert(o Order) (Order, bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var id uuid.UUID
	err = tx.QueryRow(insertOrderQuery,
		o.ID,
		o.CustomerID,
		o.CustomerName,
		o.Email,
		o.Phone,
		o.IsGuest,
		o.Subtotal,
		o.DeliveryFee,
		o.TotalAmount,
		o.Currency,
		string(o.Status),
		o.ShippingAddress.Line,
		o.ShippingAddress.City,
		o.ShippingAddress.State,
		o.ShippingAddress.Pincode,
		o.GatewayOrderID,
		o.GatewayPaymentID,
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		existing, err := scanOrder(tx.QueryRow(getOrderByPaymentQuery, o.GatewayPaymentID))
		if err != nil {
			return Order{}, false, err
		}
		if err := tx.Commit(); err != nil {
			return Order{}, false, err
		}
		return r.withItems(existing)
	}
	if err != nil {
		return Order{}, false, err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(insertOrderItemQuery, id, it.ProductID, it.Name, it.Quantity, it.UnitPrice); err != nil {
			return Order{}, false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Order{}, false, err
	}
	return o, true, nil
}

func (r *PostgresRepository) withItems(o Order) (Order, bool, error) {
	orders := []Order{o}
	if err := r.attachItems(orders); err != nil {
		return Order{}, false, err
	}
	return orders[0], false, nil
}

func (r *PostgresRepository) GetByID(id uuid.UUID) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	orders := []Order{o}
	if err := r.attachItems(orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Order, error) {
	return r.list(listOrdersByCustomerQuery, customerID)
}

func (r *PostgresRepository) List(status Status) ([]Order, error) {
	return r.list(listOrdersQuery, string(status))
}

func (r *PostgresRepository) list(query string, arg any) ([]Order, error) {
	rows, err := r.db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) attachItems(orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID.String()
		index[o.ID] = i
	}

	rows, err := r.db.Query(listItemsQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			orderID uuid.UUID
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) UpdateStatus(id uuid.UUID, from, to Status, updatedAt time.Time) (Order, error) {
	result, err := r.db.Exec(updateStatusQuery, string(to), updatedAt, id, string(from))
	if err != nil {
		return Order{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		if _, err := r.GetByID(id); err != nil {
			return Order{}, err
		}
		return Order{}, ErrStatusConflict
	}
	return r.GetByID(id)
}

func scanOrder(scanner rowScanner) (Order, error) {
	var (
		o          Order
		customerID sql.NullInt64
		status     string
	)
	if err := scanner.Scan(
		&o.ID,
		&customerID,
		&o.CustomerName,
		&o.Email,
		&o.Phone,
		&o.IsGuest,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.TotalAmount,
		&o.Currency,
		&status,
		&o.ShippingAddress.Line,
		&o.ShippingAddress.City,
		&o.ShippingAddress.State,
		&o.ShippingAddress.Pincode,
		&o.GatewayOrderID,
		&o.GatewayPaymentID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return Order{}, err
	}
	if customerID.Valid {
		id := int(customerID.Int64)
		o.CustomerID = &id
	}
	o.Status = Status(status)
	return o, nil
}
