package main

// schema is applied in order by the migrate command. Every statement is
// idempotent so migrate can run on each deploy.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id SERIAL PRIMARY KEY,
		email TEXT,
		password TEXT,
		first_name TEXT,
		last_name TEXT,
		phone TEXT,
		is_guest BOOLEAN NOT NULL DEFAULT FALSE,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS profiles_email_key ON profiles (email) WHERE email IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS profiles_phone_key ON profiles (phone) WHERE phone IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		image_url TEXT,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(12,2) NOT NULL,
		stock INT NOT NULL DEFAULT 0,
		category TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id SERIAL PRIMARY KEY,
		product_id INT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		position INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS product_colors (
		id SERIAL PRIMARY KEY,
		product_id INT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		hex TEXT NOT NULL,
		image_url TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		profile_id INT NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
		product_id INT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		quantity INT NOT NULL,
		position INT NOT NULL DEFAULT 0,
		updated_at TEXT,
		PRIMARY KEY (profile_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		customer_id INT REFERENCES profiles (id) ON DELETE SET NULL,
		customer_name TEXT,
		email TEXT,
		phone TEXT,
		is_guest BOOLEAN NOT NULL DEFAULT FALSE,
		subtotal NUMERIC(12,2) NOT NULL,
		delivery_fee NUMERIC(12,2) NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		currency TEXT NOT NULL DEFAULT 'INR',
		status TEXT NOT NULL,
		address_line TEXT,
		city TEXT,
		state TEXT,
		pincode TEXT,
		gateway_order_id TEXT NOT NULL,
		gateway_payment_id TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`ALTER TABLE orders
		ALTER COLUMN created_at TYPE TIMESTAMPTZ USING created_at::timestamptz,
		ALTER COLUMN updated_at TYPE TIMESTAMPTZ USING updated_at::timestamptz`,
	`CREATE INDEX IF NOT EXISTS orders_customer_idx ON orders (customer_id)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		product_id INT NOT NULL,
		name TEXT NOT NULL,
		quantity INT NOT NULL,
		unit_price NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS custom_orders (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		description TEXT NOT NULL,
		quantity INT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS banners (
		id SERIAL PRIMARY KEY,
		image_url TEXT NOT NULL,
		link TEXT,
		alt TEXT,
		position INT NOT NULL DEFAULT 0,
		created_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id SERIAL PRIMARY KEY,
		profile_id INT NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
		label TEXT,
		line TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		pincode TEXT NOT NULL,
		phone TEXT,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		profile_id INT NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
		product_id INT NOT NULL REFERENCES products (id) ON DELETE CASCADE,
		created_at TEXT,
		PRIMARY KEY (profile_id, product_id)
	)`,
}

type seedCategory struct {
	name, image string
}

var categorySeed = []seedCategory{
	{"Jar Candles", "/category/jar.jpg"},
	{"Pillar Candles", "/category/pillar.jpg"},
	{"Travel Tins", "/category/tins.jpg"},
	{"Tealights", "/category/tealights.jpg"},
}

var bannerSeed = []string{
	"/banner/diwali-collection.jpg",
	"/banner/hand-poured.jpg",
	"/banner/free-delivery-metro.jpg",
}
