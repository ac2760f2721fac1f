package pgload

import "strings"

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS customers (
	customer_id       TEXT PRIMARY KEY,
	first_name        TEXT NOT NULL,
	last_name         TEXT NOT NULL,
	email             TEXT NOT NULL,
	phone             TEXT NOT NULL,
	address_line1     TEXT NOT NULL,
	city              TEXT NOT NULL,
	state             CHAR(2) NOT NULL,
	postal_code       TEXT NOT NULL,
	country_code      CHAR(2) NOT NULL,
	customer_segment  TEXT NOT NULL,
	registration_date DATE NOT NULL,
	is_active         BOOLEAN NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS products (
	product_id       TEXT PRIMARY KEY,
	product_name     TEXT NOT NULL,
	category_id      TEXT NOT NULL,
	category_name    TEXT NOT NULL,
	subcategory_name TEXT NOT NULL,
	brand            TEXT NOT NULL,
	unit_price       NUMERIC(12,2) NOT NULL,
	unit_cost        NUMERIC(12,2) NOT NULL,
	stock_quantity   INTEGER NOT NULL,
	is_active        BOOLEAN NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS stores (
	store_id     TEXT PRIMARY KEY,
	store_name   TEXT NOT NULL,
	store_type   TEXT NOT NULL,
	region       TEXT NOT NULL,
	city         TEXT NOT NULL,
	state        CHAR(2) NOT NULL,
	manager_name TEXT NOT NULL,
	open_date    DATE NOT NULL,
	is_active    BOOLEAN NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS orders (
	order_id         TEXT PRIMARY KEY,
	customer_id      TEXT NOT NULL REFERENCES customers (customer_id),
	order_date       TIMESTAMPTZ NOT NULL,
	order_status     TEXT NOT NULL,
	shipping_address TEXT NOT NULL,
	payment_method   TEXT NOT NULL,
	subtotal         NUMERIC(12,2) NOT NULL,
	discount_amount  NUMERIC(12,2) NOT NULL,
	shipping_cost    NUMERIC(12,2) NOT NULL,
	total_amount     NUMERIC(12,2) NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS order_items (
	order_item_id    TEXT PRIMARY KEY,
	order_id         TEXT NOT NULL REFERENCES orders (order_id),
	product_id       TEXT NOT NULL REFERENCES products (product_id),
	quantity         INTEGER NOT NULL CHECK (quantity > 0),
	unit_price       NUMERIC(12,2) NOT NULL,
	discount_percent NUMERIC(5,2) NOT NULL,
	line_total       NUMERIC(12,2) NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
)`,
}

// Schema returns the DDL for every table, in dependency order.
func Schema() string {
	return strings.Join(ddl, ";\n\n") + ";\n"
}
