// seed crea el esquema de la tienda y carga datos de demostración:
// una cuenta de administrador y un catálogo inicial de teléfonos y accesorios.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-movil-api/pkg/config"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS unaccent;

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'USER',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	price          NUMERIC(14,2) NOT NULL CHECK (price >= 0),
	stock          BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
	category       TEXT NOT NULL,
	condition      TEXT NOT NULL DEFAULT 'NEW',
	sub_category   TEXT NOT NULL DEFAULT '',
	storage        TEXT NOT NULL DEFAULT '',
	ram            TEXT NOT NULL DEFAULT '',
	battery_health TEXT NOT NULL DEFAULT '',
	images         JSONB,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS carts (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS cart_items (
	id         UUID PRIMARY KEY,
	cart_id    UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	quantity   BIGINT NOT NULL CHECK (quantity > 0),
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id               UUID PRIMARY KEY,
	order_number     TEXT NOT NULL UNIQUE,
	user_id          UUID NOT NULL REFERENCES users(id),
	total_amount     NUMERIC(14,2) NOT NULL,
	shipping_address TEXT NOT NULL,
	phone            TEXT NOT NULL,
	email            TEXT NOT NULL DEFAULT '',
	notes            TEXT NOT NULL DEFAULT '',
	payment_method   TEXT NOT NULL,
	payment_status   TEXT NOT NULL,
	status           TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	id           UUID PRIMARY KEY,
	order_id     UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id   UUID NOT NULL,
	product_name TEXT NOT NULL,
	quantity     BIGINT NOT NULL,
	unit_price   NUMERIC(14,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS repair_requests (
	id          UUID PRIMARY KEY,
	user_id     UUID NOT NULL REFERENCES users(id),
	model       TEXT NOT NULL,
	description TEXT NOT NULL,
	contact     TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'PENDING',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL REFERENCES users(id),
	user_name  TEXT NOT NULL,
	product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	rating     INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, product_id)
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_repairs_user ON repair_requests(user_id);
`

type seedProduct struct {
	name, category, condition, subCategory, storage, ram string
	price                                                int64
	stock                                                int64
}

var catalog = []seedProduct{
	{"iPhone 13 128GB", entity.CategoryPhone, entity.ConditionUsed, "", "128GB", "4GB", 15000, 3},
	{"iPhone 12 64GB", entity.CategoryPhone, entity.ConditionUsed, "", "64GB", "4GB", 11500, 5},
	{"Samsung Galaxy S21 128GB", entity.CategoryPhone, entity.ConditionUsed, "", "128GB", "8GB", 10500, 2},
	{"Xiaomi Redmi Note 12 128GB", entity.CategoryPhone, entity.ConditionNew, "", "128GB", "6GB", 6500, 8},
	{"Funda iPhone 13 transparente", entity.CategoryAccessory, entity.ConditionNew, "fundas", "", "", 400, 25},
	{"Cargador rápido 20W USB-C", entity.CategoryAccessory, entity.ConditionNew, "cargadores", "", "", 350, 40},
	{"Mica de vidrio templado 9H", entity.CategoryAccessory, entity.ConditionNew, "micas", "", "", 150, 60},
	{"Audífonos inalámbricos TWS", entity.CategoryAccessory, entity.ConditionNew, "audio", "", "", 900, 15},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "crear esquema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("esquema listo")

	now := time.Now()

	// Cuenta admin de demostración. La contraseña viene de SEED_ADMIN_PASSWORD
	// o usa el valor de desarrollo.
	adminPass := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "admin12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash de contraseña: %v\n", err)
		os.Exit(1)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), "admin@tienda.local", string(hash), "Administrador", entity.RoleAdmin, now,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insertar admin: %v\n", err)
		os.Exit(1)
	}

	inserted := 0
	for _, p := range catalog {
		tag, err := pool.Exec(ctx, `
			INSERT INTO products (id, name, description, price, stock, category, condition, sub_category, storage, ram, battery_health, images, created_at, updated_at)
			SELECT $1, $2, '', $3, $4, $5, $6, $7, $8, $9, '', NULL, $10, $10
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $2)`,
			uuid.New().String(), p.name, decimal.NewFromInt(p.price), p.stock,
			p.category, p.condition, p.subCategory, p.storage, p.ram, now,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insertar producto %q: %v\n", p.name, err)
			os.Exit(1)
		}
		inserted += int(tag.RowsAffected())
	}
	fmt.Printf("catálogo: %d productos nuevos\n", inserted)
}
