// Package testdb opens in-memory sqlite databases carrying the storefront schema
// for repository and service tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/capstudio-backend/pkg/db/models"
)

// DefaultTenantID matches the tenant seeded by the migrations.
var DefaultTenantID = uuid.MustParse("a0000000-0000-0000-0000-000000000001")

var schema = []string{`
CREATE TABLE IF NOT EXISTS tenants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  logo_url TEXT,
  contact_email TEXT NOT NULL,
  contact_phone TEXT,
  settings TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL DEFAULT 'hat',
  base_price INTEGER NOT NULL,
  images TEXT,
  variants TEXT,
  detail_image_url TEXT,
  admin_message TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (tenant_id, slug)
);`, `
CREATE TABLE IF NOT EXISTS product_price_tiers (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  min_quantity INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  created_at DATETIME,
  UNIQUE (product_id, min_quantity)
);`, `
CREATE TABLE IF NOT EXISTS customizable_areas (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  color_id TEXT,
  view_name TEXT NOT NULL,
  display_name TEXT NOT NULL,
  zone_x REAL NOT NULL DEFAULT 0,
  zone_y REAL NOT NULL DEFAULT 0,
  zone_width REAL NOT NULL DEFAULT 0,
  zone_height REAL NOT NULL DEFAULT 0,
  image_url TEXT,
  is_enabled INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  user_id TEXT,
  order_number TEXT NOT NULL UNIQUE,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_email TEXT,
  shipping_info TEXT,
  subtotal INTEGER NOT NULL,
  shipping_cost INTEGER NOT NULL DEFAULT 0,
  total_amount INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  admin_memo TEXT,
  tracking_info TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  color TEXT NOT NULL,
  color_label TEXT NOT NULL,
  size TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  total_price INTEGER NOT NULL,
  design_snapshot TEXT,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_status_history (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  from_status TEXT,
  to_status TEXT NOT NULL,
  changed_by TEXT NOT NULL,
  memo TEXT,
  created_at DATETIME,
  seq INTEGER
);`, `
CREATE TRIGGER IF NOT EXISTS order_status_history_seq AFTER INSERT ON order_status_history
BEGIN
  UPDATE order_status_history SET seq = NEW.rowid WHERE rowid = NEW.rowid;
END;`, `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  order_id TEXT,
  author_type TEXT NOT NULL DEFAULT 'customer',
  author_name TEXT NOT NULL,
  organization_name TEXT,
  title TEXT,
  content TEXT NOT NULL,
  rating INTEGER NOT NULL,
  images TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  admin_memo TEXT,
  is_featured INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  approved_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
}

// Open returns a private in-memory database with every storefront table created.
// Timestamps are written in UTC so range filters compare consistently.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=1", name, uuid.NewString()[:8])
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

// SeedTenant inserts a tenant with the given slug and no stored settings.
func SeedTenant(t *testing.T, conn *gorm.DB, id uuid.UUID, slug string) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		ID:           id,
		Name:         strings.ToUpper(slug[:1]) + slug[1:],
		Slug:         slug,
		ContactEmail: slug + "@example.com",
	}
	if err := conn.Create(tenant).Error; err != nil {
		t.Fatalf("seed tenant: %v", err)
	}
	return tenant
}
