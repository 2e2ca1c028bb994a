package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Creates the full schema. Idempotent; safe to rerun.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS users (
	  id CHAR(36) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  password_hash VARBINARY(72) NOT NULL,
	  full_name VARCHAR(128) NULL,
	  phone VARCHAR(32) NULL,
	  address VARCHAR(512) NULL,
	  role VARCHAR(16) NOT NULL DEFAULT 'CUSTOMER',
	  status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
	  ban_reason VARCHAR(255) NULL,
	  ban_meta JSON NULL,
	  banned_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS sessions (
	  id CHAR(36) NOT NULL,
	  user_id CHAR(36) NOT NULL,
	  token_hash BINARY(32) NOT NULL,
	  expires_at DATETIME(3) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  last_seen_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_sessions_token_hash (token_hash),
	  KEY ix_sessions_user_id (user_id),
	  CONSTRAINT fk_sessions_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS stores (
	  id CHAR(36) NOT NULL,
	  owner_user_id CHAR(36) NOT NULL,
	  name VARCHAR(128) NOT NULL,
	  slug VARCHAR(140) NOT NULL,
	  description VARCHAR(1024) NULL,
	  logo_url VARCHAR(512) NULL,
	  status VARCHAR(16) NOT NULL,
	  status_reason VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  approved_at DATETIME(3) NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_stores_slug (slug),
	  KEY ix_stores_owner_user_id (owner_user_id),
	  CONSTRAINT fk_stores_owner FOREIGN KEY (owner_user_id) REFERENCES users(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS products (
	  id CHAR(36) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  slug VARCHAR(280) NOT NULL,
	  description TEXT NULL,
	  category VARCHAR(128) NULL,
	  status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
	  status_reason VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_products_slug (slug),
	  KEY ix_products_store_id (store_id),
	  CONSTRAINT fk_products_store FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS product_images (
	  id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  url VARCHAR(512) NOT NULL,
	  position INT NOT NULL DEFAULT 0,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_product_images_product_id (product_id),
	  CONSTRAINT fk_product_images_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS product_variants (
	  id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  sku VARCHAR(64) NOT NULL,
	  options JSON NOT NULL,
	  price BIGINT NOT NULL,
	  stock INT NOT NULL DEFAULT 0,
	  status VARCHAR(16) NOT NULL DEFAULT 'PENDING',
	  status_reason VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_product_variants_sku (sku),
	  KEY ix_product_variants_product_id (product_id),
	  CONSTRAINT fk_product_variants_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  order_number VARCHAR(32) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  user_id CHAR(36) NULL,
	  status VARCHAR(24) NOT NULL,
	  payment_method VARCHAR(24) NOT NULL,
	  total_price BIGINT NOT NULL,
	  product_price BIGINT NOT NULL DEFAULT 0,
	  shipping_fee BIGINT NOT NULL DEFAULT 0,
	  store_discount_amount BIGINT NOT NULL DEFAULT 0,
	  platform_discount_amount BIGINT NOT NULL DEFAULT 0,
	  recipient_name VARCHAR(128) NULL,
	  recipient_phone VARCHAR(32) NULL,
	  shipping_address VARCHAR(512) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  confirmed_at DATETIME(3) NULL,
	  delivered_at DATETIME(3) NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_orders_number (order_number),
	  KEY ix_orders_store_id (store_id),
	  KEY ix_orders_user_id (user_id),
	  CONSTRAINT fk_orders_store FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  variant_id CHAR(36) NULL,
	  product_name VARCHAR(255) NOT NULL,
	  sku VARCHAR(64) NOT NULL,
	  options_json JSON NOT NULL,
	  image_url VARCHAR(512) NULL,
	  unit_price BIGINT NOT NULL,
	  quantity INT NOT NULL,
	  line_total BIGINT NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_items_order_id (order_id),
	  CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_events (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  actor_user_id CHAR(36) NOT NULL,
	  action VARCHAR(24) NOT NULL,
	  from_status VARCHAR(24) NOT NULL,
	  to_status VARCHAR(24) NOT NULL,
	  note VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_events_order_id (order_id),
	  CONSTRAINT fk_order_events_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS shipments (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  carrier_ref VARCHAR(64) NULL,
	  status VARCHAR(24) NOT NULL,
	  history JSON NOT NULL,
	  expected_delivery_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_shipments_order_id (order_id),
	  KEY ix_shipments_store_id (store_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS wallets (
	  id CHAR(36) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  balance BIGINT NOT NULL DEFAULT 0,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_wallets_store_id (store_id),
	  CONSTRAINT fk_wallets_store FOREIGN KEY (store_id) REFERENCES stores(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS withdrawals (
	  id CHAR(36) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  amount BIGINT NOT NULL,
	  bank_name VARCHAR(128) NOT NULL,
	  bank_account VARCHAR(64) NOT NULL,
	  holder_name VARCHAR(128) NOT NULL,
	  status VARCHAR(16) NOT NULL,
	  idempotency_key VARCHAR(64) NOT NULL,
	  provider_ref VARCHAR(128) NULL,
	  reason VARCHAR(255) NULL,
	  error_message VARCHAR(255) NULL,
	  processed_by CHAR(36) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_withdrawals_idem_key (idempotency_key),
	  KEY ix_withdrawals_store_id (store_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS refund_requests (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  customer_id CHAR(36) NOT NULL,
	  requested_amount BIGINT NOT NULL,
	  approved_amount BIGINT NULL,
	  reason VARCHAR(255) NOT NULL,
	  evidence JSON NULL,
	  status VARCHAR(16) NOT NULL,
	  admin_note VARCHAR(255) NULL,
	  decided_by CHAR(36) NULL,
	  decided_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_refunds_order_id (order_id),
	  KEY ix_refunds_store_id (store_id),
	  KEY ix_refunds_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS revenue_records (
	  id CHAR(36) NOT NULL,
	  revenue_type VARCHAR(32) NOT NULL,
	  amount BIGINT NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  store_id CHAR(36) NOT NULL,
	  description VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_revenue_type (revenue_type),
	  KEY ix_revenue_order_id (order_id),
	  KEY ix_revenue_store_id (store_id),
	  KEY ix_revenue_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS promotions (
	  id CHAR(36) NOT NULL,
	  code VARCHAR(32) NOT NULL,
	  name VARCHAR(128) NOT NULL,
	  description VARCHAR(512) NULL,
	  discount_type VARCHAR(8) NOT NULL,
	  discount_value BIGINT NOT NULL,
	  max_discount BIGINT NULL,
	  min_order_amount BIGINT NOT NULL DEFAULT 0,
	  starts_at DATETIME(3) NOT NULL,
	  ends_at DATETIME(3) NOT NULL,
	  enabled TINYINT(1) NOT NULL DEFAULT 1,
	  usage_limit INT NULL,
	  used_count INT NOT NULL DEFAULT 0,
	  created_by CHAR(36) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  deleted_at DATETIME(3) NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_promotions_code (code),
	  KEY ix_promotions_deleted_at (deleted_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS shipper_profiles (
	  id CHAR(36) NOT NULL,
	  user_id CHAR(36) NOT NULL,
	  vehicle_plate VARCHAR(16) NULL,
	  work_area VARCHAR(128) NULL,
	  avatar_url VARCHAR(512) NULL,
	  status VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_shipper_profiles_user_id (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("schema ready")
}
