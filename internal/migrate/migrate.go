package migrate

import (
	"context"

	"luma-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateChecks    bool
	CreateIndexes   bool
	CreateFKsViaSQL bool
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateChecks:    true,
		CreateIndexes:   true,
		CreateFKsViaSQL: true,
	}
}

func MigrateDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("starting database migration")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Employee{},
		&models.Product{},
		&models.Supply{},
		&models.Order{},
		&models.OrderItem{},
		&models.TrackingEntry{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateChecks {
		log.Info("creating CHECK constraints")

		// Status stays inside the closed domain even if application code
		// regresses.
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','in_progress','in_production','ready','shipped','delivered','cancelled'));
`).Error; err != nil {
			log.Error("failed to create status CHECK on orders", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE tracking_entries
  DROP CONSTRAINT IF EXISTS chk_tracking_status_allowed;
ALTER TABLE tracking_entries
  ADD CONSTRAINT chk_tracking_status_allowed
  CHECK (status IN ('pending','in_progress','in_production','ready','shipped','delivered','cancelled'));
`).Error; err != nil {
			log.Error("failed to create status CHECK on tracking_entries", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("failed to create quantity CHECK on order_items", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS chk_products_non_negative;
ALTER TABLE products
  ADD CONSTRAINT chk_products_non_negative
  CHECK (price_cents >= 0 AND stock >= 0);
`).Error; err != nil {
			log.Error("failed to create CHECK on products", zap.Error(err))
			return err
		}

		log.Info("CHECK constraints created")
	}

	if opt.CreateIndexes {
		log.Info("creating indexes")

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_client_created
ON orders (client_id, created_at DESC);
`).Error; err != nil {
			log.Error("failed to create index ix_orders_client_created", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_tracking_order_created
ON tracking_entries (order_id, created_at DESC, id DESC);
`).Error; err != nil {
			log.Error("failed to create index ix_tracking_order_created", zap.Error(err))
			return err
		}

		log.Info("indexes created")
	}

	if opt.CreateFKsViaSQL {
		log.Info("creating foreign keys")

		if err := db.Exec(`
ALTER TABLE clients
  DROP CONSTRAINT IF EXISTS fk_clients_user,
  ADD CONSTRAINT fk_clients_user
    FOREIGN KEY (user_id) REFERENCES users(id);
`).Error; err != nil {
			log.Error("failed to create FK clients.user_id -> users.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE employees
  DROP CONSTRAINT IF EXISTS fk_employees_user,
  ADD CONSTRAINT fk_employees_user
    FOREIGN KEY (user_id) REFERENCES users(id);
`).Error; err != nil {
			log.Error("failed to create FK employees.user_id -> users.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_client,
  ADD CONSTRAINT fk_orders_client
    FOREIGN KEY (client_id) REFERENCES clients(id);
`).Error; err != nil {
			log.Error("failed to create FK orders.client_id -> clients.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK order_items.order_id -> orders.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(id);
`).Error; err != nil {
			log.Error("failed to create FK order_items.product_id -> products.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE tracking_entries
  DROP CONSTRAINT IF EXISTS fk_tracking_order,
  ADD CONSTRAINT fk_tracking_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("failed to create FK tracking_entries.order_id -> orders.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE tracking_entries
  DROP CONSTRAINT IF EXISTS fk_tracking_employee,
  ADD CONSTRAINT fk_tracking_employee
    FOREIGN KEY (employee_id) REFERENCES employees(id);
`).Error; err != nil {
			log.Error("failed to create FK tracking_entries.employee_id -> employees.id", zap.Error(err))
			return err
		}

		log.Info("foreign keys created")
	}

	log.Info("database migration finished")
	return nil
}
