// Package persistence provides gorm-backed repositories for the catalog,
// order and identity domains.
package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/infrastructure/config"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// Migrate creates or updates the schema for all domain models
func (d *Database) Migrate() error {
	return Migrate(d.DB)
}

// Migrate runs schema migration on the given gorm connection. Besides the
// model-derived schema it creates the partial unique index that enforces a
// single basket order per user.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&identity.User{},
		&identity.ConfirmToken{},
		&identity.Contact{},
		&catalog.Category{},
		&catalog.Shop{},
		&catalog.Product{},
		&catalog.Parameter{},
		&catalog.ProductInfo{},
		&catalog.ProductParameter{},
		&order.Order{},
		&order.OrderItem{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	// Partial unique index: supported by both postgres and sqlite.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_basket_per_user
		 ON orders (user_id) WHERE state = 'basket'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create basket index: %w", err)
	}

	return nil
}
