package database

import (
	"fmt"
	"log"
	"time"

	migrate "github.com/rubenv/sql-migrate"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/callcaps/callcaps-server/pkg/config"
)

// migrationTable is where sql-migrate records applied migrations.
const migrationTable = "callcaps_migrations"

// NewPostgresDB opens a GORM connection against PostgreSQL and verifies it
// with a ping. Timestamps GORM writes are always UTC.
func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Environment == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MinConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Database connected successfully")

	return db, nil
}

// Migrate runs the sql-migrate files from the configured migrations
// directory in the given direction and returns how many were applied.
func Migrate(db *gorm.DB, cfg *config.Config, direction migrate.MigrationDirection) (int, error) {
	migrate.SetTable(migrationTable)
	migrations := &migrate.FileMigrationSource{
		Dir: cfg.Database.MigrationsDir,
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get database object: %w", err)
	}

	n, err := migrate.Exec(sqlDB, "postgres", migrations, direction)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations from %s: %w", cfg.Database.MigrationsDir, err)
	}
	return n, nil
}

// AutoMigrate brings the schema up to date on boot
func AutoMigrate(db *gorm.DB, cfg *config.Config) error {
	log.Printf("🔄 Applying migrations from %s using sql-migrate...\n", cfg.Database.MigrationsDir)

	n, err := Migrate(db, cfg, migrate.Up)
	if err != nil {
		return err
	}

	log.Printf("✅ Applied %d migrations!\n", n)
	return nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("✅ Database connection closed")
	return nil
}
