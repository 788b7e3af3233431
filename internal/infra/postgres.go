package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tunitour/internal/models/db_models"
)

func InitPostgresql(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is not set")
	}

	db, err := gorm.Open(dialector(cfg.PostgresURL), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database pool: %w", err)
	}
	if !IsPostgres(db) {
		// one writer; sqlite locks the whole file
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// dialector accepts sqlite://<path> for local runs and tests; anything else is a PostgreSQL DSN.
func dialector(url string) gorm.Dialector {
	if path, ok := strings.CutPrefix(url, "sqlite://"); ok {
		return sqlite.Open(path + "?_foreign_keys=on")
	}
	return postgres.Open(url)
}

func NewGormLogger(log *zap.Logger) logger.Interface {
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// NewSQLX shares the gorm connection pool with sqlx for loosely-shaped rows.
func NewSQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	driver := "pgx"
	if db.Dialector.Name() == "sqlite" {
		driver = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, driver), nil
}

func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// AutoMigrate creates or updates the declared schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(db_models.All()...)
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("error closing database connection", zap.Error(err))
	} else {
		log.Info("database connection closed")
	}
}
