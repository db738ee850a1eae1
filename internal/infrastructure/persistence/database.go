package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/pricing/internal/infrastructure/config"
	"github.com/erp/pricing/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection for the engine's read-only repositories
type Database struct {
	DB *gorm.DB
}

// NewDatabase creates a new database connection. SQL logging is routed
// through the given zap logger at the verbosity the log config asks for;
// a nil zapLogger builds one from the same config.
func NewDatabase(cfg *config.Config, zapLogger *zap.Logger) (*Database, error) {
	if zapLogger == nil {
		var err error
		zapLogger, err = logger.New(&logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cfg.Log.Output,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}
	gl := logger.NewGormLogger(zapLogger, gormLogLevel(cfg.Log.Level))
	return NewDatabaseWithLogger(&cfg.Database, gl)
}

// gormLogLevel maps the application log level onto GORM's. Debug logs every
// query, info and warn keep slow queries and errors, error keeps errors only.
func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return gormlogger.Info
	case "info", "warn", "warning":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

// NewDatabaseWithLogger creates a new database connection with a custom GORM logger
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, logger gormlogger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
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
