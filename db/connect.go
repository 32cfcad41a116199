package db

import (
	"fmt"
	"strings"

	"energy-calculator/confs"
	"energy-calculator/entities"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the session database selected by cfg.SessionStore and
// migrates the sessions table.
func Connect(cfg confs.Config) (Database, error) {
	var dialector gorm.Dialector

	switch cfg.SessionStore {
	case confs.StorePostgres:
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		dialector = postgres.Open(dsn)
	case confs.StoreSQLite:
		zap.L().Info("using sqlite session store", zap.String("path", cfg.SQLitePath))
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("session store %q has no database", cfg.SessionStore)
	}

	return Open(dialector, cfg.SessionStore == confs.StorePostgres)
}

// Open connects through dialector and runs migrations. Pooling settings are
// only applied to networked databases.
func Open(dialector gorm.Dialector, pooled bool) (Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if pooled {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(1)
	}

	zap.L().Info("database connection established")

	if err := db.AutoMigrate(&entities.Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	zap.L().Info("database migrations completed")

	return &GormDatabase{DB: db}, nil
}

func postgresDSN(cfg confs.Config) (string, error) {
	// Check if DB_URL is provided (connection string)
	if cfg.DBURL != "" {
		dsn := cfg.DBURL

		// Hosted databases expect TLS unless the URL says otherwise
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}

		zap.L().Info("connecting to postgres using DB_URL")
		return dsn, nil
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if cfg.DBHost == "localhost" || cfg.DBHost == "127.0.0.1" {
		sslMode = "disable"
	}

	zap.L().Info("connecting to postgres using individual parameters", zap.String("sslmode", sslMode))
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode), nil
}
