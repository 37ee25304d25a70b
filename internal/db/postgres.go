package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/footyalerts/footy-alerts/internal/pkg/logger"
	"github.com/footyalerts/footy-alerts/internal/types"
	"github.com/footyalerts/footy-alerts/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService connects to Postgres using DATABASE_URL when set,
// otherwise a DSN assembled from the individual POSTGRES_* variables.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	dsn := utils.GetEnv("DATABASE_URL", "", serviceLog)
	if dsn == "" {
		host := utils.GetEnv("POSTGRES_HOST", "localhost", serviceLog)
		port := utils.GetEnv("POSTGRES_PORT", "5432", serviceLog)
		user := utils.GetEnv("POSTGRES_USER", "postgres", serviceLog)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", serviceLog)
		name := utils.GetEnv("POSTGRES_NAME", "footyalerts", serviceLog)
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
	}

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	serviceLog.Info("Postgres connection established")

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (ps *PostgresService) DB() *gorm.DB {
	return ps.db
}

// AutoMigrateAll creates or updates the games, alerts and subscriptions
// tables.
func (ps *PostgresService) AutoMigrateAll() error {
	return ps.db.AutoMigrate(
		&types.Game{},
		&types.Alert{},
		&types.Subscription{},
	)
}
