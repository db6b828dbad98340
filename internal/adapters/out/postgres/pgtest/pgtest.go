// Package pgtest starts a disposable PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	adapter "agu/internal/adapters/out/postgres"
	"agu/internal/adapters/out/postgres/agurepo"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Start runs postgres:15-alpine, connects with GORM and migrates the schema.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("start postgres: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return container, nil, err
	}
	if err := adapter.Migrate(db); err != nil {
		return container, nil, fmt.Errorf("migrate: %w", err)
	}
	return container, db, nil
}

// Truncate empties every table of the schema.
func Truncate(db *gorm.DB) error {
	tables := make([]string, 0, len(adapter.Models()))
	for _, model := range adapter.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		tables = append(tables, stmt.Schema.Table)
	}
	return db.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
}

type noTracking struct{}

func (noTracking) TrackAggregate(string, any) {}

// SeedAGU stores a minimal active AGU so rows that reference it can be inserted.
func SeedAGU(ctx context.Context, db *gorm.DB, cui kernel.CUI) error {
	levels, err := kernel.NewGasLevels(10, 90, 20)
	if err != nil {
		return err
	}
	location, err := kernel.NewLocation("Porto", 41.15, -8.61)
	if err != nil {
		return err
	}
	a, err := agu.NewAGU(cui, "PT01-AGU-0000001", "Porto Centro", levels, 80, 1, location, kernel.NewUUID())
	if err != nil {
		return err
	}
	return agurepo.NewGormAGURepository(db, noTracking{}).Add(ctx, a)
}
