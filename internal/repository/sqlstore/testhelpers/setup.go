package testhelpers

import (
	"context"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/query"
	"github.com/infrastructure-search/internal/repository/sqlstore"
)

// TestDB represents a migrated test database running in a container
type TestDB struct {
	DB      *sqlx.DB
	Store   *sqlstore.DB
	Dialect query.Dialect
	Logger  *zap.Logger
}

// StartPostgres поднимает PostgreSQL в контейнере и применяет встроенные миграции.
// Тест пропускается в режиме -short и при недоступном Docker.
func StartPostgres(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("infrastructure_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	return migrateAndConnect(t, query.Postgres, "postgres", connStr, connStr)
}

// StartMySQL поднимает MySQL в контейнере и применяет встроенные миграции
func StartMySQL(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcmysql.Run(ctx, "mysql:8.0.36",
		tcmysql.WithDatabase("infrastructure_test"),
		tcmysql.WithUsername("test_user"),
		tcmysql.WithPassword("test_password"),
	)
	if err != nil {
		t.Fatalf("Failed to start MySQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true", "loc=UTC")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	return migrateAndConnect(t, query.MySQL, "mysql", "mysql://"+dsn+"&multiStatements=true", dsn)
}

func migrateAndConnect(t *testing.T, dialect query.Dialect, driverName, migrationDSN, dsn string) *TestDB {
	t.Helper()

	logger := zap.NewNop()

	migrator, err := sqlstore.NewMigrator(dialect, migrationDSN, logger)
	if err != nil {
		t.Fatalf("Failed to create %s migrator: %v", driverName, err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("Failed to apply %s migrations: %v", driverName, err)
	}
	_ = migrator.Close()

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &TestDB{
		DB:      db,
		Store:   sqlstore.NewDBForTest(db, dialect, logger),
		Dialect: dialect,
		Logger:  logger,
	}
}

// Cleanup cleans up test data
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	// Truncate tables in correct order (respecting FK constraints)
	tables := []string{
		"informational_notes",
		"schedule_exceptions",
		"schedule_weekdays",
		"schedules",
		"infrastructure_accessibility",
		"accessibility_types",
		"infrastructure_equipment",
		"equipment_types",
		"infrastructure_room_types",
		"room_types",
		"infrastructures",
	}

	for _, table := range tables {
		if tdb.Dialect == query.MySQL {
			// TRUNCATE в MySQL запрещён для таблиц с внешними ключами
			if _, err := tdb.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
			if _, err := tdb.DB.ExecContext(ctx, "ALTER TABLE "+table+" AUTO_INCREMENT = 1"); err != nil {
				return err
			}
			continue
		}
		if _, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			return err
		}
	}

	return nil
}
