package sqlstore

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/config"
	"github.com/infrastructure-search/internal/query"
)

// DB - пул соединений с хранилищем и его диалект. Создаётся один раз в main
// и передаётся в репозитории явно.
type DB struct {
	*sqlx.DB
	dialect query.Dialect
	logger  *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	dialect, err := query.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	driverName := "pgx"
	if dialect == query.MySQL {
		driverName = "mysql"
	}

	db, err := sqlx.Connect(driverName, cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected",
		zap.String("driver", driverName),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.DBName),
	)

	return &DB{DB: db, dialect: dialect, logger: logger}, nil
}

func (db *DB) Dialect() query.Dialect {
	return db.dialect
}

func (db *DB) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest creates a DB instance for testing with provided database and logger
func NewDBForTest(sqlxDB *sqlx.DB, dialect query.Dialect, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:      sqlxDB,
		dialect: dialect,
		logger:  logger,
	}
}
