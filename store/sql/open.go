package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-membership/migrations"
)

const defaultPingTimeout = 5 * time.Second

// Config describes the role ledger database. Driver must be registered with
// database/sql by the caller (lib/pq or go-sqlite3).
type Config struct {
	Driver      string
	DSN         string
	Debug       bool
	PingTimeout time.Duration
}

func (c Config) GetDebug() bool {
	return c.Debug
}

func (c Config) GetDriver() string {
	return strings.TrimSpace(c.Driver)
}

func (c Config) GetServer() string {
	return strings.TrimSpace(c.DSN)
}

func (c Config) GetPingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return defaultPingTimeout
	}
	return c.PingTimeout
}

func (c Config) GetOtelIdentifier() string {
	return "go-membership"
}

// Open connects to the database, registers the embedded schema for the
// matching dialect and applies it.
func Open(ctx context.Context, cfg Config) (*persistence.Client, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dialectName := migrations.NormalizeDialect(cfg.Driver)
	dialect, err := bunDialect(dialectName)
	if err != nil {
		return nil, err
	}
	if cfg.GetServer() == "" {
		return nil, fmt.Errorf("sqlstore: dsn is required")
	}

	sqlDB, err := sql.Open(cfg.GetDriver(), cfg.GetServer())
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", cfg.GetDriver(), err)
	}
	if dialectName == migrations.DialectSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	client, err := persistence.New(cfg, sqlDB, dialect)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: new persistence client: %w", err)
	}

	_, err = migrations.Register(ctx, func(_ context.Context, _ string, _ string, fsys fs.FS) error {
		client.RegisterSQLMigrations(fsys)
		return nil
	}, migrations.WithDialects(dialectName))
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return client, nil
}

func bunDialect(name string) (schema.Dialect, error) {
	switch name {
	case migrations.DialectPostgres:
		return pgdialect.New(), nil
	case migrations.DialectSQLite:
		return sqlitedialect.New(), nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver")
	}
}
