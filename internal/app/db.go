package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	maxTracedQueryLength = 512
	dbPingTimeout        = 5 * time.Second
)

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// openDatabase opens a traced sqlx handle for the configured driver and
// applies pending migrations when auto-migrate is on.
func openDatabase(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := cfg.DBURL
	system := "postgresql"
	if cfg.DBDriver == config.DBDriverSQLite {
		dsn = sqliteDSN(dsn)
		system = "sqlite"
	}

	db, err := otelsqlx.Open(cfg.DBDriver, dsn,
		otelsql.WithDBSystem(system),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	if cfg.DBDriver == config.DBDriverPostgres {
		db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBAutoMigrate {
		if err := sqlstore.MigrateUp(db, cfg.DBDriver, dsn); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("database migrations applied", "driver", cfg.DBDriver)
	}

	return db, nil
}

// sqliteDSN turns on foreign keys unless the DSN already sets them.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

// dbNameFromURL extracts the database name from a Postgres URL, a key/value
// DSN or a SQLite file DSN.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if name, ok := strings.CutPrefix(trimmed, "file:"); ok {
		name, _, _ = strings.Cut(name, "?")
		return strings.TrimSpace(name)
	}

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
