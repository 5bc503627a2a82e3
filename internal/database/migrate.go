package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"topic-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const migrationsTable = "SCHEMA_MIGRATIONS"

// Migration is one versioned up script.
type Migration struct {
	Version    uint
	Identifier string
	Applied    bool
}

// Migrator applies the embedded scripts in version order. Oracle cannot run
// several statements per Exec, so each file holds exactly one statement.
type Migrator struct {
	db     *sqlx.DB
	source source.Driver
}

// NewMigrator reads migrations from dir inside fsys.
func NewMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}
	return &Migrator{db: db, source: src}, nil
}

// NewEmbeddedMigrator uses the migrations compiled into the binary.
func NewEmbeddedMigrator(db *sqlx.DB) (*Migrator, error) {
	return NewMigrator(db, Migrations, "migrations")
}

func (m *Migrator) Close() error {
	return m.source.Close()
}

// List returns every known migration with its applied flag.
func (m *Migrator) List(ctx context.Context) ([]Migration, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var out []Migration
	err = m.walk(func(version uint) error {
		r, identifier, err := m.source.ReadUp(version)
		if err != nil {
			return err
		}
		r.Close()
		_, ok := applied[version]
		out = append(out, Migration{Version: version, Identifier: identifier, Applied: ok})
		return nil
	})
	return out, err
}

// Up runs every pending migration and returns the ones it applied.
func (m *Migrator) Up(ctx context.Context) ([]Migration, error) {
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Get()
	var ran []Migration
	err = m.walk(func(version uint) error {
		if _, ok := applied[version]; ok {
			return nil
		}
		r, identifier, err := m.source.ReadUp(version)
		if err != nil {
			return fmt.Errorf("failed to read migration %d: %w", version, err)
		}
		body, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return fmt.Errorf("failed to read migration %d: %w", version, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(body)), ";")
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", version, identifier, err)
		}
		if _, err := m.db.ExecContext(ctx,
			`INSERT INTO `+migrationsTable+` (version, identifier, applied_at) VALUES (:1, :2, :3)`,
			int64(version), identifier, time.Now()); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		log.Info("Executed migration", zap.Uint("version", version), zap.String("identifier", identifier))
		ran = append(ran, Migration{Version: version, Identifier: identifier, Applied: true})
		return nil
	})
	return ran, err
}

// walk visits versions in ascending order until the source is exhausted.
func (m *Migrator) walk(fn func(version uint) error) error {
	version, err := m.source.First()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read first migration: %w", err)
	}
	for {
		if err := fn(version); err != nil {
			return err
		}
		version, err = m.source.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read next migration: %w", err)
		}
	}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	var count int
	if err := m.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM user_tables WHERE table_name = :1`, migrationsTable); err != nil {
		return fmt.Errorf("failed to check migrations table: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := m.db.ExecContext(ctx, `CREATE TABLE `+migrationsTable+` (
		version    NUMBER(19) PRIMARY KEY,
		identifier VARCHAR2(255) NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[uint]struct{}, error) {
	var versions []int64
	if err := m.db.SelectContext(ctx, &versions, `SELECT version FROM `+migrationsTable+` ORDER BY version`); err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	applied := make(map[uint]struct{}, len(versions))
	for _, v := range versions {
		applied[uint(v)] = struct{}{}
	}
	return applied, nil
}
