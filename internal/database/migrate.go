package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"quiz-forge/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createVersionTable = `CREATE TABLE schema_migrations (
	version NUMBER(19) PRIMARY KEY,
	applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL
)`

// Migrator applies the embedded up migrations in version order. Each file may
// hold several statements separated by semicolons; PL/SQL blocks are not supported.
type Migrator struct {
	db     *sqlx.DB
	source source.Driver
}

func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	return newMigrator(db, migrationFiles, "migrations")
}

func newMigrator(db *sqlx.DB, fsys fs.FS, dir string) (*Migrator, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source: %w", err)
	}
	return &Migrator{db: db, source: src}, nil
}

// Up runs every migration newer than the recorded version and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	defer m.source.Close()
	l := logger.Get()

	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}

	var current uint
	if err := m.db.GetContext(ctx, &current, `SELECT NVL(MAX(version), 0) FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("could not read schema version: %w", err)
	}

	applied := 0
	version, err := m.source.First()
	for err == nil {
		if version > current {
			if err := m.apply(ctx, version); err != nil {
				return applied, err
			}
			applied++
		}
		version, err = m.source.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return applied, fmt.Errorf("could not iterate migrations: %w", err)
	}

	l.Info("Migrations completed", zap.Int("applied", applied), zap.Uint("previous_version", current))
	return applied, nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createVersionTable); err != nil {
		// ORA-00955: name is already used by an existing object
		if strings.Contains(err.Error(), "ORA-00955") {
			return nil
		}
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	r, identifier, err := m.source.ReadUp(version)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	for _, stmt := range splitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d (%s): %w", version, identifier, err)
		}
	}
	if _, err := m.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (:1)`, version); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

// splitStatements drops line comments and splits on semicolons. Oracle rejects
// a trailing semicolon on plain SQL sent through the driver.
func splitStatements(script string) []string {
	var b strings.Builder
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, part := range strings.Split(b.String(), ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
