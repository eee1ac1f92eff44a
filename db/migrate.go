package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
)

// Embedded so `restaurante migrate` works regardless of the working directory.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationNames lists the embedded migrations in the order they are applied.
func MigrationNames() ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// ApplyMigrations runs every embedded migration. Migrations are written to be
// idempotent, so running them on an up-to-date database is a no-op.
func ApplyMigrations(ctx context.Context, verbose bool) error {
	if Pool == nil {
		return fmt.Errorf("apply migrations: pool not initialised")
	}
	names, err := MigrationNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := Pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if verbose {
			log.Printf("migration %s applied", name)
		}
	}
	return nil
}
