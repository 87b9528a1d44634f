package postgres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4/source"

	"github.com/taskloop/backend/internal/config"
)

// RunMigrations builds its source URL with the file scheme, so the file
// source driver must be linked into this package.
func TestFileSourceDriverRegistered(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "000001_init.up.sql"), []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}

	src, err := source.Open("file://" + filepath.ToSlash(dir))
	if err != nil {
		t.Fatalf("file source driver not registered: %v", err)
	}
	src.Close()
}

func TestRunMigrationsDisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}
	if err := RunMigrations(cfg, nil); err != nil {
		t.Fatalf("disabled migrations: %v", err)
	}
	if err := RunMigrations(nil, nil); err != nil {
		t.Fatalf("nil config: %v", err)
	}
}
