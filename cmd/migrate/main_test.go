package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/app"
	"github.com/aquaalert/aquaalert/internal/database"
	"github.com/aquaalert/aquaalert/internal/models"
)

func writeConfig(t *testing.T) (dir, dbPath, docPath string) {
	t.Helper()
	dir = t.TempDir()
	dbPath = filepath.Join(dir, "aquaalert.sqlite")
	docPath = filepath.Join(dir, "aquaalert.json")

	yaml := fmt.Sprintf(`server:
  log_level: error
database:
  driver: sqlite
  path: %s
storage:
  documents: file
  path: %s
`, dbPath, docPath)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	return dir, dbPath, docPath
}

func TestRunCopiesRowsIntoDocumentFile(t *testing.T) {
	dir, dbPath, docPath := writeConfig(t)

	db, err := app.OpenDatabase(&app.Config{Database: app.DatabaseConfig{Driver: "sqlite", Path: dbPath}})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Tanker{Number: "B-001", Capacity: 5000, Status: models.TankerActive}).Error)
	require.NoError(t, database.Close(db))

	require.NoError(t, run(context.Background(), []string{"-config", dir, "-env-file", ""}))

	raw, err := os.ReadFile(docPath)
	require.NoError(t, err)
	require.Contains(t, string(raw), "B-001")

	// a second run finds the completion marker
	require.NoError(t, run(context.Background(), []string{"-config", dir, "-env-file", ""}))
}

func TestRunRejectsMissingConfigPath(t *testing.T) {
	err := run(context.Background(), []string{"-config", filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}
