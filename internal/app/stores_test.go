package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aquaalert/aquaalert/internal/database"
)

func TestDatabaseConfigNormalisesDriver(t *testing.T) {
	cases := map[string]string{
		"":           "sqlite",
		"SQLite3":    "sqlite",
		"postgresql": "postgres",
		"mariadb":    "mysql",
		"oracle":     "oracle",
	}
	for in, want := range cases {
		cfg := &Config{Database: DatabaseConfig{Driver: in}}
		require.Equal(t, want, databaseConfig(cfg).Driver, in)
	}
}

func TestDatabaseConfigCopiesConnectionFields(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "postgres",
		Host:     " db.internal ",
		Port:     5432,
		Name:     "fleet",
		Username: "aqua",
		Password: "secret",
		Options:  map[string]string{"sslmode": "disable"},
	}}

	got := databaseConfig(cfg)
	require.Equal(t, "db.internal", got.Host)
	require.Equal(t, 5432, got.Port)
	require.Equal(t, "fleet", got.Name)
	require.Equal(t, "aqua", got.User)
	require.Equal(t, "secret", got.Password)
	require.Equal(t, "disable", got.Options["sslmode"])
}

func TestOpenDatabaseMigratesSQLite(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "fleet.sqlite")}}

	db, err := OpenDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.True(t, db.Migrator().HasTable("bowsers"))
}

func TestOpenDocumentStoreFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "aquaalert.json")
	cfg := &Config{Storage: StorageConfig{Documents: "file", Path: path}}

	store, err := OpenDocumentStore(context.Background(), cfg)
	require.NoError(t, err)

	doc, err := store.Create(context.Background(), "alerts", map[string]any{"title": "Low supply"})
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID())
	require.FileExists(t, path)
}

func TestOpenDocumentStoreRejectsUnknownBackend(t *testing.T) {
	_, err := OpenDocumentStore(context.Background(), &Config{Storage: StorageConfig{Documents: "ftp"}})
	require.Error(t, err)
}

func TestOpenDocumentStoreS3RequiresBucket(t *testing.T) {
	_, err := OpenDocumentStore(context.Background(), &Config{Storage: StorageConfig{Documents: "s3"}})
	require.Error(t, err)
}
