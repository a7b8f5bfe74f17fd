// Package dbtest connects repository tests to a disposable Postgres database.
// Tests run only when DB_HOST_TEST is set.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/config"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/db"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Config reads the *_TEST variables, defaulting to a local Postgres.
func Config() config.PostgresConfig {
	return config.PostgresConfig{
		Host:           os.Getenv("DB_HOST_TEST"),
		Port:           getenv("DB_PORT_TEST", "5432"),
		User:           getenv("DB_USER_TEST", "postgres"),
		Password:       getenv("DB_PASSWORD_TEST", "123456"),
		DBName:         getenv("DB_NAME_TEST", "vidracaria_test"),
		SSLMode:        getenv("DB_SSLMODE_TEST", "disable"),
		MaxConns:       5,
		MigrationsPath: migrationsPath(),
	}
}

func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

// Run connects, migrates and runs m. Without DB_HOST_TEST the database stays nil
// and the tests are expected to call Skip.
func Run(m *testing.M, target **db.Postgres) int {
	cfg := Config()
	if cfg.Host == "" {
		return m.Run()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.Host).Str("port", cfg.Port).Str("dbname", cfg.DBName).Msg("Failed to connect to test database")
	}
	if err := db.ApplyMigrations(cfg); err != nil {
		pg.Close()
		log.Fatal().Err(err).Msg("Failed to migrate test database")
	}
	log.Info().Msg("Test Database connection established.")

	*target = pg
	code := m.Run()

	pg.Close()
	log.Info().Msg("TEST SETUP: Test Database connection closed.")
	return code
}

// Require skips t when no test database is configured.
func Require(t testing.TB, pg *db.Postgres) {
	t.Helper()
	if pg == nil {
		t.Skip("DB_HOST_TEST not set; skipping Postgres test")
	}
}

// Truncate empties the given tables of the service schema.
func Truncate(t testing.TB, pg *db.Postgres, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := pg.Pool.Exec(context.Background(), "TRUNCATE TABLE "+db.Schema+"."+table+" CASCADE"); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
