package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", EnvDev)
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USERNAME", "taskboard")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_DATABASE", "taskboard")
}

func TestEnvReader_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "taskboard", cfg.JWT.Issuer)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
}

func TestEnvReader_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, os.Unsetenv("JWT_SIGNING_KEY"))

	_, err := NewEnvReader().Read()

	assert.Error(t, err)
}

func TestPostgresConfig_ConnString(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5433,
		Username: "taskboard",
		Password: "p@ss word",
		Database: "tasks",
		SSLMode:  "require",
	}

	assert.Equal(t, "postgres://taskboard:p%40ss%20word@db:5433/tasks?sslmode=require", cfg.ConnString())
}

func TestFileReader_YAML(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, os.Unsetenv("JWT_SIGNING_KEY"))

	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	content := "http:\n  port: \"9090\"\njwt:\n  signing_key: from-file\npostgres:\n  host: file-db\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewFileReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.JWT.SigningKey)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	// POSTGRES_HOST from the environment wins over the file.
	assert.Equal(t, "db", cfg.Postgres.Host)
}

func TestFileReader_MissingFile(t *testing.T) {
	_, err := NewFileReader(filepath.Join(t.TempDir(), "nope.env")).Read()

	assert.Error(t, err)
}
