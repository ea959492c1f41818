package app

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskboard/internal/config"
)

func TestNewPostgresPoolConfig(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:           "db",
		Port:           5433,
		Username:       "taskboard",
		Password:       "secret",
		Database:       "tasks",
		SSLMode:        "disable",
		MaxConns:       7,
		ConnectTimeout: 3 * time.Second,
	}

	poolCfg, err := newPostgresPoolConfig(cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "db", poolCfg.ConnConfig.Host)
	assert.EqualValues(t, 5433, poolCfg.ConnConfig.Port)
	assert.Equal(t, "taskboard", poolCfg.ConnConfig.User)
	assert.Equal(t, "tasks", poolCfg.ConnConfig.Database)
	assert.EqualValues(t, 7, poolCfg.MaxConns)
	assert.Equal(t, 3*time.Second, poolCfg.ConnConfig.ConnectTimeout)
	assert.NotNil(t, poolCfg.ConnConfig.Tracer)
}

func TestZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, zerologLevel(tracelog.LogLevelError))
	assert.Equal(t, zerolog.WarnLevel, zerologLevel(tracelog.LogLevelWarn))
	assert.Equal(t, zerolog.DebugLevel, zerologLevel(tracelog.LogLevelInfo))
	assert.Equal(t, zerolog.TraceLevel, zerologLevel(tracelog.LogLevelDebug))
}
