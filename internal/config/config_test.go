package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Load_Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORAGE_DRIVER", "")
		t.Setenv("PORT", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, StorageFile, cfg.StorageDriver)
		require.Equal(t, 3, cfg.MaxAttempts)
		require.Equal(t, 2*time.Minute, cfg.LockoutPeriod)
		require.Equal(t, 500*time.Millisecond, cfg.LoginDelay)
		require.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
		require.Zero(t, cfg.BackupInterval)
	})

	t.Run("Load_ReadsOverrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("PORT", "9090")
		t.Setenv("STORAGE_DRIVER", "Redis")
		t.Setenv("REDIS_ADDRESS", "localhost:6379")
		t.Setenv("LOCKOUT_DURATION", "30s")
		t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 9090, cfg.Port)
		require.Equal(t, StorageRedis, cfg.StorageDriver)
		require.Equal(t, 30*time.Second, cfg.LockoutPeriod)
		require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	})

	t.Run("Load_RequiresSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("Load_RejectsBadValues", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		t.Setenv("PORT", "eighty")
		_, err := Load()
		require.ErrorContains(t, err, "PORT")
		t.Setenv("PORT", "")

		t.Setenv("LOGIN_DELAY", "soon")
		_, err = Load()
		require.ErrorContains(t, err, "LOGIN_DELAY")
		t.Setenv("LOGIN_DELAY", "")

		t.Setenv("STORAGE_DRIVER", "mysql")
		t.Setenv("DB_DSN", "")
		_, err = Load()
		require.ErrorContains(t, err, "DB_DSN")

		t.Setenv("STORAGE_DRIVER", "floppy")
		_, err = Load()
		require.ErrorContains(t, err, "floppy")
	})
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("error", &buf)

	LogError(logger, "service", "persist", "save snapshot", map[string]int{"products": 2}, errors.New("disk full"))

	require.Contains(t, buf.String(), `"funcName":"persist"`)
	require.Contains(t, buf.String(), `"msg":"disk full"`)
	require.Equal(t, logrus.ErrorLevel, logger.GetLevel())
}
