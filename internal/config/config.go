package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by the persistence gateway.
const (
	StorageFile  = "file"
	StorageMySQL = "mysql"
	StorageRedis = "redis"
)

type Config struct {
	Port           int
	BaseURL        string
	StorageDriver  string
	StateDir       string
	DatabaseDSN    string
	RedisAddress   string
	RedisKey       string
	JWTSecret      string
	TokenTTL       time.Duration
	LoginDelay     time.Duration
	MaxAttempts    int
	LockoutPeriod  time.Duration
	AdminPassword  string
	SalesPassword  string
	AllowedOrigins []string
	LogLevel       string
	BackupDir      string
	BackupInterval time.Duration
	GeminiAPIKey   string
	WebDir         string
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	// a missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := Config{
		Port:           8080,
		BaseURL:        env("BASE_URL", "http://localhost:8080"),
		StorageDriver:  strings.ToLower(env("STORAGE_DRIVER", StorageFile)),
		StateDir:       env("STATE_DIR", "./data"),
		DatabaseDSN:    env("DB_DSN", ""),
		RedisAddress:   env("REDIS_ADDRESS", ""),
		RedisKey:       env("REDIS_KEY", "appState"),
		JWTSecret:      env("JWT_SECRET", ""),
		AdminPassword:  env("ADMIN_PASSWORD", "admin123"),
		SalesPassword:  env("SALES_PASSWORD", "user123"),
		AllowedOrigins: splitList(env("ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:       env("LOG_LEVEL", "info"),
		BackupDir:      env("BACKUP_DIR", "./backups"),
		GeminiAPIKey:   env("GEMINI_API_KEY", ""),
		WebDir:         env("WEB_DIR", ""),
	}

	var err error
	if cfg.Port, err = intEnv("PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.Port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}
	if cfg.MaxAttempts, err = intEnv("MAX_LOGIN_ATTEMPTS", 3); err != nil {
		return Config{}, err
	}
	if cfg.MaxAttempts <= 0 {
		return Config{}, fmt.Errorf("invalid MAX_LOGIN_ATTEMPTS: %d", cfg.MaxAttempts)
	}
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.LoginDelay, err = durationEnv("LOGIN_DELAY", 500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.LockoutPeriod, err = durationEnv("LOCKOUT_DURATION", 2*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.BackupInterval, err = durationEnv("BACKUP_INTERVAL", 0); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required (environment variable or .env)")
	}
	switch cfg.StorageDriver {
	case StorageFile:
	case StorageMySQL:
		if cfg.DatabaseDSN == "" {
			return Config{}, fmt.Errorf("DB_DSN is required when STORAGE_DRIVER=mysql")
		}
	case StorageRedis:
		if cfg.RedisAddress == "" {
			return Config{}, fmt.Errorf("REDIS_ADDRESS is required when STORAGE_DRIVER=redis")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := env(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
