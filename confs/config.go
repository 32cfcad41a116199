package confs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Session store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	SessionStore    string
	SessionTTL      time.Duration
	JanitorInterval time.Duration
	AllowOrigins    []string

	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string
}

// LoadConfig loads environment variables from a .env file if present
// and fills Config with defaults for anything unset.
func LoadConfig() Config {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("could not load .env", zap.Error(err))
	}

	return Config{
		Port:            getenv("PORT", "3536"),
		GinMode:         getenv("GIN_MODE", "release"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		SessionStore:    strings.ToLower(getenv("SESSION_STORE", StoreMemory)),
		SessionTTL:      getenvDuration("SESSION_TTL", 30*time.Minute),
		JanitorInterval: getenvDuration("JANITOR_INTERVAL", 5*time.Minute),
		AllowOrigins:    getenvList("CORS_ALLOW_ORIGINS"),

		DBURL:      os.Getenv("DB_URL"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		SQLitePath: getenv("SQLITE_PATH", "sessions.db"),
	}
}

func (c Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	// bare numbers are seconds
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	zap.L().Warn("ignoring invalid duration", zap.String("key", key), zap.String("value", v))
	return fallback
}

func getenvList(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
