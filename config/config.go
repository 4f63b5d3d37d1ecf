package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Media    MediaConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Links    LinksConfig
	Logging  LoggingConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	GracefulStop time.Duration
}

// StoreConfig selects the record backend: "rest" talks to the content API,
// "sql" goes through gorm, "memory" keeps everything in process.
type StoreConfig struct {
	Driver  string
	BaseURL string
	Token   string
	PerPage int
	Timeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	DSN             string
	AutoMigrate     bool
	Seed            bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type MediaConfig struct {
	Driver      string
	UploadDir   string
	PublicPath  string
	MaxFileSize int64
	S3          S3Config
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
	PathStyle bool
}

type AuthConfig struct {
	ManagerPassword string
	SessionSecret   string
	SessionTTL      time.Duration
	CookieName      string
	CookieSecure    bool
}

type CacheConfig struct {
	StaleTime          time.Duration
	QueryRetries       int
	QueryRetryBase     time.Duration
	QueryRetryMax      time.Duration
	MutationRetries    int
	MutationRetryDelay time.Duration
	GCTime             time.Duration
}

type LinksConfig struct {
	PublicBaseURL string
}

type LoggingConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type SecurityConfig struct {
	CorsOrigins        []string
	RateLimitEnabled   bool
	RateLimitPerMinute int
	RateLimitBurstSize int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println(".env not found, continuing with environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         EnvOrDefault("PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 20*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			GracefulStop: getEnvDuration("SERVER_GRACEFUL_STOP", 15*time.Second),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(EnvOrDefault("STORE_DRIVER", "sql")),
			BaseURL: strings.TrimRight(EnvOrDefault("STORE_BASE_URL", ""), "/"),
			Token:   EnvOrDefault("STORE_TOKEN", ""),
			PerPage: getEnvInt("STORE_PER_PAGE", 200),
			Timeout: getEnvDuration("STORE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(EnvOrDefault("DB_DRIVER", "postgres")),
			DSN:             EnvOrDefault("DB_DSN", ""),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
			Seed:            getEnvBool("DB_SEED", false),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			LogLevel:        EnvOrDefault("DB_LOG_LEVEL", "warn"),
		},
		Media: MediaConfig{
			Driver:      strings.ToLower(EnvOrDefault("MEDIA_DRIVER", "local")),
			UploadDir:   EnvOrDefault("UPLOAD_DIR", "./uploads"),
			PublicPath:  EnvOrDefault("UPLOAD_PUBLIC_PATH", "/uploads"),
			MaxFileSize: int64(getEnvInt("MEDIA_MAX_FILE_MB", 50)) << 20,
			S3: S3Config{
				Endpoint:  EnvOrDefault("S3_ENDPOINT", ""),
				Region:    EnvOrDefault("S3_REGION", "auto"),
				Bucket:    EnvOrDefault("S3_BUCKET", ""),
				AccessKey: EnvOrDefault("S3_ACCESS_KEY_ID", ""),
				SecretKey: EnvOrDefault("S3_SECRET_ACCESS_KEY", ""),
				PublicURL: strings.TrimRight(EnvOrDefault("S3_PUBLIC_URL", ""), "/"),
				PathStyle: getEnvBool("S3_PATH_STYLE", false),
			},
		},
		Auth: AuthConfig{
			ManagerPassword: EnvOrDefault("MANAGER_PASSWORD", ""),
			SessionSecret:   EnvOrDefault("SESSION_SECRET", ""),
			SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieName:      EnvOrDefault("SESSION_COOKIE_NAME", "checkin_manager"),
			CookieSecure:    getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Cache: CacheConfig{
			StaleTime:          getEnvDuration("CACHE_STALE_TIME", 5*time.Minute),
			QueryRetries:       getEnvInt("CACHE_QUERY_RETRIES", 3),
			QueryRetryBase:     getEnvDuration("CACHE_QUERY_RETRY_BASE", time.Second),
			QueryRetryMax:      getEnvDuration("CACHE_QUERY_RETRY_MAX", 30*time.Second),
			MutationRetries:    getEnvInt("CACHE_MUTATION_RETRIES", 2),
			MutationRetryDelay: getEnvDuration("CACHE_MUTATION_RETRY_DELAY", time.Second),
			GCTime:             getEnvDuration("CACHE_GC_TIME", 30*time.Minute),
		},
		Links: LinksConfig{
			PublicBaseURL: strings.TrimRight(EnvOrDefault("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		},
		Logging: LoggingConfig{
			Level:      logLevel(),
			Format:     EnvOrDefault("LOG_FORMAT", "text"),
			Output:     EnvOrDefault("LOG_OUTPUT", "stdout"),
			FilePath:   EnvOrDefault("LOG_FILE_PATH", "logs/checkin-guide.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 28),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Security: SecurityConfig{
			CorsOrigins:        ParseList(os.Getenv("CORS_ORIGINS")),
			RateLimitEnabled:   getEnvBool("RATE_LIMIT_ENABLED", false),
			RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
			RateLimitBurstSize: getEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Auth.ManagerPassword == "" {
		return fmt.Errorf("MANAGER_PASSWORD is required")
	}
	if cfg.Auth.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	switch cfg.Store.Driver {
	case "rest":
		if cfg.Store.BaseURL == "" {
			return fmt.Errorf("STORE_BASE_URL is required when STORE_DRIVER=rest")
		}
	case "sql", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	switch cfg.Media.Driver {
	case "local":
	case "s3":
		if cfg.Media.S3.Bucket == "" || cfg.Media.S3.PublicURL == "" {
			return fmt.Errorf("S3_BUCKET and S3_PUBLIC_URL are required when MEDIA_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.Media.Driver)
	}
	return nil
}

// logLevel lets DEBUG=true win over LOG_LEVEL.
func logLevel() string {
	if getEnvBool("DEBUG", false) {
		return "debug"
	}
	return EnvOrDefault("LOG_LEVEL", "info")
}

// ParseList splits a comma separated value, dropping blanks. An empty input
// yields the wildcard origin.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return []string{"*"}
	}
	return items
}

func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
