package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreGorm     = "gorm"
	StoreMemory   = "memory"

	BlobGCS    = "gcs"
	BlobMemory = "memory"
)

// Config holds application configuration loaded from environment variables.
// Defaults target local development.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"customer-directory"`
	Env      string `env:"APP_ENV" envDefault:"development"` // development, staging, production
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"LOG_LEVEL"`

	// Record store: postgres (pgx), gorm or memory
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`

	// Database
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432"`
	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName        string        `env:"DB_NAME" envDefault:"customers"`
	DBSSLMode     string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns    int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns    int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MigrationsDir string        `env:"MIGRATIONS_DIR" envDefault:"db/migrations"`

	// Redis read-through cache; empty address disables it
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Blob store: gcs or memory
	BlobBackend            string `env:"BLOB_BACKEND" envDefault:"gcs"`
	GCSBucket              string `env:"GCS_BUCKET" envDefault:"customer-profile-images"`
	GCSCredentialsJSONPath string `env:"GCS_CREDENTIALS_JSON"` // optional; ADC when empty
	MaxImageBytes          int64  `env:"MAX_IMAGE_BYTES" envDefault:"5242880"`

	// JWT
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"devsecret"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"360h"`
	JWTIssuer  string        `env:"JWT_ISSUER" envDefault:"customer-directory"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// CORS, comma-separated
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	// Elasticsearch; empty addresses disable search
	ElasticsearchAddrs string `env:"ELASTICSEARCH_ADDRS"`
	ElasticsearchUser  string `env:"ELASTICSEARCH_USERNAME"`
	ElasticsearchPass  string `env:"ELASTICSEARCH_PASSWORD"`
	ESCustomersIndex   string `env:"ES_CUSTOMERS_INDEX" envDefault:"customers"`

	// RabbitMQ; empty URL disables welcome emails
	RabbitMQURL        string `env:"RABBITMQ_URL"`
	RabbitMQEmailQueue string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"emails"`

	// Mailgun
	MailgunDomain  string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey  string `env:"MAILGUN_API_KEY"`
	MailgunSender  string `env:"MAILGUN_SENDER"`
	MailgunAPIBase string `env:"MAILGUN_API_BASE"` // empty keeps the US endpoint

	// Shown in emails
	CompanyName string `env:"COMPANY_NAME"`
	SupportURL  string `env:"SUPPORT_URL"`

	MailSendEnabled bool `env:"MAIL_SEND_ENABLED" envDefault:"true"`
	MetricsEnabled  bool `env:"METRICS_ENABLED" envDefault:"true"`
	HTTPLogEnabled  bool `env:"HTTP_LOG_ENABLED" envDefault:"false"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case StorePostgres, StoreGorm, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of postgres, gorm, memory; got %q", c.StoreBackend))
	}
	switch c.BlobBackend {
	case BlobGCS, BlobMemory:
	default:
		errs = append(errs, fmt.Errorf("BLOB_BACKEND must be one of gcs, memory; got %q", c.BlobBackend))
	}
	if c.BlobBackend == BlobGCS && c.GCSBucket == "" {
		errs = append(errs, errors.New("GCS_BUCKET is required when BLOB_BACKEND=gcs"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() && c.JWTSecret == "devsecret" {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
