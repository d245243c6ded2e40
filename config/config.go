package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		// A missing .env is fine; real environments set variables directly
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type Config struct {
	GoEnv string `env:"GO_ENV" envDefault:"development"`
	Port  int    `env:"PORT" envDefault:"8080"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"100"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	Database DatabaseConfig `envPrefix:"DB_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Storage  StorageConfig  `envPrefix:"STORAGE_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	CORS     CORSConfig     `envPrefix:"CORS_"`
	Auth     AuthConfig     `envPrefix:"AUTH_"`
	Seed     SeedConfig     `envPrefix:"SEED_"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"postgres"` // postgres or sqlite
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            string        `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER_NAME"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME" envDefault:"marketplace"`
	SSLMode         string        `env:"SSL_MODE" envDefault:"disable"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"marketplace.db"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"100"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
}

type JWTConfig struct {
	Secret        string        `env:"SECRET" envDefault:"change-me-in-production"`
	Issuer        string        `env:"ISSUER" envDefault:"marketplace-api"`
	Expiry        time.Duration `env:"EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"REFRESH_EXPIRY" envDefault:"168h"`
}

type RedisConfig struct {
	URL string `env:"URL"` // empty disables brute-force protection
}

type StorageConfig struct {
	Driver    string `env:"DRIVER" envDefault:"local"` // local or s3
	LocalPath string `env:"LOCAL_PATH" envDefault:"./uploads"`
	BaseURL   string `env:"BASE_URL" envDefault:"/uploads"`
	Bucket    string `env:"S3_BUCKET"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"S3_ENDPOINT"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	CDNURL    string `env:"S3_CDN_URL"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Dir    string `env:"DIR"` // empty logs to stdout only
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

type CORSConfig struct {
	AllowOrigins string `env:"ALLOW_ORIGINS" envDefault:"*"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`
}

type SeedConfig struct {
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// IsProduction reports whether the process runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func Get() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
