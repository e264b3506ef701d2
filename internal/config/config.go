package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	CatalogBackendMongoDB   = "mongodb"
	CatalogBackendPostgREST = "postgrest"

	CartStorageMemory = "memory"
	CartStorageRedis  = "redis"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Cart     CartConfig     `envPrefix:"CART_"`
	Checkout CheckoutConfig `envPrefix:"CHECKOUT_"`
	Listing  ListingConfig  `envPrefix:"LISTING_"`
	Log      LogConfig      `envPrefix:"LOG_"`
}

type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	Host           string   `env:"HOST" envDefault:"0.0.0.0"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"^https?://localhost(:[0-9]+)?$"`
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type DatabaseConfig struct {
	Hosts    []string      `env:"HOSTS" envDefault:"localhost:27017"`
	Direct   bool          `env:"DIRECT" envDefault:"true"`
	Username string        `env:"USERNAME"`
	Password string        `env:"PASSWORD"`
	AuthDB   string        `env:"AUTH_DB" envDefault:"admin"`
	Database string        `env:"DATABASE" envDefault:"storefront"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	URL          string        `env:"URL" envDefault:"redis://localhost:6379/0"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

type CatalogConfig struct {
	Backend        string        `env:"BACKEND" envDefault:"mongodb"`
	PostgRESTURL   string        `env:"POSTGREST_URL"`
	PostgRESTKey   string        `env:"POSTGREST_KEY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

type CartConfig struct {
	Storage      string        `env:"STORAGE" envDefault:"memory"`
	Namespace    string        `env:"NAMESPACE" envDefault:"storefront:cart"`
	IdleTTL      time.Duration `env:"IDLE_TTL" envDefault:"24h"`
	StorageTTL   time.Duration `env:"STORAGE_TTL" envDefault:"720h"`
	CookieSecret string        `env:"COOKIE_SECRET"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

type CheckoutConfig struct {
	WhatsAppPhone         string `env:"WHATSAPP_PHONE" envDefault:"918291821901"`
	BaseURL               string `env:"BASE_URL" envDefault:"https://wa.me"`
	StoreName             string `env:"STORE_NAME" envDefault:"Flexnex"`
	FreeShippingThreshold int64  `env:"FREE_SHIPPING_THRESHOLD" envDefault:"5000"`
	ShippingFee           int64  `env:"SHIPPING_FEE" envDefault:"100"`
}

type ListingConfig struct {
	PageSize int `env:"PAGE_SIZE" envDefault:"16"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Load reads a .env file from the working directory when present, then
// parses the environment. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Validate() error {
	switch c.Catalog.Backend {
	case CatalogBackendMongoDB:
	case CatalogBackendPostgREST:
		if c.Catalog.PostgRESTURL == "" {
			return fmt.Errorf("CATALOG_POSTGREST_URL is required for the postgrest backend")
		}
	default:
		return fmt.Errorf("unknown CATALOG_BACKEND %q", c.Catalog.Backend)
	}
	switch c.Cart.Storage {
	case CartStorageMemory, CartStorageRedis:
	default:
		return fmt.Errorf("unknown CART_STORAGE %q", c.Cart.Storage)
	}
	if c.Listing.PageSize < 1 {
		return fmt.Errorf("LISTING_PAGE_SIZE must be positive, got %d", c.Listing.PageSize)
	}
	return nil
}
