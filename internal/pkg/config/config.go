package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// FailFast exits when a store is unreachable at startup instead of
	// serving and failing requests individually.
	FailFast bool   `env:"FAIL_FAST, default=false"`
	Timezone string `env:"TIMEZONE,  default=Asia/Ho_Chi_Minh"`

	RecordStore      string `env:"RECORD_STORE,      default=mongo"`
	CredentialScheme string `env:"CREDENTIAL_SCHEME, default=plain"`
	JWTSecret        string `env:"JWT_SECRET"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
	Admin   AdminConfig
	Seed    SeedConfig
	Assets  AssetsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URL, default=mongodb://127.0.0.1:27017"`
	Database string `env:"MONGO_DB,  default=merryweather"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SessionConfig struct {
	// Store is "memory" or "redis".
	Store  string        `env:"SESSION_STORE,  default=memory"`
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	Cookie string        `env:"SESSION_COOKIE, default=merryweather"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL, default=admin@merryweather.com"`
	Password string `env:"ADMIN_PASS,  default=changeme"`
	Name     string `env:"ADMIN_NAME,  default=Administrator"`
}

type SeedConfig struct {
	Enabled   bool `env:"SEED_ENABLED,   default=true"`
	Threshold int  `env:"SEED_THRESHOLD, default=2"`
}

type AssetsConfig struct {
	LogoURL       string `env:"LOGO_URL, default=/assets/logo.png"`
	BackgroundURL string `env:"BG_URL,   default=/assets/bg.jpg"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom resolves the configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	switch cfg.RecordStore {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("RECORD_STORE must be mongo or memory, got %q", cfg.RecordStore)
	}
	switch cfg.Session.Store {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("SESSION_STORE must be memory or redis, got %q", cfg.Session.Store)
	}
	return &cfg, nil
}
