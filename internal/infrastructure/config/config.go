package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// minJWTKeyLength matches the HS256 key size.
const minJWTKeyLength = 32

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT    JWTConfig
	Access AccessConfig
	Login  LoginConfig
	Seed   SeedConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type JWTConfig struct {
	Key      string `env:"JWT_KEY,      required"`
	Issuer   string `env:"JWT_ISSUER,   required"`
	Audience string `env:"JWT_AUDIENCE, required"`
}

type AccessConfig struct {
	// DenyUnknownCaller rejects valid tokens whose account no longer exists.
	DenyUnknownCaller bool `env:"ACCESS_DENY_UNKNOWN_CALLER, default=false"`
}

type LoginConfig struct {
	MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=10"`
	LockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
	BcryptCost    int           `env:"BCRYPT_COST,          default=10"`
}

type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=Admin@12345"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads an optional .env file, then the environment. Missing JWT
// settings are an error.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWT.Key) < minJWTKeyLength {
		return fmt.Errorf("config: JWT_KEY must be at least %d bytes", minJWTKeyLength)
	}
	if c.Seed.AdminEmail == "" || c.Seed.AdminPassword == "" {
		return errors.New("config: SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must not be empty")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
