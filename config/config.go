package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is read once at startup and passed explicitly; nothing here is
// mutated after LoadConfig returns.
type Config struct {
	Env       string // "development" or "production"; drives cookie flags
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret []byte
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
}

// IsProduction reports whether production cookie flags (Secure,
// SameSite=None) should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LoadConfig reads configuration from the environment, optionally seeded
// from a .env file. The signing secret and the connection string are
// required; startup fails loudly without them.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Env = os.Getenv("ENV")
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}

	cfg.MongoDB = os.Getenv("MONGO_DB")
	if cfg.MongoDB == "" {
		cfg.MongoDB = "blog"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWTSecret = []byte(secret)

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")

	return cfg, nil
}
