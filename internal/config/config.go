package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is everything the process reads from the environment. Backend picks
// the catalog persistence flavor: "postgres" needs a reachable database,
// "memory" runs off the seeded catalog.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	Backend string `env:"BACKEND" envDefault:"memory"`

	DBDSN       string `env:"DB_DSN"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName      string `env:"DB_NAME" envDefault:"glamours"`
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	StorageDir  string `env:"STORAGE_DIR" envDefault:"uploads"`
	SessionKey  string `env:"SESSION_KEY"`
	AdminUser   string `env:"ADMIN_USER"`
	AdminPass   string `env:"ADMIN_PASSWORD"`
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	GoogleID    string `env:"GOOGLE_CLIENT_ID"`
	GoogleSecr  string `env:"GOOGLE_CLIENT_SECRET"`
	AdminEmails string `env:"ADMIN_ALLOWED_EMAILS"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DBDSN) == "" {
		cfg.DBDSN = "host=" + cfg.DBHost + " user=" + cfg.DBUser + " password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName + " port=" + cfg.DBPort + " sslmode=" + cfg.DBSSLMode
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	e := strings.ToLower(c.AppEnv)
	return e == "" || e == "development" || e == "dev"
}

// AllowedEmails parses the comma-separated admin allow-list used by the
// Google login flow.
func (c *Config) AllowedEmails() map[string]struct{} {
	allowed := map[string]struct{}{}
	for _, e := range strings.Split(c.AdminEmails, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allowed[e] = struct{}{}
		}
	}
	return allowed
}
