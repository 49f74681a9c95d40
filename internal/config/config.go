package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const minSecretLength = 16

type AppConfig struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	DatabaseURL       string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns        int32         `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"5m"`

	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer   string        `envconfig:"JWT_ISSUER" default:"employee-directory"`
	JWTAudience string        `envconfig:"JWT_AUDIENCE" default:"employee-directory"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`
	BcryptCost  int           `envconfig:"BCRYPT_COST" default:"10"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	RabbitMQURL   string `envconfig:"RABBITMQ_URL"`
	RabbitMQQueue string `envconfig:"RABBITMQ_QUEUE" default:"employee_events"`

	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"5s"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout       time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads .env when present and then the process environment.
func Load() (AppConfig, error) {
	_ = godotenv.Load() // load .env if present

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c AppConfig) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", minSecretLength)
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return errors.New("config: server timeouts cannot be negative")
	}
	if c.DBMinConns > c.DBMaxConns {
		return errors.New("config: DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	return nil
}

func (c AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

// EventsEnabled reports whether change events should go to RabbitMQ.
func (c AppConfig) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
