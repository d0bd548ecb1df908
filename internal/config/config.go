// Package config описывает настройки сервиса и их загрузку.
//
// Настройки читаются из YAML-файла (путь в CONFIG_PATH), если он задан,
// а переменные окружения всегда имеют приоритет над файлом.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения запуска.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DevJWTSecret используется только в окружении local, если JWT_SECRET не задан.
// В остальных окружениях пустой секрет — ошибка запуска.
const DevJWTSecret = "local-development-only-jwt-secret-do-not-deploy"

// MinJWTSecretLength — минимальная длина секрета вне окружения local.
const MinJWTSecretLength = 32

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Password                `yaml:"password"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`

	// InsecureDevSecret выставляется, если был подставлен DevJWTSecret.
	InsecureDevSecret bool `yaml:"-"`
}

// HTTPServer настройки HTTP-сервера.
type HTTPServer struct {
	AddressHTTP     string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":3000"`
	TimeoutHTTP     time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// JWTToken настройки подписи токенов.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// Password настройки хеширования паролей.
type Password struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// RedisConnection настройки кеша задач. Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis  string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	PasswordRedis string        `yaml:"password" env:"REDIS_PASSWORD"`
	DBRedis       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	TaskCacheTTL  time.Duration `yaml:"task_cache_ttl" env:"TASK_CACHE_TTL" env-default:"1h"`
}

// RabbitMQ настройки публикации событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitMQURL      string `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQExchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"zadania"`
}

// Load читает конфигурацию и проверяет её.
func Load() (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("%s: config file %s: %w", op, configPath, err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.StorageConnectionString == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}

	if c.JWTSecretKey == "" {
		if c.Env != EnvLocal {
			return errors.New("JWT_SECRET must be set outside local environment")
		}
		c.JWTSecretKey = DevJWTSecret
		c.InsecureDevSecret = true
	}
	if c.Env != EnvLocal && len(c.JWTSecretKey) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}
	return nil
}

// CacheEnabled сообщает, настроен ли Redis.
func (c *Config) CacheEnabled() bool {
	return c.AddressRedis != ""
}

// EventsEnabled сообщает, настроен ли RabbitMQ.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  ShutdownTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Password:\n"+
			"  BcryptCost: %d\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"  TaskCacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"  Exchange: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.ShutdownTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.BcryptCost,
		c.AddressRedis,
		mask(c.PasswordRedis),
		c.DBRedis,
		c.TaskCacheTTL,
		mask(c.RabbitMQURL),
		c.RabbitMQExchange,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
