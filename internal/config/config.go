// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string  `yaml:"env" env:"ENV" env-default:"local"`
	Storage         Storage `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	JWTToken        `yaml:"jwttoken"`
	Accounts        []Account `yaml:"accounts"`
	RabbitMQ        RabbitMQ  `yaml:"rabbitmq"`
	Reminder        Reminder  `yaml:"reminder"`
	RateLimit       RateLimit `yaml:"rate_limit"`
}

// Storage структура для выбора и настройки хранилища состояния
type Storage struct {
	Driver      string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Key         string        `yaml:"key" env-default:"pandda_mockdb_v1"`
	SessionKey  string        `yaml:"session_key" env-default:"pandda_session_v1"`
	Latency     time.Duration `yaml:"latency" env-default:"0s"`
	FileDir     string        `yaml:"file_dir" env-default:"./data"`
	PostgresDSN string        `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	SQLitePath  string        `yaml:"sqlite_path" env-default:"./data/console.db"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном сессии
type JWTToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-default:"pandda-dev-secret"`
	// TokenTTL 0 выпускает бессрочные токены, сессия живёт до выхода.
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"0s"`
}

// Account учётная запись из списка допуска
type Account struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// RabbitMQ настройки публикации событий изменений и напоминаний
type RabbitMQ struct {
	Enabled    bool          `yaml:"enabled"`
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"console.changes"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Reminder настройки планировщика напоминаний о продлении
type Reminder struct {
	Enabled  bool          `yaml:"enabled"`
	Schedule string        `yaml:"schedule" env-default:"@every 12h"`
	Window   time.Duration `yaml:"window" env-default:"24h"`
}

// RateLimit настройки ограничителя запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// DefaultAccounts две учётные записи прототипа: администратор и обычный пользователь.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "u-admin", Email: "admin@pandda.test", Password: "admin", Role: "admin"},
		{ID: "u-common", Email: "user@pandda.test", Password: "user", Role: "common"},
	}
}

// Load читает конфиг из файла, переменные окружения имеют приоритет.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(cfg.Accounts) == 0 {
		cfg.Accounts = DefaultAccounts()
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH (в том числе из .env)
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  Key: %s\n"+
			"  SessionKey: %s\n"+
			"  Latency: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Accounts: %d\n",
		c.Env,
		c.Storage.Driver,
		c.Storage.Key,
		c.Storage.SessionKey,
		c.Storage.Latency,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		len(c.Accounts),
	)
}
