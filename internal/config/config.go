// Package config предоставялет структуры и функции для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// minSecretKeyLength минимальная длина секрета для подписи токенов.
const minSecretKeyLength = 16

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	AllowStaffRegistration  bool   `yaml:"allow_staff_registration" env:"ALLOW_STAFF_REGISTRATION" env-default:"false"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Reminder                `yaml:"reminder"`
	SMTP                    `yaml:"smtp"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Chatbot                 `yaml:"chatbot"`
	Admin                   `yaml:"admin"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis  string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	PasswordRedis string        `yaml:"password" env:"REDIS_PASSWORD"`
	UserRedis     string        `yaml:"user"`
	DBRedis       int           `yaml:"db"`
	MaxRetries    int           `yaml:"max_retries" env-default:"3"`
	DialTimeout   time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis  time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ настройки подключения к брокеру для диспетчеризации экстренных вызовов.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	RabbitURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitRetries    int           `yaml:"retries" env-default:"5"`
	RabbitRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
	RabbitExchange   string        `yaml:"exchange" env-default:"careconnect"`
}

// Reminder настройки рассылки напоминаний о приемах. Работает только при
// настроенном брокере.
type Reminder struct {
	ReminderEnabled  bool          `yaml:"enabled" env:"REMINDER_ENABLED" env-default:"true"`
	ReminderInterval time.Duration `yaml:"interval" env-default:"12h"`
}

// SMTP почтовый сервер для рассылки напоминаний.
type SMTP struct {
	SMTPHost     string `yaml:"host" env:"SMTP_HOST" env-default:"localhost"`
	SMTPPort     string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser     string `yaml:"user" env:"SMTP_USER"`
	SMTPPass     string `yaml:"password" env:"SMTP_PASSWORD"`
	SMTPFrom     string `yaml:"from" env:"SMTP_FROM" env-default:"noreply@careconnect.local"`
	SMTPInsecure bool   `yaml:"insecure" env:"SMTP_INSECURE" env-default:"false"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
}

// Chatbot настройки шлюза к языковой модели.
type Chatbot struct {
	ChatAPIURL      string        `yaml:"api_url" env:"GEMINI_API_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	ChatAPIKey      string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	ChatModel       string        `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash-lite"`
	ChatTimeout     time.Duration `yaml:"timeout" env-default:"15s"`
	ChatMaxTokens   int           `yaml:"max_output_tokens" env-default:"300"`
	ChatTemperature float64       `yaml:"temperature" env-default:"0.7"`
	ChatRequireAuth bool          `yaml:"require_auth" env:"CHATBOT_REQUIRE_AUTH" env-default:"false"`
	ChatRateLimit   float64       `yaml:"rate_limit" env-default:"2"`
	ChatRateBurst   int           `yaml:"rate_burst" env-default:"5"`
	ChatHistoryTTL  time.Duration `yaml:"history_ttl" env-default:"24h"`
}

// Admin учетная запись администратора, создаваемая при старте.
// Пустой пароль отключает создание.
type Admin struct {
	AdminUsername string `yaml:"username" env:"ADMIN_USERNAME" env-default:"admin"`
	AdminEmail    string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@careconnect.local"`
	AdminPassword string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if len(c.JWTSecretKey) < minSecretKeyLength {
		return fmt.Errorf("jwt secret key must be at least %d characters", minSecretKeyLength)
	}
	if c.TokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if c.ChatTimeout <= 0 {
		return errors.New("chatbot timeout must be positive")
	}
	if c.ReminderEnabled && c.ReminderInterval <= 0 {
		return errors.New("reminder interval must be positive")
	}
	return nil
}

// ChatbotEnabled сообщает, настроен ли ключ внешней модели.
func (c *Config) ChatbotEnabled() bool {
	return c.ChatAPIKey != ""
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "******"
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  Password: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  URL: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"  TokenTTL: %s\n"+
			"Chatbot:\n"+
			"  Model: %s\n"+
			"  APIKey: %s\n"+
			"  Timeout: %s\n"+
			"  RequireAuth: %t\n"+
			"SMTP:\n"+
			"  Host: %s:%s\n"+
			"  Password: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressRedis,
		mask(c.PasswordRedis),
		c.DBRedis,
		mask(c.RabbitURL),
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.TokenTTL,
		c.ChatModel,
		mask(c.ChatAPIKey),
		c.ChatTimeout,
		c.ChatRequireAuth,
		c.SMTPHost,
		c.SMTPPort,
		mask(c.SMTPPass),
	)
}
