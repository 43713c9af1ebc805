// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	RateLimit               `yaml:"rate_limit"`
	FileStorage             `yaml:"file_storage"`
	RabbitMQ                `yaml:"rabbitmq"`
	Risk                    `yaml:"risk"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// RateLimit структура для настройки лимита запросов на пользователя.
// UseRedis переключает хранилище окон с памяти процесса на redis,
// чтобы лимит действовал на все экземпляры сервиса сразу.
type RateLimit struct {
	MaxRequests int           `yaml:"max_requests" env-default:"100"`
	Window      time.Duration `yaml:"window" env-default:"15m"`
	UseRedis    bool          `yaml:"use_redis" env-default:"false"`
}

// FileStorage структура для настройки блоб-хранилища документов.
// Backend может быть local или s3.
type FileStorage struct {
	Backend   string `yaml:"backend" env-default:"local"`
	LocalPath string `yaml:"local_path" env-default:"./uploads"`
	S3        S3     `yaml:"s3"`
}

// S3 параметры S3-совместимого хранилища.
type S3 struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
	KeyID    string `yaml:"key_id" env:"S3_KEY_ID"`
	Secret   string `yaml:"secret" env:"S3_SECRET"`
}

// RabbitMQ параметры подключения к брокеру сообщений.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"legal-assistant"`
	Queue    string `yaml:"queue" env-default:"assistant-jobs"`
}

// Risk параметры движка оценки рисков. Strict включает отказ
// при неизвестных ключах факторов вместо их молчаливого пропуска.
type Risk struct {
	Strict bool `yaml:"strict" env-default:"false"`
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// IsProduction сообщает, работает ли сервис в продуктивном режиме.
// В продуктивном режиме детали внутренних ошибок наружу не отдаются.
func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}
