// Package config читает настройки сервиса из окружения и файла .env.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	SourceHTTP = "http"
	SourceDB   = "db"
	SourceFile = "file"
)

type Source struct {
	Kind          string
	URL           string
	Authorization string
	File          string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN собирает строку подключения к postgres.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Auth struct {
	AccessSecret []byte
	AccessTTL    time.Duration
	User         string
	PasswordHash string
}

type Config struct {
	HTTPAddr    string
	Source      Source
	Database    Database
	Redis       Redis
	CacheTTL    time.Duration
	RefreshCron string
	Auth        Auth
}

// LoadEnv подгружает .env, если окружение не подготовлено заранее (ENV_CHEK).
func LoadEnv(paths ...string) {
	if os.Getenv("ENV_CHEK") != "" {
		return
	}
	log.Println("Подключение к .env")
	if err := godotenv.Load(paths...); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}
}

// Load собирает конфигурацию из переменных окружения.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		Source: Source{
			Kind:          getenv("SOURCE_KIND", SourceHTTP),
			URL:           os.Getenv("SOURCE_URL"),
			Authorization: os.Getenv("SOURCE_AUTH"),
			File:          os.Getenv("SOURCE_FILE"),
		},
		Database: Database{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		RefreshCron: getenv("REFRESH_CRON", "0 */10 * * * *"),
		Auth: Auth{
			AccessSecret: []byte(os.Getenv("JWT_ACCESS_SECRET")),
			User:         getenv("BOARD_USER", "admin"),
			PasswordHash: os.Getenv("BOARD_PASSWORD_HASH"),
		},
	}

	var err error
	if cfg.Redis.DB, err = atoi("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = duration("CACHE_TTL", time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Auth.AccessTTL, err = duration("JWT_ACCESS_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Source.Kind {
	case SourceHTTP:
		if c.Source.URL == "" {
			return fmt.Errorf("%w: SOURCE_URL обязателен для источника http", ErrInvalidConfig)
		}
	case SourceFile:
		if c.Source.File == "" {
			return fmt.Errorf("%w: SOURCE_FILE обязателен для источника file", ErrInvalidConfig)
		}
	case SourceDB:
	default:
		return fmt.Errorf("%w: неизвестный SOURCE_KIND %q", ErrInvalidConfig, c.Source.Kind)
	}
	if len(c.Auth.AccessSecret) == 0 {
		return fmt.Errorf("%w: JWT_ACCESS_SECRET не задан", ErrInvalidConfig)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func atoi(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return n, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	return d, nil
}
