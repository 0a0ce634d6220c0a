package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripboard/internal/config"
)

var DB *gorm.DB

// ConnectDatabase открывает postgres для источника db.
func ConnectDatabase(cfg config.Database) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("подключение к базе данных: %w", err)
	}

	DB = db
	log.Println("Подключение к базе данных успешно!")
	return nil
}

var RedisClient *redis.Client

// InitRedis создаёт клиент Redis и проверяет соединение.
func InitRedis(ctx context.Context, cfg config.Redis) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("подключение к Redis %s: %w", cfg.Addr, err)
	}

	RedisClient = client
	log.Println("Redis подключен:", cfg.Addr)
	return nil
}
