package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher перекачивает данные внешнего источника в кэш.
type Refresher interface {
	Refresh(ctx context.Context) error
}

const refreshTimeout = 30 * time.Second

// RefreshSourceCache обновляет кэш источника, чтобы следующая загрузка доски не ждала внешний API.
func RefreshSourceCache(refresher Refresher) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := refresher.Refresh(ctx); err != nil {
		log.Println("Ошибка обновления кэша источника:", err)
		return
	}
	log.Println("Кэш источника обновлён.")
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler(spec string, refresher Refresher) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(spec, func() { RefreshSourceCache(refresher) }); err != nil {
		return nil, fmt.Errorf("cron-задача RefreshSourceCache (%q): %w", spec, err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c, nil
}
