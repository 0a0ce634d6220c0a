package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tripboard/internal/auth"
	"tripboard/internal/config"
	"tripboard/internal/handlers"
	"tripboard/internal/presenter"
	"tripboard/internal/source"
	"tripboard/internal/storage"
	"tripboard/internal/store"
	"tripboard/internal/tasks"
	"tripboard/internal/ws"
)

// @Title						Доска маршрута путешествия
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Ошибка конфигурации... ", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, refresher, err := buildSource(ctx, cfg)
	if err != nil {
		log.Fatal("Ошибка подключения источника... ", err.Error())
	}

	if refresher != nil {
		scheduler, err := tasks.InitScheduler(cfg.RefreshCron, refresher)
		if err != nil {
			log.Fatal("Ошибка запуска планировщика... ", err.Error())
		}
		defer scheduler.Stop()
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	st := store.New(src, nil)
	st.Notifier().Subscribe(hub.Notify)

	board := presenter.NewBoard(presenter.BoardConfig{Store: st})
	board.Init(ctx)
	session := handlers.NewSession(board, st)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.Login(cfg.Auth))
	}

	apiGroup := r.Group("/api", auth.AuthMiddleware(cfg.Auth.AccessSecret))
	{
		session.Register(apiGroup)
		apiGroup.GET("/board/ws", hub.ServeWS)
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}

// buildSource выбирает источник данных. Для http дополнительно возвращается
// объект, кэш которого обновляет планировщик.
func buildSource(ctx context.Context, cfg config.Config) (store.Source, tasks.Refresher, error) {
	switch cfg.Source.Kind {
	case config.SourceDB:
		if err := storage.ConnectDatabase(cfg.Database); err != nil {
			return nil, nil, err
		}
		if err := source.Migrate(storage.DB); err != nil {
			return nil, nil, err
		}
		return source.NewDB(storage.DB), nil, nil
	case config.SourceFile:
		return source.NewFile(cfg.Source.File), nil, nil
	}

	httpCfg := source.HTTPConfig{
		BaseURL:       cfg.Source.URL,
		Authorization: cfg.Source.Authorization,
		TTL:           cfg.CacheTTL,
	}
	if cfg.Redis.Addr != "" {
		if err := storage.InitRedis(ctx, cfg.Redis); err != nil {
			log.Println("Redis недоступен, кэш отключён:", err)
		} else {
			httpCfg.Cache = source.NewRedisCache(storage.RedisClient)
		}
	}
	src := source.NewHTTP(httpCfg)
	return src, src, nil
}
