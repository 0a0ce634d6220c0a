package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"

	"tripboard/internal/auth"
	"tripboard/internal/presenter"
	"tripboard/internal/source"
	"tripboard/internal/store"
)

func main() {
	file := pflag.String("file", "", "YAML-файл с точками, пунктами назначения и предложениями")
	url := pflag.String("url", "", "Базовый адрес REST API маршрута")
	authorization := pflag.String("auth", "", "Значение заголовка Authorization для API")
	info := pflag.Bool("info", false, "Вывести сводку маршрута вместо списка точек")
	hashPassword := pflag.String("hash-password", "", "Вывести bcrypt-хэш пароля для BOARD_PASSWORD_HASH")
	timeout := pflag.Duration("timeout", 30*time.Second, "Таймаут загрузки")
	pflag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Fatal("Ошибка хэширования пароля... ", err.Error())
		}
		fmt.Println(hash)
		return
	}

	var src store.Source
	switch {
	case *file != "":
		src = source.NewFile(*file)
	case *url != "":
		src = source.NewHTTP(source.HTTPConfig{BaseURL: *url, Authorization: *authorization})
	default:
		fmt.Fprintln(os.Stderr, "Нужен --file или --url")
		pflag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	st := store.New(src, nil)
	st.Load(ctx)

	var out any = st.Projection()
	if *info {
		out = presenter.BuildTripInfo(st.Projection())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal("Ошибка вывода... ", err.Error())
	}
}
