package main

// @title Infrastructure Search API
// @version 1.0.0
// @description Сервис поиска спортивных объектов. Предоставляет API для поиска по тексту и фильтрам, проверки доступности по расписанию, сортировки по расстоянию и выборки объектов для карты.
// @description
// @description Основные возможности:
// @description - Каталог значений фильтров (помещения, оборудование, доступность)
// @description - Поиск с фильтрами по вместимости, датам и радиусу
// @description - Быстрый поиск по тексту
// @description - Объекты в видимой области карты

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/infrastructure-search/docs"
)

func main() {
	ctx := withSignalCancel(context.Background())
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if err != context.Canceled {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	serve := newServeCommand(&configPath)
	root := &cobra.Command{
		Use:           "infrasearch",
		Short:         "Infrastructure search API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to env config file")
	root.AddCommand(serve, newMigrateCommand(&configPath))
	return root
}

func withSignalCancel(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(signals)
	}()
	return ctx
}
