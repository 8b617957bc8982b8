package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"crudgen/internal/api"
	"crudgen/internal/config"
	"crudgen/internal/django"
	"crudgen/internal/logging"
	"crudgen/internal/output"
	"crudgen/internal/reference"
	"crudgen/internal/scaffold"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "crudgen:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Конфиг: файл -> .env -> ENV -> флаги
	configPath := os.Getenv("CRUDGEN_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	config.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.Init(os.Stderr, level, cfg.LogFormat)
	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Дополнительные типы полей
	catalog, err := reference.LoadTypeCatalog(cfg.TypesDir)
	if err != nil {
		return fmt.Errorf("load type catalog: %w", err)
	}
	logger.Info("type catalog loaded", slog.String("dir", cfg.TypesDir), slog.Int("types", len(catalog)))
	if cfg.FixSaveCall {
		logger.Warn("views.py will use obj.save(); output differs from the historical generator")
	}

	// 3. Генератор
	gen := &scaffold.Generator{
		Store:  output.NewLocalStore(cfg.OutputDir),
		Mapper: django.NewMapper(catalog),
		Views:  django.ViewOptions{FixSaveCall: cfg.FixSaveCall},
		Logger: logger,
	}

	// 4. HTTP
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.RunServer(ctx, ":"+cfg.Port, api.NewRouter(gen, logger), logger)
}
