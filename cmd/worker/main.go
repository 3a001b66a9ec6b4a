package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hubb-assist/internal/app"
	"hubb-assist/internal/config"
	"hubb-assist/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(&cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
