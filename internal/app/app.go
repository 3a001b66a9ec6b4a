package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hubb-assist/internal/config"
	"hubb-assist/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module's routes
// on the given engine.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	logger := zap.L()

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, cfg, gormDB, rdb, logger)
}
