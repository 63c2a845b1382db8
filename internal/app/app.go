package app

import (
	"context"

	"shifttrack/internal/config"
	"shifttrack/internal/credentials"
	"shifttrack/internal/employee"
	"shifttrack/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates and seeds the database,
// and mounts every module's routes on the router.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := connection.RunMigrations(sqlDB); err != nil {
		return err
	}

	// Seeding runs right after migrations so the managers exist before the
	// first login attempt.
	if err := employee.SeedManagers(
		context.Background(),
		employee.NewRepository(gormDB),
		credentials.NewStore(gormDB),
	); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5)
	if err != nil {
		return err
	}

	if len(cfg.Server.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
			AllowCredentials: true,
		}))
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		return err
	}

	zap.L().Info("application built")
	return nil
}
