package app

import (
	"database/sql"
	"net/http"

	"shifttrack/internal/auth"
	"shifttrack/internal/config"
	"shifttrack/internal/credentials"
	"shifttrack/internal/employee"
	"shifttrack/internal/messaging/kafka"
	"shifttrack/internal/middleware"
	"shifttrack/internal/rbac"
	"shifttrack/internal/review"
	"shifttrack/internal/shiftentry"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories & stores ---
	employeeRepo := employee.NewRepository(gormDB)
	entryRepo := shiftentry.NewRepository(gormDB)
	credStore := credentials.NewStore(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	sessionStore := auth.NewSessionStore(rdb, cfg.Auth.SessionTTL)
	wizardStore := shiftentry.NewWizardStore(rdb)

	// --- RBAC core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(credStore, employeeRepo, sessionStore, wizardStore, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	employeeService := employee.NewService(db, employeeRepo, credStore, outboxRepo, sessionStore, rdb)
	entryService := shiftentry.NewService(entryRepo, employeeRepo, wizardStore)
	reviewService := review.NewService(db, entryRepo, employeeRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	entryHandler := shiftentry.NewHandlerWithRedis(entryService, rdb)
	reviewHandler := review.NewHandler(reviewService)

	// --- Routes ---
	secret := cfg.Auth.JWTSecret
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService, secret, sessionStore)
		employee.RegisterRoutes(api, employeeHandler, rbacService, secret, sessionStore)
		shiftentry.RegisterRoutes(api, entryHandler, rbacService, secret, sessionStore, rdb)
		review.RegisterRoutes(api, reviewHandler, rbacService, secret, sessionStore)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return nil
}
