package shiftentry

import (
	"shifttrack/internal/middleware"
	"shifttrack/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	sessions middleware.SessionChecker,
	rdb *redis.Client,
) {
	entries := r.Group("/entries")
	entries.Use(middleware.Auth(jwtSecret, sessions))
	{
		entries.GET("", middleware.RBACAuthorize(rbacService, "entries", "read"), h.GetMine)
		entries.GET("/dates", middleware.RBACAuthorize(rbacService, "entries", "read"), h.GetTakenDates)
		entries.GET("/calendar.ics", middleware.RBACAuthorize(rbacService, "entries", "read"), h.GetCalendar)
		entries.POST("", middleware.RBACAuthorize(rbacService, "entries", "create"), middleware.Idempotency(rdb), h.Submit)

		wizard := entries.Group("/wizard")
		{
			wizard.GET("", middleware.RBACAuthorize(rbacService, "entries", "read"), h.GetWizard)
			wizard.POST("/date", middleware.RBACAuthorize(rbacService, "entries", "create"), h.SelectDate)
			wizard.POST("/change-date", middleware.RBACAuthorize(rbacService, "entries", "create"), h.ChangeDate)
		}
	}
}
