package employee

import (
	"shifttrack/internal/middleware"
	"shifttrack/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	sessions middleware.SessionChecker,
) {
	registrations := r.Group("/registrations")
	{
		// Public: self-registration and status polling, throttled per IP.
		registrations.POST("", middleware.RateLimitByIP(rate.Limit(1), 5), h.Register)
		registrations.GET("/:id/status", h.CheckStatus)

		// Admin-only approval workflow.
		authed := registrations.Group("")
		authed.Use(middleware.Auth(jwtSecret, sessions))
		{
			authed.GET("/pending", middleware.RBACAuthorize(rbacService, "registrations", "read"), h.GetPending)
			authed.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "registrations", "approve"), h.Approve)
			authed.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "registrations", "reject"), h.Reject)
		}
	}

	directory := r.Group("/directory")
	directory.Use(middleware.Auth(jwtSecret, sessions))
	{
		directory.GET("", middleware.RBACAuthorize(rbacService, "directory", "read"), h.GetDirectory)
		directory.GET("/options", middleware.RBACAuthorize(rbacService, "directory", "read"), h.GetOptions)
	}
}
