package auth

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
	a := r.Group("/auth")
	{
		// Login endpoints are public and throttled per IP.
		loginLimit := middleware.RateLimitByIP(rate.Limit(2), 5)
		a.POST("/employee/sign-in", loginLimit, h.EmployeeSignIn)
		a.POST("/manager/login", loginLimit, h.ManagerLogin)
		a.POST("/hr/login", loginLimit, h.HRLogin)
		a.POST("/admin/login", loginLimit, h.AdminLogin)

		authed := a.Group("")
		authed.Use(middleware.Auth(jwtSecret, sessions))
		{
			authed.POST("/switch-view", h.SwitchView)
			authed.POST("/logout", h.Logout)
			authed.POST("/change-password", h.ChangePassword)
			authed.PUT("/credentials/:id", middleware.RBACAuthorize(rbacService, "credentials", "update"), h.SetEmployeePassword)
		}
	}
}
