package review

import (
	"shifttrack/internal/middleware"
	"shifttrack/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	sessions middleware.SessionChecker,
) {
	rev := r.Group("/review")
	rev.Use(middleware.Auth(jwtSecret, sessions))
	{
		rev.GET("/entries", middleware.RBACAuthorize(rbacService, "review", "read"), h.List)
		rev.POST("/entries/:id/approve", middleware.RBACAuthorize(rbacService, "review", "approve"), h.Approve)
		rev.GET("/export", middleware.RBACAuthorize(rbacService, "review", "export"), h.ExportCSV)
		rev.GET("/export.xlsx", middleware.RBACAuthorize(rbacService, "review", "export"), h.ExportXLSX)
	}
}
