package review

import (
	"fmt"
	"net/http"

	"shifttrack/internal/rbac"
	reviewerrors "shifttrack/internal/review/errors"
	"shifttrack/internal/shared/apperror"
	"shifttrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// scopeFromSession derives the reviewer scope from the authenticated
// session. Managers must carry a section; HR and admin review everything.
func scopeFromSession(c *gin.Context) (Scope, error) {
	scope := Scope{ActorID: c.GetString("user_id")}
	if c.GetString("view") == rbac.ViewManager {
		section := c.GetString("section")
		if section == "" {
			return Scope{}, reviewerrors.ErrScopeMissing
		}
		scope.Section = &section
	}
	return scope, nil
}

func bindFilter(c *gin.Context) (ListFilter, error) {
	var f ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		return ListFilter{}, reviewerrors.ErrInvalidFilter
	}
	return f, nil
}

func (h *Handler) List(c *gin.Context) {
	scope, err := scopeFromSession(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	f, err := bindFilter(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), scope, f)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	scope, err := scopeFromSession(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	scope, err := scopeFromSession(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	f, err := bindFilter(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename, data, err := h.service.ExportCSV(c.Request.Context(), scope, f)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) ExportXLSX(c *gin.Context) {
	scope, err := scopeFromSession(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	f, err := bindFilter(c)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	filename, data, err := h.service.ExportXLSX(c.Request.Context(), scope, f)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
