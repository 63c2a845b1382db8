package auth

import (
	"net/http"

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

func bindJSON[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return req, false
	}
	return req, true
}

func (h *Handler) EmployeeSignIn(c *gin.Context) {
	req, ok := bindJSON[EmployeeSignInRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.EmployeeSignIn(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ManagerLogin(c *gin.Context) {
	req, ok := bindJSON[ManagerLoginRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.ManagerLogin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) HRLogin(c *gin.Context) {
	req, ok := bindJSON[CodeLoginRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.HRLogin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	req, ok := bindJSON[CodeLoginRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SwitchView(c *gin.Context) {
	req, ok := bindJSON[SwitchViewRequest](c)
	if !ok {
		return
	}
	resp, err := h.service.SwitchView(c.Request.Context(), c.GetString("user_id"), c.GetString("session_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetString("session_id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	req, ok := bindJSON[ChangePasswordRequest](c)
	if !ok {
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), c.GetString("user_id"), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": true}, nil)
}

func (h *Handler) SetEmployeePassword(c *gin.Context) {
	req, ok := bindJSON[AdminSetPasswordRequest](c)
	if !ok {
		return
	}
	if err := h.service.SetEmployeePassword(c.Request.Context(), c.Param("id"), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": c.Param("id")}, nil)
}
