package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shifttrack/internal/employee"
	employeeerrors "shifttrack/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	registerResp employee.RegisterResponse
	registerErr  error
}

func (s *stubService) Register(_ context.Context, _ employee.RegisterRequest) (employee.RegisterResponse, error) {
	return s.registerResp, s.registerErr
}
func (s *stubService) Approve(_ context.Context, _ string) (employee.ProfileResponse, error) {
	return employee.ProfileResponse{}, nil
}
func (s *stubService) Reject(_ context.Context, _ string) error { return nil }
func (s *stubService) CheckStatus(_ context.Context, _ string) (employee.ProfileResponse, error) {
	return employee.ProfileResponse{}, nil
}
func (s *stubService) GetDirectory(_ context.Context) ([]employee.ProfileResponse, error) {
	return nil, nil
}
func (s *stubService) GetPending(_ context.Context) ([]employee.ProfileResponse, error) {
	return nil, nil
}
func (s *stubService) GetOptions(_ context.Context) ([]employee.OptionResponse, error) {
	return nil, nil
}

func performRegister(t *testing.T, svc employee.Service, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	employee.NewHandler(svc).Register(c)
	return w
}

func TestRegisterHandlerRejectsMissingFields(t *testing.T) {
	w := performRegister(t, &stubService{}, map[string]string{"id": "E100"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestRegisterHandlerCreated(t *testing.T) {
	svc := &stubService{registerResp: employee.RegisterResponse{
		Status: employee.RegistrationStatusRegistered,
		Credentials: &employee.CredentialDisclosure{
			Email:    "e100@company.com",
			Password: "E100@123",
		},
	}}

	w := performRegister(t, svc, map[string]string{
		"id": "E100", "full_name": "Asha Rao", "department": "IT",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "e100@company.com")
}

func TestRegisterHandlerPendingReturnsOK(t *testing.T) {
	svc := &stubService{registerResp: employee.RegisterResponse{
		Status: employee.RegistrationStatusPending,
	}}

	w := performRegister(t, svc, map[string]string{
		"id": "E100", "full_name": "Asha Rao", "department": "IT",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterHandlerMapsConflict(t *testing.T) {
	svc := &stubService{registerErr: employeeerrors.ErrEmployeeExists}

	w := performRegister(t, svc, map[string]string{
		"id": "E100", "full_name": "Asha Rao", "department": "IT",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}
