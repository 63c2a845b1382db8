package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"shifttrack/internal/auth"
	autherrors "shifttrack/internal/auth/errors"
	"shifttrack/internal/credentials"
	"shifttrack/internal/employee"
	employeeerrors "shifttrack/internal/employee/errors"
	"shifttrack/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "unit-test-secret"

type fakeCreds struct {
	passwords map[string]string
}

func (f *fakeCreds) WithTx(_ *sql.Tx) credentials.Store { return f }
func (f *fakeCreds) Create(_ context.Context, userID, _, plainPassword string) error {
	f.passwords[userID] = plainPassword
	return nil
}
func (f *fakeCreds) Verify(_ context.Context, userID, plainPassword string) error {
	stored, ok := f.passwords[userID]
	if !ok || stored != plainPassword {
		return credentials.ErrMismatch
	}
	return nil
}
func (f *fakeCreds) SetPassword(_ context.Context, userID, newPassword string) error {
	if _, ok := f.passwords[userID]; !ok {
		return credentials.ErrNotFound
	}
	f.passwords[userID] = newPassword
	return nil
}
func (f *fakeCreds) Delete(_ context.Context, userID string) error {
	delete(f.passwords, userID)
	return nil
}

type fakeProfiles struct {
	profiles map[string]*employee.Profile
}

func (f *fakeProfiles) WithTx(_ *sql.Tx) employee.Repository { return f }
func (f *fakeProfiles) Create(_ context.Context, p *employee.Profile) error {
	f.profiles[p.ID] = p
	return nil
}
func (f *fakeProfiles) FindByID(_ context.Context, id string) (*employee.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (f *fakeProfiles) FindAll(_ context.Context) ([]employee.Profile, error)     { return nil, nil }
func (f *fakeProfiles) FindPending(_ context.Context) ([]employee.Profile, error) { return nil, nil }
func (f *fakeProfiles) Update(_ context.Context, _ *employee.Profile) error       { return nil }
func (f *fakeProfiles) Delete(_ context.Context, _ string) error                  { return nil }

type fakeSessions struct {
	created []auth.Session
	revoked []string
	purged  []string
}

func (f *fakeSessions) Create(_ context.Context, sess auth.Session) error {
	f.created = append(f.created, sess)
	return nil
}
func (f *fakeSessions) Revoke(_ context.Context, sessionID string) error {
	f.revoked = append(f.revoked, sessionID)
	return nil
}
func (f *fakeSessions) PurgeSubject(_ context.Context, subject string) error {
	f.purged = append(f.purged, subject)
	return nil
}

type fakeWizards struct {
	cleared []string
}

func (f *fakeWizards) Clear(_ context.Context, employeeID string) error {
	f.cleared = append(f.cleared, employeeID)
	return nil
}

func section(s string) *string { return &s }

func newServiceUnderTest() (auth.Service, *fakeCreds, *fakeProfiles, *fakeSessions) {
	creds := &fakeCreds{passwords: map[string]string{
		"E100":   "E100@123",
		"QC_MGR": "SH123",
	}}
	profiles := &fakeProfiles{profiles: map[string]*employee.Profile{
		"E100": {
			ID: "E100", FullName: "Asha Rao", Department: "Engineering",
			Section: section("QC"), Role: employee.RoleEmployee, IsApproved: true,
		},
		"QC_MGR": {
			ID: "QC_MGR", FullName: "QC Manager", Department: "Engineering",
			Section: section("QC"), Role: employee.RoleManager, IsApproved: true,
		},
	}}
	sessions := &fakeSessions{}
	svc := auth.NewService(creds, profiles, sessions, nil, testSecret, time.Hour)
	return svc, creds, profiles, sessions
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestEmployeeSignInIssuesEmployeeView(t *testing.T) {
	svc, _, _, sessions := newServiceUnderTest()

	resp, err := svc.EmployeeSignIn(context.Background(), auth.EmployeeSignInRequest{
		EmployeeID: "E100", Password: "E100@123",
	})

	require.NoError(t, err)
	assert.Equal(t, rbac.ViewEmployee, resp.View)
	assert.Equal(t, "E100", resp.Subject)
	require.Len(t, sessions.created, 1)

	claims := parseClaims(t, resp.AccessToken)
	assert.Equal(t, sessions.created[0].ID, claims["sid"])
	assert.Equal(t, "E100", claims["sub"])
	assert.Equal(t, rbac.ViewEmployee, claims["view"])
}

func TestEmployeeSignInWrongPasswordIsGeneric(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	_, err := svc.EmployeeSignIn(context.Background(), auth.EmployeeSignInRequest{
		EmployeeID: "E100", Password: "wrong",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestEmployeeSignInUnknownIDIsGeneric(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	_, err := svc.EmployeeSignIn(context.Background(), auth.EmployeeSignInRequest{
		EmployeeID: "E404", Password: "anything",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestManagerLoginBindsSection(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	resp, err := svc.ManagerLogin(context.Background(), auth.ManagerLoginRequest{
		ManagerID: "QC_MGR", Password: "SH123",
	})

	require.NoError(t, err)
	assert.Equal(t, rbac.ViewManager, resp.View)
	require.NotNil(t, resp.Section)
	assert.Equal(t, "QC", *resp.Section)

	claims := parseClaims(t, resp.AccessToken)
	assert.Equal(t, "QC", claims["section"])
}

func TestManagerLoginRejectsNonManagers(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	_, err := svc.ManagerLogin(context.Background(), auth.ManagerLoginRequest{
		ManagerID: "E100", Password: "E100@123",
	})

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestHRLoginRequiresNonEmptyCode(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	_, err := svc.HRLogin(context.Background(), auth.CodeLoginRequest{AccessCode: "   "})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	resp, err := svc.HRLogin(context.Background(), auth.CodeLoginRequest{AccessCode: "hr-desk"})
	require.NoError(t, err)
	assert.Equal(t, rbac.ViewHR, resp.View)
}

func TestAdminLoginRequiresNonEmptyCode(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	_, err := svc.AdminLogin(context.Background(), auth.CodeLoginRequest{AccessCode: ""})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	resp, err := svc.AdminLogin(context.Background(), auth.CodeLoginRequest{AccessCode: "front-office"})
	require.NoError(t, err)
	assert.Equal(t, rbac.ViewAdmin, resp.View)
}

func TestSwitchViewToManagerRequiresManagerRole(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	_, err := svc.SwitchView(context.Background(), "E100", "sid-1", auth.SwitchViewRequest{
		View: rbac.ViewManager,
	})
	assert.ErrorIs(t, err, autherrors.ErrViewNotAllowed)

	resp, err := svc.SwitchView(context.Background(), "QC_MGR", "sid-2", auth.SwitchViewRequest{
		View: rbac.ViewManager,
	})
	require.NoError(t, err)
	assert.Equal(t, rbac.ViewManager, resp.View)
}

func TestSwitchViewRevokesOldSession(t *testing.T) {
	svc, _, _, sessions := newServiceUnderTest()

	resp, err := svc.SwitchView(context.Background(), "QC_MGR", "sid-old", auth.SwitchViewRequest{
		View: rbac.ViewEmployee,
	})

	require.NoError(t, err)
	assert.Equal(t, rbac.ViewEmployee, resp.View)
	assert.Contains(t, sessions.revoked, "sid-old")
	require.Len(t, sessions.created, 1)
	assert.NotEqual(t, "sid-old", sessions.created[0].ID)
}

func TestSwitchViewNeverGrantsCodeGatedViews(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	for _, view := range []string{rbac.ViewHR, rbac.ViewAdmin} {
		_, err := svc.SwitchView(context.Background(), "QC_MGR", "sid-3", auth.SwitchViewRequest{View: view})
		assert.ErrorIs(t, err, autherrors.ErrViewNotAllowed)
	}
}

func TestChangePasswordEnforcesMinimumLength(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	err := svc.ChangePassword(context.Background(), "E100", auth.ChangePasswordRequest{
		OldPassword: "E100@123", NewPassword: "short",
	})

	assert.ErrorIs(t, err, autherrors.ErrPasswordTooShort)
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	svc, creds, _, _ := newServiceUnderTest()

	err := svc.ChangePassword(context.Background(), "E100", auth.ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), "E100", auth.ChangePasswordRequest{
		OldPassword: "E100@123", NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-pass", creds.passwords["E100"])
}

func TestSetEmployeePasswordOverridesAndPurges(t *testing.T) {
	svc, creds, _, sessions := newServiceUnderTest()

	err := svc.SetEmployeePassword(context.Background(), "E100", auth.AdminSetPasswordRequest{
		NewPassword: "fresh-start",
	})

	require.NoError(t, err)
	assert.Equal(t, "fresh-start", creds.passwords["E100"])
	assert.Equal(t, []string{"E100"}, sessions.purged)
}

func TestSetEmployeePasswordEnforcesMinimumLength(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	err := svc.SetEmployeePassword(context.Background(), "E100", auth.AdminSetPasswordRequest{
		NewPassword: "tiny",
	})

	assert.ErrorIs(t, err, autherrors.ErrPasswordTooShort)
}

func TestSetEmployeePasswordUnknownEmployee(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	err := svc.SetEmployeePassword(context.Background(), "E404", auth.AdminSetPasswordRequest{
		NewPassword: "long-enough",
	})

	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}

func TestSetEmployeePasswordRefusesManagers(t *testing.T) {
	svc, _, _, _ := newServiceUnderTest()

	err := svc.SetEmployeePassword(context.Background(), "QC_MGR", auth.AdminSetPasswordRequest{
		NewPassword: "long-enough",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrManagerImmutable)
}

func TestSignInClearsStaleWizardState(t *testing.T) {
	creds := &fakeCreds{passwords: map[string]string{"E100": "E100@123"}}
	profiles := &fakeProfiles{profiles: map[string]*employee.Profile{
		"E100": {ID: "E100", Role: employee.RoleEmployee, IsApproved: true},
	}}
	wizards := &fakeWizards{}
	svc := auth.NewService(creds, profiles, &fakeSessions{}, wizards, testSecret, time.Hour)

	_, err := svc.EmployeeSignIn(context.Background(), auth.EmployeeSignInRequest{
		EmployeeID: "E100", Password: "E100@123",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"E100"}, wizards.cleared)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _, sessions := newServiceUnderTest()

	err := svc.Logout(context.Background(), "sid-9")

	require.NoError(t, err)
	assert.Equal(t, []string{"sid-9"}, sessions.revoked)
}
