package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "shifttrack/internal/auth/errors"
	"shifttrack/internal/credentials"
	"shifttrack/internal/employee"
	employeeerrors "shifttrack/internal/employee/errors"
	"shifttrack/internal/rbac"
	"shifttrack/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	subjectHR    = "HR"
	subjectAdmin = "ADMIN"

	minPasswordLength = 6
)

// SessionManager is what the service needs from the session store.
type SessionManager interface {
	Create(ctx context.Context, sess Session) error
	Revoke(ctx context.Context, sessionID string) error
	PurgeSubject(ctx context.Context, subject string) error
}

// WizardClearer drops any in-progress submission step. A fresh session must
// never resume another session's half-finished entry.
type WizardClearer interface {
	Clear(ctx context.Context, employeeID string) error
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	EmployeeSignIn(ctx context.Context, req EmployeeSignInRequest) (TokenResponse, error)
	ManagerLogin(ctx context.Context, req ManagerLoginRequest) (TokenResponse, error)
	HRLogin(ctx context.Context, req CodeLoginRequest) (TokenResponse, error)
	AdminLogin(ctx context.Context, req CodeLoginRequest) (TokenResponse, error)
	SwitchView(ctx context.Context, subject, sessionID string, req SwitchViewRequest) (TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	SetEmployeePassword(ctx context.Context, employeeID string, req AdminSetPasswordRequest) error
}

type service struct {
	creds    credentials.Store
	profiles employee.Repository
	sessions SessionManager
	wizards  WizardClearer
	secret   string
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	creds credentials.Store,
	profiles employee.Repository,
	sessions SessionManager,
	wizards WizardClearer,
	secret string,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		creds:    creds,
		profiles: profiles,
		sessions: sessions,
		wizards:  wizards,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) EmployeeSignIn(ctx context.Context, req EmployeeSignInRequest) (TokenResponse, error) {
	id := strings.TrimSpace(req.EmployeeID)

	if _, err := s.lookupProfile(ctx, id); err != nil {
		return TokenResponse{}, err
	}
	if err := s.creds.Verify(ctx, id, req.Password); err != nil {
		s.logger.Warn("employee sign-in rejected",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", id),
		)
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, id, rbac.ViewEmployee, nil)
}

func (s *service) ManagerLogin(ctx context.Context, req ManagerLoginRequest) (TokenResponse, error) {
	id := strings.TrimSpace(req.ManagerID)

	profile, err := s.lookupProfile(ctx, id)
	if err != nil {
		return TokenResponse{}, err
	}
	if profile.Role != employee.RoleManager || profile.Section == nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := s.creds.Verify(ctx, id, req.Password); err != nil {
		s.logger.Warn("manager login rejected",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("manager_id", id),
		)
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, id, rbac.ViewManager, profile.Section)
}

// HRLogin accepts any non-empty access code. The code is a speed bump, not
// a secret; the HR view carries no write permissions.
func (s *service) HRLogin(ctx context.Context, req CodeLoginRequest) (TokenResponse, error) {
	if strings.TrimSpace(req.AccessCode) == "" {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	return s.openSession(ctx, subjectHR, rbac.ViewHR, nil)
}

// AdminLogin mirrors HRLogin. Same gate, same known weakness.
func (s *service) AdminLogin(ctx context.Context, req CodeLoginRequest) (TokenResponse, error) {
	if strings.TrimSpace(req.AccessCode) == "" {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	return s.openSession(ctx, subjectAdmin, rbac.ViewAdmin, nil)
}

// SwitchView moves an authenticated subject to another view it is entitled
// to. Opening the new session revokes the old one, so the views stay
// mutually exclusive.
func (s *service) SwitchView(ctx context.Context, subject, sessionID string, req SwitchViewRequest) (TokenResponse, error) {
	profile, err := s.lookupProfile(ctx, subject)
	if err != nil {
		return TokenResponse{}, autherrors.ErrViewNotAllowed
	}

	var section *string
	switch req.View {
	case rbac.ViewEmployee:
	case rbac.ViewManager:
		if profile.Role != employee.RoleManager || profile.Section == nil {
			return TokenResponse{}, autherrors.ErrViewNotAllowed
		}
		section = profile.Section
	default:
		// HR and admin are entered through their own code gates only.
		return TokenResponse{}, autherrors.ErrViewNotAllowed
	}

	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		s.logger.Warn("old session revoke on view switch failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}
	return s.openSession(ctx, subject, req.View, section)
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Revoke(ctx, sessionID)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return autherrors.ErrPasswordTooShort
	}
	if err := s.creds.Verify(ctx, userID, req.OldPassword); err != nil {
		return autherrors.ErrInvalidCredentials
	}
	if err := s.creds.SetPassword(ctx, userID, req.NewPassword); err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}
	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

// SetEmployeePassword is the admin's credential override. The holder is
// logged out everywhere; manager accounts are off limits.
func (s *service) SetEmployeePassword(ctx context.Context, employeeID string, req AdminSetPasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return autherrors.ErrPasswordTooShort
	}

	profile, err := s.profiles.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}
	if profile.Role == employee.RoleManager {
		return employeeerrors.ErrManagerImmutable
	}

	if err := s.creds.SetPassword(ctx, employeeID, req.NewPassword); err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}
	if err := s.sessions.PurgeSubject(ctx, employeeID); err != nil {
		s.logger.Warn("session purge after password override failed", zap.String("employee_id", employeeID), zap.Error(err))
	}

	s.logger.Info("password overridden", zap.String("employee_id", employeeID))
	return nil
}

func (s *service) lookupProfile(ctx context.Context, id string) (*employee.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrInvalidCredentials
		}
		return nil, err
	}
	return profile, nil
}

func (s *service) openSession(ctx context.Context, subject, view string, section *string) (TokenResponse, error) {
	sess := Session{
		ID:      uuid.New().String(),
		Subject: subject,
		View:    view,
		Section: section,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return TokenResponse{}, err
	}

	// The previous session's half-finished submission step dies with it.
	if s.wizards != nil && subject != subjectHR && subject != subjectAdmin {
		if err := s.wizards.Clear(ctx, subject); err != nil {
			s.logger.Warn("wizard reset on login failed", zap.String("subject", subject), zap.Error(err))
		}
	}

	token, err := s.signToken(sess)
	if err != nil {
		return TokenResponse{}, err
	}

	s.logger.Info("session opened",
		zap.String("subject", subject),
		zap.String("view", view),
	)
	return TokenResponse{
		AccessToken: token,
		View:        view,
		Subject:     subject,
		Section:     section,
		ExpiresIn:   int64(s.ttl.Seconds()),
	}, nil
}

func (s *service) signToken(sess Session) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  sess.Subject,
		"view": sess.View,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	if sess.Section != nil {
		claims["section"] = *sess.Section
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}
