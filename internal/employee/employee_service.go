package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"shifttrack/internal/credentials"
	employeeerrors "shifttrack/internal/employee/errors"
	"shifttrack/internal/events"
	"shifttrack/internal/messaging/kafka"
	"shifttrack/internal/shared/apperror"
	"shifttrack/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	optionsCacheKey = "directory:options"
	optionsCacheTTL = 5 * time.Minute
)

// SessionPurger drops every live session bound to a subject. Used when a
// rejected registration must be logged out immediately.
type SessionPurger interface {
	PurgeSubject(ctx context.Context, subject string) error
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Approve(ctx context.Context, id string) (ProfileResponse, error)
	Reject(ctx context.Context, id string) error
	CheckStatus(ctx context.Context, id string) (ProfileResponse, error)
	GetDirectory(ctx context.Context) ([]ProfileResponse, error)
	GetPending(ctx context.Context) ([]ProfileResponse, error)
	GetOptions(ctx context.Context) ([]OptionResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	creds    credentials.Store
	outbox   kafka.OutboxRepository
	sessions SessionPurger
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	creds credentials.Store,
	outbox kafka.OutboxRepository,
	sessions SessionPurger,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		creds:    creds,
		outbox:   outbox,
		sessions: sessions,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.ID),
		zap.String("department", req.Department),
	)

	req.ID = strings.TrimSpace(req.ID)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.ID == "" {
		return RegisterResponse{}, apperror.RequiredField("Employee ID")
	}
	if req.FullName == "" {
		return RegisterResponse{}, apperror.RequiredField("Full Name")
	}
	section, err := validateDepartmentSection(req.Department, req.Section)
	if err != nil {
		s.logger.Warn("register validation failed", zap.String("employee_id", req.ID), zap.Error(err))
		return RegisterResponse{}, err
	}

	if IsReservedID(req.ID) {
		return RegisterResponse{}, employeeerrors.ErrReservedID
	}

	existing, err := s.repo.FindByID(ctx, req.ID)
	if err == nil {
		// Re-registering a not-yet-approved id routes back to pending
		// instead of creating a duplicate.
		if existing.PendingRegistration && !existing.IsApproved {
			return RegisterResponse{
				Status:  RegistrationStatusPending,
				Profile: mapToProfileResponse(*existing),
			}, nil
		}
		return RegisterResponse{}, employeeerrors.ErrEmployeeExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register lookup failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register begin tx failed", zap.Error(err))
		return RegisterResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	profile := &Profile{
		ID:                  req.ID,
		FullName:            req.FullName,
		Department:          req.Department,
		Section:             section,
		Role:                RoleEmployee,
		IsApproved:          false,
		PendingRegistration: true,
	}
	if err := qtx.Create(ctx, profile); err != nil {
		s.logger.Error("register persist failed", zap.Error(err))
		return RegisterResponse{}, mapRepositoryError(err)
	}

	email := credentials.DeriveEmail(req.ID)
	password := credentials.DeriveDefaultPassword(req.ID)
	if err := s.creds.WithTx(tx).Create(ctx, req.ID, email, password); err != nil {
		s.logger.Error("register credential persist failed", zap.Error(err))
		return RegisterResponse{}, mapRepositoryError(err)
	}

	if err := s.writeOutbox(ctx, qtxOutbox(s.outbox, tx), events.EmployeeRegisteredEvent{
		EventType:  "employee_registered",
		RequestID:  rid,
		EmployeeID: req.ID,
		Department: req.Department,
		Section:    section,
		OccurredAt: time.Now().UTC(),
	}, req.ID); err != nil {
		return RegisterResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("register commit failed", zap.Error(err))
		return RegisterResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("register success", zap.String("employee_id", req.ID))

	return RegisterResponse{
		Status:  RegistrationStatusRegistered,
		Profile: mapToProfileResponse(*profile),
		Credentials: &CredentialDisclosure{
			Email:    email,
			Password: password,
		},
	}, nil
}

func (s *service) Approve(ctx context.Context, id string) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return ProfileResponse{}, err
	}

	if profile.IsApproved && !profile.PendingRegistration {
		return ProfileResponse{}, employeeerrors.ErrAlreadyApproved
	}

	profile.IsApproved = true
	profile.PendingRegistration = false
	if err := qtx.Update(ctx, profile); err != nil {
		s.logger.Error("approve persist failed", zap.String("employee_id", id), zap.Error(err))
		return ProfileResponse{}, err
	}

	if err := s.writeOutbox(ctx, qtxOutbox(s.outbox, tx), events.EmployeeApprovedEvent{
		EventType:  "employee_approved",
		RequestID:  rid,
		EmployeeID: id,
		OccurredAt: time.Now().UTC(),
	}, id); err != nil {
		return ProfileResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ProfileResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("registration approved", zap.String("employee_id", id))
	return mapToProfileResponse(*profile), nil
}

func (s *service) Reject(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)

	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if profile.Role == RoleManager {
		return employeeerrors.ErrManagerImmutable
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.creds.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("reject credential delete failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("reject persist failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	if err := s.writeOutbox(ctx, qtxOutbox(s.outbox, tx), events.EmployeeRejectedEvent{
		EventType:  "employee_rejected",
		RequestID:  rid,
		EmployeeID: id,
		OccurredAt: time.Now().UTC(),
	}, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	// A rejected employee may be mid-session; force them back out.
	if s.sessions != nil {
		if err := s.sessions.PurgeSubject(ctx, id); err != nil {
			s.logger.Warn("reject session purge failed", zap.String("employee_id", id), zap.Error(err))
		}
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("registration rejected", zap.String("employee_id", id))
	return nil
}

func (s *service) CheckStatus(ctx context.Context, id string) (ProfileResponse, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return ProfileResponse{}, err
	}
	return mapToProfileResponse(*profile), nil
}

func (s *service) GetDirectory(ctx context.Context) ([]ProfileResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ProfileResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToProfileResponse(p)
	}
	return resp, nil
}

func (s *service) GetPending(ctx context.Context) ([]ProfileResponse, error) {
	rows, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]ProfileResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToProfileResponse(p)
	}
	return resp, nil
}

// GetOptions serves the dropdown list from redis, collapsing concurrent
// cache fills through singleflight.
func (s *service) GetOptions(ctx context.Context) ([]OptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var opts []OptionResponse
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(optionsCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]OptionResponse, len(rows))
		for i, p := range rows {
			opts[i] = OptionResponse{
				ID:       p.ID,
				FullName: p.FullName,
				Section:  p.Section,
				Role:     p.Role,
			}
		}
		if s.rdb != nil {
			if raw, err := json.Marshal(opts); err == nil {
				_ = s.rdb.Set(ctx, optionsCacheKey, raw, optionsCacheTTL).Err()
			}
		}
		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]OptionResponse), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("options cache invalidation failed", zap.Error(err))
	}
}

func (s *service) writeOutbox(ctx context.Context, outbox kafka.OutboxRepository, payload any, aggregateID string) error {
	if outbox == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	eventType := ""
	switch p := payload.(type) {
	case events.EmployeeRegisteredEvent:
		eventType = p.EventType
	case events.EmployeeApprovedEvent:
		eventType = p.EventType
	case events.EmployeeRejectedEvent:
		eventType = p.EventType
	}

	err = outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       raw,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("outbox write failed", zap.String("aggregate_id", aggregateID), zap.Error(err))
	}
	return err
}

func qtxOutbox(outbox kafka.OutboxRepository, tx *sql.Tx) kafka.OutboxRepository {
	if outbox == nil {
		return nil
	}
	return outbox.WithTx(tx)
}

func validateDepartmentSection(department string, section *string) (*string, error) {
	if !IsValidDepartment(department) {
		return nil, employeeerrors.ErrInvalidDepartment
	}
	if department == DepartmentEngineering {
		if section == nil || strings.TrimSpace(*section) == "" {
			return nil, employeeerrors.ErrSectionRequired
		}
		trimmed := strings.TrimSpace(*section)
		if !IsValidSection(trimmed) {
			return nil, employeeerrors.ErrInvalidSection
		}
		return &trimmed, nil
	}
	if section != nil && strings.TrimSpace(*section) != "" {
		return nil, employeeerrors.ErrSectionNotAllowed
	}
	return nil, nil
}

func mapToProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:                  p.ID,
		FullName:            p.FullName,
		Department:          p.Department,
		Section:             p.Section,
		Role:                p.Role,
		IsApproved:          p.IsApproved,
		PendingRegistration: p.PendingRegistration,
	}
}
