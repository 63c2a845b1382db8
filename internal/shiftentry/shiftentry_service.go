package shiftentry

import (
	"context"
	"errors"
	"strings"
	"time"

	"shifttrack/internal/employee"
	employeeerrors "shifttrack/internal/employee/errors"
	"shifttrack/internal/shared/contextutil"
	shiftentryerrors "shifttrack/internal/shiftentry/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileDirectory is the slice of the employee repository the submission
// flow needs. employee.Repository satisfies it.
type ProfileDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Profile, error)
}

//go:generate mockgen -source=shiftentry_service.go -destination=mock/shiftentry_service_mock.go -package=mock
type Service interface {
	GetWizard(ctx context.Context, employeeID string) (WizardResponse, error)
	SelectDate(ctx context.Context, employeeID string, req SelectDateRequest) (WizardResponse, error)
	ChangeDate(ctx context.Context, employeeID string) (WizardResponse, error)
	Submit(ctx context.Context, employeeID string, req SubmitShiftRequest) (EntryResponse, error)
	GetMine(ctx context.Context, employeeID string) ([]EntryResponse, error)
	TakenDates(ctx context.Context, employeeID string) ([]string, error)
}

type service struct {
	repo     Repository
	profiles ProfileDirectory
	wizards  *WizardStore
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, profiles ProfileDirectory, wizards *WizardStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("shiftentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shiftentry.service")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		wizards:  wizards,
		now:      time.Now,
		logger:   l,
	}
}

// ensureActive blocks anyone who has not cleared admin approval. Managers
// are seeded approved, so this only ever gates self-registered employees.
func (s *service) ensureActive(ctx context.Context, employeeID string) error {
	profile, err := s.profiles.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}
	if !profile.IsApproved || profile.PendingRegistration {
		return shiftentryerrors.ErrRegistrationPending
	}
	return nil
}

func (s *service) GetWizard(ctx context.Context, employeeID string) (WizardResponse, error) {
	if err := s.ensureActive(ctx, employeeID); err != nil {
		return WizardResponse{}, err
	}
	w, err := s.wizards.Get(ctx, employeeID)
	if err != nil {
		return WizardResponse{}, err
	}
	return WizardResponse{State: w.State, Date: w.Date}, nil
}

func (s *service) SelectDate(ctx context.Context, employeeID string, req SelectDateRequest) (WizardResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if err := s.ensureActive(ctx, employeeID); err != nil {
		return WizardResponse{}, err
	}

	taken, err := s.takenSet(ctx, employeeID)
	if err != nil {
		return WizardResponse{}, err
	}

	w, err := s.wizards.Get(ctx, employeeID)
	if err != nil {
		return WizardResponse{}, err
	}
	if err := w.SelectDate(strings.TrimSpace(req.Date), s.now().UTC(), func(d string) bool {
		return taken[d]
	}); err != nil {
		s.logger.Debug("date rejected",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return WizardResponse{}, err
	}

	if err := s.wizards.Save(ctx, employeeID, w); err != nil {
		return WizardResponse{}, err
	}
	return WizardResponse{State: w.State, Date: w.Date}, nil
}

func (s *service) ChangeDate(ctx context.Context, employeeID string) (WizardResponse, error) {
	if err := s.ensureActive(ctx, employeeID); err != nil {
		return WizardResponse{}, err
	}
	w, err := s.wizards.Get(ctx, employeeID)
	if err != nil {
		return WizardResponse{}, err
	}
	w.ChangeDate()
	if err := s.wizards.Save(ctx, employeeID, w); err != nil {
		return WizardResponse{}, err
	}
	return WizardResponse{State: w.State, Date: w.Date}, nil
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitShiftRequest) (EntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if err := s.ensureActive(ctx, employeeID); err != nil {
		return EntryResponse{}, err
	}

	date, err := time.Parse(DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return EntryResponse{}, shiftentryerrors.ErrInvalidDateFormat
	}
	if date.Before(s.now().UTC().Truncate(24 * time.Hour)) {
		return EntryResponse{}, shiftentryerrors.ErrPastDate
	}
	if !IsValidShiftType(req.ShiftType) {
		return EntryResponse{}, shiftentryerrors.ErrInvalidShiftType
	}

	remark := normalizeRemark(req.ShiftType, req.OtherRemark)
	if req.ShiftType == ShiftOther && remark == nil {
		return EntryResponse{}, shiftentryerrors.ErrRemarkRequired
	}

	entry := &ShiftEntry{
		EmployeeID:  employeeID,
		Date:        date,
		ShiftType:   req.ShiftType,
		OtherRemark: remark,
	}
	// The unique constraint on (employee_id, date) is the authoritative
	// duplicate check; a concurrent submit loses here, not earlier.
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("submit persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return EntryResponse{}, mapRepositoryError(err)
	}

	if err := s.wizards.Clear(ctx, employeeID); err != nil {
		s.logger.Warn("wizard reset failed", zap.String("employee_id", employeeID), zap.Error(err))
	}

	s.logger.Info("shift entry submitted",
		zap.String("employee_id", employeeID),
		zap.String("date", req.Date),
		zap.String("shift_type", req.ShiftType),
	)
	return mapToEntryResponse(*entry), nil
}

func (s *service) GetMine(ctx context.Context, employeeID string) ([]EntryResponse, error) {
	if err := s.ensureActive(ctx, employeeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]EntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToEntryResponse(e)
	}
	return resp, nil
}

func (s *service) TakenDates(ctx context.Context, employeeID string) ([]string, error) {
	if err := s.ensureActive(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.repo.FindDatesByEmployee(ctx, employeeID)
}

func (s *service) takenSet(ctx context.Context, employeeID string) (map[string]bool, error) {
	dates, err := s.repo.FindDatesByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set, nil
}

// normalizeRemark keeps the remark only for the Other type; anything
// attached to a named shift type is dropped rather than rejected.
func normalizeRemark(shiftType string, remark *string) *string {
	if shiftType != ShiftOther {
		return nil
	}
	if remark == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*remark)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapToEntryResponse(e ShiftEntry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID,
		Date:        e.Date.Format(DateLayout),
		ShiftType:   e.ShiftType,
		ShiftLabel:  FormatShiftType(e.ShiftType),
		OtherRemark: e.OtherRemark,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		Approved:    e.Approved,
		ApprovedBy:  e.ApprovedBy,
	}
	if e.ApprovedAt != nil {
		t := e.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &t
	}
	return resp
}
