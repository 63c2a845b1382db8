package review

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shifttrack/internal/employee"
	"shifttrack/internal/events"
	"shifttrack/internal/messaging/kafka"
	"shifttrack/internal/shared/contextutil"
	"shifttrack/internal/shiftentry"
	shiftentryerrors "shifttrack/internal/shiftentry/errors"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scope is the slice of entries a reviewer may see. Managers carry their
// section; HR carries no section and sees everything.
type Scope struct {
	Section *string
	ActorID string
}

var exportHeader = []string{
	"Date", "Employee ID", "Employee Name", "Department", "Section",
	"Shift Type", "Status", "Approved By", "Approved At", "Remark",
}

//go:generate mockgen -source=review_service.go -destination=mock/review_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, scope Scope, f ListFilter) ([]EntryDetailResponse, error)
	Approve(ctx context.Context, scope Scope, entryID string) (EntryDetailResponse, error)
	ExportCSV(ctx context.Context, scope Scope, f ListFilter) (string, []byte, error)
	ExportXLSX(ctx context.Context, scope Scope, f ListFilter) (string, []byte, error)
}

type service struct {
	db       *sql.DB
	entries  shiftentry.Repository
	profiles employee.Repository
	outbox   kafka.OutboxRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	entries shiftentry.Repository,
	profiles employee.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{
		db:       db,
		entries:  entries,
		profiles: profiles,
		outbox:   outbox,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) List(ctx context.Context, scope Scope, f ListFilter) ([]EntryDetailResponse, error) {
	qf, err := buildQueryFilter(scope, f)
	if err != nil {
		return nil, err
	}

	rows, err := s.entries.Query(ctx, qf)
	if err != nil {
		return nil, err
	}

	names := s.approverNames(ctx, rows)
	resp := make([]EntryDetailResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToDetailResponse(e, names)
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, scope Scope, entryID string) (EntryDetailResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryDetailResponse{}, shiftentryerrors.ErrEntryNotFound
		}
		return EntryDetailResponse{}, err
	}
	// Out-of-scope entries look like missing entries to the caller.
	if !inScope(scope, entry) {
		return EntryDetailResponse{}, shiftentryerrors.ErrEntryNotFound
	}
	if entry.Approved {
		return EntryDetailResponse{}, shiftentryerrors.ErrAlreadyApproved
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryDetailResponse{}, err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	if err := s.entries.WithTx(tx).MarkApproved(ctx, entryID, scope.ActorID, now); err != nil {
		// Zero rows means another reviewer got there between our read
		// and this update.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EntryDetailResponse{}, shiftentryerrors.ErrAlreadyApproved
		}
		s.logger.Error("approve persist failed", zap.String("entry_id", entryID), zap.Error(err))
		return EntryDetailResponse{}, err
	}
	entry.Approved = true
	entry.ApprovedBy = &scope.ActorID
	entry.ApprovedAt = &now

	if s.outbox != nil {
		payload, err := json.Marshal(events.ShiftEntryApprovedEvent{
			EventType:  "shift_entry_approved",
			RequestID:  rid,
			EntryID:    entryID,
			EmployeeID: entry.EmployeeID,
			Date:       entry.Date.Format(shiftentry.DateLayout),
			ApprovedBy: scope.ActorID,
			OccurredAt: now,
		})
		if err != nil {
			return EntryDetailResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "shift_entry",
			AggregateID:   entryID,
			EventType:     "shift_entry_approved",
			Topic:         events.ShiftApprovalTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve outbox write failed", zap.String("entry_id", entryID), zap.Error(err))
			return EntryDetailResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EntryDetailResponse{}, err
	}

	s.logger.Info("shift entry approved",
		zap.String("entry_id", entryID),
		zap.String("approved_by", scope.ActorID),
	)

	names := s.approverNames(ctx, []shiftentry.ShiftEntry{*entry})
	return mapToDetailResponse(*entry, names), nil
}

func (s *service) ExportCSV(ctx context.Context, scope Scope, f ListFilter) (string, []byte, error) {
	rows, names, err := s.exportRows(ctx, scope, f)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return "", nil, err
	}
	for _, e := range rows {
		if err := w.Write(exportRecord(e, names)); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}
	return s.exportFilename(scope, "csv"), buf.Bytes(), nil
}

func (s *service) ExportXLSX(ctx context.Context, scope Scope, f ListFilter) (string, []byte, error) {
	rows, names, err := s.exportRows(ctx, scope, f)
	if err != nil {
		return "", nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Attendance"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return "", nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", nil, err
	}

	for i, e := range rows {
		record := exportRecord(e, names)
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", nil, err
		}
		if err := file.SetSheetRow(sheet, cell, &cells); err != nil {
			return "", nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return "", nil, err
	}
	return s.exportFilename(scope, "xlsx"), buf.Bytes(), nil
}

func (s *service) exportRows(ctx context.Context, scope Scope, f ListFilter) ([]shiftentry.ShiftEntry, map[string]string, error) {
	qf, err := buildQueryFilter(scope, f)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.entries.Query(ctx, qf)
	if err != nil {
		return nil, nil, err
	}
	return rows, s.approverNames(ctx, rows), nil
}

func (s *service) exportFilename(scope Scope, ext string) string {
	section := "all"
	if scope.Section != nil {
		section = strings.ToLower(strings.ReplaceAll(*scope.Section, " ", "-"))
	}
	return fmt.Sprintf("%s-attendance-%s.%s", section, s.now().UTC().Format(shiftentry.DateLayout), ext)
}

// approverNames resolves approver ids to full names once per distinct id.
func (s *service) approverNames(ctx context.Context, rows []shiftentry.ShiftEntry) map[string]string {
	names := make(map[string]string)
	for _, e := range rows {
		if e.ApprovedBy == nil {
			continue
		}
		id := *e.ApprovedBy
		if _, seen := names[id]; seen {
			continue
		}
		profile, err := s.profiles.FindByID(ctx, id)
		if err != nil {
			s.logger.Warn("approver lookup failed", zap.String("approver_id", id), zap.Error(err))
			names[id] = id
			continue
		}
		names[id] = profile.FullName
	}
	return names
}

func exportRecord(e shiftentry.ShiftEntry, names map[string]string) []string {
	name, department, section := "", "", "-"
	if e.Employee != nil {
		name = e.Employee.FullName
		department = e.Employee.Department
		if e.Employee.Section != nil {
			section = *e.Employee.Section
		}
	}

	status := "Pending"
	approvedBy, approvedAt := "-", "-"
	if e.Approved {
		status = "Approved"
		if e.ApprovedBy != nil {
			approvedBy = names[*e.ApprovedBy]
		}
		if e.ApprovedAt != nil {
			approvedAt = e.ApprovedAt.UTC().Format(time.RFC3339)
		}
	}

	remark := "-"
	if e.OtherRemark != nil {
		remark = *e.OtherRemark
	}

	return []string{
		e.Date.Format(shiftentry.DateLayout),
		e.EmployeeID,
		name,
		department,
		section,
		shiftentry.FormatShiftType(e.ShiftType),
		status,
		approvedBy,
		approvedAt,
		remark,
	}
}

func buildQueryFilter(scope Scope, f ListFilter) (shiftentry.QueryFilter, error) {
	qf := shiftentry.QueryFilter{
		Section:    scope.Section,
		EmployeeID: f.EmployeeID,
		Approved:   f.Approved,
	}
	if f.Date != nil {
		d := strings.TrimSpace(*f.Date)
		if _, err := time.Parse(shiftentry.DateLayout, d); err != nil {
			return shiftentry.QueryFilter{}, shiftentryerrors.ErrInvalidDateFormat
		}
		qf.Date = &d
	}
	if f.ShiftType != nil {
		if !shiftentry.IsValidShiftType(*f.ShiftType) {
			return shiftentry.QueryFilter{}, shiftentryerrors.ErrInvalidShiftType
		}
		qf.ShiftType = f.ShiftType
	}
	return qf, nil
}

func inScope(scope Scope, e *shiftentry.ShiftEntry) bool {
	if scope.Section == nil {
		return true
	}
	if e.Employee == nil || e.Employee.Section == nil {
		return false
	}
	return *e.Employee.Section == *scope.Section
}

func mapToDetailResponse(e shiftentry.ShiftEntry, names map[string]string) EntryDetailResponse {
	resp := EntryDetailResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID,
		Date:        e.Date.Format(shiftentry.DateLayout),
		ShiftType:   e.ShiftType,
		ShiftLabel:  shiftentry.FormatShiftType(e.ShiftType),
		OtherRemark: e.OtherRemark,
		Approved:    e.Approved,
		ApprovedBy:  e.ApprovedBy,
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
		resp.Department = e.Employee.Department
		resp.Section = e.Employee.Section
	}
	if e.ApprovedBy != nil {
		if name, ok := names[*e.ApprovedBy]; ok {
			resp.ApproverName = &name
		}
	}
	if e.ApprovedAt != nil {
		t := e.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &t
	}
	return resp
}
