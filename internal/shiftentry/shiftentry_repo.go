package shiftentry

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// QueryFilter narrows the entry listing. Nil fields match everything;
// Section is the manager scope and is always applied first when set.
type QueryFilter struct {
	Section    *string
	Date       *string
	EmployeeID *string
	ShiftType  *string
	Approved   *bool
}

//go:generate mockgen -source=shiftentry_repo.go -destination=mock/shiftentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *ShiftEntry) error
	FindByID(ctx context.Context, id string) (*ShiftEntry, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ShiftEntry, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]ShiftEntry, error)
	FindDatesByEmployee(ctx context.Context, employeeID string) ([]string, error)
	Query(ctx context.Context, f QueryFilter) ([]ShiftEntry, error)
	MarkApproved(ctx context.Context, id, approvedBy string, approvedAt time.Time) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, e *ShiftEntry) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO shift_entries (id, employee_id, date, shift_type, other_remark, approved)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.ID, e.EmployeeID, e.Date.Format(DateLayout), e.ShiftType, e.OtherRemark, e.Approved)
		return err
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*ShiftEntry, error) {
	var e ShiftEntry
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*ShiftEntry, error) {
	var e ShiftEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(DateLayout)).
		First(&e).Error
	return &e, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ShiftEntry, error) {
	var rows []ShiftEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindDatesByEmployee(ctx context.Context, employeeID string) ([]string, error) {
	var dates []string
	err := r.db.WithContext(ctx).
		Model(&ShiftEntry{}).
		Where("employee_id = ?", employeeID).
		Order("date ASC").
		Pluck("to_char(date, 'YYYY-MM-DD')", &dates).Error
	return dates, err
}

func (r *repository) Query(ctx context.Context, f QueryFilter) ([]ShiftEntry, error) {
	q := r.db.WithContext(ctx).
		Model(&ShiftEntry{}).
		Joins("JOIN profiles ON profiles.id = shift_entries.employee_id").
		Preload("Employee")

	if f.Section != nil {
		q = q.Where("profiles.section = ?", *f.Section)
	}
	if f.Date != nil {
		q = q.Where("shift_entries.date = ?", *f.Date)
	}
	if f.EmployeeID != nil {
		q = q.Where("shift_entries.employee_id = ?", *f.EmployeeID)
	}
	if f.ShiftType != nil {
		q = q.Where("shift_entries.shift_type = ?", *f.ShiftType)
	}
	if f.Approved != nil {
		q = q.Where("shift_entries.approved = ?", *f.Approved)
	}

	var rows []ShiftEntry
	err := q.Order("shift_entries.created_at DESC").Find(&rows).Error
	return rows, err
}

// MarkApproved stamps an entry exactly once. The approved = false guard
// makes concurrent approvals race on the update itself; the loser sees
// gorm.ErrRecordNotFound.
func (r *repository) MarkApproved(ctx context.Context, id, approvedBy string, approvedAt time.Time) error {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, `
			UPDATE shift_entries
			SET approved = true, approved_by = $2, approved_at = $3
			WHERE id = $1 AND approved = false
		`, id, approvedBy, approvedAt)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&ShiftEntry{}).
		Where("id = ? AND approved = false", id).
		Updates(map[string]any{
			"approved":    true,
			"approved_by": approvedBy,
			"approved_at": approvedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
