package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	FindPending(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, p *Profile) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO profiles (id, full_name, department, section, role, is_approved, pending_registration)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.ID, p.FullName, p.Department, p.Section, p.Role, p.IsApproved, p.PendingRegistration)
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]Profile, error) {
	var rows []Profile
	err := r.db.WithContext(ctx).
		Order("role DESC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPending(ctx context.Context) ([]Profile, error) {
	var rows []Profile
	err := r.db.WithContext(ctx).
		Where("pending_registration = ?", true).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE profiles
			SET is_approved = $2, pending_registration = $3, updated_at = now()
			WHERE id = $1
		`, p.ID, p.IsApproved, p.PendingRegistration)
		return err
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
		return err
	}
	return r.db.WithContext(ctx).Delete(&Profile{}, "id = ?", id).Error
}
