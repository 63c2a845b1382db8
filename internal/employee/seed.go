package employee

import (
	"context"
	"errors"

	"shifttrack/internal/credentials"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedManager struct {
	id       string
	fullName string
	section  string
	password string
}

// The predefined section managers. Their ids are reserved: registration can
// never claim or overwrite them.
var seededManagers = []seedManager{
	{id: "QC_MGR", fullName: "QC Manager", section: "QC", password: "SH123"},
	{id: "RTG_MGR", fullName: "RTG Manager", section: "RTG", password: "AY123"},
	{id: "MES_MGR", fullName: "MES Manager", section: "MES", password: "MC123"},
	{id: "PLN_MGR", fullName: "Planning Manager", section: "Planning", password: "SA123"},
	{id: "STR_MGR", fullName: "Store Manager", section: "Store", password: "IF123"},
	{id: "INF_MGR", fullName: "Infra Manager", section: "Infra", password: "HD123"},
}

// IsReservedID reports whether the id belongs to a seeded manager.
func IsReservedID(id string) bool {
	for _, m := range seededManagers {
		if m.id == id {
			return true
		}
	}
	return false
}

// SeedManagers inserts the predefined managers and their login credentials.
// Existing rows are left untouched so a restart never resets a changed
// password or demotes a manager.
func SeedManagers(ctx context.Context, repo Repository, creds credentials.Store) error {
	logger := zap.L().Named("employee.seed")

	for _, m := range seededManagers {
		_, err := repo.FindByID(ctx, m.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		section := m.section
		profile := &Profile{
			ID:                  m.id,
			FullName:            m.fullName,
			Department:          DepartmentEngineering,
			Section:             &section,
			Role:                RoleManager,
			IsApproved:          true,
			PendingRegistration: false,
		}
		if err := repo.Create(ctx, profile); err != nil {
			return mapRepositoryError(err)
		}
		if err := creds.Create(ctx, m.id, credentials.DeriveEmail(m.id), m.password); err != nil {
			return err
		}
		logger.Info("seeded manager", zap.String("manager_id", m.id), zap.String("section", m.section))
	}

	return nil
}
