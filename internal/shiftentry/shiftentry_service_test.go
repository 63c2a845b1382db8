package shiftentry_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"shifttrack/internal/employee"
	"shifttrack/internal/shiftentry"
	shiftentryerrors "shifttrack/internal/shiftentry/errors"
	"shifttrack/internal/shiftentry/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeProfileDirectory struct {
	profiles map[string]*employee.Profile
}

func (f *fakeProfileDirectory) FindByID(_ context.Context, id string) (*employee.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func activeProfile(id string) *employee.Profile {
	return &employee.Profile{
		ID:         id,
		FullName:   "Asha Rao",
		Department: "Engineering",
		Role:       employee.RoleEmployee,
		IsApproved: true,
	}
}

func pendingProfile(id string) *employee.Profile {
	p := activeProfile(id)
	p.IsApproved = false
	p.PendingRegistration = true
	return p
}

func tomorrow() string {
	return time.Now().UTC().AddDate(0, 0, 1).Format(shiftentry.DateLayout)
}

func yesterday() string {
	return time.Now().UTC().AddDate(0, 0, -1).Format(shiftentry.DateLayout)
}

func newServiceUnderTest(t *testing.T, profiles *fakeProfileDirectory) (shiftentry.Service, *mock.MockRepository, redismock.ClientMock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	rdb, rmock := redismock.NewClientMock()
	svc := shiftentry.NewService(repo, profiles, shiftentry.NewWizardStore(rdb))
	return svc, repo, rmock
}

func TestSubmitBlockedWhileRegistrationPending(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": pendingProfile("E100"),
	}}
	svc, _, _ := newServiceUnderTest(t, profiles)

	_, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:      tomorrow(),
		ShiftType: shiftentry.ShiftFirst,
	})

	assert.ErrorIs(t, err, shiftentryerrors.ErrRegistrationPending)
}

func TestSubmitRejectsPastDate(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, _, _ := newServiceUnderTest(t, profiles)

	_, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:      yesterday(),
		ShiftType: shiftentry.ShiftFirst,
	})

	assert.ErrorIs(t, err, shiftentryerrors.ErrPastDate)
}

func TestSubmitRejectsUnknownShiftType(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, _, _ := newServiceUnderTest(t, profiles)

	_, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:      tomorrow(),
		ShiftType: "night_shift",
	})

	assert.ErrorIs(t, err, shiftentryerrors.ErrInvalidShiftType)
}

func TestSubmitOtherRequiresRemark(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, _, _ := newServiceUnderTest(t, profiles)

	blank := "   "
	_, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:        tomorrow(),
		ShiftType:   shiftentry.ShiftOther,
		OtherRemark: &blank,
	})

	assert.ErrorIs(t, err, shiftentryerrors.ErrRemarkRequired)
}

func TestSubmitDropsRemarkForNamedShiftType(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, repo, rmock := newServiceUnderTest(t, profiles)

	var created *shiftentry.ShiftEntry
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *shiftentry.ShiftEntry) error {
			created = e
			return nil
		},
	)
	rmock.ExpectDel("wizard:E100").SetVal(1)

	remark := "forgot my badge"
	resp, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:        tomorrow(),
		ShiftType:   shiftentry.ShiftSecond,
		OtherRemark: &remark,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.OtherRemark)
	assert.Nil(t, resp.OtherRemark)
	assert.Equal(t, "2nd Shift", resp.ShiftLabel)
}

func TestSubmitDuplicateDateConflicts(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, repo, _ := newServiceUnderTest(t, profiles)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

	_, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:      tomorrow(),
		ShiftType: shiftentry.ShiftFirst,
	})

	assert.ErrorIs(t, err, shiftentryerrors.ErrDuplicateEntryForDate)
}

func TestSubmitSuccessResetsWizard(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, repo, rmock := newServiceUnderTest(t, profiles)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	rmock.ExpectDel("wizard:E100").SetVal(1)

	remark := "covering for a colleague"
	resp, err := svc.Submit(context.Background(), "E100", shiftentry.SubmitShiftRequest{
		Date:        tomorrow(),
		ShiftType:   shiftentry.ShiftOther,
		OtherRemark: &remark,
	})

	require.NoError(t, err)
	assert.Equal(t, "E100", resp.EmployeeID)
	assert.Equal(t, tomorrow(), resp.Date)
	assert.Equal(t, "Other", resp.ShiftLabel)
	require.NotNil(t, resp.OtherRemark)
	assert.Equal(t, remark, *resp.OtherRemark)
	assert.False(t, resp.Approved)
	assert.NoError(t, rmock.ExpectationsWereMet())
}

func TestSelectDateRejectsTakenDate(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, repo, rmock := newServiceUnderTest(t, profiles)

	repo.EXPECT().FindDatesByEmployee(gomock.Any(), "E100").Return([]string{tomorrow()}, nil)
	rmock.ExpectGet("wizard:E100").RedisNil()

	_, err := svc.SelectDate(context.Background(), "E100", shiftentry.SelectDateRequest{Date: tomorrow()})

	assert.ErrorIs(t, err, shiftentryerrors.ErrDuplicateEntryForDate)
}

func TestSelectDateAdvancesAndPersistsWizard(t *testing.T) {
	profiles := &fakeProfileDirectory{profiles: map[string]*employee.Profile{
		"E100": activeProfile("E100"),
	}}
	svc, repo, rmock := newServiceUnderTest(t, profiles)

	repo.EXPECT().FindDatesByEmployee(gomock.Any(), "E100").Return(nil, nil)
	rmock.ExpectGet("wizard:E100").RedisNil()

	saved, _ := json.Marshal(shiftentry.Wizard{State: shiftentry.StateShiftSelection, Date: tomorrow()})
	rmock.ExpectSet("wizard:E100", saved, 30*time.Minute).SetVal("OK")

	resp, err := svc.SelectDate(context.Background(), "E100", shiftentry.SelectDateRequest{Date: tomorrow()})

	require.NoError(t, err)
	assert.Equal(t, shiftentry.StateShiftSelection, resp.State)
	assert.Equal(t, tomorrow(), resp.Date)
	assert.NoError(t, rmock.ExpectationsWereMet())
}
