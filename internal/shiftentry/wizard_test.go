package shiftentry

import (
	"testing"
	"time"

	shiftentryerrors "shifttrack/internal/shiftentry/errors"

	"github.com/stretchr/testify/assert"
)

var wizardToday = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func TestNewWizardStartsAtDateSelection(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StateDateSelection, w.State)
	assert.Empty(t, w.Date)
}

func TestWizardSelectDateAdvances(t *testing.T) {
	w := NewWizard()

	err := w.SelectDate("2025-03-12", wizardToday, nil)

	assert.NoError(t, err)
	assert.Equal(t, StateShiftSelection, w.State)
	assert.Equal(t, "2025-03-12", w.Date)
}

func TestWizardSelectDateAcceptsToday(t *testing.T) {
	w := NewWizard()

	err := w.SelectDate("2025-03-10", wizardToday, nil)

	assert.NoError(t, err)
	assert.Equal(t, StateShiftSelection, w.State)
}

func TestWizardSelectDateRejectsPast(t *testing.T) {
	w := NewWizard()

	err := w.SelectDate("2025-03-09", wizardToday, nil)

	assert.ErrorIs(t, err, shiftentryerrors.ErrPastDate)
	assert.Equal(t, StateDateSelection, w.State)
}

func TestWizardSelectDateRejectsBadFormat(t *testing.T) {
	w := NewWizard()

	err := w.SelectDate("12-03-2025", wizardToday, nil)

	assert.ErrorIs(t, err, shiftentryerrors.ErrInvalidDateFormat)
}

func TestWizardSelectDateRejectsTaken(t *testing.T) {
	w := NewWizard()

	err := w.SelectDate("2025-03-12", wizardToday, func(d string) bool {
		return d == "2025-03-12"
	})

	assert.ErrorIs(t, err, shiftentryerrors.ErrDuplicateEntryForDate)
	assert.Equal(t, StateDateSelection, w.State)
}

func TestWizardChangeDateReturnsToDateSelection(t *testing.T) {
	w := NewWizard()
	_ = w.SelectDate("2025-03-12", wizardToday, nil)

	w.ChangeDate()

	assert.Equal(t, StateDateSelection, w.State)
	assert.Empty(t, w.Date)
}

func TestWizardSubmittedResetsForNextEntry(t *testing.T) {
	w := NewWizard()
	_ = w.SelectDate("2025-03-12", wizardToday, nil)

	w.Submitted()

	assert.Equal(t, StateDateSelection, w.State)
	assert.Empty(t, w.Date)
}
