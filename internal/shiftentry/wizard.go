package shiftentry

import (
	"time"

	shiftentryerrors "shifttrack/internal/shiftentry/errors"
)

const (
	StateDateSelection  = "date-selection"
	StateShiftSelection = "shift-selection"
)

// Wizard is the two-phase submission state machine:
//
//	date-selection -> shift-selection -> (submitted) -> date-selection
//
// It is pure state; persistence and duplicate checks are the caller's job.
type Wizard struct {
	State string `json:"state"`
	Date  string `json:"date,omitempty"`
}

func NewWizard() Wizard {
	return Wizard{State: StateDateSelection}
}

// SelectDate validates the date against "today" and the taken predicate,
// then holds it and advances to shift selection.
func (w *Wizard) SelectDate(date string, today time.Time, taken func(string) bool) error {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return shiftentryerrors.ErrInvalidDateFormat
	}

	day := today.Truncate(24 * time.Hour)
	if d.Before(day) {
		return shiftentryerrors.ErrPastDate
	}
	if taken != nil && taken(date) {
		return shiftentryerrors.ErrDuplicateEntryForDate
	}

	w.State = StateShiftSelection
	w.Date = date
	return nil
}

// ChangeDate returns to date selection without losing the employee context.
func (w *Wizard) ChangeDate() {
	w.State = StateDateSelection
	w.Date = ""
}

// Submitted resets the wizard after a successful submission; the flow lands
// back on date selection, not registration.
func (w *Wizard) Submitted() {
	w.State = StateDateSelection
	w.Date = ""
}
