package shiftentry

import (
	"time"

	"github.com/google/uuid"
)

const (
	ShiftFirst           = "1st_shift"
	ShiftSecond          = "2nd_shift"
	ShiftThird           = "3rd_shift"
	ShiftLeave           = "leave"
	ShiftMedical         = "medical"
	ShiftOTOffDay        = "ot_off_day"
	ShiftOTWeekOff       = "ot_week_off"
	ShiftOTPublicHoliday = "ot_public_holiday"
	ShiftOther           = "other"
)

// ShiftTypes in presentation order.
var ShiftTypes = []string{
	ShiftFirst,
	ShiftSecond,
	ShiftThird,
	ShiftLeave,
	ShiftMedical,
	ShiftOTOffDay,
	ShiftOTWeekOff,
	ShiftOTPublicHoliday,
	ShiftOther,
}

var shiftTypeLabels = map[string]string{
	ShiftFirst:           "1st Shift",
	ShiftSecond:          "2nd Shift",
	ShiftThird:           "3rd Shift",
	ShiftLeave:           "Leave",
	ShiftMedical:         "Medical Leave",
	ShiftOTOffDay:        "OT as Off Day",
	ShiftOTWeekOff:       "OT as Week Off",
	ShiftOTPublicHoliday: "OT as Public Holiday",
	ShiftOther:           "Other",
}

func IsValidShiftType(t string) bool {
	_, ok := shiftTypeLabels[t]
	return ok
}

// FormatShiftType returns the display label for a shift type code.
func FormatShiftType(t string) string {
	if label, ok := shiftTypeLabels[t]; ok {
		return label
	}
	return t
}

const DateLayout = "2006-01-02"

// ShiftEntry is one attendance record. At most one exists per
// (employee_id, date); the unique constraint is the authoritative backstop
// for the submission-time check.
type ShiftEntry struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  string       `gorm:"column:employee_id;type:varchar(40);not null;uniqueIndex:uq_shift_entries_employee_date"`
	Date        time.Time    `gorm:"column:date;type:date;not null;uniqueIndex:uq_shift_entries_employee_date"`
	ShiftType   string       `gorm:"column:shift_type;type:varchar(30);not null"`
	OtherRemark *string      `gorm:"column:other_remark;type:text"`
	CreatedAt   time.Time    `gorm:"column:created_at"`
	Approved    bool         `gorm:"column:approved;not null;default:false"`
	ApprovedBy  *string      `gorm:"column:approved_by;type:varchar(40)"`
	ApprovedAt  *time.Time   `gorm:"column:approved_at"`
	Employee    *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (ShiftEntry) TableName() string {
	return "shift_entries"
}

// EmployeeRef is the slice of the profiles table the entry views need.
type EmployeeRef struct {
	ID         string  `gorm:"column:id;type:varchar(40);primaryKey"`
	FullName   string  `gorm:"column:full_name"`
	Department string  `gorm:"column:department"`
	Section    *string `gorm:"column:section"`
}

func (EmployeeRef) TableName() string {
	return "profiles"
}
