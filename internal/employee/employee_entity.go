package employee

import "time"

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

const DepartmentEngineering = "Engineering"

// Departments an employee may register under.
var Departments = []string{
	"Operations",
	DepartmentEngineering,
	"Human Resource",
	"Finance",
	"Safety",
	"IT",
	"Security",
	"Planning",
	"Others",
}

// Sections exist only inside Engineering; they scope manager authority.
var Sections = []string{
	"QC",
	"RTG",
	"MES",
	"Shift Incharge",
	"Planning",
	"Store",
	"Infra",
	"Others",
}

func IsValidDepartment(d string) bool {
	for _, v := range Departments {
		if v == d {
			return true
		}
	}
	return false
}

func IsValidSection(s string) bool {
	for _, v := range Sections {
		if v == s {
			return true
		}
	}
	return false
}

// Profile is an identity-store row. The id is human-assigned and immutable;
// section is set if and only if department is Engineering.
type Profile struct {
	ID                  string  `gorm:"column:id;type:varchar(40);primaryKey"`
	FullName            string  `gorm:"column:full_name;type:varchar(255);not null"`
	Department          string  `gorm:"column:department;type:varchar(30);not null"`
	Section             *string `gorm:"column:section;type:varchar(30)"`
	Role                string  `gorm:"column:role;type:varchar(20);not null;default:employee"`
	IsApproved          bool    `gorm:"column:is_approved;not null;default:false"`
	PendingRegistration bool    `gorm:"column:pending_registration;not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
