package review

// ListFilter narrows the review listing. All fields are optional; the
// section scope is never part of the filter, it comes from the session.
type ListFilter struct {
	Date       *string `form:"date"`
	EmployeeID *string `form:"employee_id"`
	ShiftType  *string `form:"shift_type"`
	Approved   *bool   `form:"approved"`
}

type EntryDetailResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	Section      *string `json:"section,omitempty"`
	Date         string  `json:"date"`
	ShiftType    string  `json:"shift_type"`
	ShiftLabel   string  `json:"shift_label"`
	OtherRemark  *string `json:"other_remark,omitempty"`
	Approved     bool    `json:"approved"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApproverName *string `json:"approver_name,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
}
