package shiftentry

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SubmitShiftRequest struct {
	Date        string  `json:"date" binding:"required"`
	ShiftType   string  `json:"shift_type" binding:"required"`
	OtherRemark *string `json:"other_remark"`
}

type WizardResponse struct {
	State string `json:"state"`
	Date  string `json:"date,omitempty"`
}

type EntryResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	ShiftType   string  `json:"shift_type"`
	ShiftLabel  string  `json:"shift_label"`
	OtherRemark *string `json:"other_remark,omitempty"`
	CreatedAt   string  `json:"created_at"`
	Approved    bool    `json:"approved"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
}
