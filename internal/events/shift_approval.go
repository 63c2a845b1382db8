package events

import "time"

const ShiftApprovalTopic = "attendance.shift.approval.v1"

type ShiftEntryApprovedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EntryID    string    `json:"entry_id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	ApprovedBy string    `json:"approved_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
