package timeentry

type RecordTimeEntryRequest struct {
	EmployeeID      string  `json:"employee_id" binding:"required"`
	EntryDate       string  `json:"entry_date" binding:"required"`
	RegularHours    string  `json:"regular_hours" binding:"required"`
	OvertimeHours   string  `json:"overtime_hours"`
	Source          string  `json:"source"`
	SourceReference *string `json:"source_reference"`
	Notes           *string `json:"notes"`
}

type ImportTimeEntriesRequest struct {
	Entries []RecordTimeEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

type SetStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	ApprovedBy *string `json:"approved_by"`
}

type QueryTimeEntriesRequest struct {
	EmployeeID string `form:"employee_id" binding:"required"`
	From       string `form:"from" binding:"required"`
	To         string `form:"to" binding:"required"`
	Status     string `form:"status"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EntryDate       string  `json:"entry_date"`
	RegularHours    string  `json:"regular_hours"`
	OvertimeHours   string  `json:"overtime_hours"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`
	SourceReference *string `json:"source_reference,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
}
