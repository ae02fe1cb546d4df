package entity

import (
	"time"

	"github.com/taskboard/taskboard/internal/domain/lifecycle"
)

// Task is a unit of work logged by an employee against a project,
// carrying expected vs. actual hours and an approval status.
type Task struct {
	ID              int64            `json:"id"`
	ProjectID       int64            `json:"project_id"`
	EmployeeID      int64            `json:"employee_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	ExpectedHours   float64          `json:"expected_hours"`
	ActualHours     float64          `json:"actual_hours"`
	Status          lifecycle.Status `json:"status"`
	ApprovedBy      *int64           `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Display-only fields joined on read, never written back
	ProjectName   string `json:"project_name,omitempty"`
	EmployeeName  string `json:"employee_name,omitempty"`
	EmployeeEmail string `json:"employee_email,omitempty"`
}

// TaskFilter defines the conjunctive filters supported by task listing
type TaskFilter struct {
	ProjectID  *int64
	Status     *lifecycle.Status
	EmployeeID *int64
}
