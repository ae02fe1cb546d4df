package entity

import "time"

// Project groups the tasks employees log hours against.
// Projects are created by administrators and soft-disabled via the
// active flag; there is no hard delete.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   int64     `json:"created_by"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project name/description limits enforced at creation and update
const (
	ProjectNameMinLen        = 3
	ProjectNameMaxLen        = 255
	ProjectDescriptionMaxLen = 1000
)
