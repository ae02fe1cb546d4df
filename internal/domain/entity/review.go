package entity

import "time"

// Rating bounds for a review
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is a 1-5 star rating with optional feedback attached to a task.
// ReviewerType is denormalized at creation so the record keeps saying
// what the reviewer was even if their account role changes later.
// Reply and RepliedAt belong to the task's owning employee and are
// always set or cleared together.
type Review struct {
	ID           int64      `json:"id"`
	TaskID       int64      `json:"task_id"`
	ReviewerID   int64      `json:"reviewer_id"`
	ReviewerType string     `json:"reviewer_type"`
	Rating       int        `json:"rating"`
	Feedback     string     `json:"feedback,omitempty"`
	Reply        string     `json:"reply,omitempty"`
	RepliedAt    *time.Time `json:"replied_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Display-only fields joined on read
	ReviewerName  string `json:"reviewer_name,omitempty"`
	ReviewerEmail string `json:"reviewer_email,omitempty"`
}
