// Package lifecycle defines the task approval lifecycle: the status set
// and the transitions a task may undergo.
package lifecycle

// Status represents a task's position in the approval lifecycle
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusPending:  true,
	StatusApproved: true,
	StatusRejected: true,
}

// transitions holds the moves permitted without administrator override
var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

// IsValid returns true if the status is a known lifecycle status
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsDecided returns true once a task has been approved or rejected
func (s Status) IsDecided() bool {
	return s == StatusApproved || s == StatusRejected
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransition reports whether a task may move from one status to
// another. Administrators may move a task to any valid status at any
// time; everyone else is bound to pending -> approved/rejected.
func CanTransition(from, to Status, admin bool) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if admin {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
