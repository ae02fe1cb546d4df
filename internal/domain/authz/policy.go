// Package authz holds the authorization matrix for every mutating
// operation as pure predicates over (role, caller, owner, state).
// Keeping the decisions here, away from persistence and transport,
// lets the matrix be tested on its own.
package authz

import (
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/domain/lifecycle"
)

// Session identifies an authenticated caller
type Session struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the session holds the administrator role
func (s Session) IsAdmin() bool {
	return s.Role == entity.RoleAdmin
}

// CanManageProjects gates project create/update/deactivate: admin only
func CanManageProjects(s Session) bool {
	return s.IsAdmin()
}

// CanMutateTask gates task edit and delete. Administrators may mutate
// any task in any status; the owning employee only while the task is
// still pending. Edits and deletes share the gate: once a task is
// decided its hours are part of approved summaries and only an
// administrator may change or remove them.
func CanMutateTask(s Session, ownerID int64, status lifecycle.Status) bool {
	if s.IsAdmin() {
		return true
	}
	return s.UserID == ownerID && status == lifecycle.StatusPending
}

// CanDecideTask gates approve/reject: admin only
func CanDecideTask(s Session) bool {
	return s.IsAdmin()
}

// CanAmendReview gates review amend/delete: the reviewer who wrote it
func CanAmendReview(s Session, reviewerID int64) bool {
	return s.UserID == reviewerID
}

// CanReply gates writing or deleting a reply: only the employee who
// owns the reviewed task
func CanReply(s Session, taskOwnerID int64) bool {
	return s.UserID == taskOwnerID
}
