// Package policy implements the ownership and visibility rules for submissions.
//
// All predicates are pure and total: absence of permission is expressed as
// false, never as an error, so callers can distinguish "not found" from
// "not authorized" at the boundary.
package policy

import "devvault/internal/models"

// CanView reports whether actor may see the submission. Admins see
// everything, owners see their own submissions in any state, and everyone
// (including anonymous callers, actor == nil) sees approved submissions.
func CanView(actor *models.User, sub *models.Submission) bool {
	if sub == nil {
		return false
	}
	if sub.Status == models.StatusApproved {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || sub.OwnerID == actor.ID
}

// CanDecide reports whether actor may approve or reject the submission.
// Only admins may decide, and only while the submission is pending.
func CanDecide(actor *models.User, sub *models.Submission) bool {
	if actor == nil || sub == nil {
		return false
	}
	return actor.IsAdmin() && sub.Status == models.StatusPending
}

// CanCreate reports whether actor may create submissions. Any authenticated
// user qualifies; anonymous creation is rejected upstream with Unauthorized.
func CanCreate(actor *models.User) bool {
	return actor != nil
}
