package services

import "undangan.link/models"

// CanViewInvitation is the single visibility rule for invitation reads:
// anonymous callers see published invitations only, super admins see
// everything, everyone else sees only what they own. Every read path goes
// through this predicate so the policy cannot drift between handlers.
func CanViewInvitation(viewer *models.User, invitation *models.Invitation) bool {
	if invitation == nil {
		return false
	}
	if invitation.Status == models.InvitationStatusPublished {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.IsSuperAdmin() || invitation.UserID == viewer.ID
}

// CanManageInvitation gates mutating and moderation access: the owner or
// a super admin.
func CanManageInvitation(actor *models.User, invitation *models.Invitation) bool {
	if actor == nil || invitation == nil {
		return false
	}
	return actor.IsSuperAdmin() || invitation.UserID == actor.ID
}
