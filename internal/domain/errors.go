package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientTickets = errors.New("insufficient ticket balance")
	ErrTeamFull            = errors.New("team is at capacity")
	ErrAlreadyMember       = errors.New("user already holds a membership in this team")
	ErrTeamInactive        = errors.New("team is not active")

	// ErrDataIntegrity marks referential corruption, e.g. a membership whose
	// team owner no longer resolves. It is never silently defaulted.
	ErrDataIntegrity = errors.New("data integrity violation")
)
