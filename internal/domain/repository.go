package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByAuthUserID(ctx context.Context, authUserID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id, name, phone string) error
	UpdateProfileImage(ctx context.Context, id, imageURL string) error
	UpdateTier(ctx context.Context, id string, tier Tier) error
	SetActive(ctx context.Context, id string, active bool) error
	// ForEach streams every user through fn without materializing the whole
	// set. A non-nil error from fn aborts the scan.
	ForEach(ctx context.Context, fn func(*User) error) error
}

// TicketTransactionRepository persists the append-only ticket ledger.
// Entries are inserted exactly as computed by the caller and never mutated.
type TicketTransactionRepository interface {
	Append(ctx context.Context, tx *TicketTransaction) error
	SumAmounts(ctx context.Context, userID string) (int, error)
	LastByType(ctx context.Context, userID string, typ TransactionType) (*TicketTransaction, error)
	ListByUser(ctx context.Context, userID string) ([]TicketTransaction, error)
}

// TeamRepository persists teams and their rosters.
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id string) (*Team, error)
	GetByCode(ctx context.Context, code string) (*Team, error)
	Members(ctx context.Context, teamID string) ([]TeamMember, error)
	// SyncMemberCount sets current_members to the count of ACTIVE memberships
	// in the same statement, so the counter cannot drift from the roster.
	SyncMemberCount(ctx context.Context, teamID string) (int, error)
}

// MembershipRepository persists team membership links.
type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	Get(ctx context.Context, teamID, userID string) (*Membership, error)
	SetStatus(ctx context.Context, teamID, userID string, status MembershipStatus) error
	ActiveByUser(ctx context.Context, userID string) ([]Membership, error)
}
