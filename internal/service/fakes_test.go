package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type memUserRepo struct {
	users map[string]*domain.User

	forEachErr error
}

func newMemUserRepo(users ...*domain.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("duplicate user %s", user.ID)
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByAuthUserID(_ context.Context, authUserID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.AuthUserID == authUserID {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id, name, phone string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Name = name
	u.Phone = phone
	return nil
}

func (r *memUserRepo) UpdateProfileImage(_ context.Context, id, imageURL string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.ProfileImageURL = imageURL
	return nil
}

func (r *memUserRepo) UpdateTier(_ context.Context, id string, tier domain.Tier) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Tier = tier
	return nil
}

func (r *memUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Active = active
	return nil
}

func (r *memUserRepo) ForEach(_ context.Context, fn func(*domain.User) error) error {
	if r.forEachErr != nil {
		return r.forEachErr
	}
	for _, u := range r.users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return nil
}

type memLedger struct {
	entries map[string][]domain.TicketTransaction

	appendErr error
}

func newMemLedger() *memLedger {
	return &memLedger{entries: make(map[string][]domain.TicketTransaction)}
}

func (l *memLedger) Append(_ context.Context, tx *domain.TicketTransaction) error {
	if l.appendErr != nil {
		return l.appendErr
	}
	l.entries[tx.UserID] = append(l.entries[tx.UserID], *tx)
	return nil
}

func (l *memLedger) SumAmounts(_ context.Context, userID string) (int, error) {
	sum := 0
	for _, tx := range l.entries[userID] {
		sum += tx.Amount
	}
	return sum, nil
}

func (l *memLedger) LastByType(_ context.Context, userID string, typ domain.TransactionType) (*domain.TicketTransaction, error) {
	entries := l.entries[userID]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Type == typ {
			tx := entries[i]
			return &tx, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (l *memLedger) ListByUser(_ context.Context, userID string) ([]domain.TicketTransaction, error) {
	entries := l.entries[userID]
	out := make([]domain.TicketTransaction, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

type memTeamRepo struct {
	teams       map[string]*domain.Team
	memberships *memMembershipRepo
}

func newMemTeamRepo(memberships *memMembershipRepo, teams ...*domain.Team) *memTeamRepo {
	r := &memTeamRepo{teams: make(map[string]*domain.Team), memberships: memberships}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *memTeamRepo) Create(_ context.Context, team *domain.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *memTeamRepo) GetByID(_ context.Context, id string) (*domain.Team, error) {
	if t, ok := r.teams[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memTeamRepo) GetByCode(_ context.Context, code string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memTeamRepo) Members(_ context.Context, teamID string) ([]domain.TeamMember, error) {
	var out []domain.TeamMember
	for _, m := range r.memberships.rows {
		if m.TeamID == teamID {
			out = append(out, domain.TeamMember{UserID: m.UserID, Role: m.Role, Status: m.Status, JoinedAt: m.JoinedAt})
		}
	}
	return out, nil
}

func (r *memTeamRepo) SyncMemberCount(_ context.Context, teamID string) (int, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	count := 0
	for _, m := range r.memberships.rows {
		if m.TeamID == teamID && m.Status == domain.MembershipActive {
			count++
		}
	}
	t.CurrentMembers = count
	return count, nil
}

type memMembershipRepo struct {
	rows []*domain.Membership
}

func newMemMembershipRepo() *memMembershipRepo {
	return &memMembershipRepo{}
}

func (r *memMembershipRepo) Create(_ context.Context, m *domain.Membership) error {
	for _, existing := range r.rows {
		if existing.TeamID == m.TeamID && existing.UserID == m.UserID {
			return domain.ErrAlreadyMember
		}
	}
	r.rows = append(r.rows, m)
	return nil
}

func (r *memMembershipRepo) Get(_ context.Context, teamID, userID string) (*domain.Membership, error) {
	for _, m := range r.rows {
		if m.TeamID == teamID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memMembershipRepo) SetStatus(_ context.Context, teamID, userID string, status domain.MembershipStatus) error {
	for _, m := range r.rows {
		if m.TeamID == teamID && m.UserID == userID {
			m.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memMembershipRepo) ActiveByUser(_ context.Context, userID string) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, m := range r.rows {
		if m.UserID == userID && m.Status == domain.MembershipActive {
			out = append(out, *m)
		}
	}
	return out, nil
}
