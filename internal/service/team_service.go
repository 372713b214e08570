package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

// TeamView is a team together with its roster.
type TeamView struct {
	Team    *domain.Team
	Members []domain.TeamMember
}

// TeamService manages teams and memberships.
type TeamService struct {
	teams       domain.TeamRepository
	memberships domain.MembershipRepository
	users       domain.UserRepository
	logger      zerolog.Logger
}

// NewTeamService creates the team service.
func NewTeamService(teams domain.TeamRepository, memberships domain.MembershipRepository, users domain.UserRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{teams: teams, memberships: memberships, users: users, logger: logger}
}

// Create makes a new team owned by ownerID, enrolls the owner as LEADER and
// syncs the member counter from the roster.
func (s *TeamService) Create(ctx context.Context, ownerID, name, description string) (*domain.Team, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	team := &domain.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Code:        newTeamCode(),
		OwnerID:     owner.ID,
		MaxMembers:  domain.DefaultTeamCapacity,
		Status:      domain.TeamStatusActive,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}

	leader := &domain.Membership{
		TeamID: team.ID,
		UserID: owner.ID,
		Role:   domain.RoleLeader,
		Status: domain.MembershipActive,
	}
	if err := s.memberships.Create(ctx, leader); err != nil {
		return nil, err
	}

	count, err := s.teams.SyncMemberCount(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.CurrentMembers = count

	s.logger.Info().
		Str("team_id", team.ID).
		Str("team_code", team.Code).
		Str("owner_id", owner.ID).
		Msg("team created")
	return team, nil
}

// Join enrolls a user in the team identified by its join code. A user who
// left earlier keeps their INACTIVE row; joining again reactivates that row
// instead of inserting a second one. Conflicts: team not ACTIVE, team at
// capacity, or an already ACTIVE membership.
func (s *TeamService) Join(ctx context.Context, teamCode, userID string) (*domain.Membership, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	team, err := s.teams.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(teamCode)))
	if err != nil {
		return nil, err
	}
	if team.Status != domain.TeamStatusActive {
		return nil, domain.ErrTeamInactive
	}
	if team.CurrentMembers >= team.MaxMembers {
		return nil, domain.ErrTeamFull
	}

	m, err := s.memberships.Get(ctx, team.ID, user.ID)
	switch {
	case err == nil && m.Status == domain.MembershipActive:
		return nil, domain.ErrAlreadyMember
	case err == nil:
		if err := s.memberships.SetStatus(ctx, team.ID, user.ID, domain.MembershipActive); err != nil {
			return nil, err
		}
		m.Status = domain.MembershipActive
	case errors.Is(err, domain.ErrNotFound):
		m = &domain.Membership{
			TeamID: team.ID,
			UserID: user.ID,
			Role:   domain.RoleMember,
			Status: domain.MembershipActive,
		}
		if err := s.memberships.Create(ctx, m); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	count, err := s.teams.SyncMemberCount(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("team_id", team.ID).
		Str("user_id", user.ID).
		Int("current_members", count).
		Msg("user joined team")
	return m, nil
}

// Leave flips the membership to INACTIVE and re-syncs the counter. The row
// stays, so the user's ledger history and the team's roster history survive.
func (s *TeamService) Leave(ctx context.Context, teamID, userID string) error {
	if err := s.memberships.SetStatus(ctx, teamID, userID, domain.MembershipInactive); err != nil {
		return err
	}
	count, err := s.teams.SyncMemberCount(ctx, teamID)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("team_id", teamID).
		Str("user_id", userID).
		Int("current_members", count).
		Msg("user left team")
	return nil
}

// Get returns a team with its member roster.
func (s *TeamService) Get(ctx context.Context, teamID string) (*TeamView, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.teams.Members(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return &TeamView{Team: team, Members: members}, nil
}

// newTeamCode derives an 8-character join code from a fresh UUID.
func newTeamCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
