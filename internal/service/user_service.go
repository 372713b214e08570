package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/providers/mission"
)

// MissionAttempts is the slice of the mission client the user service needs.
type MissionAttempts interface {
	Attempts(ctx context.Context, userID, status string) ([]mission.AttemptSummary, error)
}

// SignupInput carries the fields of an auth user-signed-up event that this
// service persists.
type SignupInput struct {
	AuthUserID string
	Email      string
	Name       string
	PlanType   string
}

// Dashboard combines the user row with their mission activity.
type Dashboard struct {
	User       *domain.User
	InProgress []mission.AttemptSummary
	Completed  []mission.AttemptSummary
}

// Passport is the completed-missions view shown as a stamped passport.
type Passport struct {
	Name       string
	StampCount int
	Missions   []mission.AttemptSummary
}

// UserService manages user profiles and subscription changes.
type UserService struct {
	users    domain.UserRepository
	tickets  *TicketService
	missions MissionAttempts
	logger   zerolog.Logger
}

// NewUserService creates the user service.
func NewUserService(users domain.UserRepository, tickets *TicketService, missions MissionAttempts, logger zerolog.Logger) *UserService {
	return &UserService{users: users, tickets: tickets, missions: missions, logger: logger}
}

// RegisterFromSignup creates the user profile for a signup event and grants
// the welcome tickets. Kafka delivers at-least-once, so the same event can
// arrive twice; an existing profile for the AuthUserID makes this a logged
// no-op rather than a double grant.
func (s *UserService) RegisterFromSignup(ctx context.Context, in SignupInput) (*domain.User, error) {
	existing, err := s.users.GetByAuthUserID(ctx, in.AuthUserID)
	if err == nil {
		s.logger.Warn().
			Str("auth_user_id", in.AuthUserID).
			Str("user_id", existing.ID).
			Msg("signup event for existing user, skipping")
		return existing, nil
	}
	if err != domain.ErrNotFound {
		return nil, err
	}

	user := &domain.User{
		ID:         uuid.NewString(),
		AuthUserID: in.AuthUserID,
		Email:      in.Email,
		Name:       in.Name,
		Tier:       domain.ParseTier(in.PlanType),
		Active:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.tickets.GrantInitial(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("auth_user_id", in.AuthUserID).
		Str("user_id", user.ID).
		Str("tier", string(user.Tier)).
		Msg("new user registered")
	return user, nil
}

// Profile returns the user row.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes name and phone, keeping current values for blank
// fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, phone string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = user.Name
	}
	if phone == "" {
		phone = user.Phone
	}
	if err := s.users.UpdateProfile(ctx, userID, name, phone); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateProfileImage stores a new profile image URL.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID, imageURL string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.users.UpdateProfileImage(ctx, userID, imageURL)
}

// Deactivate marks the user inactive. Profiles are never hard-deleted.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.users.SetActive(ctx, userID, false)
}

// ChangeSubscription moves the user to a new tier and grants the new plan's
// upgrade bonus. The bonus ignores the plan cap on purpose.
func (s *UserService) ChangeSubscription(ctx context.Context, userID string, newTier domain.Tier) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateTier(ctx, userID, newTier); err != nil {
		return err
	}
	user.Tier = newTier
	if err := s.tickets.GrantUpgradeBonus(ctx, user, domain.PlanFor(newTier)); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("new_tier", string(newTier)).
		Msg("subscription changed")
	return nil
}

// GetDashboard assembles the user row plus in-progress and completed mission
// attempts. A mission-service failure degrades to empty lists; the dashboard
// must still render the user's own data.
func (s *UserService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{User: user}
	attempts, err := s.missions.Attempts(ctx, userID, "")
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("mission service unavailable, dashboard degraded")
		return dash, nil
	}
	for _, a := range attempts {
		switch a.Status {
		case mission.StatusInProgress:
			dash.InProgress = append(dash.InProgress, a)
		case mission.StatusCompleted:
			dash.Completed = append(dash.Completed, a)
		}
	}
	return dash, nil
}

// GetPassport returns the completed-mission passport view.
func (s *UserService) GetPassport(ctx context.Context, userID string) (*Passport, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.missions.Attempts(ctx, userID, mission.StatusCompleted)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("mission service unavailable, passport degraded")
		completed = nil
	}
	return &Passport{Name: user.Name, StampCount: len(completed), Missions: completed}, nil
}
