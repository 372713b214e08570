package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

// PlanResolver computes the plan that actually governs a user's ticket
// economy. A user's own tier is overridden when they hold an ACTIVE
// membership in a team whose owner is on ENTERPRISE: the team plan extends
// to the roster.
type PlanResolver struct {
	users       domain.UserRepository
	teams       domain.TeamRepository
	memberships domain.MembershipRepository
	logger      zerolog.Logger
}

// NewPlanResolver creates a PlanResolver.
func NewPlanResolver(users domain.UserRepository, teams domain.TeamRepository, memberships domain.MembershipRepository, logger zerolog.Logger) *PlanResolver {
	return &PlanResolver{users: users, teams: teams, memberships: memberships, logger: logger}
}

// EffectivePlan resolves the governing plan for a user. The first ACTIVE
// membership whose team owner is ENTERPRISE wins; ordering among several
// qualifying teams does not matter because the outcome is identical. A
// membership pointing at a team or owner that cannot be resolved is
// referential corruption and fails loudly with domain.ErrDataIntegrity —
// never a silent fallback to the user's own tier.
func (r *PlanResolver) EffectivePlan(ctx context.Context, user *domain.User) (domain.Plan, error) {
	memberships, err := r.memberships.ActiveByUser(ctx, user.ID)
	if err != nil {
		return domain.Plan{}, err
	}

	for _, m := range memberships {
		team, err := r.teams.GetByID(ctx, m.TeamID)
		if err != nil {
			if err == domain.ErrNotFound {
				return domain.Plan{}, fmt.Errorf("%w: membership %s references missing team %s", domain.ErrDataIntegrity, m.ID, m.TeamID)
			}
			return domain.Plan{}, err
		}
		if team.Status != domain.TeamStatusActive {
			continue
		}

		owner, err := r.users.GetByID(ctx, team.OwnerID)
		if err != nil {
			if err == domain.ErrNotFound {
				return domain.Plan{}, fmt.Errorf("%w: team %s references missing owner %s", domain.ErrDataIntegrity, team.ID, team.OwnerID)
			}
			return domain.Plan{}, err
		}

		if owner.Tier == domain.TierEnterprise {
			r.logger.Debug().
				Str("user_id", user.ID).
				Str("team_id", team.ID).
				Msg("enterprise team overrides user tier")
			return domain.PlanFor(domain.TierEnterprise), nil
		}
	}

	return domain.PlanFor(user.Tier), nil
}
