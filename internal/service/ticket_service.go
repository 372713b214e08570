package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

// TicketService owns the ticket ledger. Balances are never stored: every
// mutation appends an immutable transaction row and the balance is the sum
// of amounts. That derivation is what makes refills auditable and removes
// the shared-counter lost-update class of bugs, so it must not be
// "optimized" into a counter column.
type TicketService struct {
	users    domain.UserRepository
	ledger   domain.TicketTransactionRepository
	resolver *PlanResolver
	logger   zerolog.Logger

	locks *userLocks
	now   func() time.Time
}

// NewTicketService creates the ticket service.
func NewTicketService(users domain.UserRepository, ledger domain.TicketTransactionRepository, resolver *PlanResolver, logger zerolog.Logger) *TicketService {
	return &TicketService{
		users:    users,
		ledger:   ledger,
		resolver: resolver,
		logger:   logger,
		locks:    newUserLocks(),
		now:      time.Now,
	}
}

// Balance returns the user's current ticket balance. A user without any
// ledger rows has balance 0.
func (s *TicketService) Balance(ctx context.Context, userID string) (int, error) {
	return s.ledger.SumAmounts(ctx, userID)
}

// History returns the user's ledger entries, most recent first.
func (s *TicketService) History(ctx context.Context, userID string) ([]domain.TicketTransaction, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// Plan resolves the plan currently governing the user's refills.
func (s *TicketService) Plan(ctx context.Context, userID string) (domain.Plan, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Plan{}, err
	}
	return s.resolver.EffectivePlan(ctx, user)
}

// Consume spends one ticket. It fails with domain.ErrNotFound for an unknown
// user and domain.ErrInsufficientTickets when the balance is zero or below;
// a failed consume appends nothing.
func (s *TicketService) Consume(ctx context.Context, userID, reason string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	balanceBefore, err := s.ledger.SumAmounts(ctx, userID)
	if err != nil {
		return err
	}
	if balanceBefore <= 0 {
		return domain.ErrInsufficientTickets
	}

	tx := domain.NewTicketTransaction(userID, domain.TransactionConsume, -1, balanceBefore, reason)
	if err := s.ledger.Append(ctx, tx); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("reason", reason).
		Int("balance_before", balanceBefore).
		Int("balance_after", tx.BalanceAfter).
		Msg("ticket consumed")
	return nil
}

// GrantInitial hands a new user their plan's welcome tickets. Callers are
// responsible for invoking this exactly once per user; the signup ingestion
// path guards against duplicate events before calling.
func (s *TicketService) GrantInitial(ctx context.Context, user *domain.User) error {
	plan := domain.PlanFor(user.Tier)

	unlock := s.locks.lock(user.ID)
	defer unlock()

	reason := fmt.Sprintf("welcome grant (%s)", plan.Tier)
	tx := domain.NewTicketTransaction(user.ID, domain.TransactionInitial, plan.InitialGrant, 0, reason)
	if err := s.ledger.Append(ctx, tx); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("tier", string(plan.Tier)).
		Int("granted", plan.InitialGrant).
		Int("balance_after", tx.BalanceAfter).
		Msg("initial tickets granted")
	return nil
}

// GrantUpgradeBonus credits the new plan's initial grant on top of the
// current balance. Deliberately uncapped: only REFILL respects MaxBalance.
// An upgrade may push the balance past the cap and that is correct behavior.
func (s *TicketService) GrantUpgradeBonus(ctx context.Context, user *domain.User, newPlan domain.Plan) error {
	unlock := s.locks.lock(user.ID)
	defer unlock()

	balanceBefore, err := s.ledger.SumAmounts(ctx, user.ID)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("plan upgrade bonus (%s)", newPlan.Tier)
	tx := domain.NewTicketTransaction(user.ID, domain.TransactionAdminGrant, newPlan.InitialGrant, balanceBefore, reason)
	if err := s.ledger.Append(ctx, tx); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("new_tier", string(newPlan.Tier)).
		Int("granted", newPlan.InitialGrant).
		Int("balance_before", balanceBefore).
		Int("balance_after", tx.BalanceAfter).
		Msg("upgrade bonus granted")
	return nil
}

// MaybeRefill applies one refill ticket if the user is due. Due means the
// most recent REFILL row is at least one resolved-plan interval old, or no
// REFILL row exists at all. A due user at or above the plan cap gets no row;
// the balance condition alone gates the write, which keeps repeated ticks
// idempotent without any consumed flag. Returns whether a refill happened.
func (s *TicketService) MaybeRefill(ctx context.Context, user *domain.User) (bool, error) {
	plan, err := s.resolver.EffectivePlan(ctx, user)
	if err != nil {
		return false, err
	}

	unlock := s.locks.lock(user.ID)
	defer unlock()

	last, err := s.ledger.LastByType(ctx, user.ID, domain.TransactionRefill)
	if err != nil && err != domain.ErrNotFound {
		return false, err
	}
	if last != nil && s.now().Sub(last.CreatedAt) < plan.RefillInterval {
		return false, nil
	}

	balanceBefore, err := s.ledger.SumAmounts(ctx, user.ID)
	if err != nil {
		return false, err
	}
	if balanceBefore >= plan.MaxBalance {
		return false, nil
	}

	tx := domain.NewTicketTransaction(user.ID, domain.TransactionRefill, 1, balanceBefore, "automatic refill")
	if err := s.ledger.Append(ctx, tx); err != nil {
		return false, err
	}

	s.logger.Debug().
		Str("user_id", user.ID).
		Str("tier", string(plan.Tier)).
		Int("balance_after", tx.BalanceAfter).
		Msg("ticket refilled")
	return true, nil
}
