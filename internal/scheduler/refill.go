// Package scheduler runs the periodic ticket refill job.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

// TicketRefiller is the slice of the ticket service this job drives.
type TicketRefiller interface {
	MaybeRefill(ctx context.Context, user *domain.User) (bool, error)
}

// Refill walks every user on a fixed period and asks the ticket service
// whether a refill is due. The scan itself carries no state: eligibility is
// decided per user from the ledger, so a missed or doubled tick costs at
// most one extra ledger read per user.
type Refill struct {
	period  time.Duration
	tickets TicketRefiller
	users   domain.UserRepository
	logger  zerolog.Logger
}

// NewRefill creates the refill job.
func NewRefill(period time.Duration, tickets TicketRefiller, users domain.UserRepository, logger zerolog.Logger) *Refill {
	return &Refill{period: period, tickets: tickets, users: users, logger: logger}
}

// Run ticks until ctx is cancelled. The first tick fires after one period,
// not immediately, matching fixed-rate scheduling.
func (r *Refill) Run(ctx context.Context) error {
	r.logger.Info().Dur("period", r.period).Msg("refill scheduler started")

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("refill scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick performs one full refill pass. One failing user must never abort the
// batch: errors and panics are logged per user and the scan continues. Only
// a failure of the user scan itself ends the tick early.
func (r *Refill) Tick(ctx context.Context) {
	var scanned, refilled int

	err := r.users.ForEach(ctx, func(u *domain.User) error {
		scanned++
		ok, err := r.refillOne(ctx, u)
		if err != nil {
			r.logger.Error().Err(err).Str("user_id", u.ID).Msg("refill failed, skipping user")
			return nil
		}
		if ok {
			refilled++
		}
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("refill tick aborted: user scan failed")
	}

	r.logger.Info().
		Int("users_scanned", scanned).
		Int("users_refilled", refilled).
		Msg("refill tick complete")
}

func (r *Refill) refillOne(ctx context.Context, u *domain.User) (ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			ok = false
			err = fmt.Errorf("panic during refill: %v", p)
		}
	}()
	return r.tickets.MaybeRefill(ctx, u)
}
