package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/infra/geoip"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

// Event types this service reacts to. Anything else is skipped with a debug
// log so new producer events never wedge the consumer group.
const (
	EventUserSignedUp        = "auth.user-signed-up"
	EventLoginFailed         = "auth.login-failed"
	EventAccountLocked       = "auth.account-locked"
	EventUserLoggedOut       = "auth.user-logged-out"
	EventSubscriptionChanged = "payment.subscription-changed"
)

// UserEvents is the slice of the user service event handling needs.
type UserEvents interface {
	RegisterFromSignup(ctx context.Context, in service.SignupInput) (*domain.User, error)
	ChangeSubscription(ctx context.Context, userID string, newTier domain.Tier) error
}

// Dispatcher routes decoded events to the user service. Auth security events
// (login-failed, account-locked) are log-only; login failures are enriched
// with the source country when a GeoIP database is configured.
type Dispatcher struct {
	users  UserEvents
	geo    geoip.CountryResolver
	logger zerolog.Logger
}

// NewDispatcher creates the event dispatcher.
func NewDispatcher(users UserEvents, geo geoip.CountryResolver, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{users: users, geo: geo, logger: logger}
}

// Handle processes one raw message from topic. A returned error means the
// message was understood but could not be applied; the caller decides whether
// to commit. Decode failures are also errors: the message will never become
// valid, so the caller should log and commit past it.
func (d *Dispatcher) Handle(ctx context.Context, topic string, payload []byte) error {
	env, err := DecodeEnvelope(payload)
	if err != nil {
		return err
	}
	if env.Type == "" {
		return fmt.Errorf("message on %s has no event type", topic)
	}

	switch env.Type {
	case EventUserSignedUp:
		return d.handleSignedUp(ctx, env.Raw)
	case EventSubscriptionChanged:
		return d.handleSubscriptionChanged(ctx, env.Raw)
	case EventLoginFailed:
		return d.handleLoginFailed(env.Raw)
	case EventAccountLocked:
		return d.handleAccountLocked(env.Raw)
	case EventUserLoggedOut:
		return d.handleLoggedOut(env.Raw)
	default:
		d.logger.Debug().Str("event_type", env.Type).Str("topic", topic).Msg("ignoring event")
		return nil
	}
}

func (d *Dispatcher) handleSignedUp(ctx context.Context, raw json.RawMessage) error {
	var ev SignedUpEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode %s: %w", EventUserSignedUp, err)
	}
	if ev.AuthID() == "" {
		return fmt.Errorf("%s event without auth user id", EventUserSignedUp)
	}

	_, err := d.users.RegisterFromSignup(ctx, service.SignupInput{
		AuthUserID: ev.AuthID(),
		Email:      ev.Email,
		Name:       ev.Name,
		PlanType:   ev.PlanType,
	})
	return err
}

func (d *Dispatcher) handleSubscriptionChanged(ctx context.Context, raw json.RawMessage) error {
	var ev SubscriptionChangedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode %s: %w", EventSubscriptionChanged, err)
	}
	if ev.UserID == "" {
		return fmt.Errorf("%s event without user id", EventSubscriptionChanged)
	}
	return d.users.ChangeSubscription(ctx, ev.UserID, domain.ParseTier(ev.NewPlan))
}

func (d *Dispatcher) handleLoginFailed(raw json.RawMessage) error {
	var ev LoginFailedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode %s: %w", EventLoginFailed, err)
	}

	entry := d.logger.Warn().
		Str("email", ev.Email).
		Str("reason", ev.FailureReason).
		Int("attempt_count", ev.AttemptCount).
		Str("ip", ev.IPAddress)
	if ev.IPAddress != "" {
		if country, err := d.geo.CountryCode(ev.IPAddress); err == nil && country != "" {
			entry = entry.Str("country", country)
		}
	}
	entry.Msg("login failed")
	return nil
}

func (d *Dispatcher) handleAccountLocked(raw json.RawMessage) error {
	var ev AccountLockedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode %s: %w", EventAccountLocked, err)
	}
	d.logger.Warn().
		Str("auth_user_id", ev.AuthUserID).
		Str("email", ev.Email).
		Str("reason", ev.LockReason).
		Int("lock_minutes", ev.LockDurationMinutes).
		Msg("account locked")
	return nil
}

func (d *Dispatcher) handleLoggedOut(raw json.RawMessage) error {
	var ev LoggedOutEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("decode %s: %w", EventUserLoggedOut, err)
	}
	d.logger.Info().
		Str("auth_user_id", ev.AuthUserID).
		Str("reason", ev.LogoutReason).
		Msg("user logged out")
	return nil
}
