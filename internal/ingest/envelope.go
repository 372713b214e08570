// Package ingest decodes and dispatches the event streams this service
// consumes: auth-events, subscription-events and payment-events.
package ingest

import (
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime decodes the timestamp shapes seen across event producers: RFC3339
// strings, epoch numbers (seconds or milliseconds), and the broken-down
// [year, month, day, hour, minute, second] array some serializers emit.
// Anything else is an explicit decode error, never a silent zero.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseTimeString(s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	case '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("timestamp array: %w", err)
		}
		parsed, err := timeFromParts(parts)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	default:
		var epoch float64
		if err := json.Unmarshal(data, &epoch); err != nil {
			return fmt.Errorf("unsupported timestamp form: %s", data)
		}
		t.Time = timeFromEpoch(epoch)
		return nil
	}
}

func parseTimeString(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp string %q", s)
}

// Epoch values beyond the year ~5000 in seconds are taken as milliseconds.
func timeFromEpoch(epoch float64) time.Time {
	const msThreshold = 1e11
	if epoch >= msThreshold {
		return time.UnixMilli(int64(epoch)).UTC()
	}
	return time.Unix(int64(epoch), 0).UTC()
}

func timeFromParts(parts []int) (time.Time, error) {
	if len(parts) < 6 {
		return time.Time{}, fmt.Errorf("timestamp array has %d elements, need at least 6", len(parts))
	}
	nsec := 0
	if len(parts) > 6 {
		nsec = parts[6]
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], nsec, time.UTC), nil
}

// Envelope is the minimal common shape of every consumed message: a type
// discriminator plus the raw payload for a second, typed decode. Producers
// disagree on the discriminator key, so both spellings are accepted.
type Envelope struct {
	Type string
	Raw  json.RawMessage
}

// DecodeEnvelope extracts the event type from a raw message.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var probe struct {
		EventType       string `json:"event_type"`
		LegacyEventType string `json:"eventType"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	typ := probe.EventType
	if typ == "" {
		typ = probe.LegacyEventType
	}
	return &Envelope{Type: typ, Raw: json.RawMessage(data)}, nil
}

// SignedUpEvent announces a new account in the auth service. AuthUserID is
// the idempotency key; older producers emitted it as auth0Id.
type SignedUpEvent struct {
	AuthUserID   string   `json:"authUserId"`
	LegacyAuthID string   `json:"auth0Id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PlanType     string   `json:"planType"`
	Timestamp    FlexTime `json:"timestamp"`
}

// AuthID returns the effective auth identity regardless of producer vintage.
func (e SignedUpEvent) AuthID() string {
	if e.AuthUserID != "" {
		return e.AuthUserID
	}
	return e.LegacyAuthID
}

// SubscriptionChangedEvent moves a user to a new plan tier.
type SubscriptionChangedEvent struct {
	UserID    string   `json:"userId"`
	NewPlan   string   `json:"newPlan"`
	Timestamp FlexTime `json:"timestamp"`
}

// LoginFailedEvent is consumed for security logging only.
type LoginFailedEvent struct {
	Email         string   `json:"email"`
	FailureReason string   `json:"failureReason"`
	AttemptCount  int      `json:"attemptCount"`
	IPAddress     string   `json:"ipAddress"`
	Timestamp     FlexTime `json:"timestamp"`
}

// AccountLockedEvent is consumed for security logging only.
type AccountLockedEvent struct {
	AuthUserID          string   `json:"authUserId"`
	Email               string   `json:"email"`
	LockReason          string   `json:"lockReason"`
	LockDurationMinutes int      `json:"lockDurationMinutes"`
	Timestamp           FlexTime `json:"timestamp"`
}

// LoggedOutEvent is informational.
type LoggedOutEvent struct {
	AuthUserID   string   `json:"authUserId"`
	Email        string   `json:"email"`
	LogoutReason string   `json:"logoutReason"`
	Timestamp    FlexTime `json:"timestamp"`
}
