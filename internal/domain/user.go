package domain

import (
	"strings"
	"time"
)

// Tier enumerates subscription tiers.
type Tier string

const (
	TierFree       Tier = "FREE"
	TierBasic      Tier = "BASIC"
	TierPro        Tier = "PRO"
	TierEnterprise Tier = "ENTERPRISE"
)

// ParseTier maps an incoming tier string to a Tier. Unknown or empty values
// fall back to FREE rather than failing, since signup events from older
// producers can carry tier names this service no longer recognizes.
func ParseTier(s string) Tier {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierFree, TierBasic, TierPro, TierEnterprise:
		return t
	default:
		return TierFree
	}
}

// User represents a user profile owned by this service. Credentials live in
// the auth service; AuthUserID links the two.
type User struct {
	ID              string
	AuthUserID      string
	Email           string
	Name            string
	Phone           string
	ProfileImageURL string
	Tier            Tier
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
