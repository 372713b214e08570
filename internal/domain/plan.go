package domain

import "time"

// Plan describes the ticket economy parameters attached to a tier: how many
// tickets a new user is granted, the ceiling the periodic refill tops up to,
// and how often a single refill ticket is earned.
type Plan struct {
	Tier           Tier
	InitialGrant   int
	MaxBalance     int
	RefillInterval time.Duration
}

// The catalog is static. ENTERPRISE intentionally mirrors BASIC: the team
// plan's value is the override mechanics, not bigger numbers.
var plans = map[Tier]Plan{
	TierFree:       {Tier: TierFree, InitialGrant: 3, MaxBalance: 5, RefillInterval: 24 * time.Hour},
	TierBasic:      {Tier: TierBasic, InitialGrant: 5, MaxBalance: 10, RefillInterval: 6 * time.Hour},
	TierPro:        {Tier: TierPro, InitialGrant: 10, MaxBalance: 20, RefillInterval: time.Hour},
	TierEnterprise: {Tier: TierEnterprise, InitialGrant: 5, MaxBalance: 10, RefillInterval: 6 * time.Hour},
}

// PlanFor returns the plan row for a tier. An unknown tier resolves to the
// FREE plan, never to an error.
func PlanFor(tier Tier) Plan {
	if p, ok := plans[tier]; ok {
		return p
	}
	return plans[TierFree]
}
