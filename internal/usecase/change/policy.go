package usecase

import "github.com/zyra-app/zyra-change-service/internal/domain"

type RiskTier int

const (
	RiskLow RiskTier = iota
	RiskMedium
	RiskHigh
)

func (t RiskTier) String() string {
	switch t {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	default:
		return "high"
	}
}

// Revenue-delta thresholds for the tier derivation. Pricing and A/B actions
// are floored at medium regardless of the projection.
const (
	mediumImpactThreshold = 250.0
	highImpactThreshold   = 1000.0
	lowConfidenceFloor    = 0.5
)

// RiskTierOf derives the record's risk tier from its action type and the
// estimated impact. A missing estimate or low confidence bumps the tier up:
// uncertainty is treated as risk.
func RiskTierOf(record *domain.ChangeRecord) RiskTier {
	tier := RiskLow
	switch record.ActionType {
	case domain.ActionAdjustPrice, domain.ActionRunABTest:
		tier = RiskMedium
	}

	if record.EstimatedImpact == nil {
		return bump(tier)
	}

	amount := record.EstimatedImpact.Amount
	if amount < 0 {
		amount = -amount
	}
	if amount >= highImpactThreshold {
		tier = RiskHigh
	} else if amount >= mediumImpactThreshold && tier < RiskMedium {
		tier = RiskMedium
	}

	if record.EstimatedImpact.Confidence < lowConfidenceFloor {
		tier = bump(tier)
	}

	return tier
}

func bump(t RiskTier) RiskTier {
	if t < RiskHigh {
		return t + 1
	}
	return t
}

// ceilingFor maps the autopilot mode to the maximum tier the execution engine
// may apply unattended.
func ceilingFor(mode domain.AutopilotMode) RiskTier {
	switch mode {
	case domain.ModeAggressive:
		return RiskHigh
	case domain.ModeBalanced:
		return RiskMedium
	default:
		return RiskLow
	}
}

// autopilotAdmits checks the static policy gate: autopilot switched on and the
// record's tier within the mode ceiling. The daily cap is a separate, atomic
// reservation.
func autopilotAdmits(settings *domain.AutomationSettings, record *domain.ChangeRecord) (string, bool) {
	if !settings.GlobalAutopilotEnabled {
		return "global_autopilot_disabled", false
	}
	if !settings.AutopilotEnabled {
		return "autopilot_disabled", false
	}
	if RiskTierOf(record) > ceilingFor(settings.AutopilotMode) {
		return "risk_tier_above_ceiling", false
	}
	return "", true
}
