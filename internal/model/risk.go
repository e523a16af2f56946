package model

// RiskTier buckets the buyer-adjusted score. Boundaries are fixed
// contract: >=70 CRITICAL, >=50 HIGH, >=30 MODERATE, else LOW.
type RiskTier string

const (
	TierLow      RiskTier = "LOW"
	TierModerate RiskTier = "MODERATE"
	TierHigh     RiskTier = "HIGH"
	TierCritical RiskTier = "CRITICAL"
)

// TierForScore maps a buyer-adjusted score onto its risk tier.
func TierForScore(score float64) RiskTier {
	switch {
	case score >= 70:
		return TierCritical
	case score >= 50:
		return TierHigh
	case score >= 30:
		return TierModerate
	default:
		return TierLow
	}
}

// CategoryRiskScore aggregates all findings in one category.
type CategoryRiskScore struct {
	Category       Category         `json:"category"`
	Score          float64          `json:"score"` // 0..100
	SeverityCounts map[Severity]int `json:"severity_counts"`
	CostLow        float64          `json:"cost_low"`
	CostHigh       float64          `json:"cost_high"`
	KeyIssues      []string         `json:"key_issues,omitempty"` // Short description excerpts
	Specialist     bool             `json:"specialist_required"`
	Safety         bool             `json:"safety_concern"`
	Insurability   bool             `json:"insurability_impact"`
	ResaleImpact   bool             `json:"resale_impact"`
	CostsEstimated bool             `json:"costs_estimated"` // True when floors were injected, not document-sourced
}

// PropertyRiskScore is the property-level composite.
type PropertyRiskScore struct {
	OverallScore        float64             `json:"overall_score"`        // 0..100, before buyer adjustment
	BuyerAdjustedScore  float64             `json:"buyer_adjusted_score"` // 0..100
	RiskTier            RiskTier            `json:"risk_tier"`
	Categories          []CategoryRiskScore `json:"categories"`
	TotalCostLow        float64             `json:"total_cost_low"`
	TotalCostHigh       float64             `json:"total_cost_high"`
	DealBreakers        []string            `json:"deal_breakers,omitempty"`
	NegotiationLeverage []string            `json:"negotiation_leverage,omitempty"`
	WalkAwayPrice       float64             `json:"walk_away_price"`
}
