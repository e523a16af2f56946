package model

// RepairTolerance is the buyer's appetite for taking on repair work.
type RepairTolerance string

const (
	ToleranceLow      RepairTolerance = "low"
	ToleranceModerate RepairTolerance = "moderate"
	ToleranceHigh     RepairTolerance = "high"
)

// BuyerProfile captures buyer preferences that adjust the composite
// risk score and drive deal-breaker detection.
type BuyerProfile struct {
	MaxBudget         float64         `json:"max_budget" yaml:"max_budget"`
	RepairTolerance   RepairTolerance `json:"repair_tolerance" yaml:"repair_tolerance"`
	OwnershipYears    string          `json:"ownership_years" yaml:"ownership_years"` // e.g. "0-3", "3-7", "7+"
	BiggestRegret     string          `json:"biggest_regret" yaml:"biggest_regret"`   // Free text from intake
	Replaceability    string          `json:"replaceability" yaml:"replaceability"`   // Free text from intake
	DealBreakers      []string        `json:"deal_breakers" yaml:"deal_breakers"`     // Keywords, e.g. "foundation", "mold"
}

// DefaultBuyerProfile returns a neutral profile that leaves the
// composite score unadjusted.
func DefaultBuyerProfile() BuyerProfile {
	return BuyerProfile{
		RepairTolerance: ToleranceModerate,
		OwnershipYears:  "3-7",
	}
}
