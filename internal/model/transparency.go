package model

// TrustLevel is a coarse label derived from the transparency grade.
type TrustLevel string

const (
	TrustHigh     TrustLevel = "high"
	TrustModerate TrustLevel = "moderate"
	TrustLow      TrustLevel = "low"
	TrustVeryLow  TrustLevel = "very_low"
)

// RedFlagType classifies seller-honesty red flags.
type RedFlagType string

const (
	RedFlagMajorOmissions     RedFlagType = "major_omissions"      // >=2 major/critical findings omitted
	RedFlagPermitGap          RedFlagType = "permit_gap"           // Permitted work absent from disclosure
	RedFlagPatternMinimizing  RedFlagType = "pattern_minimizing"   // >=3 minimization instances
	RedFlagExpensiveOmission  RedFlagType = "expensive_omission"   // Omitted issue costing > $10,000
	RedFlagNoProactive        RedFlagType = "no_proactive"         // Zero proactive disclosures despite findings
)

// RedFlag is one concrete honesty concern with its evidence.
type RedFlag struct {
	Type     RedFlagType `json:"type"`
	Severity Severity    `json:"severity"`
	Evidence string      `json:"evidence"`
	Pages    []int       `json:"pages,omitempty"` // Source pages backing the evidence
}

// TransparencyReport is the detailed seller-honesty evaluation.
// It is independent of the simpler count-based score produced by the
// cross-reference stage; both are reported.
type TransparencyReport struct {
	Score             float64    `json:"score"` // 0..100, weighted composite
	Grade             string     `json:"grade"` // A+, A, B, C, D, F
	TrustLevel        TrustLevel `json:"trust_level"`
	OmissionScore     float64    `json:"omission_score"`     // weight 0.40
	MinimizationScore float64    `json:"minimization_score"` // weight 0.25
	ProactivityScore  float64    `json:"proactivity_score"`  // weight 0.20
	ConsistencyScore  float64    `json:"consistency_score"`  // weight 0.15
	RedFlags          []RedFlag  `json:"red_flags,omitempty"`
	RiskAdjustmentPct float64    `json:"risk_adjustment_pct"` // Suggested offer adjustment, percent of price
}
