package model

// MatchType classifies the outcome of comparing a finding against the
// seller's disclosure.
type MatchType string

const (
	MatchConsistent        MatchType = "consistent"          // Disclosure and inspection agree
	MatchContradiction     MatchType = "contradiction"       // Seller said "No", inspector found it
	MatchUndisclosed       MatchType = "undisclosed"         // Inspector found it, disclosure silent
	MatchDisclosedNotFound MatchType = "disclosed_not_found" // Seller disclosed, inspector found nothing
)

// RiskImpact is the direction a match moves overall risk.
type RiskImpact string

const (
	RiskIncreases RiskImpact = "increases"
	RiskNeutral   RiskImpact = "neutral"
	RiskDecreases RiskImpact = "decreases"
)

// CrossReferenceMatch links at most one finding with at most one
// disclosure item; at least one side is always present.
type CrossReferenceMatch struct {
	Finding     *Finding        `json:"finding,omitempty"`
	Disclosure  *DisclosureItem `json:"disclosure,omitempty"`
	Type        MatchType       `json:"type"`
	Confidence  float64         `json:"confidence"`  // 0..1
	Explanation string          `json:"explanation"` // Human-readable reasoning
	RiskImpact  RiskImpact      `json:"risk_impact"`
}

// CrossReferenceReport is the full output of the cross-reference stage.
type CrossReferenceReport struct {
	Matches            []CrossReferenceMatch `json:"matches"`
	Contradictions     int                   `json:"contradictions"`
	UndisclosedIssues  int                   `json:"undisclosed_issues"`
	ConfirmedItems     int                   `json:"confirmed_items"`
	DisclosedNotFound  int                   `json:"disclosed_not_found"`
	TransparencyScore  float64               `json:"transparency_score"` // 0..100, simple count-based formula
	RiskScore          float64               `json:"risk_score"`         // 0..100, severity-weighted
	DisclosureProvided bool                  `json:"disclosure_provided"`
}
