package model

import "time"

// Version identifies the pipeline contract. It participates in cache
// keys: any change to weight tables, rule lists, or the DNA layout
// must bump it.
const Version = "domus/1"

// OfferBreakdown itemizes how the recommended offer was derived.
type OfferBreakdown struct {
	AskingPrice          float64 `json:"asking_price"`
	RepairCost           float64 `json:"repair_cost"`          // Midpoint of the aggregate cost range
	RiskPremium          float64 `json:"risk_premium"`         // Price x tier rate
	TransparencyDiscount float64 `json:"transparency_discount"`
	TotalDiscount        float64 `json:"total_discount"`
	RecommendedOffer     float64 `json:"recommended_offer"` // Clamped to [0, asking price]
	DiscountPct          float64 `json:"discount_pct"`      // TotalDiscount / AskingPrice x 100
}

// VerificationNote is the optional AI verification annotation. It never
// changes any deterministic score; it only comments on match confidence.
type VerificationNote struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	Notes    []string `json:"notes,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// AnalysisReport is the complete output of one pipeline run.
type AnalysisReport struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	AnalyzedAt  time.Time `json:"analyzed_at"`
	AskingPrice float64   `json:"asking_price"`

	Findings    []Finding        `json:"findings"`
	Disclosures []DisclosureItem `json:"disclosures"`

	CrossReference CrossReferenceReport `json:"cross_reference"`
	Risk           PropertyRiskScore    `json:"risk"`
	Transparency   TransparencyReport   `json:"transparency"`
	DNA            RiskDNA              `json:"risk_dna"`
	Offer          OfferBreakdown       `json:"offer"`

	Verification *VerificationNote `json:"verification,omitempty"`
}
