package dna

import (
	"math"
	"testing"

	"github.com/domuslabs/domus/internal/model"
)

func sampleInputs() ([]model.Finding, model.PropertyRiskScore, model.CrossReferenceReport, model.TransparencyReport) {
	findings := []model.Finding{
		{Category: model.CategoryFoundation, Severity: model.SeverityCritical, Description: "Severe foundation settlement and cracking"},
		{Category: model.CategoryRoof, Severity: model.SeverityModerate, Description: "Worn shingles with water staining"},
		{Category: model.CategoryHVAC, Severity: model.SeverityMajor, Description: "Furnace at the end of its service life"},
	}
	risk := model.PropertyRiskScore{
		OverallScore:       68,
		BuyerAdjustedScore: 72,
		RiskTier:           model.TierCritical,
		Categories: []model.CategoryRiskScore{
			{Category: model.CategoryFoundation, Score: 90, CostLow: 25000, CostHigh: 55000, CostsEstimated: true, SeverityCounts: map[model.Severity]int{model.SeverityCritical: 1}},
			{Category: model.CategoryRoof, Score: 25, CostLow: 3000, CostHigh: 10000, SeverityCounts: map[model.Severity]int{model.SeverityModerate: 1}},
			{Category: model.CategoryHVAC, Score: 35, CostLow: 6000, CostHigh: 15000, SeverityCounts: map[model.Severity]int{model.SeverityMajor: 1}},
		},
		TotalCostLow:  34000,
		TotalCostHigh: 80000,
	}
	xref := model.CrossReferenceReport{
		TransparencyScore:  40,
		RiskScore:          55,
		Contradictions:     1,
		UndisclosedIssues:  2,
		DisclosureProvided: true,
	}
	transparency := model.TransparencyReport{
		Score:             45,
		OmissionScore:     40,
		MinimizationScore: 80,
		ProactivityScore:  50,
		ConsistencyScore:  85,
	}
	return findings, risk, xref, transparency
}

func TestEncode_SignatureShape(t *testing.T) {
	e := NewEncoder()
	findings, risk, xref, transparency := sampleInputs()

	dna := e.Encode(findings, risk, xref, transparency, 500000)

	if len(dna.Signature) != model.DNADims {
		t.Fatalf("expected %d dims, got %d", model.DNADims, len(dna.Signature))
	}
	for i, v := range dna.Signature {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("dim %d is not finite: %v", i, v)
		}
		if v < 0 || v > 1 {
			t.Errorf("dim %d out of [0,1]: %v", i, v)
		}
	}
	if dna.Composite < 0 || dna.Composite > 100 {
		t.Errorf("composite out of range: %.2f", dna.Composite)
	}
	if dna.Label == "" {
		t.Error("expected a label")
	}
	for _, domain := range []string{"structural", "systems", "transparency", "temporal", "financial"} {
		if _, ok := dna.Domains[domain]; !ok {
			t.Errorf("missing domain summary %q", domain)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	e := NewEncoder()
	findings, risk, xref, transparency := sampleInputs()

	a := e.Encode(findings, risk, xref, transparency, 500000)
	b := e.Encode(findings, risk, xref, transparency, 500000)

	for i := range a.Signature {
		if a.Signature[i] != b.Signature[i] {
			t.Fatalf("dim %d differs between identical encodings: %v vs %v", i, a.Signature[i], b.Signature[i])
		}
	}
	if a.Composite != b.Composite {
		t.Errorf("composite differs: %v vs %v", a.Composite, b.Composite)
	}
}

func TestEncode_EmptyInputs(t *testing.T) {
	e := NewEncoder()

	dna := e.Encode(nil, model.PropertyRiskScore{RiskTier: model.TierLow}, model.CrossReferenceReport{DisclosureProvided: true, TransparencyScore: 100}, model.TransparencyReport{Score: 90, OmissionScore: 100, MinimizationScore: 100, ProactivityScore: 50, ConsistencyScore: 100}, 500000)

	if len(dna.Signature) != model.DNADims {
		t.Fatalf("expected %d dims, got %d", model.DNADims, len(dna.Signature))
	}
	for i, v := range dna.Signature {
		if v < 0 || v > 1 {
			t.Errorf("dim %d out of [0,1]: %v", i, v)
		}
	}
}

func TestSeverityBlend(t *testing.T) {
	critical := []model.Finding{{Severity: model.SeverityCritical}}
	// One critical: 0.7*1.0 + 0.3*(1/5) = 0.76
	if got := severityBlend(critical); math.Abs(got-0.76) > 1e-9 {
		t.Errorf("single critical blend = %v, want 0.76", got)
	}

	// Adding minor findings must not dilute below the single-critical
	// value: the blend uses max severity, not the mean.
	diluted := []model.Finding{
		{Severity: model.SeverityCritical},
		{Severity: model.SeverityMinor},
		{Severity: model.SeverityMinor},
		{Severity: model.SeverityMinor},
	}
	if got := severityBlend(diluted); got < 0.76 {
		t.Errorf("minor findings diluted the critical blend: %v", got)
	}

	if got := severityBlend(nil); got != 0 {
		t.Errorf("empty blend = %v, want 0", got)
	}
}

func TestCostBucket(t *testing.T) {
	tests := []struct {
		cost, want float64
	}{
		{0, 0},
		{2000, 0.15},
		{9000, 0.35},
		{20000, 0.55},
		{40000, 0.75},
		{90000, 0.90},
		{500000, 1.0},
	}
	for _, tt := range tests {
		if got := costBucket(tt.cost); got != tt.want {
			t.Errorf("costBucket(%.0f) = %v, want %v", tt.cost, got, tt.want)
		}
	}
}

func TestDNALabelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "critical"},
		{80, "high"},
		{65, "elevated"},
		{45, "moderate"},
		{25, "low"},
		{5, "minimal"},
	}
	for _, tt := range tests {
		if got := model.DNALabelForScore(tt.score); got != tt.want {
			t.Errorf("DNALabelForScore(%.0f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
