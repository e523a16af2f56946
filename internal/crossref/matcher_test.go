package crossref

import (
	"math"
	"testing"

	"github.com/domuslabs/domus/internal/model"
)

func roofFinding(severity model.Severity) model.Finding {
	return model.Finding{
		Category:    model.CategoryRoof,
		Severity:    severity,
		Description: "Roof shingle damage with active leaks observed over the garage",
	}
}

func roofQuestion(disclosed bool) model.DisclosureItem {
	return model.DisclosureItem{
		Category:  model.CategoryRoof,
		Question:  "Are you aware of any roof leaks or shingle problems?",
		Disclosed: disclosed,
	}
}

func TestMatch_MissingDisclosure(t *testing.T) {
	m := NewMatcher()
	findings := []model.Finding{roofFinding(model.SeverityMajor)}

	for _, text := range []string{
		"",
		"   \n  ",
		"This is a bank-owned property sold as-is.",
		"Seller is exempt from disclosure requirements (foreclosure).",
	} {
		report := m.Match(findings, nil, text)

		if report.DisclosureProvided {
			t.Errorf("text %q: expected DisclosureProvided=false", text)
		}
		if report.TransparencyScore != 25 {
			t.Errorf("text %q: expected transparency 25, got %.1f", text, report.TransparencyScore)
		}
		if report.RiskScore != 75 {
			t.Errorf("text %q: expected risk 75, got %.1f", text, report.RiskScore)
		}
		if report.UndisclosedIssues != 1 {
			t.Errorf("text %q: expected 1 undisclosed issue, got %d", text, report.UndisclosedIssues)
		}
		if len(report.Matches) != 1 || report.Matches[0].Confidence != 1.0 {
			t.Errorf("text %q: expected one full-confidence undisclosed match", text)
		}
	}
}

func TestMatch_Contradiction(t *testing.T) {
	m := NewMatcher()
	findings := []model.Finding{roofFinding(model.SeverityCritical)}
	disclosures := []model.DisclosureItem{roofQuestion(false)}

	report := m.Match(findings, disclosures, "Seller disclosure statement follows.")

	if !report.DisclosureProvided {
		t.Fatal("expected DisclosureProvided=true")
	}
	if report.Contradictions != 1 {
		t.Fatalf("expected 1 contradiction, got %d", report.Contradictions)
	}

	match := report.Matches[0]
	if match.Type != model.MatchContradiction {
		t.Errorf("expected contradiction type, got %s", match.Type)
	}
	if match.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0 for critical finding, got %.2f", match.Confidence)
	}
	if match.RiskImpact != model.RiskIncreases {
		t.Errorf("expected risk impact increases, got %s", match.RiskImpact)
	}
	if report.UndisclosedIssues != 0 {
		t.Errorf("claimed finding must not also count as undisclosed, got %d", report.UndisclosedIssues)
	}
}

func TestMatch_ConsistentDisclosure(t *testing.T) {
	m := NewMatcher()
	findings := []model.Finding{roofFinding(model.SeverityModerate)}
	disclosures := []model.DisclosureItem{roofQuestion(true)}

	report := m.Match(findings, disclosures, "Seller disclosure statement follows.")

	if report.ConfirmedItems != 1 {
		t.Fatalf("expected 1 confirmed item, got %d", report.ConfirmedItems)
	}
	match := report.Matches[0]
	if match.Type != model.MatchConsistent {
		t.Errorf("expected consistent type, got %s", match.Type)
	}
	if match.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %.2f", match.Confidence)
	}
	if match.RiskImpact != model.RiskNeutral {
		t.Errorf("expected neutral risk impact, got %s", match.RiskImpact)
	}
}

func TestMatch_DisclosedNotFound(t *testing.T) {
	m := NewMatcher()
	disclosures := []model.DisclosureItem{roofQuestion(true)}

	report := m.Match(nil, disclosures, "Seller disclosure statement follows.")

	if report.DisclosedNotFound != 1 {
		t.Fatalf("expected 1 disclosed-not-found, got %d", report.DisclosedNotFound)
	}
	match := report.Matches[0]
	if match.Type != model.MatchDisclosedNotFound {
		t.Errorf("expected disclosed_not_found type, got %s", match.Type)
	}
	if match.RiskImpact != model.RiskDecreases {
		t.Errorf("proactive disclosure should decrease risk, got %s", match.RiskImpact)
	}
}

func TestMatch_UndisclosedFinding(t *testing.T) {
	m := NewMatcher()
	findings := []model.Finding{{
		Category:    model.CategoryHVAC,
		Severity:    model.SeverityMajor,
		Description: "The furnace heat exchanger is cracked and requires replacement",
	}}
	disclosures := []model.DisclosureItem{roofQuestion(false)}

	report := m.Match(findings, disclosures, "Seller disclosure statement follows.")

	if report.UndisclosedIssues != 1 {
		t.Fatalf("expected 1 undisclosed issue, got %d", report.UndisclosedIssues)
	}
	// The unrelated "No" answer is an accurate non-disclosure.
	if report.ConfirmedItems != 1 {
		t.Errorf("expected 1 confirmed item, got %d", report.ConfirmedItems)
	}
	if report.Contradictions != 0 {
		t.Errorf("expected no contradictions, got %d", report.Contradictions)
	}
}

func TestTransparencyScore_HonestSeller(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		disclosures int
		want        float64
	}{
		{5, 100},
		{3, 85},
		{1, 75},
		{0, 75},
	}

	for _, tt := range tests {
		report := &model.CrossReferenceReport{}
		if got := m.transparencyScore(tt.disclosures, report); got != tt.want {
			t.Errorf("transparencyScore(%d disclosures, clean) = %.1f, want %.1f", tt.disclosures, got, tt.want)
		}
	}
}

func TestTransparencyScore_PenaltyOrdering(t *testing.T) {
	m := NewMatcher()

	withContradiction := m.transparencyScore(10, &model.CrossReferenceReport{Contradictions: 1})
	withUndisclosed := m.transparencyScore(10, &model.CrossReferenceReport{UndisclosedIssues: 1})

	if withContradiction >= withUndisclosed {
		t.Errorf("contradiction must cost more than undisclosed: %.1f vs %.1f", withContradiction, withUndisclosed)
	}
}

func TestTransparencyScore_MoreConfirmationsNeverHurt(t *testing.T) {
	m := NewMatcher()

	// Mismatch counts held fixed; only the confirmation count grows.
	// With 10 disclosures, base 40 minus penalties 35 leaves 5, plus 5
	// per confirmation up to the 35-point bonus cap.
	prev := -1.0
	for confirmed := 0; confirmed <= 12; confirmed++ {
		report := &model.CrossReferenceReport{
			Contradictions:    1,
			UndisclosedIssues: 1,
			ConfirmedItems:    confirmed,
		}
		got := m.transparencyScore(10, report)
		if got < prev {
			t.Fatalf("score dropped from %.1f to %.1f at %d confirmations", prev, got, confirmed)
		}
		prev = got
	}

	at3 := m.transparencyScore(10, &model.CrossReferenceReport{Contradictions: 1, UndisclosedIssues: 1, ConfirmedItems: 3})
	if at3 != 20 {
		t.Errorf("expected 5 + 3x5 = 20 at 3 confirmations, got %.1f", at3)
	}

	atCap := m.transparencyScore(10, &model.CrossReferenceReport{Contradictions: 1, UndisclosedIssues: 1, ConfirmedItems: 7})
	beyondCap := m.transparencyScore(10, &model.CrossReferenceReport{Contradictions: 1, UndisclosedIssues: 1, ConfirmedItems: 11})
	if atCap != 40 || beyondCap != 40 {
		t.Errorf("expected bonus capped at 35 points (score 40), got %.1f and %.1f", atCap, beyondCap)
	}
}

func TestTransparencyScore_Clamped(t *testing.T) {
	m := NewMatcher()

	report := &model.CrossReferenceReport{Contradictions: 10, UndisclosedIssues: 10}
	if got := m.transparencyScore(1, report); got != 0 {
		t.Errorf("expected floor at 0, got %.1f", got)
	}
}

func TestRiskScore_SeverityWeighting(t *testing.T) {
	m := NewMatcher()

	report := &model.CrossReferenceReport{Contradictions: 1}
	findings := []model.Finding{roofFinding(model.SeverityCritical)}

	got := m.riskScore(findings, report)
	want := (20.0 + 15.0) / 150.0 * 100.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("riskScore = %.4f, want %.4f", got, want)
	}
}

func TestRiskScore_Clamped(t *testing.T) {
	m := NewMatcher()

	var findings []model.Finding
	for i := 0; i < 20; i++ {
		findings = append(findings, roofFinding(model.SeverityCritical))
	}
	if got := m.riskScore(findings, &model.CrossReferenceReport{}); got != 100 {
		t.Errorf("expected cap at 100, got %.1f", got)
	}
}

func TestContradictionConfidence(t *testing.T) {
	tests := []struct {
		severity model.Severity
		want     float64
	}{
		{model.SeverityCritical, 1.0},
		{model.SeverityMajor, 0.9},
		{model.SeverityModerate, 0.7},
		{model.SeverityMinor, 0.5},
		{model.SeverityInformational, 0.5},
	}

	for _, tt := range tests {
		if got := contradictionConfidence(tt.severity); got != tt.want {
			t.Errorf("contradictionConfidence(%s) = %.2f, want %.2f", tt.severity, got, tt.want)
		}
	}
}
