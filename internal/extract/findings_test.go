package extract

import (
	"testing"

	"github.com/domuslabs/domus/internal/model"
)

func TestExtract_ProblemSentences(t *testing.T) {
	text := `The roof shingles are cracked and missing in several areas.
The electrical panel has exposed wiring creating an unsafe shock hazard condition.
The furnace is at the end of its service life and requires replacement, estimated at $4,000 to $6,000.`

	e := NewFindingExtractor()
	findings := e.Extract(text)

	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d: %+v", len(findings), findings)
	}

	roof := findings[0]
	if roof.Category != model.CategoryRoof {
		t.Errorf("expected roof category, got %s", roof.Category)
	}
	if roof.Severity != model.SeverityModerate {
		t.Errorf("expected default moderate severity, got %s", roof.Severity)
	}

	electrical := findings[1]
	if electrical.Category != model.CategoryElectrical {
		t.Errorf("expected electrical category, got %s", electrical.Category)
	}
	if electrical.Severity != model.SeverityCritical {
		t.Errorf("expected critical severity for unsafe hazard, got %s", electrical.Severity)
	}
	if !electrical.Safety {
		t.Error("expected safety flag for shock hazard")
	}

	hvac := findings[2]
	if hvac.Category != model.CategoryHVAC {
		t.Errorf("expected hvac category, got %s", hvac.Category)
	}
	if hvac.Severity != model.SeverityMajor {
		t.Errorf("expected major severity for end of service life, got %s", hvac.Severity)
	}
	if !hvac.HasCost() {
		t.Fatal("expected cost range extracted")
	}
	if *hvac.CostLow != 4000 || *hvac.CostHigh != 6000 {
		t.Errorf("expected cost 4000-6000, got %.0f-%.0f", *hvac.CostLow, *hvac.CostHigh)
	}
}

func TestExtract_FiltersNoiseAndPositive(t *testing.T) {
	text := `Inspection Report prepared for the buyer of 12 Oak Lane.
Photo #12 shows the north elevation of the dwelling.
The water heater functioned normally at the time of inspection.
No evidence of leaks was observed under any fixtures.
The attic insulation appeared to be in good condition throughout.`

	e := NewFindingExtractor()
	if findings := e.Extract(text); len(findings) != 0 {
		t.Errorf("expected no findings from noise and positive text, got %d: %+v", len(findings), findings)
	}
}

func TestExtract_DeduplicatesByFingerprint(t *testing.T) {
	text := `The basement wall shows active water intrusion near the corner.
The basement wall shows active water intrusion near the corner.`

	e := NewFindingExtractor()
	if findings := e.Extract(text); len(findings) != 1 {
		t.Errorf("expected duplicate sentence collapsed to 1 finding, got %d", len(findings))
	}
}

func TestExtract_PageMarkers(t *testing.T) {
	text := `--- Page 1 ---
The inspection was performed per the pre-inspection agreement.
--- Page 4 ---
The sewer line is cracked and requires repair by a licensed plumber.`

	e := NewFindingExtractor()
	findings := e.Extract(text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].SourcePage != 4 {
		t.Errorf("expected source page 4, got %d", findings[0].SourcePage)
	}
	if findings[0].Category != model.CategoryPlumbing {
		t.Errorf("expected plumbing category, got %s", findings[0].Category)
	}
	if !findings[0].Specialist {
		t.Error("expected specialist flag for licensed plumber")
	}
}

func TestExtract_LocationAndQuote(t *testing.T) {
	text := `Moisture staining was noted in the basement, likely from prior water intrusion.`

	e := NewFindingExtractor()
	findings := e.Extract(text)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Location != "basement" {
		t.Errorf("expected location basement, got %q", findings[0].Location)
	}
	if findings[0].SourceQuote == "" {
		t.Error("expected source quote preserved")
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		sentence string
		want     model.Severity
	}{
		{"The deck railing is unsafe and presents an immediate fall hazard.", model.SeverityCritical},
		{"Significant deterioration of the fascia boards was observed.", model.SeverityMajor},
		{"The faucet leaks at the base when operated.", model.SeverityModerate},
		{"Minor cosmetic cracking in the garage slab.", model.SeverityMinor},
		{"Settlement cracks are common in homes of this age.", model.SeverityInformational},
		{"The downspout discharges next to the foundation.", model.SeverityModerate}, // default
	}

	for _, tt := range tests {
		if got := SeverityFor(tt.sentence); got != tt.want {
			t.Errorf("SeverityFor(%q) = %s, want %s", tt.sentence, got, tt.want)
		}
	}
}

func TestParseCostRange(t *testing.T) {
	tests := []struct {
		sentence  string
		low, high float64
		ok        bool
	}{
		{"Repair estimated at $2,500 to $4,000 by a roofing contractor.", 2500, 4000, true},
		{"Replacement cost is $12,000-$18,000 installed.", 12000, 18000, true},
		{"Budget $8,000 to $3,000 for this work.", 3000, 8000, true}, // inverted, swapped
		{"No estimate was provided for this item.", 0, 0, false},
	}

	for _, tt := range tests {
		low, high, ok := parseCostRange(tt.sentence)
		if ok != tt.ok {
			t.Errorf("parseCostRange(%q) ok = %v, want %v", tt.sentence, ok, tt.ok)
			continue
		}
		if ok && (low != tt.low || high != tt.high) {
			t.Errorf("parseCostRange(%q) = %.0f, %.0f, want %.0f, %.0f", tt.sentence, low, high, tt.low, tt.high)
		}
	}
}
