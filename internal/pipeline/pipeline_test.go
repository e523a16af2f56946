package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/domuslabs/domus/internal/model"
)

const sampleInspection = `--- Page 1 ---
The electrical panel has exposed wiring creating an unsafe shock hazard condition.
--- Page 2 ---
The roof shingles are cracked and missing in several areas.
The furnace is at the end of its service life and requires replacement, estimated at $4,000 to $6,000.`

const sampleDisclosure = `[ ] Yes [X] No  Are you aware of any roof leaks or shingle problems?
[ ] Yes [X] No  Are you aware of any electrical panel or wiring problems?
[X] Yes [ ] No  Are you aware of any furnace or heating system problems?`

func testConfig(t *testing.T, cacheEnabled bool) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = cacheEnabled
	if cacheEnabled {
		cfg.Cache.Dir = t.TempDir()
	}
	return cfg
}

func testRequest() Request {
	return Request{
		InspectionText: sampleInspection,
		DisclosureText: sampleDisclosure,
		AskingPrice:    450000,
		Profile:        model.DefaultBuyerProfile(),
	}
}

func TestAnalyze_RejectsBadPrice(t *testing.T) {
	p := NewPipeline(testConfig(t, false))

	for _, price := range []float64{0, -100, 2e9} {
		req := testRequest()
		req.AskingPrice = price
		if _, err := p.Analyze(context.Background(), req); err == nil {
			t.Errorf("expected error for price %v", price)
		}
	}
}

func TestAnalyze_FullReport(t *testing.T) {
	p := NewPipeline(testConfig(t, false))

	report, err := p.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.Version != model.Version {
		t.Errorf("expected version %s, got %s", model.Version, report.Version)
	}
	if report.ID == "" || report.DNA.ID == "" {
		t.Error("expected assigned report and DNA ids")
	}
	if len(report.Findings) == 0 {
		t.Fatal("expected findings extracted")
	}
	if len(report.Disclosures) != 3 {
		t.Errorf("expected 3 disclosure items, got %d", len(report.Disclosures))
	}
	if !report.CrossReference.DisclosureProvided {
		t.Error("expected disclosure recognized as provided")
	}
	if report.CrossReference.Contradictions == 0 {
		t.Error("expected at least one contradiction (roof denied, inspection found damage)")
	}
	if len(report.DNA.Signature) != model.DNADims {
		t.Errorf("expected %d DNA dims, got %d", model.DNADims, len(report.DNA.Signature))
	}
	if report.Risk.RiskTier != model.TierForScore(report.Risk.BuyerAdjustedScore) {
		t.Error("tier inconsistent with buyer-adjusted score")
	}
	if report.Offer.RecommendedOffer <= 0 || report.Offer.RecommendedOffer > 450000 {
		t.Errorf("offer out of bounds: %.0f", report.Offer.RecommendedOffer)
	}
	if report.Risk.WalkAwayPrice <= 0 {
		t.Error("expected a walk-away price")
	}
	if report.Verification != nil {
		t.Error("verification must be absent when no provider is configured")
	}
	if p.Index().Len() != 1 {
		t.Errorf("expected 1 signature indexed, got %d", p.Index().Len())
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	p := NewPipeline(testConfig(t, false))

	a, err := p.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := p.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if a.Risk.OverallScore != b.Risk.OverallScore {
		t.Errorf("overall score differs: %v vs %v", a.Risk.OverallScore, b.Risk.OverallScore)
	}
	if a.Risk.BuyerAdjustedScore != b.Risk.BuyerAdjustedScore {
		t.Errorf("adjusted score differs: %v vs %v", a.Risk.BuyerAdjustedScore, b.Risk.BuyerAdjustedScore)
	}
	if a.Transparency.Score != b.Transparency.Score {
		t.Errorf("transparency differs: %v vs %v", a.Transparency.Score, b.Transparency.Score)
	}
	if a.Offer.RecommendedOffer != b.Offer.RecommendedOffer {
		t.Errorf("offer differs: %v vs %v", a.Offer.RecommendedOffer, b.Offer.RecommendedOffer)
	}
	for i := range a.DNA.Signature {
		if a.DNA.Signature[i] != b.DNA.Signature[i] {
			t.Fatalf("DNA dim %d differs: %v vs %v", i, a.DNA.Signature[i], b.DNA.Signature[i])
		}
	}
}

func TestAnalyze_CacheHit(t *testing.T) {
	p := NewPipeline(testConfig(t, true))

	a, err := p.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := p.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	// A cache hit returns the stored report verbatim, ids included.
	if a.ID != b.ID {
		t.Errorf("expected cached report, got fresh id %s vs %s", b.ID, a.ID)
	}
	if !a.AnalyzedAt.Equal(b.AnalyzedAt) {
		t.Error("expected cached timestamp")
	}
	// The hit replays an id the index already holds, so no duplicate.
	if p.Index().Len() != 1 {
		t.Errorf("expected 1 indexed signature after cache hit, got %d", p.Index().Len())
	}
}

func TestAnalyze_CacheHitFeedsFreshIndex(t *testing.T) {
	// The disk cache persists across processes while the index does
	// not; a hit in a fresh pipeline must still index the signature or
	// similarity queries go silently empty.
	cfg := testConfig(t, true)

	first := NewPipeline(cfg)
	a, err := first.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second := NewPipeline(cfg)
	b, err := second.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if b.ID != a.ID {
		t.Fatalf("expected a cache hit, got fresh report id %s vs %s", b.ID, a.ID)
	}
	if second.Index().Len() != 1 {
		t.Errorf("expected cached signature indexed, got %d entries", second.Index().Len())
	}
	if b.DNA.ID != a.DNA.ID {
		t.Errorf("expected the stored DNA id preserved, got %s vs %s", b.DNA.ID, a.DNA.ID)
	}
}

func TestAnalyze_MissingDisclosure(t *testing.T) {
	p := NewPipeline(testConfig(t, false))

	req := testRequest()
	req.DisclosureText = ""
	report, err := p.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.CrossReference.DisclosureProvided {
		t.Error("expected missing disclosure detected")
	}
	if report.CrossReference.TransparencyScore != 25 {
		t.Errorf("expected fixed transparency 25, got %.1f", report.CrossReference.TransparencyScore)
	}
	if report.CrossReference.RiskScore != 75 {
		t.Errorf("expected fixed risk 75, got %.1f", report.CrossReference.RiskScore)
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	p := NewPipeline(testConfig(t, false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Analyze(ctx, testRequest()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestWalkAway(t *testing.T) {
	if got := walkAway(400000, 0); got != 420000 {
		t.Errorf("expected 5%% margin 420000, got %.0f", got)
	}
	if got := walkAway(400000, 410000); got != 410000 {
		t.Errorf("expected budget cap 410000, got %.0f", got)
	}
	if got := walkAway(400000, 500000); got != 420000 {
		t.Errorf("budget above margin must not cap, got %.0f", got)
	}
}

func TestRenderReport(t *testing.T) {
	p := NewPipeline(testConfig(t, false))

	report, err := p.Analyze(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	if err := p.RenderReport(report, jsonPath, mdPath, false); err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	for _, path := range []string{jsonPath, mdPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected output at %s: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("expected non-empty output at %s", path)
		}
	}
}
