package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/domuslabs/domus/internal/cache"
	"github.com/domuslabs/domus/internal/crossref"
	"github.com/domuslabs/domus/internal/dna"
	"github.com/domuslabs/domus/internal/extract"
	"github.com/domuslabs/domus/internal/model"
	"github.com/domuslabs/domus/internal/offer"
	"github.com/domuslabs/domus/internal/score"
	"github.com/domuslabs/domus/internal/validate"
	"github.com/domuslabs/domus/internal/verify"
)

// maxAskingPrice bounds the accepted input domain; anything above is
// rejected as malformed input, not analyzed.
const maxAskingPrice = 1e9

// Request carries the inputs for one analysis.
type Request struct {
	InspectionText string
	DisclosureText string
	AskingPrice    float64
	Profile        model.BuyerProfile
}

// Pipeline orchestrates the complete analysis. Every stage is a pure
// function of its inputs plus the fixed weight tables, so identical
// requests always produce identical results under one model.Version.
type Pipeline struct {
	findings     *extract.FindingExtractor
	disclosures  *extract.DisclosureExtractor
	matcher      *crossref.Matcher
	risk         *score.CategoryScorer
	transparency *score.TransparencyScorer
	encoder      *dna.Encoder
	index        dna.Index
	offers       *offer.Calculator
	validator    *validate.Validator
	renderer     *Renderer
	verifier     *verify.Verifier
	cache        cache.Cache
	config       *model.Config
}

// NewPipeline creates a pipeline with a fresh in-memory DNA index.
func NewPipeline(cfg *model.Config) *Pipeline {
	return NewPipelineWithIndex(cfg, dna.NewMemoryIndex())
}

// NewPipelineWithIndex creates a pipeline against an injected
// signature index, so callers can share one arena across analyses or
// swap in a different backing store.
func NewPipelineWithIndex(cfg *model.Config, index dna.Index) *Pipeline {
	var verifier *verify.Verifier
	if cfg.Verify.Provider != "" {
		v, err := verify.NewVerifier(verify.ConfigFromModel(cfg.Verify))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize verification provider: %v\n", err)
		} else {
			verifier = v
		}
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		findings:     extract.NewFindingExtractor(),
		disclosures:  extract.NewDisclosureExtractor(),
		matcher:      crossref.NewMatcher(),
		risk:         score.NewCategoryScorer(),
		transparency: score.NewTransparencyScorer(),
		encoder:      dna.NewEncoder(),
		index:        index,
		offers:       offer.NewCalculator(),
		validator:    validate.NewValidator(),
		renderer:     NewRenderer(cfg.Output.IncludeFooter),
		verifier:     verifier,
		cache:        resultCache,
		config:       cfg,
	}
}

// Index exposes the signature index for similarity queries.
func (p *Pipeline) Index() dna.Index {
	return p.index
}

// Analyze runs the full pipeline. The only caller-facing failure is an
// out-of-domain asking price; malformed document text degrades to
// empty structures, never errors.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*model.AnalysisReport, error) {
	if req.AskingPrice <= 0 || req.AskingPrice > maxAskingPrice {
		return nil, fmt.Errorf("asking price %.2f outside accepted range (0, %.0f]", req.AskingPrice, maxAskingPrice)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.Key(req.InspectionText, req.DisclosureText, req.AskingPrice, req.Profile)
	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var cached model.AnalysisReport
			if err := json.Unmarshal(data, &cached); err == nil {
				// The disk cache outlives the in-memory index, so a hit
				// still feeds the signature arena; Append is idempotent
				// per id.
				cached.DNA.ID = p.index.Append(cached.DNA)
				return &cached, nil
			}
		}
	}

	// 1. Extraction.
	findings := p.findings.Extract(req.InspectionText)
	disclosures := p.disclosures.Extract(req.DisclosureText)

	// 2. Cross-reference.
	xref := p.matcher.Match(findings, disclosures, req.DisclosureText)

	// 3. Scoring. The detailed transparency scorer is independent of
	// the matcher's count-based score; both land in the report.
	risk := p.risk.Score(findings, req.AskingPrice, req.Profile, xref)
	transparency := p.transparency.Score(findings, disclosures, xref)

	// 4. Risk DNA.
	signature := p.encoder.Encode(findings, risk, xref, transparency, req.AskingPrice)
	signature.ID = uuid.NewString()

	// 5. Offer.
	breakdown := p.offers.Calculate(req.AskingPrice, risk, transparency.Score)
	risk.WalkAwayPrice = walkAway(breakdown.RecommendedOffer, req.Profile.MaxBudget)

	report := &model.AnalysisReport{
		ID:             uuid.NewString(),
		Version:        model.Version,
		AnalyzedAt:     time.Now().UTC(),
		AskingPrice:    req.AskingPrice,
		Findings:       findings,
		Disclosures:    disclosures,
		CrossReference: xref,
		Risk:           risk,
		Transparency:   transparency,
		DNA:            signature,
		Offer:          breakdown,
	}

	// 6. Validation: silent corrections, logged when verbose.
	if fixes := p.validator.Validate(report); len(fixes) > 0 && p.config.Output.Verbose {
		for _, fix := range fixes {
			fmt.Fprintf(os.Stderr, "validation: %s\n", fix)
		}
	}

	report.DNA.ID = p.index.Append(report.DNA)

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	// 7. Optional AI verification, after scoring: it annotates, never
	// adjusts. Failures fall back to the deterministic result.
	if p.verifier.IsEnabled() {
		report.Verification = p.verifier.Verify(ctx, report)
	}

	return report, nil
}

// RenderReport writes the report to the requested outputs. Empty
// paths are skipped; the summary table goes to stdout when asked.
func (p *Pipeline) RenderReport(report *model.AnalysisReport, jsonPath, mdPath string, summary bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return err
		}
	}
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return err
		}
	}
	if summary {
		p.renderer.RenderSummary(report)
	}
	return nil
}

// walkAway is the price above which the deal no longer makes sense: a
// small escalation margin over the recommended offer, capped at the
// buyer's budget when one is stated.
func walkAway(recommended, budget float64) float64 {
	w := recommended * 1.05
	if budget > 0 && w > budget {
		w = budget
	}
	return w
}
