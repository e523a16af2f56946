package validate

import (
	"fmt"
	"math"

	"github.com/domuslabs/domus/internal/model"
	"github.com/domuslabs/domus/internal/score"
)

// Validator is the dedicated post-scoring stage: it repairs
// out-of-range and inconsistent values before the report leaves the
// pipeline. Corrections are collected for logging and applied
// silently; they are never surfaced as errors.
type Validator struct {
	weights *score.Weights
}

// NewValidator creates a validator using the default weight tables.
func NewValidator() *Validator {
	return &Validator{weights: score.DefaultWeights()}
}

// Validate repairs the report in place and returns a description of
// every correction applied.
func (v *Validator) Validate(report *model.AnalysisReport) []string {
	var fixes []string

	fixes = append(fixes, v.validateFindings(report)...)
	fixes = append(fixes, v.validateCategories(report)...)
	fixes = append(fixes, v.validateRisk(report)...)
	fixes = append(fixes, v.validateTransparency(report)...)
	fixes = append(fixes, v.validateDNA(report)...)
	fixes = append(fixes, v.validateOffer(report)...)

	return fixes
}

func (v *Validator) validateFindings(report *model.AnalysisReport) []string {
	var fixes []string

	for i := range report.Findings {
		f := &report.Findings[i]
		if f.CostLow != nil && *f.CostLow < 0 {
			f.CostLow = nil
			f.CostHigh = nil
			fixes = append(fixes, fmt.Sprintf("finding %d: dropped negative cost", i))
			continue
		}
		if f.HasCost() && *f.CostLow > *f.CostHigh {
			*f.CostLow, *f.CostHigh = *f.CostHigh, *f.CostLow
			fixes = append(fixes, fmt.Sprintf("finding %d: swapped inverted cost range", i))
		}
	}

	return fixes
}

func (v *Validator) validateCategories(report *model.AnalysisReport) []string {
	var fixes []string

	totalLow, totalHigh := 0.0, 0.0
	for i := range report.Risk.Categories {
		cs := &report.Risk.Categories[i]

		if cs.CostLow < 0 || cs.CostHigh < 0 {
			cs.CostLow, cs.CostHigh = 0, 0
			fixes = append(fixes, fmt.Sprintf("%s: cleared negative costs", cs.Category))
		}
		if cs.CostLow > cs.CostHigh {
			cs.CostLow, cs.CostHigh = cs.CostHigh, cs.CostLow
			fixes = append(fixes, fmt.Sprintf("%s: swapped inverted cost range", cs.Category))
		}

		// A scored category never carries a zero cost range: inject
		// the floor for its worst severity.
		if cs.Score > 0 && cs.CostHigh == 0 {
			if floor, ok := v.weights.CostFloor(cs.Category, worstSeverity(cs)); ok {
				cs.CostLow, cs.CostHigh = floor.Low, floor.High
				cs.CostsEstimated = true
				fixes = append(fixes, fmt.Sprintf("%s: injected cost floor $%.0f-$%.0f", cs.Category, floor.Low, floor.High))
			}
		}

		// Global cap catches inflated estimates.
		if cs.CostHigh > v.weights.MaxCategoryCost {
			cs.CostHigh = v.weights.MaxCategoryCost
			if cs.CostLow > cs.CostHigh {
				cs.CostLow = cs.CostHigh
			}
			fixes = append(fixes, fmt.Sprintf("%s: capped cost at $%.0f", cs.Category, v.weights.MaxCategoryCost))
		}

		if clamped := clamp(cs.Score, 0, 100); clamped != cs.Score {
			cs.Score = clamped
			fixes = append(fixes, fmt.Sprintf("%s: clamped score", cs.Category))
		}

		totalLow += cs.CostLow
		totalHigh += cs.CostHigh
	}

	if report.Risk.TotalCostLow != totalLow || report.Risk.TotalCostHigh != totalHigh {
		report.Risk.TotalCostLow = totalLow
		report.Risk.TotalCostHigh = totalHigh
		fixes = append(fixes, "risk: recomputed aggregate cost range from categories")
	}

	return fixes
}

func (v *Validator) validateRisk(report *model.AnalysisReport) []string {
	var fixes []string
	r := &report.Risk

	if clamped := clamp(r.OverallScore, 0, 100); clamped != r.OverallScore {
		r.OverallScore = clamped
		fixes = append(fixes, "risk: clamped overall score")
	}
	if clamped := clamp(r.BuyerAdjustedScore, 0, 100); clamped != r.BuyerAdjustedScore {
		r.BuyerAdjustedScore = clamped
		fixes = append(fixes, "risk: clamped buyer-adjusted score")
	}

	// The tier is always derived from the buyer-adjusted score.
	if want := model.TierForScore(r.BuyerAdjustedScore); r.RiskTier != want {
		fixes = append(fixes, fmt.Sprintf("risk: tier %s inconsistent with score %.1f, forced to %s", r.RiskTier, r.BuyerAdjustedScore, want))
		r.RiskTier = want
	}

	return fixes
}

func (v *Validator) validateTransparency(report *model.AnalysisReport) []string {
	var fixes []string
	t := &report.Transparency

	for name, p := range map[string]*float64{
		"score":        &t.Score,
		"omission":     &t.OmissionScore,
		"minimization": &t.MinimizationScore,
		"proactivity":  &t.ProactivityScore,
		"consistency":  &t.ConsistencyScore,
	} {
		if clamped := clamp(*p, 0, 100); clamped != *p {
			*p = clamped
			fixes = append(fixes, "transparency: clamped "+name)
		}
	}

	if clamped := clamp(report.CrossReference.TransparencyScore, 0, 100); clamped != report.CrossReference.TransparencyScore {
		report.CrossReference.TransparencyScore = clamped
		fixes = append(fixes, "cross-reference: clamped transparency score")
	}
	if clamped := clamp(report.CrossReference.RiskScore, 0, 100); clamped != report.CrossReference.RiskScore {
		report.CrossReference.RiskScore = clamped
		fixes = append(fixes, "cross-reference: clamped risk score")
	}

	return fixes
}

func (v *Validator) validateDNA(report *model.AnalysisReport) []string {
	var fixes []string
	d := &report.DNA

	if len(d.Signature) != model.DNADims {
		sig := make([]float64, model.DNADims)
		copy(sig, d.Signature)
		d.Signature = sig
		fixes = append(fixes, fmt.Sprintf("dna: resized signature to %d components", model.DNADims))
	}
	for i, c := range d.Signature {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			d.Signature[i] = 0
			fixes = append(fixes, fmt.Sprintf("dna: zeroed non-finite component %d", i))
			continue
		}
		if clamped := clamp(c, 0, 1); clamped != c {
			d.Signature[i] = clamped
			fixes = append(fixes, fmt.Sprintf("dna: clamped component %d", i))
		}
	}
	if clamped := clamp(d.Composite, 0, 100); clamped != d.Composite {
		d.Composite = clamped
		fixes = append(fixes, "dna: clamped composite")
	}
	if want := model.DNALabelForScore(d.Composite); d.Label != want {
		d.Label = want
		fixes = append(fixes, "dna: relabeled composite band")
	}

	return fixes
}

func (v *Validator) validateOffer(report *model.AnalysisReport) []string {
	var fixes []string
	o := &report.Offer

	if total := o.RepairCost + o.RiskPremium + o.TransparencyDiscount; !near(o.TotalDiscount, total) {
		o.TotalDiscount = total
		fixes = append(fixes, "offer: recomputed total discount")
	}
	if want := o.AskingPrice - o.TotalDiscount; !near(o.RecommendedOffer, clamp(want, 0, o.AskingPrice)) {
		o.RecommendedOffer = clamp(want, 0, o.AskingPrice)
		fixes = append(fixes, "offer: recomputed recommended offer from price minus discount")
	}
	if o.AskingPrice > 0 {
		if want := o.TotalDiscount / o.AskingPrice * 100; !near(o.DiscountPct, want) {
			o.DiscountPct = want
			fixes = append(fixes, "offer: recomputed discount percentage")
		}
	}

	return fixes
}

func worstSeverity(cs *model.CategoryRiskScore) model.Severity {
	worst := model.SeverityInformational
	for sev, n := range cs.SeverityCounts {
		if n > 0 && sev.Rank() > worst.Rank() {
			worst = sev
		}
	}
	return worst
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
