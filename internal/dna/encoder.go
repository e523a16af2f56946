package dna

import (
	"math"
	"strings"

	"github.com/domuslabs/domus/internal/model"
)

// Domain weights for the composite score.
const (
	structuralWeight   = 0.30
	systemsWeight      = 0.20
	transparencyWeight = 0.20
	temporalWeight     = 0.15
	financialWeight    = 0.15
)

// Encoder builds the fixed 64-dimensional risk signature. Every
// component is deterministic and clamped to [0,1]; severity features
// blend the maximum severity with the finding count rather than
// averaging, so one critical finding is never diluted by a crowd of
// minor ones.
type Encoder struct{}

// NewEncoder creates a new Risk DNA encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode produces the RiskDNA for one analysis.
func (e *Encoder) Encode(findings []model.Finding, risk model.PropertyRiskScore, xref model.CrossReferenceReport, transparency model.TransparencyReport, price float64) model.RiskDNA {
	byCategory := make(map[model.Category][]model.Finding)
	for _, f := range findings {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}
	scores := make(map[model.Category]model.CategoryRiskScore)
	for _, cs := range risk.Categories {
		scores[cs.Category] = cs
	}

	sig := make([]float64, 0, model.DNADims)
	sig = append(sig, e.structural(findings, byCategory, scores, risk)...)
	sig = append(sig, e.systems(byCategory, scores, risk)...)
	sig = append(sig, e.transparency(xref, transparency)...)
	sig = append(sig, e.temporal(findings)...)
	sig = append(sig, e.financial(risk, transparency, price)...)

	for i, v := range sig {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		sig[i] = clamp01(v)
	}

	domains := map[string]float64{
		"structural":   mean(sig[0:model.DNAStructuralDims]) * 100,
		"systems":      mean(sig[model.DNAStructuralDims:model.DNAStructuralDims+model.DNASystemsDims]) * 100,
		"transparency": mean(sig[28:40]) * 100,
		"temporal":     mean(sig[40:52]) * 100,
		"financial":    mean(sig[52:64]) * 100,
	}

	composite := clamp(
		(domains["structural"]*structuralWeight+
			domains["systems"]*systemsWeight+
			domains["transparency"]*transparencyWeight+
			domains["temporal"]*temporalWeight+
			domains["financial"]*financialWeight), 0, 100)

	return model.RiskDNA{
		Signature: sig,
		Composite: composite,
		Label:     model.DNALabelForScore(composite),
		Domains:   domains,
	}
}

// structural covers foundation and roof/exterior risk (16 dims).
func (e *Encoder) structural(findings []model.Finding, byCategory map[model.Category][]model.Finding, scores map[model.Category]model.CategoryRiskScore, risk model.PropertyRiskScore) []float64 {
	foundation := byCategory[model.CategoryFoundation]
	roof := byCategory[model.CategoryRoof]
	fs := scores[model.CategoryFoundation]
	rs := scores[model.CategoryRoof]

	structuralCost := fs.CostHigh + rs.CostHigh
	costShare := 0.0
	if risk.TotalCostHigh > 0 {
		costShare = structuralCost / risk.TotalCostHigh
	}

	return []float64{
		severityBlend(foundation),
		costBucket(fs.CostHigh),
		countNorm(len(foundation), 5),
		boolDim(fs.Safety),
		boolDim(fs.Specialist),
		severityBlend(roof),
		costBucket(rs.CostHigh),
		countNorm(len(roof), 5),
		math.Max(fs.Score, rs.Score) / 100,
		keywordShare(findings, "settl"),
		keywordShare(findings, "crack"),
		keywordShare(findings, "water"),
		costShare,
		boolDim(hasCritical(foundation) || hasCritical(roof)),
		fs.Score / 100,
		rs.Score / 100,
	}
}

// systems covers plumbing, electrical and HVAC (12 dims).
func (e *Encoder) systems(byCategory map[model.Category][]model.Finding, scores map[model.Category]model.CategoryRiskScore, risk model.PropertyRiskScore) []float64 {
	plumbing := byCategory[model.CategoryPlumbing]
	electrical := byCategory[model.CategoryElectrical]
	hvac := byCategory[model.CategoryHVAC]
	ps := scores[model.CategoryPlumbing]
	es := scores[model.CategoryElectrical]
	hs := scores[model.CategoryHVAC]

	systemsCost := ps.CostHigh + es.CostHigh + hs.CostHigh
	costShare := 0.0
	if risk.TotalCostHigh > 0 {
		costShare = systemsCost / risk.TotalCostHigh
	}

	return []float64{
		severityBlend(plumbing),
		severityBlend(electrical),
		severityBlend(hvac),
		costBucket(ps.CostHigh),
		costBucket(es.CostHigh),
		costBucket(hs.CostHigh),
		countNorm(len(plumbing), 5),
		countNorm(len(electrical), 5),
		countNorm(len(hvac), 5),
		boolDim(ps.Safety || es.Safety || hs.Safety),
		math.Max(ps.Score, math.Max(es.Score, hs.Score)) / 100,
		costShare,
	}
}

// transparency encodes disclosure behavior (12 dims). Higher always
// means more risk, so honesty scores are inverted.
func (e *Encoder) transparency(xref model.CrossReferenceReport, t model.TransparencyReport) []float64 {
	return []float64{
		1 - xref.TransparencyScore/100,
		1 - t.Score/100,
		countNorm(xref.Contradictions, 5),
		countNorm(xref.UndisclosedIssues, 10),
		countNorm(xref.ConfirmedItems, 10),
		countNorm(xref.DisclosedNotFound, 5),
		1 - t.OmissionScore/100,
		1 - t.MinimizationScore/100,
		1 - t.ProactivityScore/100,
		1 - t.ConsistencyScore/100,
		countNorm(len(t.RedFlags), 4),
		boolDim(!xref.DisclosureProvided),
	}
}

// temporal encodes aging and severity distribution (12 dims).
func (e *Encoder) temporal(findings []model.Finding) []float64 {
	total := len(findings)
	counts := make(map[model.Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}

	avgSeverity := 0.0
	if total > 0 {
		sum := 0
		for _, f := range findings {
			sum += f.Severity.Rank()
		}
		avgSeverity = float64(sum) / float64(total) / 4.0
	}

	return []float64{
		keywordShare(findings, "end of"),
		keywordShare(findings, "aging") + keywordShare(findings, "worn") + keywordShare(findings, "outdated"),
		severityShare(counts, total, model.SeverityInformational),
		severityShare(counts, total, model.SeverityMinor),
		severityShare(counts, total, model.SeverityModerate),
		severityShare(counts, total, model.SeverityMajor),
		severityShare(counts, total, model.SeverityCritical),
		avgSeverity,
		keywordShare(findings, "permit"),
		keywordShare(findings, "replaced") + keywordShare(findings, "repaired"),
		keywordShare(findings, "monitor"),
		countNorm(total, 20),
	}
}

// financial encodes repair exposure relative to price (12 dims).
func (e *Encoder) financial(risk model.PropertyRiskScore, t model.TransparencyReport, price float64) []float64 {
	costRatio := 0.0
	if price > 0 {
		// 15% of price saturates the component.
		costRatio = risk.TotalCostHigh / price / 0.15
	}

	estimated, specialist, insurability, resale := 0.0, 0.0, 0.0, 0.0
	if n := len(risk.Categories); n > 0 {
		for _, cs := range risk.Categories {
			if cs.CostsEstimated {
				estimated++
			}
			if cs.Specialist {
				specialist++
			}
			if cs.Insurability {
				insurability++
			}
			if cs.ResaleImpact {
				resale++
			}
		}
		estimated /= float64(n)
		specialist /= float64(n)
		insurability /= float64(n)
		resale /= float64(n)
	}

	return []float64{
		costBucket(risk.TotalCostHigh),
		costBucket(risk.TotalCostLow),
		costRatio,
		costBucket((risk.TotalCostLow + risk.TotalCostHigh) / 2),
		estimated,
		specialist,
		insurability,
		resale,
		premiumRate(risk.RiskTier) / 0.10,
		boolDim(t.Score < 50),
		risk.BuyerAdjustedScore / 100,
		risk.OverallScore / 100,
	}
}

// severityBlend mixes the worst severity with the finding count:
// 0.7 x maxSeverity + 0.3 x min(1, n/5). A plain mean would let minor
// findings dilute a single critical one.
func severityBlend(findings []model.Finding) float64 {
	if len(findings) == 0 {
		return 0
	}
	maxRank := 0
	for _, f := range findings {
		if r := f.Severity.Rank(); r > maxRank {
			maxRank = r
		}
	}
	return 0.7*float64(maxRank)/4.0 + 0.3*countNorm(len(findings), 5)
}

// costBucket maps a dollar amount onto fixed tiers rather than linear
// scaling, so a $500k estimate does not flatten everything below it.
func costBucket(cost float64) float64 {
	switch {
	case cost <= 0:
		return 0
	case cost <= 2500:
		return 0.15
	case cost <= 10000:
		return 0.35
	case cost <= 25000:
		return 0.55
	case cost <= 50000:
		return 0.75
	case cost <= 100000:
		return 0.90
	default:
		return 1.0
	}
}

func premiumRate(tier model.RiskTier) float64 {
	switch tier {
	case model.TierCritical:
		return 0.10
	case model.TierHigh:
		return 0.05
	case model.TierModerate:
		return 0.02
	default:
		return 0
	}
}

func severityShare(counts map[model.Severity]int, total int, s model.Severity) float64 {
	if total == 0 {
		return 0
	}
	return float64(counts[s]) / float64(total)
}

func keywordShare(findings []model.Finding, kw string) float64 {
	if len(findings) == 0 {
		return 0
	}
	n := 0
	for _, f := range findings {
		if strings.Contains(strings.ToLower(f.Description), kw) {
			n++
		}
	}
	return float64(n) / float64(len(findings))
}

func countNorm(n, saturation int) float64 {
	if n <= 0 {
		return 0
	}
	v := float64(n) / float64(saturation)
	if v > 1 {
		return 1
	}
	return v
}

func hasCritical(findings []model.Finding) bool {
	for _, f := range findings {
		if f.Severity == model.SeverityCritical {
			return true
		}
	}
	return false
}

func boolDim(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
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
