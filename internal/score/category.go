package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/domuslabs/domus/internal/model"
)

// CategoryScorer aggregates findings into per-category scores and the
// property-level composite, adjusted for the buyer profile and the
// cross-reference results.
type CategoryScorer struct {
	weights *Weights
}

// NewCategoryScorer creates a scorer with the default weight tables.
func NewCategoryScorer() *CategoryScorer {
	return &CategoryScorer{weights: DefaultWeights()}
}

// NewCategoryScorerWithWeights creates a scorer with custom tables.
func NewCategoryScorerWithWeights(w *Weights) *CategoryScorer {
	return &CategoryScorer{weights: w}
}

// Score computes the full PropertyRiskScore.
func (s *CategoryScorer) Score(findings []model.Finding, price float64, profile model.BuyerProfile, xref model.CrossReferenceReport) model.PropertyRiskScore {
	byCategory := make(map[model.Category][]model.Finding)
	for _, f := range findings {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	result := model.PropertyRiskScore{}
	for _, cat := range model.AllCategories {
		group := byCategory[cat]
		if len(group) == 0 {
			continue
		}
		cs := s.scoreCategory(cat, group, price)
		result.Categories = append(result.Categories, cs)
		result.TotalCostLow += cs.CostLow
		result.TotalCostHigh += cs.CostHigh
	}

	result.OverallScore = s.composite(result.Categories, xref)
	result.BuyerAdjustedScore = s.adjustForBuyer(result.OverallScore, result.Categories, profile)
	result.RiskTier = model.TierForScore(result.BuyerAdjustedScore)
	result.DealBreakers = s.dealBreakers(findings, profile)
	result.NegotiationLeverage = s.leverage(result.Categories, xref)

	return result
}

// scoreCategory computes one category's severity-weighted,
// cost-adjusted score.
func (s *CategoryScorer) scoreCategory(cat model.Category, group []model.Finding, price float64) model.CategoryRiskScore {
	cs := model.CategoryRiskScore{
		Category:       cat,
		SeverityCounts: make(map[model.Severity]int),
	}

	base := 0.0
	maxSeverity := model.SeverityInformational
	for _, f := range group {
		cs.SeverityCounts[f.Severity]++
		base += s.weights.SeverityMultipliers[f.Severity]
		if f.Severity.Rank() > maxSeverity.Rank() {
			maxSeverity = f.Severity
		}
		if f.HasCost() {
			cs.CostLow += *f.CostLow
			cs.CostHigh += *f.CostHigh
		}
		cs.Specialist = cs.Specialist || f.Specialist
		cs.Safety = cs.Safety || f.Safety
	}

	// Inject the floor when the score is real but the documents gave
	// no cost, or an implausibly low one for the worst severity seen.
	if base > 0 {
		if floor, ok := s.weights.CostFloor(cat, maxSeverity); ok && cs.CostHigh < floor.Low {
			cs.CostLow = floor.Low
			cs.CostHigh = floor.High
			cs.CostsEstimated = true
		}
	}

	score := base * s.weights.CostImpactFactor(cs.CostHigh, price) * s.weights.CategoryWeights[cat]
	if score > 100 {
		score = 100
	}
	if maxSeverity == model.SeverityCritical && score < s.weights.CriticalCategoryFloor {
		score = s.weights.CriticalCategoryFloor
	}
	cs.Score = score

	cs.Insurability = (cat == model.CategoryInsurance || cat == model.CategoryEnvironmental || cs.Safety) && score >= 40
	cs.ResaleImpact = score >= 60 || cat == model.CategoryFoundation || cat == model.CategoryLegal

	cs.KeyIssues = keyIssues(group)

	return cs
}

// keyIssues picks up to three descriptions, worst severity first.
func keyIssues(group []model.Finding) []string {
	sorted := make([]model.Finding, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() > sorted[j].Severity.Rank()
	})

	var issues []string
	for i, f := range sorted {
		if i >= 3 {
			break
		}
		desc := f.Description
		if len(desc) > 120 {
			desc = desc[:117] + "..."
		}
		issues = append(issues, desc)
	}
	return issues
}

// composite combines category scores into the property score: the
// importance-weighted mean of nonzero categories, floored when any
// category holds a critical finding, then inflated by cross-reference
// transparency problems.
func (s *CategoryScorer) composite(categories []model.CategoryRiskScore, xref model.CrossReferenceReport) float64 {
	weightedSum := 0.0
	weightTotal := 0.0
	hasCritical := false

	for _, cs := range categories {
		if cs.Score <= 0 {
			continue
		}
		w := s.weights.CategoryWeights[cs.Category]
		weightedSum += cs.Score * w
		weightTotal += w
		if cs.SeverityCounts[model.SeverityCritical] > 0 {
			hasCritical = true
		}
	}

	if weightTotal == 0 {
		return 0
	}
	score := weightedSum / weightTotal

	if hasCritical && score < s.weights.CriticalCompositeFloor {
		score = s.weights.CriticalCompositeFloor
	}

	// Low seller transparency inflates risk by up to 20%.
	if t := xref.TransparencyScore; t < 50 {
		score *= 1 + 0.20*(50-t)/50
	}
	if xref.Contradictions > 3 {
		score *= 1.15
	}

	return clamp(score, 0, 100)
}

// adjustForBuyer applies the buyer-profile multipliers.
func (s *CategoryScorer) adjustForBuyer(base float64, categories []model.CategoryRiskScore, profile model.BuyerProfile) float64 {
	score := base

	switch profile.RepairTolerance {
	case model.ToleranceLow:
		score *= 1.3
	case model.ToleranceHigh:
		if base < 60 {
			score *= 0.8
		}
	}

	// A stated biggest regret naming a category with actual findings
	// bumps the score: the buyer has been burned here before.
	if regret := strings.ToLower(profile.BiggestRegret); regret != "" {
		for _, cs := range categories {
			if cs.Score > 0 && model.CategoryFor(regret) == cs.Category {
				score *= 1.1
				break
			}
		}
	}

	// Long-horizon owners absorb more aging-system risk; short-horizon
	// buyers get a small discount on sub-critical totals.
	years := strings.ToLower(profile.OwnershipYears)
	switch {
	case strings.Contains(years, "7+") || strings.Contains(years, "10") || strings.Contains(years, "long"):
		score *= 1.05
	case (strings.Contains(years, "0-3") || strings.Contains(years, "short")) && score < 50:
		score *= 0.95
	}

	return clamp(score, 0, 100)
}

// dealBreakers matches the buyer's stated deal-breaker keywords
// against findings; critical safety hazards always qualify.
func (s *CategoryScorer) dealBreakers(findings []model.Finding, profile model.BuyerProfile) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			out = append(out, msg)
		}
	}

	for _, f := range findings {
		lower := strings.ToLower(f.Description)
		for _, kw := range profile.DealBreakers {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" && strings.Contains(lower, kw) {
				add(fmt.Sprintf("Stated deal-breaker %q: %s", kw, shortDesc(f.Description)))
			}
		}
		if f.Severity == model.SeverityCritical && f.Safety {
			add(fmt.Sprintf("Critical safety hazard: %s", shortDesc(f.Description)))
		}
	}

	return out
}

// leverage lists negotiation points: disclosure gaps and expensive
// categories.
func (s *CategoryScorer) leverage(categories []model.CategoryRiskScore, xref model.CrossReferenceReport) []string {
	var out []string

	if xref.Contradictions > 0 {
		out = append(out, fmt.Sprintf("%d disclosure contradiction(s) found by inspection", xref.Contradictions))
	}
	if xref.UndisclosedIssues > 0 {
		out = append(out, fmt.Sprintf("%d undisclosed issue(s) found by inspection", xref.UndisclosedIssues))
	}
	for _, cs := range categories {
		if cs.Score >= 50 {
			out = append(out, fmt.Sprintf("%s: $%.0f-$%.0f estimated repairs", cs.Category, cs.CostLow, cs.CostHigh))
		}
	}

	return out
}

func shortDesc(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 100 {
		return s[:97] + "..."
	}
	return s
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
