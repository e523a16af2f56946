package score

import (
	"fmt"
	"strings"

	"github.com/domuslabs/domus/internal/extract"
	"github.com/domuslabs/domus/internal/model"
)

// Sub-score weights for the detailed transparency composite.
const (
	omissionWeight     = 0.40
	minimizationWeight = 0.25
	proactivityWeight  = 0.20
	consistencyWeight  = 0.15
)

// majorWorkCategories are the categories where undisclosed permit
// history dents the consistency sub-score.
var majorWorkCategories = map[model.Category]bool{
	model.CategoryFoundation: true,
	model.CategoryRoof:       true,
	model.CategoryPlumbing:   true,
	model.CategoryElectrical: true,
	model.CategoryHVAC:       true,
}

// TransparencyScorer is the detailed seller-honesty evaluator. It is
// independent of the simple count-based score inside the
// cross-reference stage; both are reported side by side.
type TransparencyScorer struct{}

// NewTransparencyScorer creates a new transparency scorer.
func NewTransparencyScorer() *TransparencyScorer {
	return &TransparencyScorer{}
}

// Score evaluates the four weighted sub-scores and emits red flags.
func (s *TransparencyScorer) Score(findings []model.Finding, disclosures []model.DisclosureItem, xref model.CrossReferenceReport) model.TransparencyReport {
	omitted := omittedFindings(xref)
	minimized := minimizedMatches(xref)

	report := model.TransparencyReport{
		OmissionScore:     s.omissionScore(omitted),
		MinimizationScore: s.minimizationScore(minimized),
		ProactivityScore:  s.proactivityScore(disclosures, xref),
		ConsistencyScore:  s.consistencyScore(omitted),
	}

	report.Score = clamp(
		report.OmissionScore*omissionWeight+
			report.MinimizationScore*minimizationWeight+
			report.ProactivityScore*proactivityWeight+
			report.ConsistencyScore*consistencyWeight,
		0, 100)

	report.Grade = gradeFor(report.Score)
	report.TrustLevel = trustFor(report.Grade)
	report.RiskAdjustmentPct = adjustmentFor(report.Grade)
	report.RedFlags = s.redFlags(findings, disclosures, omitted, minimized)

	return report
}

// omissionScore starts at 100 and deducts per omitted finding by
// severity, with an extra deduction for suspicious omissions (costly
// or at least major).
func (s *TransparencyScorer) omissionScore(omitted []*model.Finding) float64 {
	score := 100.0
	for _, f := range omitted {
		switch f.Severity {
		case model.SeverityCritical:
			score -= 20
		case model.SeverityMajor:
			score -= 15
		case model.SeverityModerate:
			score -= 10
		case model.SeverityMinor:
			score -= 5
		}
		if suspiciousOmission(f) {
			score -= 10
		}
	}
	return clamp(score, 0, 100)
}

// minimizationScore deducts per detected severity gap between what the
// seller disclosed and what the inspection found: 10 for one tier, 20
// for two or more.
func (s *TransparencyScorer) minimizationScore(minimized []minimization) float64 {
	score := 100.0
	for _, m := range minimized {
		if m.Gap >= 2 {
			score -= 20
		} else {
			score -= 10
		}
	}
	return clamp(score, 0, 100)
}

// proactivityScore starts at 50 and rewards disclosures the inspection
// never confirmed plus detailed free-text explanations.
func (s *TransparencyScorer) proactivityScore(disclosures []model.DisclosureItem, xref model.CrossReferenceReport) float64 {
	score := 50.0
	score += float64(xref.DisclosedNotFound) * 10
	for _, d := range disclosures {
		if d.Disclosed && len(d.Details) > 50 {
			score += 5
		}
	}
	return clamp(score, 0, 100)
}

// consistencyScore deducts 15 per undisclosed permit-history item in a
// major work category.
func (s *TransparencyScorer) consistencyScore(omitted []*model.Finding) float64 {
	score := 100.0
	for _, f := range omitted {
		if isPermitFinding(f) {
			score -= 15
		}
	}
	return clamp(score, 0, 100)
}

// minimization records one severity gap between disclosure and finding.
type minimization struct {
	Finding    *model.Finding
	Disclosure *model.DisclosureItem
	Gap        int
}

// minimizedMatches scans confirmed matches for disclosures whose own
// language reads less severe than what the inspection found.
func minimizedMatches(xref model.CrossReferenceReport) []minimization {
	var out []minimization
	for i := range xref.Matches {
		m := &xref.Matches[i]
		if m.Type != model.MatchConsistent || m.Finding == nil || m.Disclosure == nil {
			continue
		}
		disclosed := extract.SeverityFor(m.Disclosure.Question + " " + m.Disclosure.Details)
		gap := m.Finding.Severity.Rank() - disclosed.Rank()
		if gap >= 1 {
			out = append(out, minimization{Finding: m.Finding, Disclosure: m.Disclosure, Gap: gap})
		}
	}
	return out
}

// omittedFindings collects the findings marked undisclosed.
func omittedFindings(xref model.CrossReferenceReport) []*model.Finding {
	var out []*model.Finding
	for i := range xref.Matches {
		m := &xref.Matches[i]
		if m.Type == model.MatchUndisclosed && m.Finding != nil {
			out = append(out, m.Finding)
		}
	}
	return out
}

// redFlags emits the fixed red-flag set. A property with zero findings
// and zero disclosures is the honest clean case and is never flagged.
func (s *TransparencyScorer) redFlags(findings []model.Finding, disclosures []model.DisclosureItem, omitted []*model.Finding, minimized []minimization) []model.RedFlag {
	var flags []model.RedFlag

	majorOmissions := 0
	worst := model.SeverityMajor
	var pages []int
	for _, f := range omitted {
		if f.Severity.Rank() >= model.SeverityMajor.Rank() {
			majorOmissions++
			pages = append(pages, f.SourcePage)
			if f.Severity == model.SeverityCritical {
				worst = model.SeverityCritical
			}
		}
	}
	if majorOmissions >= 2 {
		flags = append(flags, model.RedFlag{
			Type:     model.RedFlagMajorOmissions,
			Severity: worst,
			Evidence: fmt.Sprintf("%d major or critical findings absent from the disclosure", majorOmissions),
			Pages:    pages,
		})
	}

	for _, f := range omitted {
		if isPermitFinding(f) {
			flags = append(flags, model.RedFlag{
				Type:     model.RedFlagPermitGap,
				Severity: model.SeverityMajor,
				Evidence: fmt.Sprintf("Permit history not disclosed: %s", shortDesc(f.Description)),
				Pages:    []int{f.SourcePage},
			})
			break
		}
	}

	if len(minimized) >= 3 {
		flags = append(flags, model.RedFlag{
			Type:     model.RedFlagPatternMinimizing,
			Severity: model.SeverityMajor,
			Evidence: fmt.Sprintf("%d disclosures read materially less severe than the inspection findings", len(minimized)),
		})
	}

	for _, f := range omitted {
		if f.CostHigh != nil && *f.CostHigh > 10000 {
			flags = append(flags, model.RedFlag{
				Type:     model.RedFlagExpensiveOmission,
				Severity: model.SeverityCritical,
				Evidence: fmt.Sprintf("Omitted issue with $%.0f high estimate: %s", *f.CostHigh, shortDesc(f.Description)),
				Pages:    []int{f.SourcePage},
			})
			break
		}
	}

	if len(findings) > 0 && countDisclosed(disclosures) == 0 {
		flags = append(flags, model.RedFlag{
			Type:     model.RedFlagNoProactive,
			Severity: model.SeverityMajor,
			Evidence: fmt.Sprintf("Inspection found %d issues but the seller disclosed nothing", len(findings)),
		})
	}

	return flags
}

func suspiciousOmission(f *model.Finding) bool {
	if f.Severity.Rank() >= model.SeverityMajor.Rank() {
		return true
	}
	return f.CostHigh != nil && *f.CostHigh > 5000
}

func isPermitFinding(f *model.Finding) bool {
	if !majorWorkCategories[f.Category] && f.Category != model.CategoryLegal {
		return false
	}
	lower := strings.ToLower(f.Description)
	return strings.Contains(lower, "permit") || strings.Contains(lower, "unpermitted")
}

func countDisclosed(disclosures []model.DisclosureItem) int {
	n := 0
	for _, d := range disclosures {
		if d.Disclosed {
			n++
		}
	}
	return n
}

// gradeFor maps the composite onto the fixed letter thresholds.
func gradeFor(score float64) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

func trustFor(grade string) model.TrustLevel {
	switch grade {
	case "A+", "A":
		return model.TrustHigh
	case "B":
		return model.TrustModerate
	case "C", "D":
		return model.TrustLow
	default:
		return model.TrustVeryLow
	}
}

// adjustmentFor suggests an offer risk adjustment as a percent of
// price, stepped by grade.
func adjustmentFor(grade string) float64 {
	switch grade {
	case "A+", "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2.5
	case "D":
		return 4
	default:
		return 6
	}
}
