package crossref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/domuslabs/domus/internal/model"
)

// Scoring constants for the simple count-based formulas. Severity
// weights here are deliberately smaller than the category scorer's:
// this stage measures disclosure behavior, not repair exposure.
const (
	severityWeightCritical = 20
	severityWeightMajor    = 10
	severityWeightModerate = 5
	severityWeightMinor    = 1

	contradictionRiskWeight = 15
	undisclosedRiskWeight   = 12
	riskNormalizer          = 150

	contradictionPenalty = 20
	undisclosedPenalty   = 15

	// Fixed outputs for the missing-disclosure path. A seller who
	// provides no disclosure is a distinct high-risk scenario, not an
	// absence of data.
	missingDisclosureTransparency = 25
	missingDisclosureRisk         = 75
)

// minKeywordOverlap is how many independent keywords must appear in
// both a disclosure question and a finding before they are related.
const minKeywordOverlap = 2

// noDisclosurePattern detects boilerplate standing in for a disclosure
// form: bank-owned and foreclosure sales, and explicit exemptions.
var noDisclosurePattern = regexp.MustCompile(`(?i)\b(bank-?owned|foreclosure|reo property|seller (is )?exempt|no (seller('s)? )?disclosure (is |was )?(provided|available|required)|sold as-?is without disclosure|estate sale.{0,40}exempt)\b`)

// Matcher aligns disclosure items against inspection findings.
type Matcher struct{}

// NewMatcher creates a new cross-reference matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match compares findings against the seller's disclosure and computes
// the count-based transparency and risk scores. disclosureText is the
// raw form text, used only to detect the missing-disclosure case.
func (m *Matcher) Match(findings []model.Finding, disclosures []model.DisclosureItem, disclosureText string) model.CrossReferenceReport {
	if missingDisclosure(disclosureText) {
		return m.matchWithoutDisclosure(findings)
	}

	report := model.CrossReferenceReport{DisclosureProvided: true}
	matchedFindings := make(map[int]bool)

	for i := range disclosures {
		d := &disclosures[i]
		related := m.relatedFinding(d, findings, matchedFindings)

		switch {
		case d.Disclosed && related != nil:
			report.Matches = append(report.Matches, model.CrossReferenceMatch{
				Finding:     related,
				Disclosure:  d,
				Type:        model.MatchConsistent,
				Confidence:  0.9,
				Explanation: fmt.Sprintf("Seller disclosed %q and the inspection confirmed a matching issue", shorten(d.Question)),
				RiskImpact:  model.RiskNeutral,
			})
			report.ConfirmedItems++

		case d.Disclosed && related == nil:
			// Proactive disclosure with nothing found: rewarded.
			report.Matches = append(report.Matches, model.CrossReferenceMatch{
				Disclosure:  d,
				Type:        model.MatchDisclosedNotFound,
				Confidence:  0.7,
				Explanation: fmt.Sprintf("Seller disclosed %q but the inspection found no matching issue", shorten(d.Question)),
				RiskImpact:  model.RiskDecreases,
			})
			report.DisclosedNotFound++

		case !d.Disclosed && related != nil:
			report.Matches = append(report.Matches, model.CrossReferenceMatch{
				Finding:     related,
				Disclosure:  d,
				Type:        model.MatchContradiction,
				Confidence:  contradictionConfidence(related.Severity),
				Explanation: fmt.Sprintf("Seller answered No to %q but the inspection found: %s", shorten(d.Question), shorten(related.Description)),
				RiskImpact:  model.RiskIncreases,
			})
			report.Contradictions++

		default:
			// Accurate non-disclosure.
			report.Matches = append(report.Matches, model.CrossReferenceMatch{
				Disclosure:  d,
				Type:        model.MatchConsistent,
				Confidence:  0.8,
				Explanation: fmt.Sprintf("Seller answered No to %q and the inspection found nothing matching", shorten(d.Question)),
				RiskImpact:  model.RiskNeutral,
			})
			report.ConfirmedItems++
		}
	}

	// Findings with no related disclosure item become undisclosed,
	// unless the quality filter rejects them as non-issues.
	for i := range findings {
		if matchedFindings[i] {
			continue
		}
		f := &findings[i]
		if isNonIssue(f.Description) {
			continue
		}
		report.Matches = append(report.Matches, model.CrossReferenceMatch{
			Finding:     f,
			Type:        model.MatchUndisclosed,
			Confidence:  0.8,
			Explanation: fmt.Sprintf("Inspection found %s issue not mentioned in the disclosure: %s", f.Severity, shorten(f.Description)),
			RiskImpact:  model.RiskIncreases,
		})
		report.UndisclosedIssues++
	}

	report.TransparencyScore = m.transparencyScore(len(disclosures), &report)
	report.RiskScore = m.riskScore(findings, &report)

	return report
}

// matchWithoutDisclosure handles the absent/boilerplate disclosure
// case: every non-noise finding is undisclosed with full confidence.
func (m *Matcher) matchWithoutDisclosure(findings []model.Finding) model.CrossReferenceReport {
	report := model.CrossReferenceReport{
		DisclosureProvided: false,
		TransparencyScore:  missingDisclosureTransparency,
		RiskScore:          missingDisclosureRisk,
	}

	for i := range findings {
		f := &findings[i]
		if isNonIssue(f.Description) {
			continue
		}
		report.Matches = append(report.Matches, model.CrossReferenceMatch{
			Finding:     f,
			Type:        model.MatchUndisclosed,
			Confidence:  1.0,
			Explanation: fmt.Sprintf("No disclosure provided; inspection found: %s", shorten(f.Description)),
			RiskImpact:  model.RiskIncreases,
		})
		report.UndisclosedIssues++
	}

	return report
}

// relatedFinding finds the first unclaimed finding sharing at least
// minKeywordOverlap independent keywords with the disclosure question.
func (m *Matcher) relatedFinding(d *model.DisclosureItem, findings []model.Finding, claimed map[int]bool) *model.Finding {
	question := strings.ToLower(d.Question + " " + d.Details)

	for i := range findings {
		if claimed[i] {
			continue
		}
		text := strings.ToLower(findings[i].Description)
		if keywordOverlap(question, text) >= minKeywordOverlap {
			claimed[i] = true
			return &findings[i]
		}
	}
	return nil
}

// keywordOverlap counts distinct keywords from the shared category
// table present in both texts.
func keywordOverlap(a, b string) int {
	count := 0
	for _, keywords := range model.CategoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(a, kw) && strings.Contains(b, kw) {
				count++
			}
		}
	}
	return count
}

// contradictionConfidence scales by the matched finding's severity.
func contradictionConfidence(s model.Severity) float64 {
	switch s {
	case model.SeverityCritical:
		return 1.0
	case model.SeverityMajor:
		return 0.9
	case model.SeverityModerate:
		return 0.7
	default:
		return 0.5
	}
}

// transparencyScore is the simple count-based formula. Honest sellers
// are rewarded regardless of disclosure volume: with zero
// contradictions and zero undisclosed issues the score is high by
// construction.
func (m *Matcher) transparencyScore(disclosureCount int, r *model.CrossReferenceReport) float64 {
	if r.Contradictions == 0 && r.UndisclosedIssues == 0 {
		switch {
		case disclosureCount >= 5:
			return 100
		case disclosureCount >= 3:
			return 85
		default:
			return 75
		}
	}

	base := float64(disclosureCount) / 15.0 * 60.0
	if base > 100 {
		base = 100
	}

	bonus := float64(r.ConfirmedItems) * 5.0
	if bonus > 35 {
		bonus = 35
	}

	score := base + bonus -
		float64(r.Contradictions)*contradictionPenalty -
		float64(r.UndisclosedIssues)*undisclosedPenalty

	return clamp(score, 0, 100)
}

// riskScore sums severity weights over all findings plus per-mismatch
// weights, normalized against riskNormalizer.
func (m *Matcher) riskScore(findings []model.Finding, r *model.CrossReferenceReport) float64 {
	total := 0.0
	for i := range findings {
		switch findings[i].Severity {
		case model.SeverityCritical:
			total += severityWeightCritical
		case model.SeverityMajor:
			total += severityWeightMajor
		case model.SeverityModerate:
			total += severityWeightModerate
		case model.SeverityMinor:
			total += severityWeightMinor
		}
	}
	total += float64(r.Contradictions) * contradictionRiskWeight
	total += float64(r.UndisclosedIssues) * undisclosedRiskWeight

	return clamp(total/riskNormalizer*100, 0, 100)
}

func missingDisclosure(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	return noDisclosurePattern.MatchString(trimmed)
}

func shorten(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 80 {
		return s[:77] + "..."
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
