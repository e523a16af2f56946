package extract

import (
	"strconv"
	"strings"

	"github.com/domuslabs/domus/internal/model"
)

// minSentenceLength filters fragments too short to describe a defect.
const minSentenceLength = 20

// FindingExtractor turns raw inspection text into structured findings.
// Extraction is fully deterministic and never fails: sentences the
// rules cannot structure simply produce findings with blank fields.
type FindingExtractor struct{}

// NewFindingExtractor creates a new finding extractor.
func NewFindingExtractor() *FindingExtractor {
	return &FindingExtractor{}
}

// Extract segments the inspection text into candidate sentences,
// filters noise and positive statements, and classifies the rest.
// Output is deduplicated by the category+description fingerprint.
func (e *FindingExtractor) Extract(text string) []model.Finding {
	text = NormalizeInput(text)

	var findings []model.Finding
	seen := make(map[string]bool)

	for _, line := range splitPages(text) {
		for _, sentence := range splitSentences(line.Text) {
			if len(sentence) < minSentenceLength {
				continue
			}
			if _, noisy := firstMatch(NoiseRules, sentence); noisy {
				continue
			}
			if _, positive := firstMatch(PositiveRules, sentence); positive {
				continue
			}
			if _, problem := firstMatch(ProblemRules, sentence); !problem {
				continue
			}

			f := e.classify(sentence, line.Page)
			if key := f.Fingerprint(); !seen[key] {
				seen[key] = true
				findings = append(findings, f)
			}
		}
	}

	return findings
}

// classify builds a finding from one problem sentence. Missing
// structure (cost, location) degrades to blank fields, never an error.
func (e *FindingExtractor) classify(sentence string, page int) model.Finding {
	lower := strings.ToLower(sentence)

	f := model.Finding{
		Category:    model.CategoryFor(lower),
		Severity:    SeverityFor(sentence),
		Description: strings.TrimSpace(sentence),
		Safety:      safetyPattern.MatchString(sentence),
		Specialist:  specialistPattern.MatchString(sentence),
		SourcePage:  page,
		SourceQuote: sentence,
	}

	if low, high, ok := parseCostRange(sentence); ok {
		f.CostLow = &low
		f.CostHigh = &high
	}

	if m := locationPattern.FindStringSubmatch(sentence); m != nil {
		f.Location = strings.TrimSpace(strings.ToLower(m[1]))
	}

	return f
}

// SeverityFor walks the ordered severity tiers; the first tier with a
// keyword hit wins. Problem statements with no severity language
// default to moderate.
func SeverityFor(sentence string) model.Severity {
	for _, r := range severityRules {
		if r.Pattern.MatchString(sentence) {
			return model.Severity(r.Severity)
		}
	}
	return model.SeverityModerate
}

// parseCostRange extracts a "$X to $Y" or "$X-$Y" range. Inverted
// ranges are swapped rather than rejected.
func parseCostRange(sentence string) (float64, float64, bool) {
	m := costRangePattern.FindStringSubmatch(sentence)
	if m == nil {
		return 0, 0, false
	}

	low, err1 := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	high, err2 := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if low > high {
		low, high = high, low
	}

	return low, high, true
}
