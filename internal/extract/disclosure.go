package extract

import (
	"regexp"
	"strings"

	"github.com/domuslabs/domus/internal/model"
)

// minCheckboxItems is the threshold below which the structured
// checkbox parse is considered a miss and line scanning kicks in.
const minCheckboxItems = 3

// Disclosure forms come in several layouts; each gets its own pattern.
var (
	// "[X] Yes [ ] No  Are you aware of any roof leaks?"
	checkboxBeforePattern = regexp.MustCompile(`(?i)^\s*\[([ xX✓])\]\s*yes\s*\[([ xX✓])\]\s*no[\s:.\-]*(.+)$`)

	// "Are you aware of any roof leaks?  Yes [ ]  No [X]"
	checkboxAfterPattern = regexp.MustCompile(`(?i)^(.{10,}?)[\s:.\-]*yes\s*\[([ xX✓])\]\s*no\s*\[([ xX✓])\]\s*$`)

	// "Are you aware of any roof leaks? Yes - small leak repaired 2019"
	questionAnswerPattern = regexp.MustCompile(`(?i)^(.{10,}?\?)\s*[-–:]*\s*(yes|no)\b[\s:.\-]*(.*)$`)

	yesNoIndicator = regexp.MustCompile(`(?i)\b(yes|no)\b`)
)

// DisclosureExtractor parses checkbox-style seller disclosure text
// into per-category disclosed / not-disclosed items.
type DisclosureExtractor struct{}

// NewDisclosureExtractor creates a new disclosure extractor.
func NewDisclosureExtractor() *DisclosureExtractor {
	return &DisclosureExtractor{}
}

// Extract parses the disclosure form. When the structured checkbox
// patterns find fewer than minCheckboxItems items, it falls back to
// scanning lines that pair a property-domain keyword with a yes/no
// indicator.
func (e *DisclosureExtractor) Extract(text string) []model.DisclosureItem {
	text = NormalizeInput(text)
	lines := splitPages(text)

	items := e.parseCheckboxes(lines)
	if len(items) < minCheckboxItems {
		if scanned := e.scanLines(lines); len(scanned) > len(items) {
			items = scanned
		}
	}

	return items
}

// parseCheckboxes applies the structured layout patterns in order.
func (e *DisclosureExtractor) parseCheckboxes(lines []pageLine) []model.DisclosureItem {
	var items []model.DisclosureItem

	for _, line := range lines {
		if m := checkboxBeforePattern.FindStringSubmatch(line.Text); m != nil {
			items = append(items, newItem(m[3], isChecked(m[1]), "", line.Page))
			continue
		}
		if m := checkboxAfterPattern.FindStringSubmatch(line.Text); m != nil {
			items = append(items, newItem(m[1], isChecked(m[2]), "", line.Page))
			continue
		}
		if m := questionAnswerPattern.FindStringSubmatch(line.Text); m != nil {
			disclosed := strings.EqualFold(m[2], "yes")
			items = append(items, newItem(m[1], disclosed, strings.TrimSpace(m[3]), line.Page))
		}
	}

	return items
}

// scanLines is the lenient fallback: any line carrying both a
// property-domain keyword and a yes/no indicator counts as an item.
func (e *DisclosureExtractor) scanLines(lines []pageLine) []model.DisclosureItem {
	var items []model.DisclosureItem

	for _, line := range lines {
		lower := strings.ToLower(line.Text)

		m := yesNoIndicator.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}
		if !hasDomainKeyword(lower) {
			continue
		}

		disclosed := strings.EqualFold(m[1], "yes")
		items = append(items, newItem(line.Text, disclosed, "", line.Page))
	}

	return items
}

// isChecked reports whether a checkbox capture carries a mark.
func isChecked(mark string) bool {
	mark = strings.TrimSpace(mark)
	return mark != ""
}

func hasDomainKeyword(lower string) bool {
	return model.CategoryFor(lower) != model.DefaultCategory ||
		anyKeyword(lower, model.CategoryKeywords[model.DefaultCategory])
}

func anyKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func newItem(question string, disclosed bool, details string, page int) model.DisclosureItem {
	question = strings.TrimSpace(question)
	return model.DisclosureItem{
		Category:   model.CategoryFor(strings.ToLower(question)),
		Question:   question,
		Disclosed:  disclosed,
		Details:    details,
		SourcePage: page,
	}
}
