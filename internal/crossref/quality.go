package crossref

import "regexp"

// nonIssueRule is one predicate in the quality filter that keeps
// non-findings from being reported as undisclosed issues. Text
// extraction occasionally leaks negated statements, boilerplate, and
// even AI-authored commentary into the finding stream; marking those
// "undisclosed" would manufacture problems that do not exist.
type nonIssueRule struct {
	Name    string
	Pattern *regexp.Regexp
}

var nonIssueRules = []nonIssueRule{
	{"negated_statement", regexp.MustCompile(`(?i)\bno (issues?|problems?|defects?|evidence|signs?|indication|concerns?)\b|\bnot (a |an )?(issue|problem|defect|concern)\b|\bwere not observed\b`)},
	{"educational_text", regexp.MustCompile(`(?i)\b(homes of this (age|era)|it is (common|typical|normal) for|buyers should (be aware|understand|know)|inspectors are not required|this section (describes|explains)|for educational purposes)\b`)},
	{"form_field_artifact", regexp.MustCompile(`(?i)^(n/?a|none|see attached|see addendum|initial here|signature|date:)\b|_{3,}|\[\s*\]\s*$`)},
	{"ai_commentary", regexp.MustCompile(`(?i)\b(as an ai|i cannot|i am unable|based on (the|my) analysis|the model (suggests|predicts)|language model)\b`)},
	{"negotiation_advice", regexp.MustCompile(`(?i)\b(negotiat(e|ion|ing)|ask the seller|request (a )?(credit|concession)|counter-?offer|leverage this|price reduction)\b`)},
	{"risk_narration", regexp.MustCompile(`(?i)\b(this (increases|decreases|raises|lowers) the risk|risk (score|rating|tier|level)|severity (score|rating|level)|overall risk|weighted score)\b`)},
}

// isNonIssue reports whether the description fails the quality filter
// and must not be counted as an undisclosed issue.
func isNonIssue(description string) bool {
	for _, r := range nonIssueRules {
		if r.Pattern.MatchString(description) {
			return true
		}
	}
	return false
}
