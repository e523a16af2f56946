package crossref

import "testing"

func TestIsNonIssue(t *testing.T) {
	nonIssues := []string{
		"No evidence of mold was found in the attic",
		"Foundation cracks were not observed during the inspection",
		"It is common for homes of this age to show minor settlement",
		"Buyers should be aware that inspectors are not required to move furniture",
		"N/A",
		"See attached addendum for details",
		"As an AI, I cannot assess the structural integrity",
		"Consider asking the seller for a credit or price reduction",
		"This increases the risk score for the electrical category",
	}
	for _, desc := range nonIssues {
		if !isNonIssue(desc) {
			t.Errorf("expected non-issue: %q", desc)
		}
	}

	realIssues := []string{
		"Active water intrusion at the basement wall",
		"The furnace heat exchanger is cracked",
		"Federal Pacific panel is a known fire hazard",
		"Roof shingles are at the end of their service life",
	}
	for _, desc := range realIssues {
		if isNonIssue(desc) {
			t.Errorf("real issue rejected by quality filter: %q", desc)
		}
	}
}

func TestNonIssueRules_Independent(t *testing.T) {
	tests := []struct {
		rule string
		text string
	}{
		{"negated_statement", "no problems were found with the water heater"},
		{"educational_text", "it is typical for houses in this region"},
		{"form_field_artifact", "none"},
		{"ai_commentary", "based on my analysis of the documents"},
		{"negotiation_advice", "use this as leverage this during negotiation"},
		{"risk_narration", "the overall risk is elevated"},
	}

	for _, tt := range tests {
		found := false
		for _, r := range nonIssueRules {
			if r.Name == tt.rule {
				found = true
				if !r.Pattern.MatchString(tt.text) {
					t.Errorf("rule %s should match %q", tt.rule, tt.text)
				}
			}
		}
		if !found {
			t.Errorf("rule %s not defined", tt.rule)
		}
	}
}
