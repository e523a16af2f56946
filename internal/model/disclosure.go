package model

// DisclosureItem represents one parsed question/answer pair from the
// seller disclosure form.
type DisclosureItem struct {
	Category   Category `json:"category"`
	Question   string   `json:"question"`
	Disclosed  bool     `json:"disclosed"`         // Seller checked "Yes"
	Details    string   `json:"details,omitempty"` // Free-text explanation, if any
	SourcePage int      `json:"source_page"`       // Page in the disclosure form (1-based)
}
