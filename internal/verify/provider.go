package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/domuslabs/domus/internal/model"
)

// Provider defines the interface for AI verification backends.
// Verification is an optional enhancement: it reviews low-confidence
// cross-reference matches and comments on their plausibility. It never
// participates in the deterministic scores.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Review asks the backend to sanity-check the report's
	// low-confidence matches.
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// IsAvailable checks whether the provider is configured and
	// reachable.
	IsAvailable(ctx context.Context) bool
}

// ReviewRequest carries the report excerpt sent for verification.
type ReviewRequest struct {
	// Matches are the low-confidence cross-reference matches under
	// review.
	Matches []model.CrossReferenceMatch

	// Model overrides the provider's configured model.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// ReviewResponse is the provider's commentary.
type ReviewResponse struct {
	Notes      []string
	Model      string
	TokensUsed int
}

// Config holds verification provider configuration.
type Config struct {
	Provider          string // "openai" or "" (disabled)
	Model             string
	APIKey            string
	BaseURL           string
	TimeoutSeconds    int
	RequestsPerMinute float64
	MaxTokens         int
	HTTPProxy         string
	HTTPSProxy        string
}

// DefaultConfig returns sensible defaults with verification disabled.
func DefaultConfig() Config {
	return Config{
		TimeoutSeconds:    20,
		RequestsPerMinute: 30,
		MaxTokens:         800,
	}
}

// BuildPrompt renders the review prompt. The prompt forbids the model
// from re-scoring anything: its output is commentary only.
func BuildPrompt(matches []model.CrossReferenceMatch) string {
	var b strings.Builder
	b.WriteString(`You are reviewing cross-reference matches from a deterministic property-risk pipeline.
The scores are final and MUST NOT be recalculated or second-guessed numerically.
For each match below, state in one sentence whether the pairing of disclosure
and inspection finding looks plausible, and flag any that look like text
extraction artifacts.

Matches under review:
`)

	for i, m := range matches {
		if i >= 10 {
			fmt.Fprintf(&b, "... and %d more matches\n", len(matches)-10)
			break
		}
		fmt.Fprintf(&b, "%d. [%s, confidence %.2f] %s\n", i+1, m.Type, m.Confidence, m.Explanation)
	}

	b.WriteString("\nRespond with one numbered line per match.")
	return b.String()
}

// LowConfidenceMatches filters the matches worth a second look.
func LowConfidenceMatches(report *model.AnalysisReport) []model.CrossReferenceMatch {
	var out []model.CrossReferenceMatch
	for _, m := range report.CrossReference.Matches {
		if m.Confidence < 0.8 {
			out = append(out, m)
		}
	}
	return out
}
