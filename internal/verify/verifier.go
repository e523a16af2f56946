package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/domuslabs/domus/internal/model"
)

// NewProvider creates a verification provider from configuration.
// An empty provider name disables verification (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown verification provider: %s (supported: openai)", config.Provider)
	}
}

// ConfigFromModel converts model.VerifyConfig to verify.Config.
func ConfigFromModel(mc model.VerifyConfig) Config {
	cfg := DefaultConfig()
	cfg.Provider = mc.Provider
	cfg.Model = mc.Model
	cfg.APIKey = mc.APIKey
	cfg.BaseURL = mc.BaseURL
	if mc.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = mc.TimeoutSeconds
	}
	if mc.RequestsPerMinute > 0 {
		cfg.RequestsPerMinute = mc.RequestsPerMinute
	}
	cfg.HTTPProxy = mc.HTTPProxy
	cfg.HTTPSProxy = mc.HTTPSProxy
	return cfg
}

// Verifier wraps a provider with a timeout and a rate limiter. It is
// the only pipeline component allowed to touch the network, and it is
// strictly fire-and-forget: any failure or timeout falls back to the
// deterministic result with a warning note.
type Verifier struct {
	provider Provider
	limiter  *rate.Limiter
	timeout  time.Duration
}

// NewVerifier builds a verifier; a nil provider (disabled config)
// yields a disabled verifier, not an error.
func NewVerifier(config Config) (*Verifier, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(config.RequestsPerMinute/60.0), 1),
		timeout:  time.Duration(config.TimeoutSeconds) * time.Second,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (v *Verifier) IsEnabled() bool {
	return v != nil && v.provider != nil
}

// ProviderName returns the configured provider's name, or "".
func (v *Verifier) ProviderName() string {
	if !v.IsEnabled() {
		return ""
	}
	return v.provider.Name()
}

// Verify reviews the report's low-confidence matches. It always
// returns a note, never an error; the deterministic scores in the
// report are never modified.
func (v *Verifier) Verify(ctx context.Context, report *model.AnalysisReport) *model.VerificationNote {
	if !v.IsEnabled() {
		return &model.VerificationNote{Enabled: false}
	}

	note := &model.VerificationNote{
		Enabled:  true,
		Provider: v.provider.Name(),
	}

	matches := LowConfidenceMatches(report)
	if len(matches) == 0 {
		note.Notes = []string{"No low-confidence matches to review"}
		return note
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	if err := v.limiter.Wait(ctx); err != nil {
		note.Warnings = append(note.Warnings, fmt.Sprintf("verification skipped: %v", err))
		return note
	}

	resp, err := v.provider.Review(ctx, ReviewRequest{Matches: matches})
	if err != nil {
		note.Warnings = append(note.Warnings, fmt.Sprintf("verification failed, deterministic result stands: %v", err))
		return note
	}

	note.Model = resp.Model
	note.Notes = resp.Notes
	return note
}
