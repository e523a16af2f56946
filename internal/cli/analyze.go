package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/domuslabs/domus/internal/model"
	"github.com/domuslabs/domus/internal/pipeline"
	"github.com/domuslabs/domus/internal/worker"
)

var (
	inspectionPath string
	disclosurePath string
	askingPrice    float64
	profilePath    string
	outJSON        string
	outMD          string
	timeout        time.Duration
	noCache        bool
	noFooter       bool
	verifyEnabled  bool
	verifyProvider string
	verifyModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one property's inspection report against its seller disclosure",
	Long: `Analyze runs the full deterministic pipeline on one property:
- Extract findings from the inspection report
- Extract disclosure items from the seller disclosure statement
- Cross-reference the two and score seller transparency
- Score risk per category and overall, adjusted for the buyer profile
- Encode the 64-dimension Risk DNA signature
- Calculate a recommended offer and walk-away price

Example:
  domus analyze --inspection inspection.txt --price 450000
  domus analyze --inspection inspection.txt --disclosure disclosure.txt --price 450000 --profile buyer.yaml
  domus analyze --inspection inspection.txt --price 450000 --json report.json --md report.md
  domus analyze --inspection inspection.txt --price 450000 --verify --verify-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&inspectionPath, "inspection", "", "inspection report text file (required)")
	analyzeCmd.Flags().StringVar(&disclosurePath, "disclosure", "", "seller disclosure text file (optional)")
	analyzeCmd.Flags().Float64Var(&askingPrice, "price", 0, "asking price in dollars (required)")
	analyzeCmd.Flags().StringVar(&profilePath, "profile", "", "buyer profile YAML file (optional)")
	_ = analyzeCmd.MarkFlagRequired("inspection")
	_ = analyzeCmd.MarkFlagRequired("price")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analysis)")

	// Verification flags
	analyzeCmd.Flags().BoolVar(&verifyEnabled, "verify", false, "enable AI verification of low-confidence matches")
	analyzeCmd.Flags().StringVar(&verifyProvider, "verify-provider", "openai", "verification provider (openai)")
	analyzeCmd.Flags().StringVar(&verifyModel, "verify-model", "gpt-4o-mini", "verification model name")
}

// buildConfig assembles pipeline configuration from flags and env.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	if verifyEnabled {
		cfg.Verify.Provider = verifyProvider
		cfg.Verify.Model = verifyModel

		switch verifyProvider {
		case "openai":
			cfg.Verify.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.Verify.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		default:
			return nil, fmt.Errorf("unknown verification provider: %s", verifyProvider)
		}
	}

	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Inspection: %s\n", inspectionPath)
		if disclosurePath != "" {
			fmt.Fprintf(os.Stderr, "Disclosure: %s\n", disclosurePath)
		}
		fmt.Fprintf(os.Stderr, "Asking price: $%.0f\n", askingPrice)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	inspection, err := os.ReadFile(inspectionPath)
	if err != nil {
		return fmt.Errorf("read inspection: %w", err)
	}

	var disclosure []byte
	if disclosurePath != "" {
		disclosure, err = os.ReadFile(disclosurePath)
		if err != nil {
			return fmt.Errorf("read disclosure: %w", err)
		}
	}

	profile, err := worker.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.Analyze(ctx, pipeline.Request{
		InspectionText: string(inspection),
		DisclosureText: string(disclosure),
		AskingPrice:    askingPrice,
		Profile:        profile,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d findings\n", len(report.Findings))
		fmt.Fprintf(os.Stderr, "✓ Extracted %d disclosure items\n", len(report.Disclosures))
		fmt.Fprintf(os.Stderr, "✓ Risk score: %.1f/100 (%s)\n", report.Risk.BuyerAdjustedScore, report.Risk.RiskTier)
		fmt.Fprintf(os.Stderr, "✓ Transparency grade: %s\n", report.Transparency.Grade)
		if report.Verification != nil && report.Verification.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Verification notes from %s\n", report.Verification.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, true); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
