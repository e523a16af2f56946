package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/domuslabs/domus/internal/dna"
	"github.com/domuslabs/domus/internal/model"
	"github.com/domuslabs/domus/internal/pipeline"
	"github.com/domuslabs/domus/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	// noCache and noFooter are defined in analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Analyze multiple properties from a manifest file in parallel",
	Long: `Batch analyzes multiple properties concurrently:
- Read entries from a manifest file, one property per line:
    inspection.txt|disclosure.txt|price[|profile.yaml]
- Process entries in parallel with configurable worker count
- Generate individual JSON and Markdown reports per property
- Print a cross-property similarity digest from the shared Risk DNA index

Lines starting with # and blank lines are skipped. The disclosure and
profile fields may be left empty.

Example:
  domus batch properties.txt
  domus batch properties.txt --concurrency 8 --output-dir ./reports
  domus batch properties.txt --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./domus-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh analysis)")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Domus Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := worker.ParseManifest(manifest)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d properties\n", len(entries))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Analyzing with %d workers...\n", concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	// All analyses share one index so the digest can compare properties
	p := pipeline.NewPipelineWithIndex(cfg, dna.NewMemoryIndex())
	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.Process(ctx, entries)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Entry.Line < results[j].Entry.Line
	})

	successCount := 0
	failureCount := 0
	var analyzed []*model.AnalysisReport

	for _, result := range results {
		if result.Err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Entry.InspectionPath, result.Err)
			continue
		}

		successCount++
		analyzed = append(analyzed, result.Report)

		slug := reportSlug(result.Entry.InspectionPath)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := p.RenderReport(result.Report, jsonPath, mdPath, false); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write report: %v\n", result.Entry.InspectionPath, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (risk: %.1f/100 %s, transparency: %s)\n",
			result.Entry.InspectionPath, result.Report.Risk.BuyerAdjustedScore,
			result.Report.Risk.RiskTier, result.Report.Transparency.Grade)
	}

	printSimilarityDigest(p.Index(), analyzed)

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d properties\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// printSimilarityDigest reports, for each analyzed property, its
// closest neighbor in the shared signature index.
func printSimilarityDigest(index dna.Index, reports []*model.AnalysisReport) {
	if index == nil || len(reports) < 2 {
		return
	}

	fmt.Fprintf(os.Stderr, "\n  Risk DNA similarity digest:\n")
	for _, report := range reports {
		// Nearest neighbor besides the report itself
		for _, n := range index.Similar(report.DNA.Signature, 2) {
			if n.ID == report.DNA.ID {
				continue
			}
			fmt.Fprintf(os.Stderr, "    %s ~ %s (similarity %.2f, neighbor composite %.1f %s)\n",
				report.DNA.ID, n.ID, n.Similarity, n.Composite, n.Label)
			break
		}
	}
}

// reportSlug derives a filesystem-safe report name from the
// inspection file path.
func reportSlug(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	out := make([]rune, 0, len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) > 100 {
		out = out[:100]
	}
	if len(out) == 0 {
		return "report"
	}
	return string(out)
}
