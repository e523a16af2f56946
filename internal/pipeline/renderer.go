package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/domuslabs/domus/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and a stdout
// summary table.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Property Risk Analysis\n\n")
	fmt.Fprintf(&b, "Analyzed: %s  \n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Asking price: $%.0f\n\n", report.AskingPrice)

	fmt.Fprintf(&b, "## Risk\n\n")
	fmt.Fprintf(&b, "- Overall score: %.1f/100\n", report.Risk.OverallScore)
	fmt.Fprintf(&b, "- Buyer-adjusted score: %.1f/100 (%s)\n", report.Risk.BuyerAdjustedScore, report.Risk.RiskTier)
	fmt.Fprintf(&b, "- Estimated repairs: $%.0f - $%.0f\n\n", report.Risk.TotalCostLow, report.Risk.TotalCostHigh)

	for _, cs := range report.Risk.Categories {
		fmt.Fprintf(&b, "### %s — %.1f/100\n\n", cs.Category, cs.Score)
		fmt.Fprintf(&b, "Estimated cost: $%.0f - $%.0f", cs.CostLow, cs.CostHigh)
		if cs.CostsEstimated {
			fmt.Fprintf(&b, " (estimated, not document-sourced)")
		}
		fmt.Fprintf(&b, "\n\n")
		for _, issue := range cs.KeyIssues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Seller Transparency\n\n")
	fmt.Fprintf(&b, "- Grade: %s (%.1f/100, trust: %s)\n", report.Transparency.Grade, report.Transparency.Score, report.Transparency.TrustLevel)
	fmt.Fprintf(&b, "- Cross-reference transparency: %.1f/100\n", report.CrossReference.TransparencyScore)
	fmt.Fprintf(&b, "- Contradictions: %d, undisclosed issues: %d, confirmed: %d\n\n",
		report.CrossReference.Contradictions, report.CrossReference.UndisclosedIssues, report.CrossReference.ConfirmedItems)

	for _, flag := range report.Transparency.RedFlags {
		fmt.Fprintf(&b, "- **Red flag** (%s): %s\n", flag.Type, flag.Evidence)
	}
	if len(report.Transparency.RedFlags) > 0 {
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Recommended Offer\n\n")
	o := report.Offer
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Asking price | $%.0f |\n", o.AskingPrice)
	fmt.Fprintf(&b, "| Repair cost | $%.0f |\n", o.RepairCost)
	fmt.Fprintf(&b, "| Risk premium | $%.0f |\n", o.RiskPremium)
	fmt.Fprintf(&b, "| Transparency discount | $%.0f |\n", o.TransparencyDiscount)
	fmt.Fprintf(&b, "| **Recommended offer** | **$%.0f** (%.1f%% below asking) |\n\n", o.RecommendedOffer, o.DiscountPct)

	fmt.Fprintf(&b, "## Risk DNA\n\n")
	fmt.Fprintf(&b, "Composite: %.1f/100 (%s)\n\n", report.DNA.Composite, report.DNA.Label)
	for _, domain := range []string{"structural", "systems", "transparency", "temporal", "financial"} {
		fmt.Fprintf(&b, "- %s: %.1f\n", domain, report.DNA.Domains[domain])
	}

	if report.Verification != nil && report.Verification.Enabled {
		fmt.Fprintf(&b, "\n## AI Verification Notes\n\n")
		fmt.Fprintf(&b, "Commentary only; scores above are deterministic and unaffected.\n\n")
		for _, note := range report.Verification.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\nGenerated by domus %s\n", model.Version)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints the category table and offer to stdout.
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	fmt.Printf("\nRisk: %.1f/100 (%s)  Transparency: %s  DNA: %.1f (%s)\n\n",
		report.Risk.BuyerAdjustedScore, report.Risk.RiskTier,
		report.Transparency.Grade, report.DNA.Composite, report.DNA.Label)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Score", "Cost Low", "Cost High", "Flags"})
	for _, cs := range report.Risk.Categories {
		t.AppendRow(table.Row{
			cs.Category.String(),
			fmt.Sprintf("%.1f", cs.Score),
			fmt.Sprintf("$%.0f", cs.CostLow),
			fmt.Sprintf("$%.0f", cs.CostHigh),
			categoryFlags(cs),
		})
	}
	t.AppendFooter(table.Row{"Recommended offer", "", "", "", fmt.Sprintf("$%.0f", report.Offer.RecommendedOffer)})
	t.Render()

	for _, db := range report.Risk.DealBreakers {
		fmt.Printf("  ✗ %s\n", db)
	}
}

func categoryFlags(cs model.CategoryRiskScore) string {
	var flags []string
	if cs.Safety {
		flags = append(flags, "safety")
	}
	if cs.Specialist {
		flags = append(flags, "specialist")
	}
	if cs.Insurability {
		flags = append(flags, "insurability")
	}
	if cs.CostsEstimated {
		flags = append(flags, "est")
	}
	return strings.Join(flags, ",")
}
