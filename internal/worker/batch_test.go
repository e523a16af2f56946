package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/domuslabs/domus/internal/model"
	"github.com/domuslabs/domus/internal/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "batch.txt", `# comment line

inspection-a.txt|disclosure-a.txt|450000
inspection-b.txt||325000|profile.yaml
`)

	entries, err := ParseManifest(manifest)
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	a := entries[0]
	if a.Line != 3 || a.InspectionPath != "inspection-a.txt" || a.DisclosurePath != "disclosure-a.txt" || a.AskingPrice != 450000 {
		t.Errorf("unexpected first entry: %+v", a)
	}

	b := entries[1]
	if b.DisclosurePath != "" {
		t.Errorf("expected empty disclosure path, got %q", b.DisclosurePath)
	}
	if b.ProfilePath != "profile.yaml" {
		t.Errorf("expected profile path carried, got %q", b.ProfilePath)
	}
}

func TestParseManifest_Malformed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		line string
		want string
	}{
		{"too few fields", "inspection.txt|450000", "want 3 or 4"},
		{"too many fields", "a|b|450000|p|extra", "want 3 or 4"},
		{"bad price", "a.txt|b.txt|lots", "invalid price"},
		{"missing inspection", "|b.txt|450000", "inspection path is required"},
	}
	for _, tt := range tests {
		manifest := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "-")+".txt", tt.line)
		_, err := ParseManifest(manifest)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
		if !strings.Contains(err.Error(), "line 1") {
			t.Errorf("%s: error %q does not name the line", tt.name, err)
		}
	}
}

func TestParseManifest_MissingFile(t *testing.T) {
	if _, err := ParseManifest(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestLoadProfile(t *testing.T) {
	profile, err := LoadProfile("")
	if err != nil {
		t.Fatalf("LoadProfile(\"\"): %v", err)
	}
	def := model.DefaultBuyerProfile()
	if profile.RepairTolerance != def.RepairTolerance || profile.OwnershipYears != def.OwnershipYears {
		t.Errorf("empty path must return defaults, got %+v", profile)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "profile.yaml", "repair_tolerance: low\nmax_budget: 400000\n")
	profile, err = LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if profile.RepairTolerance != model.ToleranceLow {
		t.Errorf("expected low tolerance, got %s", profile.RepairTolerance)
	}
	if profile.MaxBudget != 400000 {
		t.Errorf("expected budget 400000, got %.0f", profile.MaxBudget)
	}
	// Unset fields keep their defaults.
	if profile.OwnershipYears != model.DefaultBuyerProfile().OwnershipYears {
		t.Errorf("expected default ownership years, got %q", profile.OwnershipYears)
	}

	if _, err := LoadProfile(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing profile file")
	}

	bad := writeFile(t, dir, "bad.yaml", "repair_tolerance: [not\n")
	if _, err := LoadProfile(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

// stubAnalyzer records requests and fails for a chosen asking price.
type stubAnalyzer struct {
	failPrice float64
}

func (s *stubAnalyzer) Analyze(ctx context.Context, req pipeline.Request) (*model.AnalysisReport, error) {
	if req.AskingPrice == s.failPrice {
		return nil, errors.New("simulated analysis failure")
	}
	return &model.AnalysisReport{
		Version:     model.Version,
		AskingPrice: req.AskingPrice,
	}, nil
}

func TestAnalyzeJob_Execute(t *testing.T) {
	dir := t.TempDir()
	inspection := writeFile(t, dir, "inspection.txt", "The roof shingles are cracked.")
	disclosure := writeFile(t, dir, "disclosure.txt", "[X] Yes [ ] No  Any roof problems?")

	job := AnalyzeJob{
		Entry: ManifestEntry{
			Line:           1,
			InspectionPath: inspection,
			DisclosurePath: disclosure,
			AskingPrice:    450000,
		},
		Analyzer: &stubAnalyzer{},
	}

	result := job.Execute(context.Background()).(AnalyzeResult)
	if result.Err != nil {
		t.Fatalf("Execute: %v", result.Err)
	}
	if result.Report == nil || result.Report.AskingPrice != 450000 {
		t.Errorf("expected report for price 450000, got %+v", result.Report)
	}
}

func TestAnalyzeJob_ReadFailure(t *testing.T) {
	job := AnalyzeJob{
		Entry: ManifestEntry{
			Line:           7,
			InspectionPath: filepath.Join(t.TempDir(), "absent.txt"),
			AskingPrice:    450000,
		},
		Analyzer: &stubAnalyzer{},
	}

	result := job.Execute(context.Background()).(AnalyzeResult)
	if result.Err == nil {
		t.Fatal("expected error for missing inspection file")
	}
	if !strings.Contains(result.Err.Error(), "line 7") {
		t.Errorf("error %q does not name the manifest line", result.Err)
	}
	if result.Report != nil {
		t.Error("expected no report on failure")
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	dir := t.TempDir()
	inspection := writeFile(t, dir, "inspection.txt", "The furnace needs replacement.")

	entries := []ManifestEntry{
		{Line: 1, InspectionPath: inspection, AskingPrice: 300000},
		{Line: 2, InspectionPath: inspection, AskingPrice: 666},
		{Line: 3, InspectionPath: inspection, AskingPrice: 500000},
	}

	b := NewBatchProcessor(&stubAnalyzer{failPrice: 666}, 2)
	results := b.Process(context.Background(), entries)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	var ok, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		ok++
		if r.Report == nil {
			t.Errorf("line %d: success without report", r.Entry.Line)
		}
	}
	if ok != 2 || failed != 1 {
		t.Errorf("expected 2 successes and 1 failure, got %d/%d", ok, failed)
	}
}

func TestBatchProcessor_LargeManifest(t *testing.T) {
	// Far more entries than the pool buffers hold; the batch must still
	// complete with one result per entry.
	dir := t.TempDir()
	inspection := writeFile(t, dir, "inspection.txt", "The roof shingles are cracked.")

	count := 40
	entries := make([]ManifestEntry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, ManifestEntry{
			Line:           i + 1,
			InspectionPath: inspection,
			AskingPrice:    300000,
		})
	}

	b := NewBatchProcessor(&stubAnalyzer{}, 2)

	done := make(chan []AnalyzeResult, 1)
	go func() {
		done <- b.Process(context.Background(), entries)
	}()

	select {
	case results := <-done:
		if len(results) != count {
			t.Errorf("expected %d results, got %d", count, len(results))
		}
		for _, r := range results {
			if r.Err != nil {
				t.Errorf("line %d: unexpected error: %v", r.Entry.Line, r.Err)
			}
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch stalled before draining all entries")
	}
}

func TestNewBatchProcessor_Concurrency(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{}, 0)
	if b.concurrency != 1 {
		t.Errorf("expected concurrency floor of 1, got %d", b.concurrency)
	}
}
