package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domuslabs/domus/internal/model"
	"github.com/domuslabs/domus/internal/pipeline"
)

// Analyzer runs one property analysis. *pipeline.Pipeline satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) (*model.AnalysisReport, error)
}

// ManifestEntry is one line of a batch manifest:
//
//	inspection.txt|disclosure.txt|price[|profile.yaml]
//
// The disclosure path and profile path may be empty.
type ManifestEntry struct {
	Line           int
	InspectionPath string
	DisclosurePath string
	AskingPrice    float64
	ProfilePath    string
}

// ParseManifest reads a manifest file. Blank lines and lines starting
// with # are skipped; a malformed line is an error naming its number.
func ParseManifest(path string) ([]ManifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var entries []ManifestEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) < 3 || len(fields) > 4 {
			return nil, fmt.Errorf("manifest line %d: want 3 or 4 |-separated fields, got %d", lineNo, len(fields))
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: invalid price %q", lineNo, strings.TrimSpace(fields[2]))
		}

		entry := ManifestEntry{
			Line:           lineNo,
			InspectionPath: strings.TrimSpace(fields[0]),
			DisclosurePath: strings.TrimSpace(fields[1]),
			AskingPrice:    price,
		}
		if entry.InspectionPath == "" {
			return nil, fmt.Errorf("manifest line %d: inspection path is required", lineNo)
		}
		if len(fields) == 4 {
			entry.ProfilePath = strings.TrimSpace(fields[3])
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return entries, nil
}

// LoadProfile reads a buyer profile YAML file; an empty path returns
// the default profile.
func LoadProfile(path string) (model.BuyerProfile, error) {
	if path == "" {
		return model.DefaultBuyerProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.BuyerProfile{}, fmt.Errorf("read profile: %w", err)
	}

	profile := model.DefaultBuyerProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return model.BuyerProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	return profile, nil
}

// AnalyzeJob analyzes one manifest entry.
type AnalyzeJob struct {
	Entry    ManifestEntry
	Analyzer Analyzer
}

// AnalyzeResult is the outcome of an AnalyzeJob.
type AnalyzeResult struct {
	Entry  ManifestEntry
	Report *model.AnalysisReport
	Err    error
}

// GetError implements Result.
func (r AnalyzeResult) GetError() error {
	return r.Err
}

// Execute implements Job: it reads the entry's documents and runs the
// analyzer. All failures land in the result, never panic.
func (j AnalyzeJob) Execute(ctx context.Context) Result {
	result := AnalyzeResult{Entry: j.Entry}

	inspection, err := os.ReadFile(j.Entry.InspectionPath)
	if err != nil {
		result.Err = fmt.Errorf("line %d: read inspection: %w", j.Entry.Line, err)
		return result
	}

	var disclosure []byte
	if j.Entry.DisclosurePath != "" {
		disclosure, err = os.ReadFile(j.Entry.DisclosurePath)
		if err != nil {
			result.Err = fmt.Errorf("line %d: read disclosure: %w", j.Entry.Line, err)
			return result
		}
	}

	profile, err := LoadProfile(j.Entry.ProfilePath)
	if err != nil {
		result.Err = fmt.Errorf("line %d: %w", j.Entry.Line, err)
		return result
	}

	report, err := j.Analyzer.Analyze(ctx, pipeline.Request{
		InspectionText: string(inspection),
		DisclosureText: string(disclosure),
		AskingPrice:    j.Entry.AskingPrice,
		Profile:        profile,
	})
	if err != nil {
		result.Err = fmt.Errorf("line %d: %w", j.Entry.Line, err)
		return result
	}

	result.Report = report
	return result
}

// BatchProcessor runs manifest entries through an analyzer on a
// worker pool.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// Process analyzes all entries and returns one result per entry, in
// completion order.
func (b *BatchProcessor) Process(ctx context.Context, entries []ManifestEntry) []AnalyzeResult {
	pool := NewPool(b.concurrency)
	pool.Start()

	// Drain results while submitting: manifests routinely exceed the
	// pool's buffers, and a full results buffer would stall the workers
	// and then Submit.
	collector := pool.Collect()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for _, entry := range entries {
		pool.Submit(AnalyzeJob{Entry: entry, Analyzer: b.analyzer})
	}
	pool.Finish()
	close(done)

	raw := collector.Wait()
	results := make([]AnalyzeResult, 0, len(raw))
	for _, r := range raw {
		if ar, ok := r.(AnalyzeResult); ok {
			results = append(results, ar)
		}
	}
	return results
}
