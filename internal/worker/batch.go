package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/truthlens/internal/model"
)

const batchLimiterKey = "batch"

// Analyzer defines the interface for analyzing one submission
type Analyzer interface {
	Analyze(ctx context.Context, in model.AnalysisInput) (*model.AnalysisResult, error)
}

// AnalysisJob analyzes a single submission
type AnalysisJob struct {
	Index    int
	Input    model.AnalysisInput
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute executes the analysis job
func (j *AnalysisJob) Execute(ctx context.Context) Result {
	out := &AnalysisOutcome{Index: j.Index, Input: j.Input}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, batchLimiterKey); err != nil {
			out.Error = err
			return out
		}
	}

	out.Result, out.Error = j.Analyzer.Analyze(ctx, j.Input)
	return out
}

// AnalysisOutcome is the result of an analysis job
type AnalysisOutcome struct {
	Index  int
	Input  model.AnalysisInput
	Result *model.AnalysisResult
	Error  error
}

// GetError returns the error from the outcome
func (r *AnalysisOutcome) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many submissions concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. ratePerSecond <= 0 means unthrottled.
func NewBatchProcessor(analyzer Analyzer, concurrency int, ratePerSecond float64) *BatchProcessor {
	b := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
	if ratePerSecond > 0 {
		b.limiter = NewLimiter(ratePerSecond, 1)
	}
	return b
}

// ProcessInputs analyzes inputs and returns outcomes in input order
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []model.AnalysisInput) []*AnalysisOutcome {
	if len(inputs) == 0 {
		return []*AnalysisOutcome{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, in := range inputs {
		if !pool.Submit(&AnalysisJob{Index: i, Input: in, Analyzer: b.analyzer, Limiter: b.limiter}) {
			break
		}
	}

	results := pool.Wait()

	outcomes := make([]*AnalysisOutcome, len(inputs))
	for _, result := range results {
		out := result.(*AnalysisOutcome)
		outcomes[out.Index] = out
	}

	// Jobs never run when ctx was cancelled mid-batch
	for i, out := range outcomes {
		if out == nil {
			outcomes[i] = &AnalysisOutcome{Index: i, Input: inputs[i], Error: context.Cause(ctx)}
		}
	}

	return outcomes
}

// ProcessFile reads submissions from a file and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalysisOutcome, error) {
	inputs, err := ReadSubmissions(filePath)
	if err != nil {
		return nil, fmt.Errorf("read submissions: %w", err)
	}

	return b.ProcessInputs(ctx, inputs), nil
}

// ReadSubmissions reads one submission per line. Lines starting with
// http:// or https:// are URL submissions, anything else is text.
// Blank lines and # comments are skipped, duplicates dropped.
func ReadSubmissions(filePath string) ([]model.AnalysisInput, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []model.AnalysisInput
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, SubmissionFromLine(line))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}

// SubmissionFromLine infers the submission type from its prefix
func SubmissionFromLine(line string) model.AnalysisInput {
	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		return model.AnalysisInput{Content: line, Type: model.ContentTypeURL}
	}
	return model.AnalysisInput{Content: line, Type: model.ContentTypeText}
}
