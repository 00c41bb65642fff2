package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthlens/internal/pipeline"
	"github.com/ppiankov/truthlens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchRate    float64
	// noFooter, seed and delay are defined in analyze.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Score many submissions from a file in parallel",
	Long: `Batch analyzes one submission per line:
- Lines starting with http:// or https:// are URL submissions, the rest text
- Blank lines and # comments are skipped, duplicates analyzed once
- Submissions run in parallel with a configurable worker count
- A JSON and a Markdown report is written per result

Example:
  truthlens batch submissions.txt
  truthlens batch submissions.txt --concurrency 8 --output-dir ./reports
  truthlens batch submissions.txt --rate 2 --delay 1s`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./truthlens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&batchRate, "rate", 0, "max analyses per second (0 = unthrottled)")

	batchCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = config/clock)")
	batchCmd.Flags().DurationVar(&delay, "delay", 0, "simulated delay per analysis")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Analysis.SimulatedDelay = delay
	if seed != 0 {
		cfg.Analysis.Seed = seed
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  TruthLens Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if batchRate > 0 {
		fmt.Fprintf(os.Stderr, "  Rate:         %.2f/s\n", batchRate)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	processor := worker.NewBatchProcessor(sess.analyzer, concurrency, batchRate)

	fmt.Fprintf(os.Stderr, "⚙️  Analyzing submissions with %d workers...\n\n", concurrency)
	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(!noFooter)
	successCount := 0
	failureCount := 0

	for _, out := range outcomes {
		label := truncate(out.Input.Content, 60)
		if out.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, out.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, out.Result.ID+".json")
		mdPath := filepath.Join(outputDir, out.Result.ID+".md")

		if err := renderer.RenderJSON(out.Result, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", label, err)
			continue
		}
		if err := renderer.RenderMarkdown(out.Result, mdPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", label, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (overall: %d/100) -> %s\n", label, out.Result.CredibilityScore.Overall, out.Result.ID)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d submissions\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// truncate shortens s to at most n runes for one-line status output
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
