package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/pipeline"
	"github.com/ppiankov/truthlens/internal/worker"
)

var (
	contentType string
	inputFile   string
	seed        uint64
	delay       time.Duration
	outJSON     string
	outMD       string
	noFooter    bool
	timeout     time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [content]",
	Short: "Score a single article or URL",
	Long: `Analyze runs the heuristic credibility scorer on one submission and
stores the result in the configured store.

The submission is the positional argument or the contents of --file.
Without --type, submissions starting with http:// or https:// are treated
as URLs and everything else as text. URLs are scored on the URL string
itself; nothing is fetched.

Example:
  truthlens analyze "Breaking: miracle cure found overnight!"
  truthlens analyze https://example-news.com/health/story --json result.json
  truthlens analyze --file article.txt --md report.md --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&contentType, "type", "", "submission type (text, url); inferred when empty")
	analyzeCmd.Flags().StringVar(&inputFile, "file", "", "read the submission from a file")
	analyzeCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible scores (0 = config/clock)")
	analyzeCmd.Flags().DurationVar(&delay, "delay", 0, "simulated analysis delay")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	in, err := readSubmission(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Analysis.SimulatedDelay = delay
	if seed != 0 {
		cfg.Analysis.Seed = seed
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %s submission (%d chars)\n", in.Type, len([]rune(in.Content)))
	}

	result, err := sess.analyzer.Analyze(ctx, in)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return writeOutputs(cmd, pipeline.NewRenderer(!noFooter), result, outJSON, outMD)
}

// readSubmission builds the input from args or --file, honouring --type
func readSubmission(args []string) (model.AnalysisInput, error) {
	var content string
	switch {
	case inputFile != "" && len(args) > 0:
		return model.AnalysisInput{}, fmt.Errorf("pass either content or --file, not both")
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return model.AnalysisInput{}, fmt.Errorf("read %s: %w", inputFile, err)
		}
		content = strings.TrimRight(string(data), "\r\n")
	case len(args) == 1:
		content = args[0]
	default:
		return model.AnalysisInput{}, fmt.Errorf("nothing to analyze: pass content or --file")
	}

	if contentType == "" {
		in := worker.SubmissionFromLine(strings.TrimSpace(content))
		in.Content = content
		return in, nil
	}
	return model.AnalysisInput{Content: content, Type: model.ContentType(contentType)}, nil
}

// writeOutputs prints the summary and writes the optional report files
func writeOutputs(cmd *cobra.Command, renderer *pipeline.Renderer, result *model.AnalysisResult, jsonPath, mdPath string) error {
	renderer.RenderSummary(cmd.OutOrStdout(), result)

	for _, f := range result.KeyFindings {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", f.Type, f.Title, f.Description)
	}
	for _, fc := range result.FactChecks {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %s\n", fc.Status, fc.Claim)
	}
	fmt.Fprintln(cmd.OutOrStdout())

	if jsonPath != "" {
		if err := renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ JSON report: %s\n", jsonPath)
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Markdown report: %s\n", mdPath)
	}
	return nil
}
