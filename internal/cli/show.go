package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthlens/internal/pipeline"
	"github.com/ppiankov/truthlens/internal/store"
)

var (
	showJSON string
	showMD   string
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored analysis result",
	Long: `Show loads a result from the configured store and prints its summary.
The id "demo" always resolves to the canned demonstration result.

Example:
  truthlens show demo
  truthlens show analysis_1718000000000_k3j9x0a1b --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showJSON, "json", "", "output JSON path (optional)")
	showCmd.Flags().StringVar(&showMD, "md", "", "output Markdown path (optional)")
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	result, err := sess.analyzer.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("analysis %s not found in %s store", id, cfg.Store.Driver)
	}
	if err != nil {
		return fmt.Errorf("load analysis: %w", err)
	}

	return writeOutputs(cmd, pipeline.NewRenderer(true), result, showJSON, showMD)
}
