package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/truthlens/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the TruthLens HTTP API",
	Long: `Serve exposes the analyzer over HTTP:

  POST /api/analyze               score a submission {content, type}
  GET  /api/analysis/{id}         fetch a stored result ("demo" always exists)
  GET  /api/analysis/{id}/report  HTML report for a stored result
  GET  /api/health                liveness check

Example:
  truthlens serve
  truthlens serve --addr :9090 --store-driver sqlite --store-dsn file:truthlens.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("store-driver", "memory", "result store (memory, sqlite, postgres)")
	serveCmd.Flags().String("store-dsn", "", "data source name for sqlite/postgres")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("store.driver", serveCmd.Flags().Lookup("store-driver"))
	_ = viper.BindPFlag("store.dsn", serveCmd.Flags().Lookup("store-dsn"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			sess.logger.Warn().Err(err).Msg("close session")
		}
	}()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  TruthLens API %s\n", Version)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Address:      %s\n", cfg.Server.Addr)
	fmt.Fprintf(os.Stderr, "  Base path:    %s\n", cfg.Server.BasePath)
	fmt.Fprintf(os.Stderr, "  Store:        %s\n", cfg.Store.Driver)
	fmt.Fprintf(os.Stderr, "  Delay:        %v\n", cfg.Analysis.SimulatedDelay)
	if len(cfg.Events.Brokers) > 0 {
		fmt.Fprintf(os.Stderr, "  Events:       %s -> %v\n", cfg.Events.Topic, cfg.Events.Brokers)
	}
	fmt.Fprintf(os.Stderr, "\n")

	srv, err := server.New(cfg.Server, sess.analyzer, sess.logger)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
