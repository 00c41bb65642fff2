package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/truthlens/internal/model"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=..."
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "truthlens",
	Short: "TruthLens - heuristic credibility scoring for articles and URLs",
	Long: `TruthLens scores submitted text or URLs for credibility using fixed
heuristics: sensational wording, missing source links, short content and
sweeping claims lower the score, and a little random noise is added.

It does not fetch URLs, verify claims or consult real fact-checkers.
Scores are illustrative and must not be read as a verdict on the content.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for TruthLens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "truthlens %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.truthlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	setDefaults(model.DefaultConfig())

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.truthlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// TRUTHLENS_SERVER_ADDR -> server.addr
	viper.SetEnvPrefix("TRUTHLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env vars and flags resolve on Unmarshal
func setDefaults(cfg *model.Config) {
	viper.SetDefault("server.addr", cfg.Server.Addr)
	viper.SetDefault("server.base_path", cfg.Server.BasePath)
	viper.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	viper.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	viper.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	viper.SetDefault("server.rate_limit.requests_per_second", cfg.Server.RateLimit.RequestsPerSecond)
	viper.SetDefault("server.rate_limit.burst", cfg.Server.RateLimit.Burst)
	viper.SetDefault("server.rate_limit.idle_timeout", cfg.Server.RateLimit.IdleTimeout)
	viper.SetDefault("server.rate_limit.cleanup_interval", cfg.Server.RateLimit.CleanupInterval)
	viper.SetDefault("server.trusted_proxies", cfg.Server.TrustedProxies)

	viper.SetDefault("analysis.simulated_delay", cfg.Analysis.SimulatedDelay)
	viper.SetDefault("analysis.seed", cfg.Analysis.Seed)

	viper.SetDefault("store.driver", cfg.Store.Driver)
	viper.SetDefault("store.dsn", cfg.Store.DSN)

	viper.SetDefault("events.brokers", cfg.Events.Brokers)
	viper.SetDefault("events.topic", cfg.Events.Topic)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig resolves the effective configuration (flags > env > file > defaults)
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose && cfg.Log.Level == "info" {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
