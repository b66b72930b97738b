package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorozuya-cybersecurity/qagate/internal/logger"
	"github.com/yorozuya-cybersecurity/qagate/internal/traceability"
)

var Version = "0.1.0"

// NewRootCmd builds the command tree around its own viper instance
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "qagate",
		Short: "Quality gate helpers for test reports and traceability docs",
		Long: "qagate summarizes surefire test timings and cross-checks risk and test-case " +
			"identifiers between quality documents and test sources.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("root", ".", "Repository root; relative paths resolve against it")
	rootCmd.PersistentFlags().String("config", "", "Optional config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	_ = v.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Environment variable support (QAGATE_ROOT, QAGATE_PERF_OUTPUT, etc.)
	v.SetEnvPrefix("QAGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Subcommands
	rootCmd.AddCommand(newPerfCmd(v))
	rootCmd.AddCommand(newTraceCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the CLI and exits non-zero on error or traceability gaps
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, traceability.ErrGapsFound) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func loadConfig(v *viper.Viper) error {
	file := v.GetString("config")
	if file == "" {
		return nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// setup reads the optional config file and builds the logger. The logger is
// always usable: an invalid level falls back to info and is reported in err
// together with any config error.
func setup(v *viper.Viper) (*slog.Logger, error) {
	cfgErr := loadConfig(v)

	lvl, lvlErr := logger.ParseLevel(v.GetString("log-level"))
	return logger.New(os.Stderr, lvl), errors.Join(cfgErr, lvlErr)
}

// resolve joins relative paths onto the configured repository root
func resolve(v *viper.Viper, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(v.GetString("root"), path)
}
