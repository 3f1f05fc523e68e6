// Package cmd provides CLI commands for bank.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"retailbank/internal/bank"
	"retailbank/internal/config"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "bank",
	Short: "A minimal retail-banking ledger",
	Long: `bank keeps clients, checking accounts and their deposit/withdrawal
history in memory for the duration of the process.

Example:
  bank shell --export statement.yaml
  bank serve --addr :8080`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug || os.Getenv("DEBUG") == "true" {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig 載入並檢核設定。
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLedger 依設定建立帳本。
func newLedger(cfg *config.Config) *bank.Ledger {
	slog.Debug("ledger policy", "withdrawal_limit", cfg.Policy.Limit, "max_withdrawals", cfg.Policy.MaxWithdrawals)
	return bank.NewLedger(bank.WithPolicy(cfg.Policy))
}
