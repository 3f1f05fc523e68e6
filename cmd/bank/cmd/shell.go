package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"retailbank/internal/cli"
	"retailbank/internal/storage"
)

var exportPath string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive menu",
	Long: `Run the interactive menu on stdin/stdout.

When --export (or BANK_EXPORT_PATH) is set, a statement snapshot of every
account is written on exit. Paths ending in .yaml/.yml are written as YAML,
anything else as JSON.`,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().StringVar(&exportPath, "export", "", "write a statement snapshot to this path on exit")
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := newLedger(cfg)

	if err := cli.NewUI(l, os.Stdin, cmd.OutOrStdout()).Run(); err != nil {
		return err
	}

	path := exportPath
	if path == "" {
		path = cfg.ExportPath
	}
	if path == "" {
		return nil
	}
	if err := storage.SaveSnapshot(path, l.Snapshot()); err != nil {
		slog.Error("export failed", "path", path, "error", err)
		return fmt.Errorf("export statement: %w", err)
	}
	slog.Info("statement exported", "path", path, "accounts", len(l.Accounts()))
	return nil
}
