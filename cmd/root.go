package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"qc-station/config"
)

// Version версия станции
const Version = "0.1.0"

var (
	// cfg конфигурация окружения с учётом флагов командной строки
	cfg *config.Config

	catalogPath string
	journalPath string
)

var rootCmd = &cobra.Command{
	Use:           "qcstation",
	Short:         "Machine vision quality control station for PCB assemblies",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("catalog") {
			loaded.CatalogPath = catalogPath
		}
		if cmd.Flags().Changed("journal") {
			loaded.JournalPath = journalPath
		}
		cfg = loaded
		return nil
	},
}

// Execute запускает CLI с контекстом, отменяемым по SIGINT/SIGTERM
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "station catalog TOML file (default: $QC_CATALOG or built-in)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "SQLite inspection journal (default: $QC_JOURNAL_PATH or in-memory)")
}
