package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qc-station/internal/infrastructure/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent inspections from the SQLite journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JournalPath == "" {
			return errors.New("journal path is not set (use --journal or QC_JOURNAL_PATH)")
		}
		journal, err := storage.OpenSQLiteJournal(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer journal.Close()

		records, err := journal.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read journal: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No inspections recorded.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIME\tVERDICT\tCOLOR\tEXPOSURE US\tCOMPONENT\tPHASE\tCHANGE\tGOOD\tBAD")
		fmt.Fprintln(w, "----\t-------\t-----\t-----------\t---------\t-----\t------\t----\t---")
		for _, r := range records {
			verdict, component, phase, change := "ACCEPT", "-", "-", "-"
			if !r.Accepted {
				verdict = "REJECT"
				component = fmt.Sprintf("%d", r.ComponentID)
				phase = fmt.Sprintf("%d", r.Phase)
				change = fmt.Sprintf("%+.1f%%", r.PercentChange*100)
			}
			color := string(r.Color)
			if r.ColorFallback {
				color += "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%d\t%d\n",
				r.InspectedAt.Local().Format("2006-01-02 15:04:05"), verdict, color, r.ExposureUs, component, phase, change, r.Good, r.Bad)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of records to show")
	rootCmd.AddCommand(historyCmd)
}
