package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qc-station/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the station catalog and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := config.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "COLOR\tREFERENCE RGB\tEXPOSURE US\tTHRESHOLDS")
		fmt.Fprintln(w, "-----\t-------------\t-----------\t----------")
		for _, p := range catalog.Profiles {
			r := catalog.ExposureRanges[p.Color]
			var thresholds []string
			for _, t := range catalog.BinaryThresholds[p.Color] {
				thresholds = append(thresholds, fmt.Sprintf("%d-%d", t.Min, t.Max))
			}
			fmt.Fprintf(w, "%s\t%s\t%d-%d\t%s\n", p.Color, p.Reference, r.MinUs, r.MaxUs, strings.Join(thresholds, ", "))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		for i, phase := range catalog.Phases {
			fmt.Fprintf(out, "Phase %d: %d components\n", i+1, len(phase))
		}
		fmt.Fprintf(out, "Fallback color: %s\n", catalog.Fallback)

		if len(catalog.ComponentIDs()) == 0 {
			return errors.New("catalog has no components")
		}
		fmt.Fprintln(out, "Catalog OK")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
