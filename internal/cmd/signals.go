package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/RMahshie/sigdash/internal/signals"
	"github.com/RMahshie/sigdash/internal/table"
	"github.com/spf13/cobra"
)

func newSignalsCmd() *cobra.Command {
	var (
		sheet  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "signals <file>",
		Short: "List the signals discovered in an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := table.LoadFile(args[0], sheet)
			if err != nil {
				return err
			}
			catalog := signals.Discover(tbl.Columns())

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(catalog)
			}

			fmt.Fprintf(out, "%d rows, %d signals\n", tbl.NumRows(), len(catalog.Signals))
			for _, s := range catalog.Signals {
				fmt.Fprintf(out, "  %-24s %q / %q\n", s.Name, s.TimeColumn, s.ValueColumn)
			}
			for _, w := range catalog.Warnings {
				fmt.Fprintf(out, "warning: %s: %s\n", w.TimeColumn, w.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
