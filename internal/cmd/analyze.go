package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/RMahshie/sigdash/internal/config"
	"github.com/RMahshie/sigdash/internal/processing"
	"github.com/RMahshie/sigdash/internal/signals"
	"github.com/RMahshie/sigdash/internal/table"
	"github.com/RMahshie/sigdash/pkg/models"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type analyzeOptions struct {
	sheet  string
	params models.AnalysisParams
	no3D   bool
	asJSON bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Compute dashboard panels for three signals",
		Long: `Compute the time series, moving average, histogram and FFT magnitude
spectrum of three signals, plus the aligned 3D view unless --no-3d is given.
Unset parameters fall back to the MA_WINDOW, MA_MODE, HIST_BINS and
MAX_3D_POINTS settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	f.StringSliceVar(&opts.params.Rows, "rows", nil, "Three signal names, comma separated (default: first three discovered)")
	f.IntVarP(&opts.params.Window, "window", "w", 0, "Moving average window")
	f.StringVar(&opts.params.Mode, "mode", "", "Moving average mode: trailing or centered")
	f.IntVar(&opts.params.Bins, "bins", 0, "Histogram bins")
	f.IntVar(&opts.params.MaxPoints, "max-points", 0, "Maximum points in the 3D view")
	f.StringVar(&opts.params.ColorBy, "color", string(processing.ColorSampleIndex), "3D color dimension")
	f.BoolVar(&opts.params.UseSmoothed, "use-smoothed", false, "Use moving averages for the 3D view")
	f.BoolVar(&opts.no3D, "no-3d", false, "Skip the 3D view")
	f.BoolVar(&opts.asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func runAnalyze(out io.Writer, path string, opts analyzeOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	settings, err := cfg.Processing.Settings()
	if err != nil {
		return err
	}

	tbl, err := table.LoadFile(path, opts.sheet)
	if err != nil {
		return err
	}
	catalog := signals.Discover(tbl.Columns())

	params := opts.params
	params.Include3D = !opts.no3D
	if len(params.Rows) == 0 {
		names := catalog.Names()
		if len(names) == 0 {
			return fmt.Errorf("no signals found in %s", path)
		}
		// fewer than three signals repeat the last one
		for i := range processing.DashboardRows {
			params.Rows = append(params.Rows, names[min(i, len(names)-1)])
		}
	}

	resolved, err := settings.Resolve(params)
	if err != nil {
		return err
	}
	result, err := processing.Analyze(tbl, catalog, resolved)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(result)
	}
	printSummary(out, result, resolved)
	return nil
}

func printSummary(out io.Writer, result *models.DashboardResult, opts processing.AnalysisOptions) {
	fmt.Fprintf(out, "window=%d mode=%s bins=%d\n", opts.Window, opts.Mode, opts.Bins)
	for i, panel := range result.Panels {
		s := panel.Series
		mean, std := stat.MeanStdDev(s.Value, nil)
		fmt.Fprintf(out, "Row %d  %s\n", i+1, s.Name)
		fmt.Fprintf(out, "  samples  %d\n", len(s.Value))
		fmt.Fprintf(out, "  range    [%g, %g]\n", floats.Min(s.Value), floats.Max(s.Value))
		fmt.Fprintf(out, "  mean     %g (std %g)\n", mean, std)

		if len(panel.Histogram.Counts) > 0 {
			mode := floats.MaxIdx(countsAsFloats(panel.Histogram.Counts))
			fmt.Fprintf(out, "  mode bin [%g, %g) with %d samples\n",
				panel.Histogram.Edges[mode], panel.Histogram.Edges[mode+1], panel.Histogram.Counts[mode])
		}
		if peak, ok := processing.PeakFrequency(panel.Spectrum); ok {
			fmt.Fprintf(out, "  peak     %g Hz\n", peak)
		}
	}

	switch {
	case result.View != nil:
		v := result.View
		fmt.Fprintf(out, "3D view  %d points, x=%s y=%s z=%s color=%s\n", v.Len(), v.XLabel, v.YLabel, v.ZLabel, v.ColorLabel)
	case result.ViewError != "":
		fmt.Fprintf(out, "3D view  unavailable: %s\n", result.ViewError)
	}
}

func countsAsFloats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}
