package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/harstat/internal/output"
	"github.com/wesleyorama2/harstat/internal/report"
)

func newHistogramCmd(a *app) *cobra.Command {
	var (
		metric     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "histogram <label>",
		Short: "Chart the distribution of a label's metrics",
		Long: `Bin every stored result of a label into a histogram per metric, using
Sturges' rule for the number of bins. Millisecond metrics show their ranges
in seconds.

All metrics that can be charted are listed; --metric picks the one shown
(default: the first).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			r, err := report.New(src, a.log).Histograms(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}

			if jsonOutput {
				if metric == "" || r.Insufficient() {
					return output.WriteJSON(cmd.OutOrStdout(), r)
				}
				chart, ok := r.Chart(metric)
				if !ok {
					return fmt.Errorf("%w %q in %s", output.ErrUnknownChart, metric, args[0])
				}
				return output.WriteJSON(cmd.OutOrStdout(), chart)
			}
			return a.console(cmd).PrintHistograms(r, metric)
		},
	}

	cmd.Flags().StringVarP(&metric, "metric", "m", "", "Metric id of the chart to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
