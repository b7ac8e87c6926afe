package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/metrics"
	"github.com/wesleyorama2/harstat/internal/output"
)

func newMetricsCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the known metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := metrics.Catalog()
			if jsonOutput {
				return output.WriteJSON(cmd.OutOrStdout(), catalog)
			}
			a.console(cmd).PrintMetrics(catalog)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newLabelsCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List the labels that have stored results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			labels, err := src.Labels(cmd.Context())
			if err != nil {
				return err
			}
			a.log.Debug("labels listed", zap.Int("count", len(labels)))

			if jsonOutput {
				return output.WriteJSON(cmd.OutOrStdout(), nonNil(labels))
			}
			a.console(cmd).PrintList(labels, "No results stored yet.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newDatesCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dates <label>",
		Short: "List the timestamps of a label's results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			timestamps, err := src.Timestamps(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.WriteJSON(cmd.OutOrStdout(), nonNil(timestamps))
			}
			a.console(cmd).PrintList(timestamps, "No results for "+args[0]+".")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
