package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/harstat/internal/config"
	"github.com/wesleyorama2/harstat/internal/output"
	"github.com/wesleyorama2/harstat/internal/report"
)

var errNoSteps = errors.New("nothing to compare: pass --plan or at least one --step")

type compareOptions struct {
	planFile     string
	steps        []string
	metrics      []string
	aggregations []string
	jsonOutput   bool
}

func newCompareCmd(a *app) *cobra.Command {
	opts := &compareOptions{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare aggregated metrics across labels or time windows",
		Long: `Aggregate each selected metric over every step and print the steps side by side.

A step is a label with an optional inclusive timestamp window, either listed
in a plan file or given as --step label[,from[,to]]:

  harstat compare --plan plan.yaml
  harstat compare --step "homepage,2024-01-01 00:00:00,2024-01-31 23:59:59" \
    --step "homepage,2024-02-01 00:00:00" --metric full_load_time --agg Median

Aggregations: Average, Median, Minimum, 90th Percentile, 95th Percentile,
99th Percentile, Maximum. Values that cannot be computed print as n/a.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCompare(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.planFile, "plan", "p", "", "Comparison plan file (YAML or JSON)")
	cmd.Flags().StringArrayVar(&opts.steps, "step", nil, "Step as label[,from[,to]] (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.metrics, "metric", "m", nil, "Metric id to include (repeatable, default: all)")
	cmd.Flags().StringArrayVarP(&opts.aggregations, "agg", "a", nil, "Aggregation type (repeatable, default: Average)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// buildPlan merges the plan file with the command-line flags. Flags
// replace the plan's metrics and aggregations and add steps.
func (o *compareOptions) buildPlan() (*config.Plan, error) {
	plan := &config.Plan{}
	if o.planFile != "" {
		loaded, err := config.LoadPlan(o.planFile)
		if err != nil {
			return nil, err
		}
		plan = loaded
	}

	for _, s := range o.steps {
		step, err := config.ParseStep(s)
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, step)
	}
	if len(plan.Steps) == 0 {
		return nil, errNoSteps
	}

	if len(o.metrics) > 0 {
		plan.Metrics = o.metrics
	}
	if len(o.aggregations) > 0 {
		plan.Aggregations = o.aggregations
	}

	plan.ApplyDefaults()
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (a *app) runCompare(cmd *cobra.Command, opts *compareOptions) error {
	plan, err := opts.buildPlan()
	if err != nil {
		return err
	}

	for _, id := range plan.UnknownMetrics() {
		a.warnings(cmd).Warn("unknown metric %q ignored", id)
	}

	src, err := a.openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	table, err := report.New(src, a.log).Compare(cmd.Context(), plan)
	if err != nil {
		return err
	}
	a.log.Debug("comparison built",
		zap.Int("steps", len(table.Labels)),
		zap.Int("columns", len(table.Columns)))

	if opts.jsonOutput {
		return output.WriteJSON(cmd.OutOrStdout(), table)
	}
	a.console(cmd).PrintTable(table)
	return nil
}
