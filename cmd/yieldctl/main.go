// Command yieldctl scores farming parameters from the command line using
// the same rules as the API.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"farmhub-backend/internal/yield"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type requestFlags struct {
	crop       string
	landArea   string
	soil       string
	water      string
	irrigation string
	fertilizer string
	method     string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.crop, "crop", "", "crop name (required)")
	fs.StringVar(&f.landArea, "land-area", "", "land area in acres (default 1)")
	fs.StringVar(&f.soil, "soil", "", "soil type: Loamy, Clay, Sandy, ...")
	fs.StringVar(&f.water, "water", "", "water availability: High, Medium, Low")
	fs.StringVar(&f.irrigation, "irrigation", "", "irrigation method: Drip, Sprinkler, Flood, ...")
	fs.StringVar(&f.fertilizer, "fertilizer", "", "fertilizer use: Organic, Chemical, Mixed, None")
	fs.StringVar(&f.method, "method", "", "farming method: Organic, Conventional, Hydroponic, ...")
}

func (f *requestFlags) request() yield.Request {
	return yield.Request{
		Crop:              f.crop,
		LandArea:          yield.ParseLandArea(f.landArea),
		SoilType:          f.soil,
		WaterAvailability: f.water,
		IrrigationMethod:  f.irrigation,
		FertilizerUse:     f.fertilizer,
		FarmingMethod:     f.method,
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yieldctl",
		Short:         "Estimate crop yield efficiency",
		SilenceUsage:  true,
	}
	root.AddCommand(newEstimateCmd(), newExplainCmd(), newRulesCmd())
	return root
}

func newEstimateCmd() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the forecast for the given parameters as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := yield.Estimate(flags.request())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newExplainCmd() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Print the score breakdown for the given parameters as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := flags.request()
			if err := yield.Validate(req); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), yield.Explain(req))
		},
	}
	flags.bind(cmd)
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the scoring rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeRules(cmd.OutOrStdout(), yield.Rules())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRules(w io.Writer, rules []yield.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "BASE\t%d\t(clamped to %d..%d)\n", yield.BaseScore, yield.MinScore, yield.MaxScore)
	fmt.Fprintln(tw, "FIELD\tVALUE\tDELTA\tWHEN")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%+d\t%s\n", r.Field, r.Value, r.Delta, describeConditions(r.Conditions))
	}
	return tw.Flush()
}

func describeConditions(conds []yield.Condition) string {
	if len(conds) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		op := "="
		if c.Negate {
			op = "!="
		}
		parts = append(parts, fmt.Sprintf("%s%s%s", c.Field, op, c.Value))
	}
	return strings.Join(parts, " and ")
}
