package cli

import (
	"fmt"
	"strings"

	"github.com/Fepozopo/rasterlab/pkg/stdimg"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// blockPrecision is the number of decimals used when a whole table is printed.
const blockPrecision = 4

func (a *app) newCharacteristicsCmd() *cobra.Command {
	var input, only string
	var channel int
	cmd := &cobra.Command{
		Use:   "characteristics -i INPUT [--channel N] [--only NAME]",
		Short: "Print histogram statistics of one channel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.loadInput(input)
			if err != nil {
				return err
			}
			c, err := stdimg.ComputeCharacteristics(src, channel)
			if err != nil {
				return err
			}
			fields := c.Fields()
			out := cmd.OutOrStdout()
			if only != "" {
				f, ok := lo.Find(fields, func(f stdimg.CharacteristicField) bool { return f.Name == only })
				if !ok {
					names := lo.Map(fields, func(f stdimg.CharacteristicField, _ int) string { return f.Name })
					return fmt.Errorf("unknown characteristic %q, want one of %s", only, strings.Join(names, ", "))
				}
				fmt.Fprintf(out, "%.*f\n", a.cfg.Precision, f.Value)
				return nil
			}
			for _, f := range fields {
				fmt.Fprintf(out, "%-26s %.*f\n", f.Label+":", blockPrecision, f.Value)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input image")
	cmd.Flags().IntVar(&channel, "channel", 0, "channel index")
	cmd.Flags().StringVar(&only, "only", "", "print a single value: cmean, cvariance, cstdev, cvarcoi, casyco, cflatco, cvarcoii or centropy")
	return cmd
}

func (a *app) newCompareCmd() *cobra.Command {
	var metric string
	cmd := &cobra.Command{
		Use:   "compare REFERENCE COMPARED [--metric NAME]",
		Short: "Measure how far an image is from a reference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.loadInput(args[0])
			if err != nil {
				return err
			}
			cmp, err := a.loadInput(args[1])
			if err != nil {
				return err
			}
			pair, err := stdimg.NewPair(ref, cmp)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if metric != "" {
				m, err := stdimg.LookupMetric(strings.ToLower(metric))
				if err != nil {
					return fmt.Errorf("%w, want one of %s", err, strings.Join(stdimg.MetricNames(), ", "))
				}
				fmt.Fprintf(out, "%.*f\n", a.cfg.Precision, m.Eval(pair))
				return nil
			}
			for _, name := range stdimg.MetricNames() {
				m, _ := stdimg.LookupMetric(name)
				line := fmt.Sprintf("%-5s %.*f", name+":", blockPrecision, m.Eval(pair))
				if m.Unit != "" {
					line += " " + m.Unit
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "", "print a single metric: "+strings.Join(stdimg.MetricNames(), ", "))
	return cmd
}

func (a *app) newHistogramCmd() *cobra.Command {
	var input, output string
	var channel, width, height int
	cmd := &cobra.Command{
		Use:   "histogram -i INPUT [--channel N] [-o OUTPUT]",
		Short: "Render the histogram of one channel as an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := a.loadInput(input)
			if err != nil {
				return err
			}
			h, err := stdimg.ComputeHistogram(src, channel)
			if err != nil {
				return err
			}
			path := ResolveOutputPath(output, a.cfg.OutputDir, "histogram")
			if err := SaveImage(path, stdimg.RenderHistogram(h, width, height)); err != nil {
				return err
			}
			a.log.Info().Int("channel", channel).Str("output", path).Msg("histogram saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input image")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image")
	cmd.Flags().IntVar(&channel, "channel", 0, "channel index")
	cmd.Flags().IntVar(&width, "width", 0, "chart width (default 512)")
	cmd.Flags().IntVar(&height, "height", 0, "chart height (default 160)")
	return cmd
}

func (a *app) loadInput(path string) (*stdimg.Raster, error) {
	if path == "" {
		return nil, fmt.Errorf("an input image is required")
	}
	r, err := LoadRaster(path)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("input", path).Str("info", ImageInfo(r)).Msg("loaded")
	return r, nil
}
