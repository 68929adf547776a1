package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Fepozopo/rasterlab/pkg/stdimg"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// categoryOrder is the listing order of command categories.
var categoryOrder = []string{
	stdimg.CategoryLinear,
	stdimg.CategoryNonLinear,
	stdimg.CategoryNoise,
	stdimg.CategoryHistogram,
	stdimg.CategoryPoint,
	stdimg.CategoryGeometric,
}

func (a *app) newListCmd() *cobra.Command {
	var verbose bool
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the image commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups := stdimg.ByCategory()
			cats := categoryOrder
			if category != "" {
				if !lo.Contains(categoryOrder, category) {
					return fmt.Errorf("unknown category %q, want one of %s", category, strings.Join(categoryOrder, ", "))
				}
				cats = []string{category}
			}
			out := cmd.OutOrStdout()
			for _, cat := range cats {
				fmt.Fprintf(out, "%s:\n", cat)
				for _, c := range groups[cat] {
					fmt.Fprintf(out, "  %-18s %s\n", c.Name, c.Description)
					if verbose {
						fmt.Fprintf(out, "  %-18s usage: %s\n", "", c.Usage)
						for _, line := range argLines(c) {
							fmt.Fprintf(out, "  %-18s %s\n", "", line)
						}
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show usage and parameters")
	cmd.Flags().StringVar(&category, "category", "", "only list one category")
	return cmd
}

// argLines describes the parameters of c, one per line.
func argLines(c stdimg.CommandSpec) []string {
	return lo.Map(c.Args, func(a stdimg.ArgSpec, _ int) string {
		req := "optional"
		if a.Required {
			req = "required"
		}
		line := fmt.Sprintf("- %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			line += ": " + a.Description
		}
		if a.Default != "" {
			line += " (default: " + a.Default + ")"
		}
		return line
	})
}

// parseAssignments turns name=value pairs into a parameter map.
func parseAssignments(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("parameter %q is not of the form name=value", p)
		}
		params[k] = v
	}
	return params, nil
}

func (a *app) newApplyCmd() *cobra.Command {
	var input, output string
	var sets []string
	cmd := &cobra.Command{
		Use:   "apply COMMAND [name=value...] -i INPUT [-o OUTPUT]",
		Short: "Apply one image command and write the result",
		Long: "Apply one image command to INPUT. Parameters are given as name=value,\n" +
			"either after the command name or with --set. Without -o the result is\n" +
			"written to <output_dir>/<command>.bmp. Run 'rasterlab list -v' for the\n" +
			"commands and their parameters.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			spec, ok := stdimg.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown command %q, run 'rasterlab list'", name)
			}
			params, err := parseAssignments(append(args[1:], sets...))
			if err != nil {
				return err
			}
			if input == "" {
				return fmt.Errorf("an input image is required (-i)")
			}
			src, err := LoadRaster(input)
			if err != nil {
				return err
			}
			a.log.Debug().Str("input", input).Str("info", ImageInfo(src)).Msg("loaded")

			res, err := stdimg.NewEngine(a.log).Apply(src, spec.Name, params)
			if err != nil {
				return fmt.Errorf("%s: %w\nusage: %s", spec.Name, err, spec.Usage)
			}
			path := ResolveOutputPath(output, a.cfg.OutputDir, spec.Name)
			if err := SaveImage(path, res.ToImage()); err != nil {
				return err
			}
			a.log.Info().Str("command", spec.Name).Str("output", path).Msg("saved")
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s (%s)\n", path, ImageInfo(res))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input image")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "command parameter name=value, repeatable")
	return cmd
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rasterlab %s\n", Version)
		},
	}
}

func (a *app) newUpdateCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := NewUpdater(a.cfg.UpdateRepo, a.log)
			return u.CheckForUpdates(cmd.Context(), cmd.OutOrStdout(), func(prompt string) (bool, error) {
				if yes {
					return true, nil
				}
				return confirmLine(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking")
	return cmd
}

// confirmLine prints prompt and reads a yes/no answer, defaulting to no.
func confirmLine(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
