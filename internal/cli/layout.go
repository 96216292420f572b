package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		cf         cacheFlags
	)
	flags := pipeline.Options{}
	flags.SetDefaults()

	cmd := &cobra.Command{
		Use:   "layout [city.json]",
		Short: "Compute a city layout",
		Long: `Compute a city layout from a city document.

The input lists nodes (with parent links, optional sizes and metrics) and
optional dependency edges. The output holds a transform for every placed node
and control points for every edge.

Options are read from --config (TOML) first; flags given on the command line
override the file. Results are cached locally unless --no-cache is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, configPath, flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML options file")
	cf.register(cmd)

	// Layout flags
	cmd.Flags().StringVarP(&flags.Layout, "layout", "l", flags.Layout, "treemap, circlepacking, balloon, evostreets, rectpacker or manhattan")
	cmd.Flags().Float64Var(&flags.Padding, "padding", flags.Padding, "gap between sibling footprints")
	cmd.Flags().Float64Var(&flags.InnerHeight, "inner-height", flags.InnerHeight, "height of district plates")
	cmd.Flags().Float64Var(&flags.StreetWidth, "street-width", flags.StreetWidth, "width of the root street (evostreets)")

	// Scale flags
	cmd.Flags().StringVarP(&flags.Scale, "scale", "s", flags.Scale, "metric scaler: linear or zscore")
	cmd.Flags().Float64Var(&flags.MinLength, "min-length", flags.MinLength, "smallest scaled block length")
	cmd.Flags().Float64Var(&flags.MaxLength, "max-length", flags.MaxLength, "largest scaled block length")
	cmd.Flags().Float64Var(&flags.StandardLength, "standard-length", flags.StandardLength, "z-score length at the mean (default: midpoint)")
	cmd.Flags().StringVar(&flags.WidthMetric, "width-metric", "", "metric driving block width")
	cmd.Flags().StringVar(&flags.HeightMetric, "height-metric", "", "metric driving block height")
	cmd.Flags().StringVar(&flags.DepthMetric, "depth-metric", "", "metric driving block depth")
	cmd.Flags().StringVar(&flags.ColorMetric, "color-metric", "", "metric mapped to a 0..1 color value")
	cmd.Flags().BoolVar(&flags.LeavesOnly, "leaves-only", false, "compute metric statistics over leaves only")

	// Edge flags
	cmd.Flags().BoolVar(&flags.SkipEdges, "skip-edges", false, "do not bundle edges")
	cmd.Flags().BoolVar(&flags.EdgesBelowGround, "edges-below", false, "route edges below the ground plane")
	cmd.Flags().Float64Var(&flags.LevelDistance, "level-distance", 0, "vertical gap between edge levels (default: derived)")
	cmd.Flags().IntVar(&flags.EdgeSamples, "edge-samples", 0, "sample each edge spline at N points (0 keeps control points)")

	return cmd
}

// optionFlags maps flag names onto the option they set.
var optionFlags = map[string]func(dst, src *pipeline.Options){
	"layout":          func(d, s *pipeline.Options) { d.Layout = s.Layout },
	"padding":         func(d, s *pipeline.Options) { d.Padding = s.Padding },
	"inner-height":    func(d, s *pipeline.Options) { d.InnerHeight = s.InnerHeight },
	"street-width":    func(d, s *pipeline.Options) { d.StreetWidth = s.StreetWidth },
	"scale":           func(d, s *pipeline.Options) { d.Scale = s.Scale },
	"min-length":      func(d, s *pipeline.Options) { d.MinLength = s.MinLength },
	"max-length":      func(d, s *pipeline.Options) { d.MaxLength = s.MaxLength },
	"standard-length": func(d, s *pipeline.Options) { d.StandardLength = s.StandardLength },
	"width-metric":    func(d, s *pipeline.Options) { d.WidthMetric = s.WidthMetric },
	"height-metric":   func(d, s *pipeline.Options) { d.HeightMetric = s.HeightMetric },
	"depth-metric":    func(d, s *pipeline.Options) { d.DepthMetric = s.DepthMetric },
	"color-metric":    func(d, s *pipeline.Options) { d.ColorMetric = s.ColorMetric },
	"leaves-only":     func(d, s *pipeline.Options) { d.LeavesOnly = s.LeavesOnly },
	"skip-edges":      func(d, s *pipeline.Options) { d.SkipEdges = s.SkipEdges },
	"edges-below":     func(d, s *pipeline.Options) { d.EdgesBelowGround = s.EdgesBelowGround },
	"level-distance":  func(d, s *pipeline.Options) { d.LevelDistance = s.LevelDistance },
	"edge-samples":    func(d, s *pipeline.Options) { d.EdgeSamples = s.EdgeSamples },
}

// resolveOptions loads the config file, if any, and applies the flags the
// user set explicitly. Without a config file the flag values, defaults
// included, are used as is.
func resolveOptions(cmd *cobra.Command, configPath string, flags pipeline.Options) (pipeline.Options, error) {
	if configPath == "" {
		return flags, nil
	}
	opts, err := pipeline.LoadOptions(configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	for name, apply := range optionFlags {
		if cmd.Flags().Changed(name) {
			apply(&opts, &flags)
		}
	}
	return opts, nil
}

// runLayout loads the city, runs the pipeline and writes the layout.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, cf cacheFlags) error {
	doc, err := city.ImportCity(input)
	if err != nil {
		return fmt.Errorf("load city %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Layout))
	spinner.Start()

	res, err := runner.Run(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Laid out %d nodes", len(res.Layout.Nodes)))

	if output == "-" {
		return city.WriteLayout(res.Layout, os.Stdout)
	}
	outputPath := layoutPath(input, output)
	if err := city.ExportLayout(res.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheHit)
	return nil
}

// layoutPath returns output, or <input without extension>.layout.json.
func layoutPath(input, output string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
