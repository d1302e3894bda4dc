package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/pipeline"
	"github.com/matzehuels/ceilplan/pkg/render"
)

// renderCommand renders a design to one or more files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      designFlags
		formatsStr string
		output     string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a design to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a design to one or more output files.

Two views are available:
  plan  scaled top-down drawing of the room, ceilings and fixtures (default)
  map   Graphviz fixture map with pinned positions; --wiring chains the
        fixtures of each layer, --detailed labels them with coordinates

PNG and PDF output of the plan view need rsvg-convert (librsvg) on PATH.

With one format, -o is the output file. With several, -o is a base path
and each file gets its format's extension.`,
		Example: `  ceilplan render -f kitchen.toml
  ceilplan render -f kitchen.toml -F svg,png,json --labels --cove
  ceilplan render --type island --shape oval --view map --wiring -o island`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd, &flags, opts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "F", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVar(&opts.View, "view", pipeline.ViewPlan, "view: plan, map")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "plan scale in pixels per foot")
	cmd.Flags().Float64Var(&opts.PNGScale, "png-scale", pipeline.DefaultPNGScale, "PNG rasterization factor")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "dimension labels (plan)")
	cmd.Flags().BoolVar(&opts.Coves, "coves", false, "draw cove light bands (plan)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "coordinates on fixture nodes (map)")
	cmd.Flags().BoolVar(&opts.Wiring, "wiring", false, "chain fixtures per layer (map)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, flags *designFlags, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	design, err := flags.build(cmd)
	if err != nil {
		return err
	}
	opts.Design = design
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if needsRSVG(opts) && !render.Available() {
		return fmt.Errorf("png and pdf output of the plan view need rsvg-convert; install librsvg or use --view map")
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, defaultBase(flags.file, design, opts.View), opts.Formats)
	for _, format := range opts.Formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(result.Artifacts[format]))
	}

	printSuccess("Rendered %s view", opts.View)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Layout.Summary, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

func needsRSVG(opts pipeline.Options) bool {
	if opts.IsMap() {
		return false
	}
	for _, f := range opts.Formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

// defaultBase derives an output base path: the design file without its
// extension, or "ceiling-<type>". Map renders get a "-map" suffix.
func defaultBase(designFile string, design ceiling.Config, view string) string {
	base := "ceiling-" + string(design.Type)
	if designFile != "" {
		base = strings.TrimSuffix(designFile, filepath.Ext(designFile))
	}
	if view == pipeline.ViewMap {
		base += "-map"
	}
	return base
}

// outputPaths maps each format to its output file. A single format with
// an explicit output path uses it verbatim.
func outputPaths(output, fallback string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}

	base := fallback
	if output != "" {
		base = output
		if ext := strings.TrimPrefix(filepath.Ext(output), "."); pipeline.ValidFormats[ext] {
			base = strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
