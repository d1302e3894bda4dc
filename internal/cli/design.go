package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	cperrors "github.com/matzehuels/ceilplan/pkg/errors"
	designio "github.com/matzehuels/ceilplan/pkg/io"
)

// designFlags describe a ceiling design on the command line. A design file
// is the starting point when given; otherwise the defaults for --type.
// Explicitly set flags are applied on top.
type designFlags struct {
	file   string
	room   string
	typ    string
	count  int
	band   float64
	sides  string
	shape  string
	cutout float64
	coves  string
}

func (f *designFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "design file (.toml, .yaml, .json)")
	fs.StringVar(&f.room, "room", "", "room size in feet, WxL or WxLxH (default 12x15x9)")
	fs.StringVarP(&f.typ, "type", "t", string(ceiling.TypePlain), "ceiling type: plain, peripheral, island, combined")
	fs.IntVarP(&f.count, "count", "n", 0, "light count (0 = automatic)")
	fs.Float64Var(&f.band, "band", 0, "peripheral band width in feet")
	fs.StringVar(&f.sides, "sides", "", "enabled sides for the band or cutout ring, e.g. top,bottom")
	fs.StringVar(&f.shape, "shape", "", "island shape: rectangle, circle, oval, *-cutout")
	fs.Float64Var(&f.cutout, "cutout", 0, "cutout ring width in feet")
	fs.StringVar(&f.coves, "cove", "", "cove light positions: inner, outer")

	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(ceiling.Types))
		for i, t := range ceiling.Types {
			out[i] = string(t)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("shape", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(ceiling.Shapes))
		for i, s := range ceiling.Shapes {
			out[i] = string(s)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

// build assembles and validates the design.
func (f *designFlags) build(cmd *cobra.Command) (ceiling.Config, error) {
	changed := cmd.Flags().Changed

	var cfg ceiling.Config
	if f.file != "" {
		loaded, err := designio.ImportDesign(f.file)
		if err != nil {
			return ceiling.Config{}, err
		}
		cfg = loaded
		if changed("type") {
			return ceiling.Config{}, cperrors.New(cperrors.ErrCodeInvalidInput, "--type cannot be combined with --file")
		}
	} else {
		t, err := ceiling.ParseType(f.typ)
		if err != nil {
			return ceiling.Config{}, cperrors.Wrap(cperrors.ErrCodeInvalidInput, err, "--type")
		}
		cfg = ceiling.NewConfig(ceiling.DefaultRoom(), t)
	}

	if f.room != "" {
		r, err := parseRoom(f.room)
		if err != nil {
			return ceiling.Config{}, err
		}
		cfg = cfg.Rescale(r)
	}

	if err := f.apply(&cfg, changed); err != nil {
		return ceiling.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ceiling.Config{}, err
	}
	return cfg, nil
}

// apply writes the changed per-element flags into cfg.
func (f *designFlags) apply(cfg *ceiling.Config, changed func(string) bool) error {
	plain, peripheral, island := cfg.Layers()

	if changed("count") {
		if cfg.Type == ceiling.TypeCombined {
			return cperrors.New(cperrors.ErrCodeInvalidInput, "--count applies to single-layer designs; set counts per layer in a design file")
		}
		switch {
		case plain != nil:
			plain.LightCount = f.count
		case peripheral != nil:
			peripheral.LightCount = f.count
		case island != nil:
			island.LightCount = f.count
		}
	}

	if changed("band") {
		if peripheral == nil {
			return flagNeeds("band", "a peripheral band")
		}
		peripheral.Width = f.band
	}

	if changed("shape") {
		if island == nil {
			return flagNeeds("shape", "an island")
		}
		s, err := ceiling.ParseShape(f.shape)
		if err != nil {
			return cperrors.Wrap(cperrors.ErrCodeInvalidInput, err, "--shape")
		}
		*island = island.WithShape(s)
	}

	if changed("cutout") {
		if island == nil || !island.Shape.IsCutout() {
			return flagNeeds("cutout", "a cutout island")
		}
		island.CutoutWidth = f.cutout
	}

	if changed("sides") {
		sides, err := parseSides(f.sides)
		if err != nil {
			return err
		}
		switch {
		case peripheral != nil:
			peripheral.Sides = sides
		case island != nil && island.Shape == ceiling.ShapeRectangularCutout:
			island.Sides = &sides
		default:
			return flagNeeds("sides", "a peripheral band or rectangular cutout")
		}
	}

	if changed("cove") {
		cove, err := parseCoves(f.coves)
		if err != nil {
			return err
		}
		switch {
		case plain != nil:
			plain.Cove = cove
		case peripheral != nil:
			peripheral.Cove = cove
		case island != nil:
			island.Cove = cove
		}
	}
	return nil
}

func flagNeeds(flag, what string) error {
	return cperrors.New(cperrors.ErrCodeInvalidInput, "--%s needs a design with %s", flag, what)
}

// parseRoom parses "WxL" or "WxLxH" in feet.
func parseRoom(s string) (ceiling.Room, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) < 2 || len(parts) > 3 {
		return ceiling.Room{}, cperrors.New(cperrors.ErrCodeInvalidInput, "room %q must be WxL or WxLxH", s)
	}
	dims := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return ceiling.Room{}, cperrors.New(cperrors.ErrCodeInvalidInput, "room %q: %q is not a number", s, p)
		}
		dims[i] = v
	}
	r := ceiling.Room{Width: dims[0], Length: dims[1], Height: ceiling.DefaultRoomHeight}
	if len(dims) == 3 {
		r.Height = dims[2]
	}
	if err := r.Validate(); err != nil {
		return ceiling.Room{}, err
	}
	return r, nil
}

// parseSides parses a comma-separated list of top, right, bottom, left.
func parseSides(s string) (ceiling.Sides, error) {
	var sides ceiling.Sides
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "top":
			sides.Top = true
		case "right":
			sides.Right = true
		case "bottom":
			sides.Bottom = true
		case "left":
			sides.Left = true
		case "all":
			sides = ceiling.AllSides
		case "":
		default:
			return ceiling.Sides{}, cperrors.New(cperrors.ErrCodeInvalidInput, "unknown side %q (use top, right, bottom, left or all)", name)
		}
	}
	if sides.Count() == 0 {
		return ceiling.Sides{}, cperrors.New(cperrors.ErrCodeInvalidInput, "--sides needs at least one side")
	}
	return sides, nil
}

// parseCoves parses "inner", "outer", "inner,outer" or "none".
func parseCoves(s string) (ceiling.Cove, error) {
	var c ceiling.Cove
	for _, name := range strings.Split(s, ",") {
		switch p := ceiling.CovePosition(strings.TrimSpace(name)); p {
		case ceiling.CoveInner, ceiling.CoveOuter:
			c.CoveLight = true
			c.CovePositions = append(c.CovePositions, p)
		case "none", "":
		default:
			return ceiling.Cove{}, cperrors.New(cperrors.ErrCodeInvalidInput, "unknown cove position %q (use inner, outer or none)", name)
		}
	}
	return c, nil
}
