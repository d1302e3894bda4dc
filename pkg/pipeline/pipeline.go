// Package pipeline runs the layout → render pipeline shared by the CLI
// and the API server.
//
// # Stages
//
//  1. Layout: validate the design and calculate fixture positions
//  2. Render: produce artifacts (SVG, PNG, PDF, JSON, DOT) from the layout
//
// Both stages are cached through a [cache.Cache]. Layouts are keyed by the
// hash of the design, artifacts by the hash of the layout plus the render
// settings, so re-rendering a design with new labels reuses its layout.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Design:  cfg,
//	    Formats: []string{"svg", "json"},
//	    Labels:  true,
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ceilplan/pkg/cache"
	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/errors"
	"github.com/matzehuels/ceilplan/pkg/lighting"
	"github.com/matzehuels/ceilplan/pkg/render/plan"
)

const (
	// DefaultScale is the plan scale in pixels per foot.
	DefaultScale = plan.DefaultScale

	// DefaultPNGScale is the rasterization factor for PNG output.
	DefaultPNGScale = 2.0

	// DefaultView is the default visualization.
	DefaultView = ViewPlan
)

// Views select which renderer draws SVG, PNG and PDF output.
const (
	// ViewPlan is the scaled ceiling plan.
	ViewPlan = "plan"
	// ViewMap is the Graphviz wiring map.
	ViewMap = "map"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewPlan: true,
	ViewMap:  true,
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Options contains all configuration for a pipeline run. It supports JSON
// for API requests.
type Options struct {
	// Design is the ceiling configuration to plan.
	Design ceiling.Config `json:"design"`

	// Render options
	View     string   `json:"view,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`     // plan pixels per foot
	PNGScale float64  `json:"png_scale,omitempty"` // rasterization factor
	Labels   bool     `json:"labels,omitempty"`
	Coves    bool     `json:"coves,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // coordinates on map nodes
	Wiring   bool     `json:"wiring,omitempty"`   // chain fixtures per layer on the map

	// Refresh skips cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout lighting.Layout

	// LayoutHash is the content hash of the layout JSON.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Fixtures   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view: %q (must be one of: plan, map)", view)
	}
	return nil
}

// FormatNames lists the formats in a stable order.
func FormatNames() []string {
	return []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}
}

// ValidateAndSetDefaults validates the design and render settings and
// fills in defaults. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Design.Validate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsMap reports whether image formats come from the wiring map.
func (o *Options) IsMap() bool {
	return o.View == ViewMap
}

// ArtifactKeyOpts returns cache key options for one format. Settings that
// do not affect that format are left out so they don't split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch {
	case format == FormatJSON:
	case format == FormatDOT || o.IsMap():
		k.Detailed, k.Wiring = o.Detailed, o.Wiring
		if format == FormatPNG {
			k.Scale = o.PNGScale
		}
	default:
		k.Scale, k.Labels, k.Coves = o.Scale, o.Labels, o.Coves
		if format == FormatPNG {
			k.Scale = o.Scale * o.PNGScale
		}
	}
	if o.IsMap() && format != FormatJSON && format != FormatDOT {
		k.Format = ViewMap + "-" + format
	}
	return k
}

// String summarises the options for logs.
func (o *Options) String() string {
	return fmt.Sprintf("%s %s %v", o.Design.Type, o.View, o.Formats)
}
