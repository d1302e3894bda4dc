package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/ceilplan/pkg/errors"
)

// Raster and print formats reachable from SVG.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

const installHint = "Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return ConvertContext(context.Background(), svg, FormatPDF, 1)
}

// ToPNG converts SVG bytes to PNG with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return ConvertContext(context.Background(), svg, FormatPNG, scale)
}

// ConvertContext converts SVG bytes to format ("pdf" or "png"). The
// rsvg-convert process is killed when ctx is cancelled. Scale applies to
// PNG output only; values <= 0 mean 1.
func ConvertContext(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	var extra []string
	switch format {
	case FormatPDF:
	case FormatPNG:
		if scale <= 0 {
			scale = 1
		}
		extra = []string{"-z", fmt.Sprintf("%.2f", scale)}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %q", format)
	}
	return rsvgConvert(ctx, svg, format, extra...)
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath("rsvg-convert")
	return err == nil
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s export requires librsvg. %s", format, installHint)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "rsvg-convert cancelled")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
