package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ceilplan/pkg/ceiling"
	"github.com/matzehuels/ceilplan/pkg/errors"
)

// WriteDesign encodes cfg in the given format and writes it to w.
// The output can be re-imported with [ReadDesign].
func WriteDesign(w io.Writer, cfg ceiling.Config, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported design format %q (use json, toml or yaml)", format)
	}
	return nil
}

// ExportDesign writes cfg to a design file at path, in the format implied
// by the file extension.
func ExportDesign(cfg ceiling.Config, path string) error {
	format, err := errors.ValidateDesignFilename(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDesign(f, cfg, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
