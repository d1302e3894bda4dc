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

// Design file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Formats lists the supported design formats.
var Formats = []string{FormatJSON, FormatTOML, FormatYAML}

// ReadDesign decodes a design in the given format from r and validates it.
func ReadDesign(r io.Reader, format string) (ceiling.Config, error) {
	cfg, err := decode(r, format)
	if err != nil {
		return ceiling.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ceiling.Config{}, err
	}
	return cfg, nil
}

// ImportDesign reads a design file from path. The format is taken from
// the file extension.
func ImportDesign(path string) (ceiling.Config, error) {
	format, err := errors.ValidateDesignFilename(path)
	if err != nil {
		return ceiling.Config{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ceiling.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "design file %s not found", path)
		}
		return ceiling.Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := ReadDesign(f, format)
	if err != nil {
		return ceiling.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, format string) (ceiling.Config, error) {
	var cfg ceiling.Config
	switch strings.ToLower(format) {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json design")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml design")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return cfg, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q in toml design", keys[0].String())
		}
	case FormatYAML, "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml design")
		}
	default:
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "unsupported design format %q (use json, toml or yaml)", format)
	}
	return cfg, nil
}
