// Package io reads and writes ceiling design files.
//
// # Formats
//
// A design is a [ceiling.Config] serialized as JSON, TOML or YAML. The
// format is chosen from the file extension:
//
//	.json         JSON, camelCase keys as used by the browser designer
//	.toml         TOML, snake_case keys
//	.yaml, .yml   YAML, snake_case keys
//
// A minimal TOML design:
//
//	type = "peripheral"
//
//	[room]
//	width = 10.0
//	length = 10.0
//	height = 9.0
//
//	[peripheral]
//	width = 1.5
//	sides = { top = true, right = true, bottom = true, left = true }
//
// # Import
//
// Use [ImportDesign] to read a design from a file path, or [ReadDesign] to
// read from any io.Reader. Both reject unknown keys and run
// [ceiling.Config.Validate] on the result, so a design that imports
// cleanly is ready for the lighting calculator.
//
// # Export
//
// Use [ExportDesign] to write a design to a file, or [WriteDesign] to write
// to any io.Writer. Exported designs re-import to an identical Config.
package io
