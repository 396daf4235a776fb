package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"shift-scheduler/errors"
	"shift-scheduler/models"
)

// Format is the encoding of a request document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the request format from a file extension.
// Anything other than .yaml/.yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseRequest decodes a generation request. Unknown fields are rejected so
// that typos in optional settings do not silently fall back to defaults.
func ParseRequest(r io.Reader, format Format) (models.Request, error) {
	var req models.Request
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, fmt.Errorf("decode json request: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil {
			return req, fmt.Errorf("decode yaml request: %w", err)
		}
	default:
		return req, fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, format)
	}
	return req, nil
}
