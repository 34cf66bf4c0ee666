package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a scenario encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FormatFromPath picks the encoding from the file extension. Unknown
// extensions are read as the text format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	s, err := Parse(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario in the given format and validates it.
func Parse(r io.Reader, format Format) (*Scenario, error) {
	var (
		s   *Scenario
		err error
	)
	switch format {
	case FormatYAML:
		s = &Scenario{}
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err = dec.Decode(s); err == io.EOF {
			err = nil
		}
	case FormatJSON:
		s = &Scenario{}
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(s)
	case FormatText:
		s, err = ParseText(r)
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
