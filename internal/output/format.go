package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

// OutputFormat specifies how command results are printed.
type OutputFormat string

const (
	// FormatText prints styled, human-readable output.
	FormatText OutputFormat = "text"

	// FormatJSON prints the result as JSON.
	FormatJSON OutputFormat = "json"

	// FormatYAML prints the result as YAML.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is valid.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a string into an OutputFormat.
// The second return value is false for unknown formats.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return OutputFormat(s), false
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"text", "json", "yaml"}
}

// WriteStructured encodes v as JSON or YAML to w. Field names follow the
// json struct tags of v in both formats.
func WriteStructured(w io.Writer, format OutputFormat, v any) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("format %q is not a structured format", format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}
