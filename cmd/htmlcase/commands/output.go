package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrjoshuak/htmlcase"
)

// OutputFormat is the encoding used to write a transformation result.
type OutputFormat string

const (
	FormatHTML OutputFormat = "html"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

func parseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be one of: html, json, yaml", s)
	}
}

// Ext returns the file extension used in batch output.
func (f OutputFormat) Ext() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatYAML:
		return ".yaml"
	default:
		return ".html"
	}
}

// encodeResult renders res in the given format. html output is the
// fragment alone; json and yaml include the counters.
func encodeResult(res *htmlcase.Result, f OutputFormat, compact bool) ([]byte, error) {
	switch f {
	case FormatJSON:
		if compact {
			return json.Marshal(res)
		}
		return json.MarshalIndent(res, "", "  ")
	case FormatYAML:
		return yaml.Marshal(res)
	default:
		return []byte(res.HTML), nil
	}
}
