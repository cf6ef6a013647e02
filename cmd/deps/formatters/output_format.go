package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var outputFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatJSON,
	OutputFormatDOT,
	OutputFormatMermaid,
}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat returns the format named by value.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	for _, f := range outputFormats {
		if string(f) == value {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats returns the comma-separated list of format names.
func SupportedFormats() string {
	names := make([]string, len(outputFormats))
	for i, f := range outputFormats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
