// Package prompt turns a set of source files into a single text block for an LLM prompt.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/LegacyCodeHQ/depclosure/vcs"
)

// OutputType selects how each file is wrapped.
type OutputType string

const (
	OutputTypeXML      OutputType = "xml"
	OutputTypeMarkdown OutputType = "markdown"
	OutputTypeJSON     OutputType = "json"
)

// ParseOutputType returns the output type named by value.
func ParseOutputType(value string) (OutputType, bool) {
	switch OutputType(value) {
	case OutputTypeXML, OutputTypeMarkdown, OutputTypeJSON:
		return OutputType(value), true
	default:
		return "", false
	}
}

// Options controls bundle rendering.
type Options struct {
	Type        OutputType
	LineNumbers bool
	Logger      *slog.Logger
}

// Bundle reads files in order and renders each as one block. Files that
// cannot be read or are empty are left out.
func Bundle(files []string, fsys vcs.FileSystem, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	blocks := make([]string, 0, len(files))
	for _, file := range files {
		content, err := fsys.ReadFile(file)
		if err != nil {
			logger.Debug("skipping unreadable file", "path", file, "error", err)
			continue
		}
		if len(content) == 0 {
			continue
		}

		text := string(content)
		if opts.LineNumbers {
			text = NumberLines(text)
		}

		block, err := FormatFileText(filepath.Base(file), text, opts.Type)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n"), nil
}

// NumberLines prefixes every line with its 1-based number and an arrow.
func NumberLines(content string) string {
	var sb strings.Builder
	for i, line := range splitLines(content) {
		sb.WriteString(fmt.Sprintf("%d→%s\n", i+1, line))
	}
	return sb.String()
}

// FormatFileText wraps one file's content for the given output type. XML is the default.
func FormatFileText(fileName, content string, outputType OutputType) (string, error) {
	switch outputType {
	case OutputTypeJSON:
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		err := encoder.Encode(struct {
			FileName string `json:"file_name"`
			Content  string `json:"content"`
		}{FileName: fileName, Content: content})
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", fileName, err)
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	case OutputTypeMarkdown:
		return fmt.Sprintf("File: %s\n```\n%s\n```\n", fileName, content), nil
	default:
		return fmt.Sprintf("<file name=%q>%s</file>", fileName, content), nil
	}
}

// splitLines breaks content at every line boundary Python's str.splitlines
// recognizes. A trailing boundary does not start an extra empty line.
func splitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}

		lines = append(lines, content[start:i])
		i += size
		if r == '\r' && i < len(content) && content[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}
