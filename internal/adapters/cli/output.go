// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package cli provides output adapters for CLI operations.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnsupportedFormat is returned when an unsupported output format is requested.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

const columnGap = 2

// OutputAdapter implements domain.OutputPort for CLI output.
type OutputAdapter struct {
	writer    io.Writer
	errWriter io.Writer
	format    OutputFormat
	quiet     bool
}

// OutputFormat represents the output format type.
type OutputFormat int

const (
	// TextFormat outputs human-readable text.
	TextFormat OutputFormat = iota
	// JSONFormat outputs machine-readable JSON.
	JSONFormat
	// PlainFormat outputs bare values, one per line, without decoration.
	PlainFormat
)

// NewOutputAdapter creates a new output adapter with the specified configuration.
func NewOutputAdapter(format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriters(os.Stdout, os.Stderr, format, quiet)
}

// NewOutputAdapterWithWriter creates a new output adapter with a custom writer for testing.
// Error messages go to the same writer.
func NewOutputAdapterWithWriter(writer io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return NewOutputAdapterWithWriters(writer, writer, format, quiet)
}

// NewOutputAdapterWithWriters creates an output adapter that writes text and plain
// error messages to errWriter. JSON error documents stay on writer.
func NewOutputAdapterWithWriters(writer, errWriter io.Writer, format OutputFormat, quiet bool) *OutputAdapter {
	return &OutputAdapter{
		writer:    writer,
		errWriter: errWriter,
		format:    format,
		quiet:     quiet,
	}
}

// Success outputs a success message with optional structured data.
// Structured data is still written in JSON mode when quiet is set.
func (o *OutputAdapter) Success(message string, data interface{}) error {
	if o.format == JSONFormat && data != nil {
		return o.outputJSON(data)
	}

	if message != "" && !o.quiet {
		_, _ = fmt.Fprintln(o.writer, message)
	}

	return nil
}

// Error outputs an error message.
func (o *OutputAdapter) Error(message string) error {
	if o.quiet {
		return nil
	}

	switch o.format {
	case JSONFormat:
		return o.outputJSON(map[string]string{"error": message})
	case PlainFormat:
		_, _ = fmt.Fprintf(o.errWriter, "error: %s\n", message)
	default:
		_, _ = fmt.Fprintf(o.errWriter, "Error: %s\n", message)
	}

	return nil
}

// Info outputs an informational message.
func (o *OutputAdapter) Info(message string) error {
	if o.quiet {
		return nil
	}

	if o.format == JSONFormat {
		return o.outputJSON(map[string]string{"info": message})
	}

	_, _ = fmt.Fprintln(o.writer, message)

	return nil
}

// Table outputs tabular data. Plain format prints rows tab-separated without headers.
func (o *OutputAdapter) Table(headers []string, rows [][]string) error {
	if o.quiet {
		return nil
	}

	switch o.format {
	case JSONFormat:
		return o.outputJSON(map[string]interface{}{
			"headers": headers,
			"rows":    rows,
		})
	case PlainFormat:
		for _, row := range rows {
			_, _ = fmt.Fprintln(o.writer, strings.Join(row, "\t"))
		}

		return nil
	}

	widths := columnWidths(headers, rows)

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = strings.Repeat("-", runewidth.StringWidth(headers[i]))
	}

	o.writeRow(headers, widths)
	o.writeRow(separators, widths)

	for _, row := range rows {
		o.writeRow(row, widths)
	}

	return nil
}

// IsQuiet returns true if output should be suppressed.
func (o *OutputAdapter) IsQuiet() bool {
	return o.quiet
}

// columnWidths measures display width, so wide runes in group names stay aligned.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))

	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}

			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	return widths
}

func (o *OutputAdapter) writeRow(cells []string, widths []int) {
	var b strings.Builder

	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(cell)

			break
		}

		b.WriteString(runewidth.FillRight(cell, widths[i]+columnGap))
	}

	_, _ = fmt.Fprintln(o.writer, b.String())
}

// outputJSON outputs data as JSON.
func (o *OutputAdapter) outputJSON(data interface{}) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(data)
}

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	case "plain":
		return PlainFormat, nil
	default:
		return TextFormat, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// OutputFromContext creates an OutputAdapter from CLI context flags.
// JSON wins over plain when both are set.
func OutputFromContext(jsonFlag, plainFlag, quietFlag bool) domain.OutputPort {
	format := TextFormat

	switch {
	case jsonFlag:
		format = JSONFormat
	case plainFlag:
		format = PlainFormat
	}

	return NewOutputAdapter(format, quietFlag)
}

// ErrorHeadline renders the error kind of err as a title-cased headline,
// for example "Group File Unavailable". It returns "Error" for errors
// outside the group error taxonomy.
func ErrorHeadline(err error) string {
	kind := domain.KindOf(err)
	if kind == 0 {
		return "Error"
	}

	return cases.Title(language.English).String(kind.String())
}
