// Package output renders extracted views in the formats the CLI
// supports: terminal tables, JSON, YAML, CSV and Excel workbooks.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/schedflow/schedflow/pkg/errors"
	"github.com/schedflow/schedflow/pkg/tabular"
)

// Format types for output.
type Format string

const (
	// FormatTable renders an aligned terminal table.
	FormatTable Format = "table"
	// FormatJSON renders an array of row objects.
	FormatJSON Format = "json"
	// FormatYAML renders a sequence of row mappings.
	FormatYAML Format = "yaml"
	// FormatCSV renders comma-separated rows with a header line.
	FormatCSV Format = "csv"
	// FormatXLSX renders an Excel workbook with one sheet.
	FormatXLSX Format = "xlsx"
)

// Formatter renders a view to a writer.
type Formatter interface {
	Format(w io.Writer, view *tabular.Table) error
}

// NewFormatter creates the formatter for a format. Unknown formats
// fall back to the table formatter.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	case FormatXLSX:
		return &XLSXFormatter{Sheet: "Data"}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat converts a string to a Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatXLSX, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s,
			"must be one of: table, json, yaml, csv, xlsx")
	}
}

// DetectFormat picks the output format. An explicit format wins, then
// the output file's extension, then the terminal check: tables for
// humans, JSON for pipes.
func DetectFormat(explicitFormat, outputPath string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".xlsx":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// JSONFormatter renders an array of row objects.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, view *tabular.Table) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(rowObjects(view))
}

// YAMLFormatter renders a sequence of row mappings.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, view *tabular.Table) error {
	data, err := yaml.MarshalWithOptions(rowObjects(view),
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// CSVFormatter renders comma-separated rows with a header line.
type CSVFormatter struct{}

// Format implements the Formatter interface for CSV output.
func (f *CSVFormatter) Format(w io.Writer, view *tabular.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(view.Columns()); err != nil {
		return err
	}
	for _, row := range view.Rows() {
		record := make([]string, 0, len(view.Columns()))
		for _, column := range view.Columns() {
			record = append(record, tabular.Display(row[column]))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// TableFormatter renders an aligned terminal table.
type TableFormatter struct{}

// Format implements the Formatter interface for table output.
func (f *TableFormatter) Format(w io.Writer, view *tabular.Table) error {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))

	headers := make([]any, 0, len(view.Columns()))
	for _, column := range view.Columns() {
		headers = append(headers, PrettyHeader(column))
	}
	table.Header(headers...)

	for _, row := range view.Rows() {
		cells := make([]any, 0, len(view.Columns()))
		for _, column := range view.Columns() {
			cells = append(cells, tabular.Display(row[column]))
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}

	return table.Render()
}

// PrettyHeader converts a camelCase or snake_case column name to a
// title-cased header. Names that already carry spaces pass through.
func PrettyHeader(name string) string {
	if strings.Contains(name, " ") {
		return name
	}
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(name, "_", " "))
}

// rowObjects shapes a view as ordered row objects for the structured
// formatters.
func rowObjects(view *tabular.Table) []map[string]any {
	objects := make([]map[string]any, 0, view.Len())
	for _, row := range view.Rows() {
		object := make(map[string]any, len(view.Columns()))
		for _, column := range view.Columns() {
			object[column] = row[column]
		}
		objects = append(objects, object)
	}
	return objects
}

// Write renders a view to the given path, or to stdout when the path
// is empty.
func Write(view *tabular.Table, format Format, path string) error {
	formatter := NewFormatter(format)

	if path == "" {
		return formatter.Format(os.Stdout, view)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := formatter.Format(file, view); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
