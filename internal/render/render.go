// Package render prints command results as tables or structured documents.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatCSV, FormatJSON, FormatYAML}

// ValidFormat checks that format is supported.
func ValidFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("Invalid format %q, must be one of %v", format, Formats)
	}

	return nil
}

// RenderTable writes data in the given format. Table and CSV output use
// header and data, JSON and YAML output marshal raw.
func RenderTable(w io.Writer, format string, header []string, data [][]string, raw any) error {
	switch format {
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.Header(header)
		for _, row := range data {
			err := table.Append(row)
			if err != nil {
				return err
			}
		}

		return table.Render()

	case FormatCSV:
		cw := csv.NewWriter(w)
		err := cw.Write(header)
		if err != nil {
			return err
		}

		err = cw.WriteAll(data)
		if err != nil {
			return err
		}

		return cw.Error()

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(raw)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(raw)
		if err != nil {
			return err
		}

		return enc.Close()
	}

	return ValidFormat(format)
}
