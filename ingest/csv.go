// Package ingest reads composition CSV files into raw rows.
//
// Headers are trimmed and lowercased, so "Label", "MgO" and "label", "mgo"
// are equivalent. The delimiter is ';' when the header contains one and ','
// otherwise, which lets semicolon files use decimal commas ("1,5"). A cell
// that starts with a number becomes that number as a float64, so "5%" reads
// as 5 and "12abc" as 12; anything else stays a string for the normalizer to
// deal with. Missing trailing cells read as 0.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezoic/combustion/core/feature"
	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// ParseCSV reads a header line and at least one data row from r.
//
// Errors:
//   - ErrInvalidInput: fewer than two non-empty lines
//   - a wrapped csv error for malformed quoting
func ParseCSV(r io.Reader) ([]feature.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, scigoErrors.Wrap(err, "failed to read CSV")
	}
	text := strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff"))
	if text == "" {
		return nil, notEnoughLines()
	}

	headerLine, _, _ := strings.Cut(text, "\n")
	delim := ','
	if strings.ContainsRune(headerLine, ';') {
		delim = ';'
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, scigoErrors.Wrap(err, "failed to parse CSV")
	}
	if len(records) < 2 {
		return nil, notEnoughLines()
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]feature.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(feature.RawRow, len(header))
		for i, key := range header {
			raw := "0"
			if i < len(rec) {
				if v := strings.TrimSpace(rec[i]); v != "" {
					raw = v
				}
			}
			row[key] = parseCell(raw)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseSample is ParseCSV for prediction uploads: exactly one data row.
func ParseSample(r io.Reader) (feature.RawRow, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, scigoErrors.NewValidationError(
			"sample",
			"a prediction file must contain exactly one data row",
			len(rows),
		)
	}
	return rows[0], nil
}

// ParseFile opens path and parses it with ParseCSV.
func ParseFile(path string) ([]feature.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, scigoErrors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseSampleFile opens path and parses it with ParseSample.
func ParseSampleFile(path string) (feature.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, scigoErrors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return ParseSample(f)
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// parseCell returns the leading number of raw, or raw itself when it has none.
func parseCell(raw string) any {
	prefix := numericPrefix.FindString(strings.Replace(raw, ",", ".", 1))
	if prefix == "" {
		return raw
	}
	if x, err := strconv.ParseFloat(prefix, 64); err == nil {
		return x
	}
	return raw
}

func notEnoughLines() error {
	return scigoErrors.NewModelError(
		"ParseCSV",
		"a CSV file needs a header and at least one data row",
		scigoErrors.ErrInvalidInput,
	)
}
