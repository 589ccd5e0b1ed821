package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

const bom = "\ufeff"

// ReadCSV reads a header row followed by data rows.
// Cells and header names are trimmed; blank lines are skipped.
func ReadCSV(r io.Reader) ([]recipient.Fields, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if header, err = normalizeHeader(header); err != nil {
		return nil, err
	}

	var records []recipient.Fields
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		var rec recipient.Fields
		for i, name := range header {
			rec.Set(name, strings.TrimSpace(row[i]))
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeHeader(header []string) ([]string, error) {
	out := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrInvalidHeader, i+1)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidHeader, name)
		}
		seen[name] = struct{}{}
		out[i] = name
	}
	return out, nil
}

// WriteCSV writes records with the union of their keys as header.
// A record missing a column gets an empty cell.
func WriteCSV(w io.Writer, records []recipient.Fields) error {
	cols := recipient.Columns(records)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for _, rec := range records {
		for i, c := range cols {
			row[i], _ = rec.Get(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
