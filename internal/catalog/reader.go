package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadRows reads every record from comma-separated input. Records may have
// any number of fields; validation is left to Load. Completely empty lines
// are skipped by the CSV reader, so a syntax error is reported by record
// number with the file line in the reason. r should already be wrapped with
// WrapForReading or NewDecodingReader.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &MalformedRowError{
					Row:    len(rows) + 1,
					Reason: fmt.Sprintf("invalid csv at line %d", pe.StartLine),
					Err:    pe.Err,
				}
			}
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}
