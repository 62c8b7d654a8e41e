package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/courtstats/courtstats/internal/domain/normalize"
)

// readRows parses a delimited season file into named-field rows using the
// header line. Short records are padded by the csv reader's variable-field
// mode; rows narrower than the header keep their missing fields absent.
func readRows(r io.Reader) ([]normalize.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // season files vary in trailing columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []normalize.RawRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(normalize.RawRow, len(header))
		for i, field := range header {
			if i < len(rec) {
				row[field] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
