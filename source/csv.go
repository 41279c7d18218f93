package source

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/ZaguanLabs/transly"
)

// ReadCSV reads comma-separated rows. Each row's fields are joined with a
// single space and keyed line_<n>, counting from the first data row. When
// header is true the first row is skipped.
func ReadCSV(r io.Reader, header bool) ([]transly.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []transly.Record
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if first && header {
			first = false
			continue
		}
		first = false

		records = append(records, transly.Record{
			ID:   lineID(len(records)),
			Text: strings.Join(row, " "),
		})
	}
	return records, nil
}
