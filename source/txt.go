package source

import (
	"bufio"
	"io"

	"github.com/ZaguanLabs/transly"
)

const maxLineSize = 1 << 20

// ReadTXT reads one record per line, keyed line_<n>. Line terminators
// (\n or \r\n) are stripped; a final newline does not add an empty record.
func ReadTXT(r io.Reader) ([]transly.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []transly.Record
	for scanner.Scan() {
		records = append(records, transly.Record{
			ID:   lineID(len(records)),
			Text: scanner.Text(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
