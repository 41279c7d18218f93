package source

import (
	"io"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/jsonmap"
)

// ReadJSON reads a flat JSON object. Keys become record IDs in document
// order; string, number and boolean values become the record text.
func ReadJSON(r io.Reader) ([]transly.Record, error) {
	pairs, err := jsonmap.DecodeScalars(r)
	if err != nil {
		return nil, err
	}

	records := make([]transly.Record, len(pairs))
	for i, p := range pairs {
		records[i] = transly.Record{ID: p.Key, Text: p.Value}
	}
	return records, nil
}
