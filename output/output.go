// Package output writes translation results to disk.
package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaguanLabs/transly"
	"github.com/ZaguanLabs/transly/jsonmap"
)

// PathFor returns the output path for input translated into lang:
// translated_<lang>_<name>, next to the input file.
func PathFor(lang, input string) string {
	return filepath.Join(filepath.Dir(input), "translated_"+lang+"_"+filepath.Base(input))
}

// JSONFile writes results as a pretty-printed JSON object of id to
// translated text, in result order.
type JSONFile struct {
	path string
}

// NewJSONFile creates a writer targeting path. The file is created or
// truncated when results are written.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the target path.
func (f *JSONFile) Path() string {
	return f.path
}

// WriteResults implements transly.ResultWriter.
func (f *JSONFile) WriteResults(ctx context.Context, results []transly.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pairs := make([]jsonmap.Pair, len(results))
	for i, r := range results {
		pairs[i] = jsonmap.Pair{Key: r.ID, Value: r.Text}
	}

	var buf bytes.Buffer
	if err := jsonmap.Encode(&buf, pairs); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if err := os.WriteFile(f.path, buf.Bytes(), 0o644); err != nil { // #nosec G306 -- output is meant to be shared
		return fmt.Errorf("writing %s: %w", f.path, err)
	}
	return nil
}

var _ transly.ResultWriter = (*JSONFile)(nil)
