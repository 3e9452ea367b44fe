package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// openCSV opens a CSV file for streaming, stripping a UTF-8 BOM if present.
// The returned reader accepts rows with a variable number of fields; short
// rows are padded by the callers so every column resolves.
func openCSV(path string) (*csv.Reader, func() error, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from our own upload handling
	if err != nil {
		return nil, nil, err
	}

	br := bufio.NewReader(f)
	stripUTF8BOM(br)

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	return r, f.Close, nil
}

func stripUTF8BOM(r *bufio.Reader) {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
}

// readHeaderIndex reads the header row and returns a column-name -> index
// map. Every name in required must be present; extra columns are allowed.
func readHeaderIndex(r *csv.Reader, required []string) (map[string]int, error) {
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}

		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	for _, req := range required {
		if _, ok := index[req]; !ok {
			return nil, fmt.Errorf("missing required header column: %s", req)
		}
	}

	return index, nil
}

// field returns the trimmed value of the named column in a record, or ""
// when the record is too short to carry the column.
func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[i])
}
