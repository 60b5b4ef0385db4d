package manifest

import (
	"fmt"
	"io"
	"os"
)

// ReadCorrections loads the dataset-provided manual correction table mapping
// utterance id to corrected transcript text. The table is a read-only side
// input loaded once per batch.
func ReadCorrections(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corrections: %w", err)
	}
	defer file.Close()
	return parseCorrections(file)
}

func parseCorrections(r io.Reader) (map[string]string, error) {
	rows, header, err := readTable(r, "corrections", ColumnID, ColumnCorrectedText)
	if err != nil {
		return nil, err
	}

	corrections := make(map[string]string, len(rows))
	for _, row := range rows {
		id := row[header[ColumnID]]
		if id == "" {
			continue
		}
		corrections[id] = row[header[ColumnCorrectedText]]
	}
	return corrections, nil
}
