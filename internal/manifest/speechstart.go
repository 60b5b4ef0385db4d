package manifest

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadSpeechStarts loads the forced-alignment speech-onset table: utterance id
// to onset in seconds. The timestamp column is configurable; pass "" for the
// default. Rows with an empty or unparseable timestamp are skipped — an absent
// onset surfaces later as a per-utterance missing-alignment error, not here.
func ReadSpeechStarts(path, column string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open speech starts: %w", err)
	}
	defer file.Close()
	return parseSpeechStarts(file, column)
}

func parseSpeechStarts(r io.Reader, column string) (map[string]float64, error) {
	if column == "" {
		column = DefaultSpeechStartColumn
	}
	rows, header, err := readTable(r, "speech starts", ColumnID, column)
	if err != nil {
		return nil, err
	}

	starts := make(map[string]float64, len(rows))
	for _, row := range rows {
		id := row[header[ColumnID]]
		if id == "" {
			continue
		}
		value, err := strconv.ParseFloat(row[header[column]], 64)
		if err != nil {
			continue
		}
		starts[id] = value
	}
	return starts, nil
}
