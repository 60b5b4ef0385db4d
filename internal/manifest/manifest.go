package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Manifest CSV column names.
const (
	ColumnID                 = "id"
	ColumnText               = "text"
	ColumnWithDisfluency     = "norm_text_with_disfluency"
	ColumnWithoutDisfluency  = "norm_text_without_disfluency"
	ColumnCorrectedText      = "corrected_text"
	DefaultHypColumn         = "raw_hypos"
	DefaultSpeechStartColumn = "mfa_speech_start"
)

// Utterance is a single manifest row. Immutable once loaded.
type Utterance struct {
	ID                string
	Text              string
	WithDisfluency    string
	WithoutDisfluency string
}

// ReadManifest loads the split manifest, preserving row order.
func ReadManifest(path string) ([]Utterance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()
	return parseManifest(file)
}

func parseManifest(r io.Reader) ([]Utterance, error) {
	rows, header, err := readTable(r, "manifest",
		ColumnID, ColumnText, ColumnWithDisfluency, ColumnWithoutDisfluency)
	if err != nil {
		return nil, err
	}

	utterances := make([]Utterance, 0, len(rows))
	for _, row := range rows {
		utterances = append(utterances, Utterance{
			ID:                row[header[ColumnID]],
			Text:              row[header[ColumnText]],
			WithDisfluency:    row[header[ColumnWithDisfluency]],
			WithoutDisfluency: row[header[ColumnWithoutDisfluency]],
		})
	}
	return utterances, nil
}

// readTable parses a CSV stream and verifies the required columns exist.
// It returns the data rows and a column-name to index mapping.
func readTable(r io.Reader, table string, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", table, err)
	}
	if len(records) == 0 {
		return nil, nil, &SchemaError{Table: table, Column: required[0], Header: nil}
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}
	for _, column := range required {
		if _, ok := header[column]; !ok {
			return nil, nil, &SchemaError{Table: table, Column: column, Header: records[0]}
		}
	}

	rows := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		// Ragged short rows would otherwise panic on column access.
		if len(record) < len(records[0]) {
			padded := make([]string, len(records[0]))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record)
	}
	return rows, header, nil
}
