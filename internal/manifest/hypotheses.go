package manifest

import (
	"fmt"
	"io"
	"os"
)

// Hypothesis is one predicted transcript, keyed by utterance id.
type Hypothesis struct {
	ID   string
	Text string
}

// ReadHypotheses loads a hypothesis CSV. The text column is configurable per
// submission format; pass "" for the default.
func ReadHypotheses(path, column string) ([]Hypothesis, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hypotheses: %w", err)
	}
	defer file.Close()
	return parseHypotheses(file, column)
}

func parseHypotheses(r io.Reader, column string) ([]Hypothesis, error) {
	if column == "" {
		column = DefaultHypColumn
	}
	rows, header, err := readTable(r, "hypotheses", ColumnID, column)
	if err != nil {
		return nil, err
	}

	hypotheses := make([]Hypothesis, 0, len(rows))
	for _, row := range rows {
		hypotheses = append(hypotheses, Hypothesis{
			ID:   row[header[ColumnID]],
			Text: row[header[column]],
		})
	}
	return hypotheses, nil
}

// HypothesesByID indexes hypotheses by utterance id. Later duplicates win,
// matching the behavior of loading a CSV into a keyed map.
func HypothesesByID(hypotheses []Hypothesis) map[string]string {
	byID := make(map[string]string, len(hypotheses))
	for _, hyp := range hypotheses {
		byID[hyp.ID] = hyp.Text
	}
	return byID
}
