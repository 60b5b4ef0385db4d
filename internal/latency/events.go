package latency

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"asrscore/internal/services"
)

// Event is one timestamped partial result from a streaming submission.
// Final marks an explicit end-of-input result where the submission format
// provides one.
type Event struct {
	Time  float64 `json:"time"`
	Text  string  `json:"text"`
	Final bool    `json:"final,omitempty"`
}

// Stream is the ordered event sequence for one utterance.
type Stream struct {
	ID     string  `json:"id"`
	Events []Event `json:"events"`
}

// ReadPartials loads a partial-results JSON file. Both published shapes are
// accepted: a map keyed by utterance id and a list of objects carrying their
// own id. Map form is returned in sorted id order so reports are
// deterministic.
func ReadPartials(path string) ([]Stream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open partial results: %w", err)
	}
	return parsePartials(data)
}

func parsePartials(data []byte) ([]Stream, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, services.Wrap(services.ErrSchema, "latency", "parse",
			"partial-results file is empty", nil)
	}

	switch trimmed[0] {
	case '[':
		var streams []Stream
		if err := json.Unmarshal(trimmed, &streams); err != nil {
			return nil, services.Wrap(services.ErrSchema, "latency", "parse",
				"malformed partial-results list", err)
		}
		return streams, nil
	case '{':
		var byID map[string]struct {
			Events []Event `json:"events"`
		}
		if err := json.Unmarshal(trimmed, &byID); err != nil {
			return nil, services.Wrap(services.ErrSchema, "latency", "parse",
				"malformed partial-results map", err)
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		streams := make([]Stream, 0, len(ids))
		for _, id := range ids {
			streams = append(streams, Stream{ID: id, Events: byID[id].Events})
		}
		return streams, nil
	default:
		return nil, services.Wrap(services.ErrSchema, "latency", "parse",
			"partial-results file is neither a JSON map nor a list", nil)
	}
}
