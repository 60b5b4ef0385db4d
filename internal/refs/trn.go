package refs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WriteTRN writes entries as trn lines: "{text} ({tag})".
func WriteTRN(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trn: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, entry := range entries {
		if _, err := fmt.Fprintf(writer, "%s (%s)\n", entry.Text, entry.Tag); err != nil {
			return fmt.Errorf("write trn line: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush trn: %w", err)
	}
	return file.Close()
}

// ReadTRN parses a trn file back into entries. The real utterance id is not
// stored in the file; callers restore it from the split cache mapping.
func ReadTRN(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trn: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" {
			continue
		}
		open := strings.LastIndex(line, "(")
		if open < 0 || !strings.HasSuffix(line, ")") {
			return nil, fmt.Errorf("malformed trn line %q in %s", line, path)
		}
		entries = append(entries, Entry{
			Tag:  line[open+1 : len(line)-1],
			Text: strings.TrimRight(line[:open], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trn: %w", err)
	}
	return entries, nil
}
