package sclite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"asrscore/internal/services"
)

// pathAlignment is one parsed PATH block: the synthetic utterance tag plus the
// reference and hypothesis texts reconstructed from the alignment operations.
type pathAlignment struct {
	Tag string
	Ref string
	Hyp string
}

// parseSGMLFile reads an sclite SGML alignment from disk.
func parseSGMLFile(path, unknownToken string) ([]pathAlignment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sgml: %w", err)
	}
	defer file.Close()
	return parseSGML(file, unknownToken)
}

// parseSGML walks PATH blocks in document order. Each block header carries the
// parenthesized trn tag; the first following content line holds the
// colon-separated alignment operations.
//
// UNK resolution happens here, before any error counting: a substitution
// against UNK adopts the hypothesis token, a deleted UNK vanishes from the
// reference, and an inserted UNK vanishes from the hypothesis. Token
// comparison is case-insensitive because sclite lowercases trn input.
func parseSGML(r io.Reader, unknownToken string) ([]pathAlignment, error) {
	var alignments []pathAlignment
	var pendingTag string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "<PATH") {
			tag, ok := pathTag(line)
			if !ok {
				return nil, services.Wrap(services.ErrExternalTool, "sclite", "parse",
					"PATH block without an id attribute", nil)
			}
			pendingTag = tag
			continue
		}
		if strings.HasPrefix(line, "<") || pendingTag == "" {
			continue
		}

		ref, hyp := parseOperations(line, unknownToken)
		alignments = append(alignments, pathAlignment{Tag: pendingTag, Ref: ref, Hyp: hyp})
		pendingTag = ""
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sgml: %w", err)
	}

	if len(alignments) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "sclite", "parse",
			"no PATH alignments found in SGML output", nil)
	}
	return alignments, nil
}

// pathTag extracts the trn tag from a PATH header, stripping the parentheses
// the wsj id format adds.
func pathTag(line string) (string, bool) {
	const attr = `id="`
	start := strings.Index(line, attr)
	if start < 0 {
		return "", false
	}
	rest := line[start+len(attr):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	tag := rest[:end]
	tag = strings.TrimPrefix(tag, "(")
	tag = strings.TrimSuffix(tag, ")")
	return tag, tag != ""
}

// parseOperations rebuilds the reference and hypothesis token sequences from
// one alignment line of colon-separated C/S/I/D operations.
func parseOperations(line, unknownToken string) (ref, hyp string) {
	var refTokens, hypTokens []string
	for _, segment := range strings.Split(line, ":") {
		segment = strings.TrimSpace(segment)
		if len(segment) < 2 || segment[1] != ',' {
			continue
		}
		op := segment[0]
		refTok, hypTok := splitOperands(segment[2:])

		switch op {
		case 'C':
			if refTok != "" {
				refTokens = append(refTokens, refTok)
			}
			if hypTok != "" {
				hypTokens = append(hypTokens, hypTok)
			}
		case 'S':
			if strings.EqualFold(refTok, unknownToken) && hypTok != "" {
				refTok = hypTok
			}
			if refTok != "" {
				refTokens = append(refTokens, refTok)
			}
			if hypTok != "" {
				hypTokens = append(hypTokens, hypTok)
			}
		case 'D':
			if refTok != "" && !strings.EqualFold(refTok, unknownToken) {
				refTokens = append(refTokens, refTok)
			}
		case 'I':
			if hypTok != "" && !strings.EqualFold(hypTok, unknownToken) {
				hypTokens = append(hypTokens, hypTok)
			}
		}
	}
	return strings.Join(refTokens, " "), strings.Join(hypTokens, " ")
}

// splitOperands splits the `"ref","hyp"` operand pair. Deletions carry an
// empty hypothesis operand and insertions an empty reference operand.
func splitOperands(rest string) (refTok, hypTok string) {
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return unquote(rest), ""
	}
	return unquote(rest[:comma]), unquote(rest[comma+1:])
}

func unquote(token string) string {
	token = strings.TrimSpace(token)
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		token = token[1 : len(token)-1]
	}
	return token
}
