package normalize

import (
	"strconv"
	"strings"
)

// SegmentExpander converts digits, abbreviations, and special punctuation in a
// text segment into spoken-word form. Implementations must be deterministic
// and leave already-expanded text unchanged so normalization stays idempotent.
type SegmentExpander interface {
	Expand(text string) (string, error)
}

// EnglishExpander is the in-process SegmentExpander for English transcripts.
// It covers cardinals, ordinals, decimals, dollar amounts, percentages, and a
// small table of titles and abbreviations. An external locale-aware tool can
// replace it behind the SegmentExpander interface.
type EnglishExpander struct{}

var abbreviations = map[string]string{
	"mr":   "mister",
	"mrs":  "missus",
	"ms":   "miss",
	"dr":   "doctor",
	"prof": "professor",
	"jr":   "junior",
	"sr":   "senior",
	"vs":   "versus",
	"etc":  "etcetera",
}

// Expand rewrites each whitespace-separated token into spoken form. Tokens
// that are already words pass through untouched.
func (EnglishExpander) Expand(text string) (string, error) {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, expandToken(field))
	}
	return strings.Join(out, " "), nil
}

func expandToken(token string) string {
	// Trailing sentence punctuation stays attached for the punctuation pass.
	core, suffix := splitTrailingPunct(token)
	if core == "" {
		return token
	}

	if expanded, ok := expandAbbreviation(core); ok {
		return expanded + suffix
	}
	if expanded, ok := expandNumeric(core); ok {
		return expanded + suffix
	}
	return token
}

func splitTrailingPunct(token string) (string, string) {
	end := len(token)
	for end > 0 {
		switch token[end-1] {
		case '.', ',', '!', '?', ';', ':':
			end--
		default:
			return token[:end], token[end:]
		}
	}
	return "", token
}

func expandAbbreviation(core string) (string, bool) {
	expanded, ok := abbreviations[strings.ToLower(core)]
	return expanded, ok
}

func expandNumeric(core string) (string, bool) {
	if core == "" {
		return "", false
	}

	if strings.HasPrefix(core, "$") {
		return expandDollars(core[1:])
	}
	if strings.HasSuffix(core, "%") {
		if words, ok := expandNumber(strings.TrimSuffix(core, "%")); ok {
			return words + " percent", true
		}
		return "", false
	}
	if words, ok := expandOrdinal(core); ok {
		return words, true
	}
	return expandNumber(core)
}

func expandNumber(core string) (string, bool) {
	core = strings.ReplaceAll(core, ",", "")
	if core == "" {
		return "", false
	}
	if whole, fraction, ok := strings.Cut(core, "."); ok {
		left, err1 := strconv.ParseInt(whole, 10, 64)
		if err1 != nil || !allDigits(fraction) || fraction == "" {
			return "", false
		}
		return cardinalWords(left) + " point " + digitWords(fraction), true
	}
	value, err := strconv.ParseInt(core, 10, 64)
	if err != nil || value < 0 {
		return "", false
	}
	return cardinalWords(value), true
}

func expandOrdinal(core string) (string, bool) {
	lower := strings.ToLower(core)
	var suffix string
	switch {
	case strings.HasSuffix(lower, "st"), strings.HasSuffix(lower, "nd"),
		strings.HasSuffix(lower, "rd"), strings.HasSuffix(lower, "th"):
		suffix = lower[len(lower)-2:]
	default:
		return "", false
	}
	digits := lower[:len(lower)-len(suffix)]
	if digits == "" || !allDigits(digits) {
		return "", false
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || value <= 0 {
		return "", false
	}
	return ordinalWords(value), true
}

func expandDollars(amount string) (string, bool) {
	words, ok := expandNumber(amount)
	if !ok {
		return "", false
	}
	if words == "one" {
		return "one dollar", true
	}
	return words + " dollars", true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
