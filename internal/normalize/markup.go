package normalize

import "strings"

// resolveSpans rewrites every top-level open...close span in s using the
// replace callback, which receives the span interior. Nested spans of the same
// kind stay inside the interior. An unmatched opener or a stray closer is a
// NormalizationError for the utterance.
func resolveSpans(s string, open, close rune, id string, replace func(inner string) string) (string, error) {
	var out strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case open:
			depth := 1
			j := i + 1
			for ; j < len(runes); j++ {
				if runes[j] == open {
					depth++
				} else if runes[j] == close {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if depth != 0 {
				return "", &NormalizationError{
					UtteranceID: id,
					Span:        snippet(runes[i:]),
					Reason:      "unbalanced " + string(open) + string(close) + " span",
				}
			}
			out.WriteString(replace(string(runes[i+1 : j])))
			i = j
		case close:
			return "", &NormalizationError{
				UtteranceID: id,
				Span:        snippet(runes[maxInt(0, i-8):]),
				Reason:      "stray closing " + string(close),
			}
		default:
			out.WriteRune(runes[i])
		}
	}
	return out.String(), nil
}

func snippet(runes []rune) string {
	const limit = 24
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return string(runes)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// stripTag removes a leading "tag:" prefix if present and returns the rest
// with the matched tag. Tags are matched case-insensitively.
func stripTag(inner string, tags []string) (string, string, bool) {
	trimmed := strings.TrimSpace(inner)
	lower := strings.ToLower(trimmed)
	for _, tag := range tags {
		if strings.HasPrefix(lower, tag) {
			return strings.TrimSpace(trimmed[len(tag):]), tag, true
		}
	}
	return trimmed, "", false
}
