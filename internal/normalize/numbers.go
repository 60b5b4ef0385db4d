package normalize

import "strings"

var onesWords = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety",
}

var scaleWords = []struct {
	value int64
	word  string
}{
	{1_000_000_000_000, "trillion"},
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

// cardinalWords spells a non-negative integer as space-separated words.
func cardinalWords(n int64) string {
	if n < 0 {
		return ""
	}
	if n < 20 {
		return onesWords[n]
	}
	if n < 100 {
		word := tensWords[n/10]
		if rest := n % 10; rest != 0 {
			word += " " + onesWords[rest]
		}
		return word
	}
	if n < 1000 {
		word := onesWords[n/100] + " hundred"
		if rest := n % 100; rest != 0 {
			word += " " + cardinalWords(rest)
		}
		return word
	}
	for _, scale := range scaleWords {
		if n >= scale.value {
			word := cardinalWords(n/scale.value) + " " + scale.word
			if rest := n % scale.value; rest != 0 {
				word += " " + cardinalWords(rest)
			}
			return word
		}
	}
	return ""
}

var irregularOrdinals = map[string]string{
	"one":    "first",
	"two":    "second",
	"three":  "third",
	"five":   "fifth",
	"eight":  "eighth",
	"nine":   "ninth",
	"twelve": "twelfth",
}

// ordinalWords spells a positive integer as ordinal words ("twenty first").
func ordinalWords(n int64) string {
	cardinal := cardinalWords(n)
	if cardinal == "" {
		return ""
	}
	words := strings.Split(cardinal, " ")
	last := words[len(words)-1]
	switch {
	case irregularOrdinals[last] != "":
		words[len(words)-1] = irregularOrdinals[last]
	case strings.HasSuffix(last, "y"):
		words[len(words)-1] = strings.TrimSuffix(last, "y") + "ieth"
	default:
		words[len(words)-1] = last + "th"
	}
	return strings.Join(words, " ")
}

// digitWords spells a digit string one digit at a time ("zero five").
func digitWords(digits string) string {
	words := make([]string, 0, len(digits))
	for _, r := range digits {
		if r < '0' || r > '9' {
			continue
		}
		words = append(words, onesWords[r-'0'])
	}
	return strings.Join(words, " ")
}
