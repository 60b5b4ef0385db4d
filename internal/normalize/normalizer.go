package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"asrscore/internal/config"
)

var apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'")

var emphasisReplacer = strings.NewReplacer("*", "", "~", "")

// guessTags mark curly-braced spans holding a human-guessed word; the guess is
// kept as transcription content.
var guessTags = []string{"g:"}

// Normalizer canonicalizes transcripts. Construct with New or FromConfig;
// the zero value is not usable.
type Normalizer struct {
	expander          SegmentExpander
	corrections       map[string]string
	unknownToken      string
	parenPrefixes     []string
	keepParenPrefixes []string
	maxHypWords       int
	maxHypTokenChars  int
	upper             cases.Caser
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithExpander overrides the segment expander.
func WithExpander(expander SegmentExpander) Option {
	return func(n *Normalizer) {
		if expander != nil {
			n.expander = expander
		}
	}
}

// WithCorrections installs the per-utterance manual correction table.
func WithCorrections(corrections map[string]string) Option {
	return func(n *Normalizer) {
		n.corrections = corrections
	}
}

// WithUnknownToken overrides the token substituted for unclear spans.
func WithUnknownToken(token string) Option {
	return func(n *Normalizer) {
		if token != "" {
			n.unknownToken = token
		}
	}
}

// WithParenPrefixes sets the recognized annotator tags for parenthesized spans.
func WithParenPrefixes(prefixes []string) Option {
	return func(n *Normalizer) {
		n.parenPrefixes = prefixes
	}
}

// WithKeepParenPrefixes sets the tags whose spans keep their interior text
// even when parentheses removal is requested.
func WithKeepParenPrefixes(prefixes []string) Option {
	return func(n *Normalizer) {
		n.keepParenPrefixes = prefixes
	}
}

// WithHypothesisLimits bounds hypothesis length after normalization. Zero
// disables the corresponding limit.
func WithHypothesisLimits(maxWords, maxTokenChars int) Option {
	return func(n *Normalizer) {
		n.maxHypWords = maxWords
		n.maxHypTokenChars = maxTokenChars
	}
}

// New constructs a Normalizer with the default English expander.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		expander:      EnglishExpander{},
		unknownToken:  "UNK",
		parenPrefixes: []string{"cs:", "assistant:"},
		upper:         cases.Upper(language.AmericanEnglish),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// FromConfig constructs a Normalizer from application configuration.
func FromConfig(cfg *config.Config, corrections map[string]string) *Normalizer {
	return New(
		WithCorrections(corrections),
		WithUnknownToken(cfg.Normalizer.UnknownToken),
		WithParenPrefixes(cfg.Normalizer.ParenPrefixes),
		WithKeepParenPrefixes(cfg.Normalizer.KeepParenPrefixes),
		WithHypothesisLimits(cfg.Normalizer.MaxHypWords, cfg.Normalizer.MaxHypTokenChars),
	)
}

// Normalize canonicalizes reference text, resolving annotator markup. The
// removeParens flag selects the without-disfluency variant: parenthesized
// spans are deleted unless tagged with a configured keep prefix.
func (n *Normalizer) Normalize(id, raw string, removeParens bool) (string, error) {
	text := apostropheReplacer.Replace(raw)

	text, err := resolveSpans(text, '[', ']', id, func(string) string { return "" })
	if err != nil {
		return "", err
	}

	text, err = resolveSpans(text, '{', '}', id, func(inner string) string {
		if kept, _, ok := stripTag(inner, guessTags); ok {
			return kept
		}
		return n.unknownToken
	})
	if err != nil {
		return "", err
	}

	text = emphasisReplacer.Replace(text)

	text, err = n.expander.Expand(text)
	if err != nil {
		return "", err
	}

	if corrected, ok := n.corrections[id]; ok {
		text = corrected
	}

	text, err = resolveSpans(text, '(', ')', id, func(inner string) string {
		kept, tag, tagged := stripTag(inner, n.recognizedParenTags())
		if !removeParens {
			return kept
		}
		if tagged && containsTag(n.keepParenPrefixes, tag) {
			return kept
		}
		return ""
	})
	if err != nil {
		return "", err
	}

	return n.finish(text), nil
}

// NormalizeHypothesis canonicalizes predicted text. Markup resolution is
// skipped: brackets and braces in model output are stray punctuation, not
// annotation. The result is clamped to the configured word and token limits.
func (n *Normalizer) NormalizeHypothesis(raw string) (string, error) {
	text := apostropheReplacer.Replace(raw)
	text = emphasisReplacer.Replace(text)

	text, err := n.expander.Expand(text)
	if err != nil {
		return "", err
	}

	text = n.finish(text)

	tokens := strings.Fields(text)
	if n.maxHypWords > 0 && len(tokens) > n.maxHypWords {
		tokens = tokens[:n.maxHypWords]
	}
	if n.maxHypTokenChars > 0 {
		for i, token := range tokens {
			if runes := []rune(token); len(runes) > n.maxHypTokenChars {
				tokens[i] = string(runes[:n.maxHypTokenChars])
			}
		}
	}
	return strings.Join(tokens, " "), nil
}

// finish applies the shared tail of the rule chain: punctuation stripping,
// uppercasing, and whitespace collapse.
func (n *Normalizer) finish(text string) string {
	text = stripPunctuation(text)
	text = n.upper.String(text)
	return strings.Join(strings.Fields(text), " ")
}

func (n *Normalizer) recognizedParenTags() []string {
	if len(n.keepParenPrefixes) == 0 {
		return n.parenPrefixes
	}
	tags := make([]string, 0, len(n.parenPrefixes)+len(n.keepParenPrefixes))
	tags = append(tags, n.parenPrefixes...)
	tags = append(tags, n.keepParenPrefixes...)
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// stripPunctuation removes punctuation, keeping apostrophes interior to a
// word. Removed punctuation becomes a space so joined words stay separate.
func stripPunctuation(text string) string {
	runes := []rune(text)
	var out strings.Builder
	out.Grow(len(text))
	for i, r := range runes {
		switch {
		case isWordRune(r):
			out.WriteRune(r)
		case r == '\'':
			if i > 0 && i < len(runes)-1 && isWordRune(runes[i-1]) && isWordRune(runes[i+1]) {
				out.WriteRune(r)
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out.WriteRune(' ')
		default:
			out.WriteRune(' ')
		}
	}
	return out.String()
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
		r >= 0x00C0 && r != 0x00D7 && r != 0x00F7 && r <= 0x024F
}
