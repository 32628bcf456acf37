// Package segment provides the tokenizer capability consumed by the hint
// interpreter: a script-aware splitter that segments Latin text on word
// boundaries and CJK text without relying on whitespace.
package segment

import (
	"context"
	"strings"
	"unicode"
)

// Segmenter turns a text string into a finite sequence of tokens.
// Implementations must be deterministic: identical input yields an
// identical token sequence.
type Segmenter interface {
	Segment(ctx context.Context, text string) ([]string, error)
}

// ContainsCJK reports whether text carries any Han, Hiragana, Katakana
// or Hangul runes.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if isCJK(r) {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	// U+30FC (prolonged sound mark) is Script=Common but belongs inside
	// katakana words.
	if r == 'ー' {
		return true
	}
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

// Splitter is the default Segmenter. Latin text splits on word
// boundaries (letters, digits and underscore stick together); CJK text
// splits on script runs, emitting each run plus its character bigrams so
// multi-word runs still match partial titles.
type Splitter struct{}

// NewSplitter returns the default segmenter.
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Segment implements Segmenter. It never fails; the error return exists
// for richer segmenters behind the same interface.
func (sp *Splitter) Segment(_ context.Context, text string) ([]string, error) {
	var tokens []string
	var word strings.Builder
	var cjkRun []rune

	flushWord := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}
	flushCJK := func() {
		if len(cjkRun) == 0 {
			return
		}
		tokens = append(tokens, string(cjkRun))
		// Bigrams give partial matches on long runs.
		for i := 0; i+2 <= len(cjkRun); i++ {
			tokens = append(tokens, string(cjkRun[i:i+2]))
		}
		cjkRun = cjkRun[:0]
	}

	for _, r := range text {
		switch {
		case isCJK(r):
			flushWord()
			cjkRun = append(cjkRun, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			flushCJK()
			word.WriteRune(r)
		default:
			flushWord()
			flushCJK()
		}
	}
	flushWord()
	flushCJK()

	return tokens, nil
}

// SplitPunctuation is the deterministic fallback path: it splits purely
// on non-alphanumeric boundaries with no script awareness.
func SplitPunctuation(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}
