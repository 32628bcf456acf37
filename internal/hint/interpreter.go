// Package hint turns raw caller input (a free-text hint and/or a list of
// pre-weighted values) into a normalized, weight-summing-to-one set of
// search tokens tagged by provenance.
package hint

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"paneswitch/internal/segment"
)

// Source identifies where a weighted hint came from.
type Source string

const (
	// SourceExact is the whole free-text hint as a single phrase.
	SourceExact Source = "exact"
	// SourceComposite is a caller-supplied structured value.
	SourceComposite Source = "composite"
	// SourceNL is a token extracted from the free-text hint.
	SourceNL Source = "nl"
)

// WeightedHint is one normalized search token. Across all hints returned
// by a single Interpret call, weights sum to 1.0 within 1e-6 whenever at
// least one hint survives filtering.
type WeightedHint struct {
	Token  string  `json:"token"`
	Weight float64 `json:"weight"`
	Source Source  `json:"source"`
}

// ValueHint is a caller-supplied structured hint entry. A non-positive
// weight means "use the default of 1".
type ValueHint struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight,omitempty"`
}

// Result is the full interpretation output. RawTokens is diagnostic
// only: every distinct token string that produced a hint, first-seen
// order preserved.
type Result struct {
	WeightedHints []WeightedHint `json:"weightedHints"`
	RawTokens     []string       `json:"rawTokens,omitempty"`
	Issues        []string       `json:"issues,omitempty"`
}

// Interpreter normalizes and weights hint input. It is stateless and
// safe for concurrent use; the segmenter is the only collaborator.
type Interpreter struct {
	segmenter segment.Segmenter
}

// NewInterpreter builds an interpreter around the given tokenizer
// capability. A nil segmenter falls back to punctuation splitting.
func NewInterpreter(seg segment.Segmenter) *Interpreter {
	return &Interpreter{segmenter: seg}
}

// weightPrecision rounds final weights so serialized output is stable.
const weightPrecision = 1e6

// Interpret processes hintText and structured hints per the fixed order:
// structured entries first (composite), then the whole free text as one
// exact-match phrase, then its extracted tokens (nl), each at 1/n so the
// token group carries the same pre-normalization weight as the phrase.
// Identical (token, source) pairs merge by summing weight; the surviving
// set is rescaled to sum to exactly 1.
func (in *Interpreter) Interpret(ctx context.Context, hintText string, structured []ValueHint) (*Result, error) {
	res := &Result{}
	var hints []WeightedHint
	rawSeen := map[string]struct{}{}

	addRaw := func(token string) {
		if _, ok := rawSeen[token]; ok {
			return
		}
		rawSeen[token] = struct{}{}
		res.RawTokens = append(res.RawTokens, token)
	}

	for i, vh := range structured {
		value := strings.TrimSpace(norm.NFKC.String(vh.Value))
		if value == "" {
			res.Issues = append(res.Issues, fmt.Sprintf("paneHints[%d] was empty after trimming", i))
			continue
		}
		weight := vh.Weight
		if weight <= 0 {
			weight = 1
		}
		token := strings.ToLower(value)
		hints = append(hints, WeightedHint{Token: token, Weight: weight, Source: SourceComposite})
		addRaw(token)
	}

	text := strings.TrimSpace(norm.NFKC.String(hintText))
	if text != "" {
		phrase := strings.ToLower(text)
		hints = append(hints, WeightedHint{Token: phrase, Weight: 1, Source: SourceExact})
		addRaw(phrase)

		tokens, err := in.tokenize(ctx, text)
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			res.Issues = append(res.Issues, "paneHint produced no keywords")
		} else {
			share := 1 / float64(len(tokens))
			for _, tok := range tokens {
				hints = append(hints, WeightedHint{Token: tok, Weight: share, Source: SourceNL})
				addRaw(tok)
			}
		}
	}

	res.WeightedHints = normalizeWeights(mergeHints(hints))
	return res, nil
}

// tokenize runs the free text through the segmenter and post-processes
// the tokens: case-fold, strip edge punctuation, drop stop words and
// lone hiragana particles, de-duplicate preserving first-seen order.
func (in *Interpreter) tokenize(ctx context.Context, text string) ([]string, error) {
	var tokens []string
	var err error
	if in.segmenter != nil {
		tokens, err = in.segmenter.Segment(ctx, text)
		if err != nil {
			return nil, err
		}
	} else {
		tokens = segment.SplitPunctuation(text)
	}

	cjk := segment.ContainsCJK(text)
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimFunc(tok, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if tok == "" {
			continue
		}
		if isStopword(tok, cjk) || isLoneHiragana(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out, nil
}

// isLoneHiragana reports whether the token is a single hiragana rune.
// Those are almost always auxiliary particles misread as content words.
func isLoneHiragana(token string) bool {
	runes := []rune(token)
	return len(runes) == 1 && unicode.Is(unicode.Hiragana, runes[0])
}

// mergeHints sums weights of hints sharing (token, source), keeping the
// first occurrence's position.
func mergeHints(hints []WeightedHint) []WeightedHint {
	type key struct {
		token  string
		source Source
	}
	index := map[key]int{}
	merged := make([]WeightedHint, 0, len(hints))
	for _, h := range hints {
		k := key{h.Token, h.Source}
		if i, ok := index[k]; ok {
			merged[i].Weight += h.Weight
			continue
		}
		index[k] = len(merged)
		merged = append(merged, h)
	}
	return merged
}

// normalizeWeights rescales weights to sum to 1, rounding each to 1e-6.
// A non-positive sum yields an empty set.
func normalizeWeights(hints []WeightedHint) []WeightedHint {
	var sum float64
	for _, h := range hints {
		sum += h.Weight
	}
	if sum <= 0 {
		return nil
	}
	out := make([]WeightedHint, len(hints))
	rounded := 0.0
	largest := 0
	for i, h := range hints {
		h.Weight = math.Round(h.Weight/sum*weightPrecision) / weightPrecision
		out[i] = h
		rounded += h.Weight
		if h.Weight > out[largest].Weight {
			largest = i
		}
	}
	// Per-hint rounding can drift the sum by a few millionths; fold the
	// residual into the largest weight so the set sums to exactly 1.
	out[largest].Weight += 1 - rounded
	return out
}
