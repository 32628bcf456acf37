package hint

// Stop-word sets keyed by detected script. Natural-language tokens that
// match are dropped before weighting; the exact-match hint keeps the full
// phrase regardless.

var englishStopwords = makeSet(
	"a", "an", "and", "are", "as", "at", "be", "by", "for",
	"from", "has", "in", "is", "it", "its", "of", "on", "or",
	"that", "the", "to", "was", "were", "will", "with", "this",
	"my", "me", "our", "your", "show", "find", "open",
	"switch", "please", "where", "which", "what",
)

var japaneseStopwords = makeSet(
	"の", "に", "は", "を", "た", "が", "で", "て", "と",
	"し", "れ", "さ", "ある", "いる", "も", "する", "から",
	"な", "こと", "として", "です", "ます", "ください",
	"どこ", "どれ", "これ", "それ", "あれ", "ため", "よう",
	"して", "みて", "開いて", "表示",
)

func makeSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// isStopword checks the token against the stop-word set for the detected
// script. CJK hints still mix in Latin tokens (command names, file
// paths), so the English set applies in both modes.
func isStopword(token string, cjk bool) bool {
	if _, ok := englishStopwords[token]; ok {
		return true
	}
	if cjk {
		if _, ok := japaneseStopwords[token]; ok {
			return true
		}
	}
	return false
}
