package lexicon

import (
	"strings"

	"github.com/aosen/loso/ngram"
)

const (
	headPrefix = "B"
	tailPrefix = "E"
)

// IterTerms yields the n-grams of every sentence split out of text, in
// order. When emitHeadTail is true, immediately after the first
// n-gram of a sentence it also yields that n-gram prepended with "B",
// and after the last n-gram one prepended with "E". Every n-gram is
// lowercased, which only affects ASCII; the "B"/"E" marker prefixes
// stay uppercase. A sentence shorter than n
// contributes no terms and no head/tail markers.
func IterTerms(n int, text string, emitHeadTail bool) []string {
	var out []string
	for _, sentence := range SplitSentence(text, nil) {
		grams := ngram.Strings(n, ngram.Runes(sentence))
		if len(grams) == 0 {
			continue
		}
		for i, g := range grams {
			term := strings.ToLower(g)
			out = append(out, term)
			if emitHeadTail && i == 0 {
				out = append(out, headPrefix+term)
			}
		}
		if emitHeadTail {
			last := strings.ToLower(grams[len(grams)-1])
			out = append(out, tailPrefix+last)
		}
	}
	return out
}
