// Package ngram provides the n-gram windowing primitive shared by the
// lexicon builder and the segmentation scorer.
package ngram

// Runes splits a string into its Unicode code points. The lexicon and
// segmentation packages index text by code point, never by byte, so
// every caller that needs positional arithmetic over a sentence
// should go through this first.
func Runes(s string) []rune {
	return []rune(s)
}

// Of returns every contiguous window of length n over terms, in
// order. For terms of length L, it returns L-n+1 windows; if L < n it
// returns nil. It works over any slice element type, so it serves both
// code-point n-grams and word n-grams, e.g.
// Of(2, []string{"Today","is","my","day"}).
func Of[T any](n int, terms []T) [][]T {
	if n <= 0 || len(terms) < n {
		return nil
	}
	windows := make([][]T, 0, len(terms)-n+1)
	for i := 0; i+n <= len(terms); i++ {
		windows = append(windows, terms[i:i+n])
	}
	return windows
}

// Strings is a convenience wrapper for the common case of n-gram
// windows over code points joined back into strings, e.g.
// Strings(2, []rune("abc")) -> []string{"ab", "bc"}.
func Strings(n int, runes []rune) []string {
	windows := Of(n, runes)
	if windows == nil {
		return nil
	}
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = string(w)
	}
	return out
}
