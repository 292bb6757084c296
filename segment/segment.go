// Package segment implements the dynamic-programming partition that
// chooses the highest-scoring split of a sentence into contiguous
// terms of length [1, N].
package segment

import (
	"context"
	"sort"

	"github.com/aosen/loso/lexicon"
)

// Op combines the score of a left partition with the score of a right
// partition. The default, Multiply, requires strictly positive scores
// (the epsilon floor in lexicon.Scorer guarantees this) so that
// products never spuriously hit zero for reasons other than underflow.
type Op func(left, right float64) float64

// Multiply is the default combining operator.
func Multiply(left, right float64) float64 { return left * right }

// Add is a valid alternative combining operator, useful when scores
// are expressed as logs.
func Add(left, right float64) float64 { return left + right }

// gram is a scored n-gram at a fixed starting position.
type gram struct {
	term  string
	score float64
}

// rangeKey identifies a memoized sub-segmentation of S[i..j] inclusive.
type rangeKey struct{ i, j int }

// entry is the best known segmentation of a sub-range.
type entry struct {
	terms []string
	score float64
}

// Segmenter builds per-position n-gram score tables over a sentence
// and runs the partition DP to find the best term sequence.
type Segmenter struct {
	Scorer *lexicon.Scorer
	MaxN   int
	// Combine is the operator used to merge a left and right
	// partition's scores; Multiply when nil.
	Combine Op
}

// NewSegmenter builds a Segmenter with the default multiplicative
// combining operator.
func NewSegmenter(scorer *lexicon.Scorer, maxN int) *Segmenter {
	return &Segmenter{Scorer: scorer, MaxN: maxN, Combine: Multiply}
}

// FindBestSegment runs the DP over sentence (already split out of
// mixed-script residue by the service facade) against categories, and
// returns the winning term sequence and its score. An empty sentence
// yields (nil, 0, nil).
func (s *Segmenter) FindBestSegment(ctx context.Context, sentence string, categories []string) ([]string, float64, error) {
	runes := []rune(sentence)
	size := len(runes)
	if size == 0 {
		return nil, 0, nil
	}

	op := s.Combine
	if op == nil {
		op = Multiply
	}

	maxN := s.MaxN
	if maxN < 1 {
		maxN = 1
	}

	// Build grams[n-1] for n in 1..maxN: scored n-grams at each
	// starting position. For n > size, the row is empty.
	grams := make([][]gram, maxN)
	for n := 1; n <= maxN; n++ {
		if n > size {
			continue
		}
		row := make([]gram, size-n+1)
		for i := 0; i+n <= size; i++ {
			term := string(runes[i : i+n])
			score, err := s.Scorer.Score(ctx, term, categories)
			if err != nil {
				return nil, 0, err
			}
			row[i] = gram{term: term, score: score}
		}
		grams[n-1] = row
	}

	table := make(map[rangeKey]entry, size*size)
	for i := 0; i < size; i++ {
		g := grams[0][i]
		table[rangeKey{i, i}] = entry{terms: []string{g.term}, score: g.score}
	}

	getCandidate := func(i, left, right int) entry {
		leftItem := table[rangeKey{i, i + left - 1}]
		rightItem := table[rangeKey{i + left, i + left + right - 1}]
		terms := make([]string, 0, len(leftItem.terms)+len(rightItem.terms))
		terms = append(terms, leftItem.terms...)
		terms = append(terms, rightItem.terms...)
		return entry{terms: terms, score: op(leftItem.score, rightItem.score)}
	}

	for currentSize := 2; currentSize <= size; currentSize++ {
		for i := 0; i+currentSize <= size; i++ {
			var candidates []entry
			for count := 1; count <= currentSize/2; count++ {
				left, right := count, currentSize-count
				candidates = append(candidates, getCandidate(i, left, right))
				if left != right {
					candidates = append(candidates, getCandidate(i, right, left))
				}
			}
			if currentSize <= maxN {
				g := grams[currentSize-1][i]
				candidates = append(candidates, entry{terms: []string{g.term}, score: g.score})
			}
			sort.SliceStable(candidates, func(a, b int) bool {
				return candidates[a].score > candidates[b].score
			})
			table[rangeKey{i, i + currentSize - 1}] = candidates[0]
		}
	}

	best := table[rangeKey{0, size - 1}]
	return best.terms, best.score, nil
}
