package lexicon

import (
	"context"

	"go.uber.org/zap"
)

// scoreFloor is the epsilon used to keep scores strictly positive even
// when a term has never been seen.
const scoreFloor = 1e-8

// CategoryReader is the read side of a persisted lexicon store that
// the Scorer needs: per-term counts and per-gram-length aggregates.
// store.CategoryStore implements this; it is declared here, rather
// than imported from the store package, so that lexicon has no
// dependency on the storage layer.
type CategoryReader interface {
	// Count returns the stored count for (category, term), 0 if unknown.
	Count(ctx context.Context, category, term string) (uint64, error)
	// Aggregates returns (sum(n), variety(n)) for category. variety==0
	// means the category has never recorded a term of that length, and
	// v_c(n) falls back to 1.
	Aggregates(ctx context.Context, category string, n int) (sum, variety uint64, err error)
	// HeadTail returns the head and tail marker counts for term within
	// category, and whether both markers have ever been recorded.
	HeadTail(ctx context.Context, category, term string) (head, tail uint64, ok bool, err error)
}

// Scorer computes a positive score for a candidate term against a set
// of categories.
type Scorer struct {
	Reader CategoryReader
	// HeadTailBoost enables the head/tail scoring addon. Disabled by
	// default to match the current multi-category design.
	HeadTailBoost bool
	Logger        *zap.Logger
}

// NewScorer builds a Scorer over reader with a no-op logger.
func NewScorer(reader CategoryReader) *Scorer {
	return &Scorer{Reader: reader, Logger: zap.NewNop()}
}

// Score computes score(t, C) = epsilon + sum over c in C of
// count_c(t) / v_c(n), where v_c(n) = (sum_c(n)/variety_c(n))^2 when
// variety_c(n) > 0, else 1. n is the code-point length of term.
// epsilon is added unconditionally after summing every category's
// contribution, not only as a zero-score fallback.
func (s *Scorer) Score(ctx context.Context, term string, categories []string) (float64, error) {
	n := len([]rune(term))
	var total float64
	for _, cat := range categories {
		count, err := s.Reader.Count(ctx, cat, term)
		if err != nil {
			return 0, err
		}
		sum, variety, err := s.Reader.Aggregates(ctx, cat, n)
		if err != nil {
			return 0, err
		}
		v := 1.0
		if variety > 0 {
			ratio := float64(sum) / float64(variety)
			v = ratio * ratio
		}
		contribution := float64(count) / v
		if s.HeadTailBoost && n >= 2 {
			head, tail, ok, err := s.Reader.HeadTail(ctx, cat, term)
			if err != nil {
				return 0, err
			}
			if ok && head > 3 && tail > 3 {
				contribution += float64(head+tail) / v
			}
		}
		total += contribution
		s.Logger.Debug("scored term",
			zap.String("term", term), zap.String("category", cat),
			zap.Uint64("count", count), zap.Float64("v", v))
	}
	return scoreFloor + total, nil
}
