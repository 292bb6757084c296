// Package service wires the lexicon, segmenter, and store packages
// into the single facade the CLI and RPC server call through.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aosen/loso/lexicon"
	"github.com/aosen/loso/segment"
	"github.com/aosen/loso/store"
)

// Service is the facade: feed training text, split text into scored
// terms, and inspect per-category statistics.
type Service struct {
	Categories *store.CategoryStore
	Scorer     *lexicon.Scorer
	NGram      int
	logger     *zap.Logger
}

// New builds a Service over backend with the given key prefix (passed
// straight to store.NewCategoryStore) and default n-gram order ngram.
func New(backend store.Store, prefix string, ngram int) *Service {
	if ngram < 1 {
		ngram = 4
	}
	categories := store.NewCategoryStore(backend, prefix)
	return &Service{
		Categories: categories,
		Scorer:     lexicon.NewScorer(categories),
		NGram:      ngram,
		logger:     zap.NewNop(),
	}
}

// WithLogger returns a copy of s that logs through logger, and passes
// the same logger down to the underlying category store.
func (s *Service) WithLogger(logger *zap.Logger) *Service {
	cp := *s
	cp.logger = logger
	cp.Categories = s.Categories.WithLogger(logger)
	return &cp
}

// Feed trains category on text at the service's configured n-gram order.
func (s *Service) Feed(ctx context.Context, category, text string) (int, error) {
	s.logger.Info("feed", zap.String("category", category), zap.Int("bytes", len(text)))
	return s.Categories.Feed(ctx, category, text, s.NGram)
}

// GetStats returns the Stats for category, or (nil, false) if it has
// never been fed.
func (s *Service) GetStats(ctx context.Context, category string) (*store.Stats, bool, error) {
	return s.Categories.GetStats(ctx, category)
}

// SplitSentence splits text into sentences on the delimiter set.
func (s *Service) SplitSentence(text string) []string {
	return lexicon.SplitSentence(text, nil)
}

// SplitMixTerms splits text into mixed Chinese-residue and
// "E"-prefixed English term fragments, without further segmenting the
// Chinese residue.
func (s *Service) SplitMixTerms(text string) []string {
	return lexicon.MixTerms(text)
}

// SplitNgramTerms splits text into every 1..NGram term of every
// Chinese-residue fragment, passing English fragments through
// untouched. Unlike SplitTerms, this performs no scoring or
// segmentation. It emits plain n-grams only: unlike the Builder's
// tally, it adds no head/tail markers and keeps English fragments whole.
func (s *Service) SplitNgramTerms(text string) []string {
	var terms []string
	for _, sentence := range lexicon.SplitSentence(text, nil) {
		if sentence == "" {
			continue
		}
		for _, mixed := range lexicon.MixTerms(sentence) {
			if lexicon.IsEnglish(mixed) {
				terms = append(terms, mixed)
				continue
			}
			for n := 1; n <= s.NGram; n++ {
				terms = append(terms, lexicon.IterTerms(n, mixed, false)...)
			}
		}
	}
	return terms
}

// SplitTerms splits text into sentences, mixed-script fragments, and
// runs the DP segmenter over each Chinese-residue fragment against
// categories, passing English fragments through untouched. An empty
// or nil categories falls back to every registered category.
func (s *Service) SplitTerms(ctx context.Context, text string, categories []string) ([]string, error) {
	if len(categories) == 0 {
		all, err := s.Categories.CategoryList(ctx)
		if err != nil {
			return nil, err
		}
		categories = all
	}

	maxN, err := s.effectiveMaxN(ctx, categories)
	if err != nil {
		return nil, err
	}
	segmenter := segment.NewSegmenter(s.Scorer, maxN)

	var terms []string
	for _, sentence := range lexicon.SplitSentence(text, nil) {
		if sentence == "" {
			continue
		}
		for _, mixed := range lexicon.MixTerms(sentence) {
			if lexicon.IsEnglish(mixed) {
				terms = append(terms, mixed)
				continue
			}
			split, _, err := segmenter.FindBestSegment(ctx, mixed, categories)
			if err != nil {
				return nil, err
			}
			terms = append(terms, split...)
		}
	}
	return terms, nil
}

// effectiveMaxN bounds the DP's n-gram order by the largest gram
// actually configured among categories, falling back to 1 when none of
// them have ever been fed. Scoring a term longer than every queried
// category's gram is meaningless: count_c(t) is always 0 for it and
// v_c(n) always falls back to 1, so the DP would just keep preferring
// bigger unscored spans over genuine, trained partitions. An untrained
// category therefore degenerates to unigram-only segmentation.
func (s *Service) effectiveMaxN(ctx context.Context, categories []string) (int, error) {
	maxN := 0
	for _, category := range categories {
		gram, ok, err := s.Categories.Gram(ctx, category)
		if err != nil {
			return 0, err
		}
		if ok && gram > maxN {
			maxN = gram
		}
	}
	if maxN < 1 {
		maxN = 1
	}
	return maxN, nil
}

// Dump renders category's counters and aggregates in the `loso dump`
// text format, or (nil, false) if it doesn't exist.
func (s *Service) Dump(ctx context.Context, category string) ([]byte, bool, error) {
	return s.Categories.Dump(ctx, category)
}

// Clean destroys category entirely.
func (s *Service) Clean(ctx context.Context, category string) error {
	return s.Categories.Clean(ctx, category)
}

// Reset destroys every category.
func (s *Service) Reset(ctx context.Context) error {
	return s.Categories.Reset(ctx)
}

// CategoryList returns every known category name, used by `loso info`
// when no --category filter is given.
func (s *Service) CategoryList(ctx context.Context) ([]string, error) {
	return s.Categories.CategoryList(ctx)
}
