package store

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/aosen/loso/errs"
	"github.com/aosen/loso/lexicon"
)

// CategoryStore layers the Category data model on top of a raw Store
// capability interface: category registry, per-category gram
// immutability, and per-n sum/variety aggregates. It implements
// lexicon.CategoryReader so a Scorer can read straight through it.
type CategoryStore struct {
	backend Store
	schema  schema
	logger  *zap.Logger
}

// NewCategoryStore wraps backend with the given key prefix (DefaultPrefix
// when empty).
func NewCategoryStore(backend Store, prefix string) *CategoryStore {
	return &CategoryStore{backend: backend, schema: newSchema(prefix), logger: zap.NewNop()}
}

// WithLogger returns a copy of cs that logs through logger.
func (cs *CategoryStore) WithLogger(logger *zap.Logger) *CategoryStore {
	c := *cs
	c.logger = logger
	return &c
}

// CategoryList returns every category name observable in the registry.
func (cs *CategoryStore) CategoryList(ctx context.Context) ([]string, error) {
	names, err := cs.backend.SetMembers(ctx, cs.schema.categorySet())
	if err != nil {
		return nil, &errs.StoreError{Op: "category list", Err: err}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether category is observable from the registry.
func (cs *CategoryStore) Exists(ctx context.Context, category string) (bool, error) {
	names, err := cs.CategoryList(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == category {
			return true, nil
		}
	}
	return false, nil
}

// Gram returns the immutable gram (max n-gram order) a category was
// created with, or (0, false) if the category doesn't exist.
func (cs *CategoryStore) Gram(ctx context.Context, category string) (int, bool, error) {
	v, ok, err := cs.backend.Get(ctx, cs.schema.gram(category))
	if err != nil {
		return 0, false, &errs.StoreError{Op: "get gram", Err: err}
	}
	return int(v), ok, nil
}

// ensureCategory registers category (first-feed initialization) with
// the requested gram, or returns the already-stored gram if the
// category already exists. Gram is immutable after creation.
func (cs *CategoryStore) ensureCategory(ctx context.Context, category string, requestedGram int) (int, error) {
	if !isValidCategoryName(category) {
		return 0, &errs.InvariantViolation{Msg: "category name must not contain ':': " + category}
	}
	existingGram, ok, err := cs.Gram(ctx, category)
	if err != nil {
		return 0, err
	}
	if ok {
		if existingGram != requestedGram {
			cs.logger.Warn("ignoring different gram for existing category",
				zap.String("category", category),
				zap.Int("existing", existingGram), zap.Int("requested", requestedGram))
		}
		return existingGram, nil
	}
	// First feed: commit the registry entry and the gram meta key.
	// Registry visibility happens last so a category is never
	// observable before its gram is set.
	if _, err := cs.backend.Incr(ctx, cs.schema.gram(category), int64(requestedGram)); err != nil {
		return 0, &errs.StoreError{Op: "init gram", Err: err}
	}
	if _, err := cs.backend.SetAdd(ctx, cs.schema.categorySet(), category); err != nil {
		return 0, &errs.StoreError{Op: "register category", Err: err}
	}
	return requestedGram, nil
}

// Feed tallies n-gram deltas for every n in 1..gram over text, adds
// them to the store, and updates the per-n sum/variety aggregates.
// Aggregate updates happen only after every per-term update for that n
// has landed. Returns the total number of terms fed, counting
// head/tail markers.
func (cs *CategoryStore) Feed(ctx context.Context, category, text string, gram int) (int, error) {
	actualGram, err := cs.ensureCategory(ctx, category, gram)
	if err != nil {
		return 0, err
	}

	total := 0
	for n := 1; n <= actualGram; n++ {
		counts := map[string]int64{}
		for _, term := range lexicon.IterTerms(n, text, true) {
			counts[term]++
			total++
		}

		var sum int64
		var variety int64
		for term, delta := range counts {
			newlyPresent, err := cs.backend.SetAdd(ctx, cs.schema.terms(category), term)
			if err != nil {
				return 0, &errs.StoreError{Op: "register term", Err: err}
			}
			if _, err := cs.backend.Incr(ctx, cs.schema.lex(category, term), delta); err != nil {
				return 0, &errs.StoreError{Op: "increase term count", Err: err}
			}
			// Head/tail markers are stored like any other term (so
			// HeadTailTerms can look them up) but don't themselves
			// count as an n-length term for the sum(n)/variety(n)
			// aggregates; those track the plain n-grams only.
			if isHeadTailMarker(term) {
				continue
			}
			if newlyPresent {
				variety++
			}
			sum += delta
		}

		if _, err := cs.backend.Incr(ctx, cs.schema.gramSum(category, n), sum); err != nil {
			return 0, &errs.StoreError{Op: "increase gram sum", Err: err}
		}
		if _, err := cs.backend.Incr(ctx, cs.schema.gramVariety(category, n), variety); err != nil {
			return 0, &errs.StoreError{Op: "increase gram variety", Err: err}
		}
		cs.logger.Debug("fed n-gram level",
			zap.String("category", category), zap.Int("n", n),
			zap.Int64("sum", sum), zap.Int64("variety", variety))
	}
	cs.logger.Info("fed terms", zap.String("category", category), zap.Int("total", total))
	return total, nil
}

// isHeadTailMarker reports whether term is a head/tail pseudo-term
// rather than a plain n-gram. Plain terms are either non-ASCII (Chinese
// code points) or already lowercased ASCII, so a leading uppercase "B"
// or "E" unambiguously marks a head/tail entry.
func isHeadTailMarker(term string) bool {
	return strings.HasPrefix(term, "B") || strings.HasPrefix(term, "E")
}

// Count implements lexicon.CategoryReader.
func (cs *CategoryStore) Count(ctx context.Context, category, term string) (uint64, error) {
	v, ok, err := cs.backend.Get(ctx, cs.schema.lex(category, term))
	if err != nil {
		return 0, &errs.StoreError{Op: "get term count", Err: err}
	}
	if !ok || v < 0 {
		return 0, nil
	}
	return uint64(v), nil
}

// Aggregates implements lexicon.CategoryReader.
func (cs *CategoryStore) Aggregates(ctx context.Context, category string, n int) (uint64, uint64, error) {
	sum, _, err := cs.backend.Get(ctx, cs.schema.gramSum(category, n))
	if err != nil {
		return 0, 0, &errs.StoreError{Op: "get gram sum", Err: err}
	}
	variety, _, err := cs.backend.Get(ctx, cs.schema.gramVariety(category, n))
	if err != nil {
		return 0, 0, &errs.StoreError{Op: "get gram variety", Err: err}
	}
	if sum < 0 {
		sum = 0
	}
	if variety < 0 {
		variety = 0
	}
	return uint64(sum), uint64(variety), nil
}

// HeadTail implements lexicon.CategoryReader by looking up the 'B'-
// and 'E'-prefixed marker terms recorded during training.
func (cs *CategoryStore) HeadTail(ctx context.Context, category, term string) (uint64, uint64, bool, error) {
	head, err := cs.Count(ctx, category, "B"+term)
	if err != nil {
		return 0, 0, false, err
	}
	tail, err := cs.Count(ctx, category, "E"+term)
	if err != nil {
		return 0, 0, false, err
	}
	if head == 0 || tail == 0 {
		return head, tail, false, nil
	}
	return head, tail, true, nil
}

var _ lexicon.CategoryReader = (*CategoryStore)(nil)

// HeadTermLength is the minimum unprefixed term length HeadTailTerms
// considers. The 'B'/'E' prefix itself always makes a stored key's
// length >= 2, so this filters out degenerate zero-length unprefixed
// terms only.
const HeadTermLength = 1

// HeadTailTerms enumerates every term in category that has been
// recorded with both a head marker and a tail marker during training.
func (cs *CategoryStore) HeadTailTerms(ctx context.Context, category string) ([]string, error) {
	members, err := cs.backend.SetMembers(ctx, cs.schema.terms(category))
	if err != nil {
		return nil, &errs.StoreError{Op: "list terms", Err: err}
	}
	heads := map[string]struct{}{}
	tails := map[string]struct{}{}
	for _, m := range members {
		switch {
		case strings.HasPrefix(m, "B") && len([]rune(m[1:])) >= HeadTermLength:
			heads[m[1:]] = struct{}{}
		case strings.HasPrefix(m, "E") && len([]rune(m[1:])) >= HeadTermLength:
			tails[m[1:]] = struct{}{}
		}
	}
	var common []string
	for t := range heads {
		if _, ok := tails[t]; ok {
			common = append(common, t)
		}
	}
	sort.Strings(common)
	return common, nil
}

// Stats is the per-category statistics shape returned by GetStats and
// printed by `loso info`.
type Stats struct {
	Gram    int
	Sum     map[int]uint64
	Variety map[int]uint64
}

// GetStats returns the Stats for category, or (nil, false) if it
// doesn't exist.
func (cs *CategoryStore) GetStats(ctx context.Context, category string) (*Stats, bool, error) {
	gram, ok, err := cs.Gram(ctx, category)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	stats := &Stats{Gram: gram, Sum: map[int]uint64{}, Variety: map[int]uint64{}}
	for n := 1; n <= gram; n++ {
		sum, variety, err := cs.Aggregates(ctx, category, n)
		if err != nil {
			return nil, false, err
		}
		stats.Sum[n] = sum
		stats.Variety[n] = variety
	}
	return stats, true, nil
}

// Dump renders category as a `gram N` header, then `k-gram-sum V` and
// `k-gram-variety V` per k, a blank line, then one `count<TAB>term`
// line per stored term, sorted. Returns (nil, false, nil) if category
// doesn't exist.
func (cs *CategoryStore) Dump(ctx context.Context, category string) ([]byte, bool, error) {
	stats, ok, err := cs.GetStats(ctx, category)
	if err != nil || !ok {
		return nil, ok, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "gram %d\n", stats.Gram)
	for n := 1; n <= stats.Gram; n++ {
		fmt.Fprintf(&buf, "%d-gram-sum %d\n", n, stats.Sum[n])
		fmt.Fprintf(&buf, "%d-gram-variety %d\n", n, stats.Variety[n])
	}
	buf.WriteByte('\n')

	terms, err := cs.backend.SetMembers(ctx, cs.schema.terms(category))
	if err != nil {
		return nil, false, &errs.StoreError{Op: "list terms for dump", Err: err}
	}
	sort.Strings(terms)
	for _, term := range terms {
		count, err := cs.Count(ctx, category, term)
		if err != nil {
			return nil, false, err
		}
		fmt.Fprintf(&buf, "%d\t%s\n", count, term)
	}
	return buf.Bytes(), true, nil
}

// Clean removes category from the registry and all of its keys,
// all-or-nothing. A non-existent category is a no-op.
func (cs *CategoryStore) Clean(ctx context.Context, category string) error {
	gram, ok, err := cs.Gram(ctx, category)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	keys := []string{cs.schema.gram(category), cs.schema.terms(category)}
	for n := 1; n <= gram; n++ {
		keys = append(keys, cs.schema.gramSum(category, n), cs.schema.gramVariety(category, n))
	}
	members, err := cs.backend.SetMembers(ctx, cs.schema.terms(category))
	if err != nil {
		return &errs.StoreError{Op: "list terms for clean", Err: err}
	}
	for _, term := range members {
		keys = append(keys, cs.schema.lex(category, term))
	}
	if err := cs.backend.Delete(ctx, keys...); err != nil {
		return &errs.StoreError{Op: "delete category keys", Err: err}
	}
	// The registry set lives under a different key than anything
	// deleted above. The Store interface has no SetRemove, so clear
	// the whole set and re-add every remaining member.
	return cs.removeFromRegistry(ctx, category)
}

func (cs *CategoryStore) removeFromRegistry(ctx context.Context, category string) error {
	names, err := cs.backend.SetMembers(ctx, cs.schema.categorySet())
	if err != nil {
		return &errs.StoreError{Op: "list categories", Err: err}
	}
	remaining := names[:0]
	for _, n := range names {
		if n != category {
			remaining = append(remaining, n)
		}
	}
	if err := cs.backend.Delete(ctx, cs.schema.categorySet()); err != nil {
		return &errs.StoreError{Op: "clear category set", Err: err}
	}
	for _, n := range remaining {
		if _, err := cs.backend.SetAdd(ctx, cs.schema.categorySet(), n); err != nil {
			return &errs.StoreError{Op: "re-register category", Err: err}
		}
	}
	return nil
}

// Reset removes every category.
func (cs *CategoryStore) Reset(ctx context.Context) error {
	names, err := cs.CategoryList(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := cs.Clean(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
