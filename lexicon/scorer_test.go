package lexicon

import (
	"context"
	"testing"
)

// fakeReader is a minimal in-test CategoryReader, independent of the
// store package's real implementation, to keep this package's tests
// free of a storage dependency.
type fakeReader struct {
	counts  map[string]map[string]uint64
	sums    map[string]map[int]uint64
	variety map[string]map[int]uint64
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		counts:  map[string]map[string]uint64{},
		sums:    map[string]map[int]uint64{},
		variety: map[string]map[int]uint64{},
	}
}

func (f *fakeReader) Count(_ context.Context, cat, term string) (uint64, error) {
	return f.counts[cat][term], nil
}

func (f *fakeReader) Aggregates(_ context.Context, cat string, n int) (uint64, uint64, error) {
	return f.sums[cat][n], f.variety[cat][n], nil
}

func (f *fakeReader) HeadTail(_ context.Context, cat, term string) (uint64, uint64, bool, error) {
	return 0, 0, false, nil
}

func TestScorerStrictlyPositiveOnEmptyLexicon(t *testing.T) {
	s := NewScorer(newFakeReader())
	score, err := s.Score(context.Background(), "中", []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	if score <= 0 {
		t.Errorf("score = %v, want > 0", score)
	}
	if score != scoreFloor {
		t.Errorf("score = %v, want exactly the epsilon floor %v for an unseen term", score, scoreFloor)
	}
}

func TestScorerRewardsHighCountLowVariety(t *testing.T) {
	reader := newFakeReader()
	reader.counts["news"] = map[string]uint64{"好天": 100}
	reader.sums["news"] = map[int]uint64{2: 100}
	reader.variety["news"] = map[int]uint64{2: 1}
	s := NewScorer(reader)

	seen, err := s.Score(context.Background(), "好天", []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	unseen, err := s.Score(context.Background(), "壞天", []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	if seen <= unseen {
		t.Errorf("seen term score %v should exceed unseen term score %v", seen, unseen)
	}
}

func TestScorerSumsAcrossCategories(t *testing.T) {
	reader := newFakeReader()
	reader.counts["a"] = map[string]uint64{"x": 10}
	reader.sums["a"] = map[int]uint64{1: 10}
	reader.variety["a"] = map[int]uint64{1: 1}
	reader.counts["b"] = map[string]uint64{"x": 10}
	reader.sums["b"] = map[int]uint64{1: 10}
	reader.variety["b"] = map[int]uint64{1: 1}
	s := NewScorer(reader)

	one, _ := s.Score(context.Background(), "x", []string{"a"})
	both, _ := s.Score(context.Background(), "x", []string{"a", "b"})
	if both <= one {
		t.Errorf("combining categories should increase score: one=%v both=%v", one, both)
	}
}
