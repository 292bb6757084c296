package segment

import (
	"context"
	"math"
	"testing"

	"github.com/aosen/loso/lexicon"
)

// constReader scores every term identically regardless of category,
// letting tests pin down the pure DP behavior in isolation from any
// lexicon content.
type constReader struct {
	count uint64
}

func (c *constReader) Count(_ context.Context, _, _ string) (uint64, error) {
	return c.count, nil
}

func (c *constReader) Aggregates(_ context.Context, _ string, _ int) (uint64, uint64, error) {
	return 0, 0, nil
}

func (c *constReader) HeadTail(_ context.Context, _, _ string) (uint64, uint64, bool, error) {
	return 0, 0, false, nil
}

func TestFindBestSegmentUniformScoresYieldsUnigrams(t *testing.T) {
	// With all unigram scores equal (empty lexicon => every term scores
	// exactly epsilon) and N=1, the DP must return the same unigrams
	// that a trivial code-point tokenizer would, with total score
	// epsilon^L.
	reader := &constReader{}
	scorer := lexicon.NewScorer(reader)
	seg := NewSegmenter(scorer, 1)

	sentence := "今天天氣真好"
	terms, score, err := seg.FindBestSegment(context.Background(), sentence, []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	want := lexicon.DummyTokenize(sentence)
	if len(terms) != len(want) {
		t.Fatalf("got %d terms %v, want %d unigrams %v", len(terms), terms, len(want), want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, terms[i], want[i])
		}
	}

	epsilon, _ := scorer.Score(context.Background(), "x", []string{"news"})
	want2 := math.Pow(epsilon, float64(len(want)))
	if math.Abs(score-want2) > 1e-12 {
		t.Errorf("score = %v, want %v", score, want2)
	}
}

func TestFindBestSegmentEmptyInput(t *testing.T) {
	scorer := lexicon.NewScorer(&constReader{})
	seg := NewSegmenter(scorer, 4)
	terms, score, err := seg.FindBestSegment(context.Background(), "", []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	if terms != nil || score != 0 {
		t.Errorf("expected (nil, 0) for empty input, got (%v, %v)", terms, score)
	}
}

// strongReader scores a specific multi-char term far higher than its
// constituent unigrams, so the DP should prefer it over splitting it
// into smaller pieces.
type strongReader struct {
	strongTerm string
	strongScor float64
	weakScore  float64
}

func (r *strongReader) Count(_ context.Context, _, term string) (uint64, error) {
	if term == r.strongTerm {
		return 1000, nil
	}
	return 1, nil
}

func (r *strongReader) Aggregates(_ context.Context, _ string, n int) (uint64, uint64, error) {
	return 100, 10, nil
}

func (r *strongReader) HeadTail(_ context.Context, _, _ string) (uint64, uint64, bool, error) {
	return 0, 0, false, nil
}

func TestFindBestSegmentPrefersStrongBigram(t *testing.T) {
	scorer := lexicon.NewScorer(&strongReader{strongTerm: "天氣"})
	seg := NewSegmenter(scorer, 2)

	terms, _, err := seg.FindBestSegment(context.Background(), "天氣", []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 1 || terms[0] != "天氣" {
		t.Errorf("expected single strong bigram, got %v", terms)
	}
}

func TestFindBestSegmentEveryTermLengthBounded(t *testing.T) {
	// Every term's length must lie in 1..N.
	reader := &strongReader{strongTerm: "氣真"}
	scorer := lexicon.NewScorer(reader)
	seg := NewSegmenter(scorer, 3)

	terms, _, err := seg.FindBestSegment(context.Background(), "今天天氣真好吧", []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	var total int
	for _, term := range terms {
		n := len([]rune(term))
		if n < 1 || n > 3 {
			t.Errorf("term %q has length %d, want 1..3", term, n)
		}
		total += n
	}
	if total != len([]rune("今天天氣真好吧")) {
		t.Errorf("total term length %d does not cover the full sentence", total)
	}
}

func TestFindBestSegmentConcatenationReproducesSentence(t *testing.T) {
	scorer := lexicon.NewScorer(&constReader{count: 3})
	seg := NewSegmenter(scorer, 4)
	sentence := "中國人民銀行"
	terms, _, err := seg.FindBestSegment(context.Background(), sentence, []string{"news"})
	if err != nil {
		t.Fatal(err)
	}
	var rebuilt []rune
	for _, term := range terms {
		rebuilt = append(rebuilt, []rune(term)...)
	}
	if string(rebuilt) != sentence {
		t.Errorf("rebuilt %q != sentence %q", string(rebuilt), sentence)
	}
}
