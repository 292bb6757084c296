package lexicon

import "testing"

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func TestIterTermsHeadTail(t *testing.T) {
	// single sentence of 3 unigrams: C1 C2 C3
	got := IterTerms(1, "abc", true)
	want := []string{"a", "Ba", "b", "c", "Ec"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIterTermsNoHeadTailWhenDisabled(t *testing.T) {
	got := IterTerms(1, "abc", false)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIterTermsLowercasesASCII(t *testing.T) {
	got := IterTerms(2, "AB", true)
	want := []string{"ab", "Bab", "Eab"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIterTermsShortSentenceNoHeadTail(t *testing.T) {
	// "a,bc": sentences are "a" and "bc". For n=2, "a" produces zero
	// 2-grams, so no head/tail markers for that sentence; "bc"
	// produces one 2-gram, so head == tail == "bc".
	got := IterTerms(2, "a,bc", true)
	want := []string{"bc", "Bbc", "Ebc"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("term %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIterTermsAcrossMultipleSentences(t *testing.T) {
	got := IterTerms(1, "ab,cd", true)
	if !contains(got, "Ba") || !contains(got, "Eb") || !contains(got, "Bc") || !contains(got, "Ed") {
		t.Errorf("expected head/tail markers per-sentence, got %v", got)
	}
}
