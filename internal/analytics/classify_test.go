package analytics

import "testing"

var colorRules = RuleSet[string]{
	Rules: []Rule[string]{
		{Key: "warm", Match: OneOf("red", "orange")},
		{Key: "cool", Match: OneOf("blue", "green")},
	},
	Fallback: "neutral",
}

func TestClassifyFirstMatchWins(t *testing.T) {
	rs := RuleSet[int]{
		Rules: []Rule[int]{
			{Key: "big", Match: AtLeast(10)},
			{Key: "huge", Match: AtLeast(100)},
		},
		Fallback: "small",
	}
	if got := rs.Classify(500); got != "big" {
		t.Fatalf("got %q want %q", got, "big")
	}
	if got := rs.Classify(3); got != "small" {
		t.Fatalf("got %q want %q", got, "small")
	}
}

func TestTallyPreSeedsAllBuckets(t *testing.T) {
	buckets := colorRules.Tally(nil)

	if len(buckets) != 3 {
		t.Fatalf("buckets: got %d want 3", len(buckets))
	}
	want := []string{"warm", "cool", "neutral"}
	for i, b := range buckets {
		if b.Key != want[i] {
			t.Fatalf("bucket %d: got %q want %q", i, b.Key, want[i])
		}
		if b.Count != 0 || b.Percentage != 0 {
			t.Fatalf("empty tally should be all zero: %+v", b)
		}
	}
}

func TestTallyWeightsAndPercentages(t *testing.T) {
	items := []Weighted[string]{
		{Value: "red", Weight: 3},
		{Value: "blue", Weight: 1},
		{Value: "plaid", Weight: 4},
	}
	buckets := colorRules.Tally(items)

	byKey := map[string]Bucket{}
	for _, b := range buckets {
		byKey[b.Key] = b
	}
	if byKey["warm"].Count != 3 || byKey["warm"].Percentage != 37.5 {
		t.Fatalf("warm: %+v", byKey["warm"])
	}
	if byKey["cool"].Count != 1 || byKey["cool"].Percentage != 12.5 {
		t.Fatalf("cool: %+v", byKey["cool"])
	}
	if byKey["neutral"].Count != 4 || byKey["neutral"].Percentage != 50 {
		t.Fatalf("neutral: %+v", byKey["neutral"])
	}
}

func TestTallyPercentageRounding(t *testing.T) {
	items := []Weighted[string]{
		{Value: "red", Weight: 1},
		{Value: "blue", Weight: 1},
		{Value: "plaid", Weight: 1},
	}
	for _, b := range colorRules.Tally(items) {
		if b.Percentage != 33.3 {
			t.Fatalf("%s: got %v want 33.3", b.Key, b.Percentage)
		}
	}
}

func TestTallyEmptyFallbackSkipsUnmatched(t *testing.T) {
	rs := RuleSet[string]{
		Rules: []Rule[string]{
			{Key: "warm", Match: OneOf("red")},
		},
	}
	items := []Weighted[string]{
		{Value: "red", Weight: 1},
		{Value: "plaid", Weight: 3},
	}
	buckets := rs.Tally(items)

	if len(buckets) != 1 {
		t.Fatalf("buckets: got %d want 1", len(buckets))
	}
	// The unmatched item counts toward no bucket and no total.
	if buckets[0].Count != 1 || buckets[0].Percentage != 100 {
		t.Fatalf("warm: %+v", buckets[0])
	}
}

func TestContainsAnyLowercases(t *testing.T) {
	m := ContainsAny("phone", "tel")
	if !m("Mobile PHONE booking") {
		t.Fatal("should match case-insensitively")
	}
	if !m("hotel desk") {
		t.Fatal("substring match expected")
	}
	if m("internet") {
		t.Fatal("should not match")
	}
}

func TestBetweenHalfOpen(t *testing.T) {
	m := Between(5, 12)
	if !m(5) || !m(11) {
		t.Fatal("bounds wrong")
	}
	if m(12) || m(4) {
		t.Fatal("half-open range violated")
	}
}
