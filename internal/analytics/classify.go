package analytics

import "strings"

// Rule maps raw values matching its predicate to a canonical bucket key.
type Rule[T any] struct {
	Key   string
	Match func(T) bool
}

// RuleSet is an ordered classifier: rules are evaluated top to bottom, the
// first match wins, and anything unmatched lands in the Fallback bucket.
// Classification never fails on unknown input.
type RuleSet[T any] struct {
	Rules    []Rule[T]
	Fallback string
}

// Classify returns the canonical key for a raw value.
func (rs RuleSet[T]) Classify(v T) string {
	for _, r := range rs.Rules {
		if r.Match(v) {
			return r.Key
		}
	}
	return rs.Fallback
}

// Weighted pairs a raw value with the weight it contributes to its bucket.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Bucket is one canonical category with its share of the total.
type Bucket struct {
	Key        string  `json:"key"`
	Count      float64 `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Tally classifies every item and sums weights per canonical key. The result
// lists every rule key in rule order plus the fallback, all present even when
// zero. Percentages are rounded to one decimal and sum to ~100 when the total
// is positive; with no data every bucket reports zero. With an empty
// Fallback, unmatched items are skipped entirely: they count toward no bucket
// and no total.
func (rs RuleSet[T]) Tally(items []Weighted[T]) []Bucket {
	counts := make(map[string]float64, len(rs.Rules)+1)
	keys := make([]string, 0, len(rs.Rules)+1)
	for _, r := range rs.Rules {
		if _, seen := counts[r.Key]; !seen {
			counts[r.Key] = 0
			keys = append(keys, r.Key)
		}
	}
	if _, seen := counts[rs.Fallback]; !seen && rs.Fallback != "" {
		counts[rs.Fallback] = 0
		keys = append(keys, rs.Fallback)
	}

	var total float64
	for _, it := range items {
		key := rs.Classify(it.Value)
		if key == "" {
			continue
		}
		counts[key] += it.Weight
		total += it.Weight
	}

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		b := Bucket{Key: k, Count: counts[k]}
		if total > 0 {
			b.Percentage = round1(counts[k] / total * 100)
		}
		out = append(out, b)
	}
	return out
}

// OneOf matches codes by exact membership in an alias set.
func OneOf(codes ...string) func(string) bool {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(code string) bool {
		_, ok := set[code]
		return ok
	}
}

// ContainsAny matches when the lowercased code contains any substring.
func ContainsAny(subs ...string) func(string) bool {
	return func(code string) bool {
		lower := strings.ToLower(code)
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// Between matches integers in the half-open range [lo, hi).
func Between(lo, hi int) func(int) bool {
	return func(v int) bool { return v >= lo && v < hi }
}

// AtLeast matches integers >= n.
func AtLeast(n int) func(int) bool {
	return func(v int) bool { return v >= n }
}

// Exactly matches one integer.
func Exactly(n int) func(int) bool {
	return func(v int) bool { return v == n }
}
