package analytics

import "testing"

func TestGrowth(t *testing.T) {
	cases := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"zero previous yields zero", 500, 0, 0},
		{"both zero", 0, 0, 0},
		{"simple increase", 150, 100, 50},
		{"simple decrease", 75, 100, -25},
		{"rounds to one decimal", 101, 300, -66.3},
		{"clamped high", 900, 100, 100},
		{"clamped low", 0, 100, -100},
		{"negative beyond clamp", -500, 100, -100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Growth(tc.current, tc.previous); got != tc.want {
				t.Fatalf("Growth(%v, %v): got %v want %v", tc.current, tc.previous, got, tc.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	cur := Series{
		{Date: "2025-06-01", Value: 100.4},
		{Date: "2025-06-02", Value: 0},
		{Date: "2025-06-03", Value: 200.2},
	}
	prev := Series{
		{Date: "2024-06-01", Value: 100},
		{Date: "2024-06-02", Value: 100},
		{Date: "2024-06-03", Value: 0},
	}

	c := Summarize(cur, prev)

	if c.CurrentTotal != 301 {
		t.Fatalf("current total: got %v want 301", c.CurrentTotal)
	}
	if c.PrevYearTotal != 200 {
		t.Fatalf("prev total: got %v want 200", c.PrevYearTotal)
	}
	if c.GrowthPercentage != 50.5 {
		t.Fatalf("growth: got %v want 50.5", c.GrowthPercentage)
	}
	// Average divides by the two active days, not three.
	if c.Average != 150 {
		t.Fatalf("average: got %v want 150", c.Average)
	}
}

func TestSummarizeEmptyCurrent(t *testing.T) {
	c := Summarize(Series{}, Series{{Date: "2024-06-01", Value: 40}})

	if c.CurrentTotal != 0 {
		t.Fatalf("current total: got %v want 0", c.CurrentTotal)
	}
	if c.Average != 0 {
		t.Fatalf("average: got %v want 0", c.Average)
	}
	if c.GrowthPercentage != -100 {
		t.Fatalf("growth: got %v want -100", c.GrowthPercentage)
	}
}
