package output

import (
	"os"
	"strings"
	"testing"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score  float64
		width  int
		filled int
		label  string
	}{
		{81, 10, 8, "81/100"},
		{0, 10, 0, "0/100"},
		{150, 10, 10, "150/100"},
		{-5, 10, 0, "-5/100"},
		{50, 0, 10, "50/100"},
	}
	for _, tc := range tests {
		got := ScoreBar(tc.score, tc.width)
		if n := strings.Count(got, "█"); n != tc.filled {
			t.Errorf("ScoreBar(%v, %d) filled = %d, want %d", tc.score, tc.width, n, tc.filled)
		}
		if !strings.HasSuffix(got, tc.label) {
			t.Errorf("ScoreBar(%v, %d) = %q, want suffix %q", tc.score, tc.width, got, tc.label)
		}
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := TrendArrow(0, true); got != "─" {
		t.Errorf("TrendArrow(0) = %q", got)
	}
	if got := TrendArrow(2.5, true); got != "▲ +2.5" {
		t.Errorf("TrendArrow(2.5) = %q", got)
	}
	if got := TrendArrow(-1, false); got != "▼ -1.0" {
		t.Errorf("TrendArrow(-1) = %q", got)
	}
}

func TestClassification_Plain(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	for _, c := range []scoring.Classification{scoring.Positive, scoring.Neutral, scoring.Negative} {
		if got := Classification(c); got != string(c) {
			t.Errorf("Classification(%q) = %q", c, got)
		}
	}
}

func TestColorEnabled_RespectsConfig(t *testing.T) {
	if ColorEnabled(os.Stdout, false) {
		t.Error("expected color disabled when configured off")
	}
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(os.Stdout, true) {
		t.Error("expected color disabled when NO_COLOR is set")
	}
}

func TestKeyValue(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := KeyValue("Total", "3")
	if !strings.Contains(got, "Total") || !strings.HasSuffix(got, "3") {
		t.Errorf("KeyValue() = %q", got)
	}
}
