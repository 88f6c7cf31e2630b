package news

import (
	"testing"

	"market-recap/internal/types"
)

func TestClassify(t *testing.T) {
	scorer := NewToneScorer()

	cases := []struct {
		headline string
		want     string
	}{
		{"Bitcoin rally gains momentum after ETF approval", types.TonePositive},
		{"Exchange hack triggers selloff fears", types.ToneNegative},
		{"Fed holds rates steady ahead of minutes", types.ToneNeutral},
		// One positive and one negative word cancel out
		{"Rally fades as liquidation looms", types.ToneNeutral},
		// Matching is case-insensitive
		{"BITCOIN SURGES TO RECORD", types.TonePositive},
		{"", types.ToneNeutral},
	}

	for _, c := range cases {
		if got := scorer.Classify(c.headline); got != c.want {
			t.Errorf("Expected %s for %q, got %s", c.want, c.headline, got)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("risk-off selloff: 10% drop!")

	want := []string{"risk", "off", "selloff", "10", "drop"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(want), len(got), got)
	}

	for i, w := range want {
		if got[i] != w {
			t.Errorf("Expected token %d to be %q, got %q", i, w, got[i])
		}
	}
}
