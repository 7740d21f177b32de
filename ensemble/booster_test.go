package ensemble

import (
	"math"
	"testing"
)

func newTestBooster(t *testing.T, features [][]float64, labels []int, numClasses int) *Booster {
	t.Helper()
	b, err := NewBooster(features, labels, numClasses)
	if err != nil {
		t.Fatalf("NewBooster failed: %v", err)
	}
	return b
}

func weightSum(t *testing.T, b *Booster) float64 {
	t.Helper()
	var sum float64
	for i := 0; i < b.NumSamples(); i++ {
		w, err := b.WeightOf(i)
		if err != nil {
			t.Fatalf("WeightOf(%d) failed: %v", i, err)
		}
		sum += w
	}
	return sum
}

func TestNewBooster_UniformWeights(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}, {2}, {3}}, []int{0, 0, 1, 1}, 2)

	if b.NumSamples() != 4 || b.NumFeatures() != 1 || b.NumClasses() != 2 {
		t.Errorf("unexpected dimensions: samples=%d features=%d classes=%d",
			b.NumSamples(), b.NumFeatures(), b.NumClasses())
	}
	if b.NumStumps() != 0 {
		t.Errorf("expected no stumps before Iterate, got %d", b.NumStumps())
	}
	for i := 0; i < 4; i++ {
		w, err := b.WeightOf(i)
		if err != nil {
			t.Fatalf("WeightOf(%d) failed: %v", i, err)
		}
		if w != 0.25 {
			t.Errorf("expected uniform weight 0.25 at %d, got %v", i, w)
		}
	}
}

func TestBooster_WeightOfOutOfRange(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}}, []int{0, 1}, 2)

	if _, err := b.WeightOf(-1); err == nil {
		t.Error("expected an error for index -1")
	}
	if _, err := b.WeightOf(2); err == nil {
		t.Error("expected an error for index n")
	}
}

// TestBooster_WeightOfIsReadOnly checks that querying a weight does not
// disturb the boosting state.
func TestBooster_WeightOfIsReadOnly(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}, {2}}, []int{1, 0, 1}, 2)
	b.Iterate()

	first, err := b.WeightOf(2)
	if err != nil {
		t.Fatalf("WeightOf failed: %v", err)
	}
	second, err := b.WeightOf(2)
	if err != nil {
		t.Fatalf("WeightOf failed: %v", err)
	}
	if first != second {
		t.Errorf("WeightOf changed state: %v then %v", first, second)
	}
}

// TestBooster_IterateReweighting checks the weight update on a set the stump
// cannot separate: the one misclassified sample gains weight and the total
// renormalizes to 1.
func TestBooster_IterateReweighting(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}, {2}}, []int{1, 0, 1}, 2)
	b.Iterate()

	if b.NumStumps() != 1 {
		t.Fatalf("expected 1 stump, got %d", b.NumStumps())
	}
	stump := b.Stumps()[0]
	if math.Abs(stump.TotalError()-1.0/3.0) > 1e-12 {
		t.Fatalf("expected stump error 1/3, got %v", stump.TotalError())
	}

	// Only the misclassified sample is scaled by exp(confidence) before
	// renormalization.
	factor := math.Exp(stump.Confidence())
	norm := 2.0/3.0 + factor/3.0
	wantCorrect := (1.0 / 3.0) / norm
	wantWrong := (factor / 3.0) / norm

	w0, _ := b.WeightOf(0)
	w1, _ := b.WeightOf(1)
	w2, _ := b.WeightOf(2)

	if math.Abs(w0-w1) > 1e-15 {
		t.Errorf("correctly classified samples diverged: %v vs %v", w0, w1)
	}
	if math.Abs(w0-wantCorrect) > 1e-12 {
		t.Errorf("expected correct-sample weight %v, got %v", wantCorrect, w0)
	}
	if math.Abs(w2-wantWrong) > 1e-12 {
		t.Errorf("expected misclassified weight %v, got %v", wantWrong, w2)
	}
	if w2 <= w0 {
		t.Errorf("misclassified sample should outweigh correct ones: %v vs %v", w2, w0)
	}
	if math.Abs(weightSum(t, b)-1) > 1e-12 {
		t.Errorf("weights must renormalize to 1, got %v", weightSum(t, b))
	}
}

func TestBooster_WeightsSumToOneAcrossRounds(t *testing.T) {
	features := [][]float64{
		{2.0, 7.0},
		{3.0, 1.0},
		{5.0, 9.0},
		{8.0, 4.0},
		{6.0, 2.0},
		{1.0, 5.0},
	}
	b := newTestBooster(t, features, []int{0, 1, 2, 1, 0, 2}, 3)

	for round := 0; round < 5; round++ {
		b.Iterate()
		if sum := weightSum(t, b); math.Abs(sum-1) > 1e-12 {
			t.Fatalf("round %d: weights sum to %v, want 1", round, sum)
		}
		for i := 0; i < b.NumSamples(); i++ {
			if w, _ := b.WeightOf(i); w <= 0 {
				t.Fatalf("round %d: weight %d dropped to %v", round, i, w)
			}
		}
	}
	if b.NumStumps() != 5 {
		t.Errorf("expected 5 stumps, got %d", b.NumStumps())
	}
}

func TestBooster_SingleSample(t *testing.T) {
	b := newTestBooster(t, [][]float64{{5}}, []int{0}, 2)
	b.Iterate()

	if w, _ := b.WeightOf(0); w != 1 {
		t.Errorf("single-sample weight must stay 1, got %v", w)
	}
	got, err := b.Predict([]float64{5})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected class 0, got %d", got)
	}
}

func TestBooster_PredictSeparable(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}, {2}, {3}}, []int{0, 0, 1, 1}, 2)
	b.Iterate()

	cases := []struct {
		sample []float64
		want   int
	}{
		{[]float64{0.5}, 0},
		{[]float64{1.0}, 0},
		{[]float64{2.5}, 1},
	}
	for _, tc := range cases {
		got, err := b.Predict(tc.sample)
		if err != nil {
			t.Fatalf("Predict(%v) failed: %v", tc.sample, err)
		}
		if got != tc.want {
			t.Errorf("Predict(%v) = %d, want %d", tc.sample, got, tc.want)
		}
	}
}

// TestBooster_PredictBeforeIterate checks the empty-ensemble convention:
// every accumulator is zero, so class 0 wins.
func TestBooster_PredictBeforeIterate(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}}, []int{0, 1}, 2)

	got, err := b.Predict([]float64{0.5})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got != 0 {
		t.Errorf("expected class 0 from an empty ensemble, got %d", got)
	}
}

func TestBooster_PredictValidation(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0, 0}, {1, 1}}, []int{0, 1}, 2)

	if _, err := b.Predict(nil); err == nil {
		t.Error("expected an error for a nil sample")
	}
	if _, err := b.Predict([]float64{1}); err == nil {
		t.Error("expected an error for a wrong-dimension sample")
	}
}

// TestBooster_Deterministic checks that two boosters over the same data
// produce identical stumps and weights.
func TestBooster_Deterministic(t *testing.T) {
	features := [][]float64{
		{2.0, 7.0},
		{3.0, 1.0},
		{5.0, 9.0},
		{8.0, 4.0},
		{6.0, 2.0},
		{1.0, 5.0},
	}
	labels := []int{0, 1, 2, 1, 0, 2}

	a := newTestBooster(t, features, labels, 3)
	b := newTestBooster(t, features, labels, 3)
	for round := 0; round < 3; round++ {
		a.Iterate()
		b.Iterate()
	}

	sa, sb := a.Stumps(), b.Stumps()
	for i := range sa {
		if sa[i].Dimension() != sb[i].Dimension() ||
			sa[i].Threshold() != sb[i].Threshold() ||
			sa[i].LeftLabel() != sb[i].LeftLabel() ||
			sa[i].RightLabel() != sb[i].RightLabel() ||
			sa[i].Confidence() != sb[i].Confidence() {
			t.Errorf("round %d: stumps diverged", i)
		}
	}
	for i := 0; i < a.NumSamples(); i++ {
		wa, _ := a.WeightOf(i)
		wb, _ := b.WeightOf(i)
		if wa != wb {
			t.Errorf("sample %d: weights diverged: %v vs %v", i, wa, wb)
		}
	}
}

func TestBooster_StumpsReturnsCopy(t *testing.T) {
	b := newTestBooster(t, [][]float64{{0}, {1}}, []int{0, 1}, 2)
	b.Iterate()

	stumps := b.Stumps()
	stumps[0] = nil
	if b.Stumps()[0] == nil {
		t.Error("mutating the returned slice must not affect the booster")
	}
}
