package ensemble

import (
	"math"

	samerrors "github.com/HernanLe100/samboost/pkg/errors"
)

// Booster owns the mutable boosting state: the per-sample weight vector and
// the ordered list of trained stumps. Each Iterate call trains one stump on
// the current weights, reweights the misclassified samples and renormalizes.
//
// A Booster is not safe for concurrent use; callers serialize access. Weights
// sum to 1 after construction and after every completed Iterate.
type Booster struct {
	features   [][]float64 // retained by reference, never mutated here
	labels     []int       // defensive copy
	numClasses int
	nFeatures  int

	weights []float64
	stumps  []*DecisionStump
}

// NewBooster validates the training set and initializes uniform weights 1/n
// with an empty stump list. Labels are deep-copied; the feature matrix is
// retained by reference and must not be mutated by the caller afterwards.
func NewBooster(features [][]float64, labels []int, numClasses int) (*Booster, error) {
	const op = "NewBooster"

	n, k, err := validateDataset(op, features, labels, numClasses)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}

	labelsCopy := make([]int, n)
	copy(labelsCopy, labels)

	return &Booster{
		features:   features,
		labels:     labelsCopy,
		numClasses: numClasses,
		nFeatures:  k,
		weights:    weights,
	}, nil
}

// WeightOf returns the current weight of sample i.
func (b *Booster) WeightOf(i int) (float64, error) {
	if i < 0 || i >= len(b.weights) {
		return 0, samerrors.NewValidationError("i",
			"sample index out of range", i)
	}
	return b.weights[i], nil
}

// Iterate runs one boosting round: trains a stump on the current weights,
// appends it, multiplies each misclassified sample's weight by
// exp(confidence) and renormalizes. A negative confidence therefore decreases
// the weight of misclassified points; that follows from the SAMME formula and
// is applied as-is.
//
// All inputs were validated at construction, so a round cannot fail. Each call
// depends on the state left by the previous one; rounds are strictly
// sequential.
func (b *Booster) Iterate() {
	stump := trainStump(b.features, b.weights, b.labels, b.numClasses, b.nFeatures)
	b.stumps = append(b.stumps, stump)

	factor := samerrors.StabilizeExp(stump.confidence)
	for i, row := range b.features {
		if stump.decide(row) != b.labels[i] {
			b.weights[i] *= factor
		}
	}
	b.normalizeWeights()
}

// normalizeWeights rescales the weights to sum to 1. The sum is always
// positive: weights start positive and exp of a finite confidence never
// reaches zero.
func (b *Booster) normalizeWeights() {
	var sum float64
	for _, w := range b.weights {
		sum += w
	}
	for i := range b.weights {
		b.weights[i] /= sum
	}
}

// Predict returns the class with the greatest accumulated stump confidence
// for the sample; ties go to the lowest class index. With no stumps trained
// yet every accumulator is zero and class 0 wins. O(number of stumps).
func (b *Booster) Predict(sample []float64) (int, error) {
	if sample == nil {
		return 0, samerrors.NewValueError("Booster.Predict", "sample must not be nil")
	}
	if len(sample) != b.nFeatures {
		return 0, samerrors.NewDimensionError("Booster.Predict", b.nFeatures, len(sample), 1)
	}

	sums := b.confidenceSums(sample)

	bestLabel := 0
	best := math.Inf(-1)
	for c, sum := range sums {
		if sum > best {
			best = sum
			bestLabel = c
		}
	}
	return bestLabel, nil
}

// confidenceSums accumulates each stump's confidence at the class it predicts
// for the sample. Unvalidated hot path shared with the estimator surface.
func (b *Booster) confidenceSums(sample []float64) []float64 {
	sums := make([]float64, b.numClasses)
	for _, stump := range b.stumps {
		sums[stump.decide(sample)] += stump.confidence
	}
	return sums
}

// NumStumps returns the number of boosting rounds completed.
func (b *Booster) NumStumps() int { return len(b.stumps) }

// Stumps returns the trained stumps in training order. The slice is a copy;
// the stumps themselves are immutable and shared.
func (b *Booster) Stumps() []*DecisionStump {
	out := make([]*DecisionStump, len(b.stumps))
	copy(out, b.stumps)
	return out
}

// NumSamples returns the number of training samples.
func (b *Booster) NumSamples() int { return len(b.labels) }

// NumFeatures returns the training feature dimension.
func (b *Booster) NumFeatures() int { return b.nFeatures }

// NumClasses returns the number of target classes.
func (b *Booster) NumClasses() int { return b.numClasses }
