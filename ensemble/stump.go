// Package ensemble implements multiclass AdaBoost (SAMME) over axis-aligned
// decision stumps. The Booster type owns the boosting state and exposes the
// round-by-round training loop; AdaBoostClassifier wraps it in a
// scikit-learn-compatible estimator surface.
package ensemble

import (
	"fmt"
	"math"
	"sort"

	"github.com/HernanLe100/samboost/core/parallel"
	samerrors "github.com/HernanLe100/samboost/pkg/errors"
)

// Dimension counts below this run the split search sequentially.
const dimensionParallelThreshold = 8

// DecisionStump is a weak learner that splits on a single feature dimension at
// a single threshold, predicting one label per side. A stump is immutable once
// trained; its confidence is the SAMME vote weight
// log10((1-e)/e) + log10(numClasses-1) for weighted error e.
type DecisionStump struct {
	dimension  int
	threshold  float64
	leftLabel  int // predicted when sample[dimension] <= threshold
	rightLabel int // predicted when sample[dimension] > threshold
	totalError float64
	confidence float64
	nFeatures  int
}

// TrainDecisionStump finds the axis-aligned split maximizing the total
// weighted-majority-vote mass over the given weighting. Thresholds are taken
// from observed feature values only, and the search is exact: every distinct
// value boundary on every dimension is scored in O(k*n log n) total.
//
// Ties are broken toward the first candidate found, scanning dimensions in
// order and boundaries in ascending value order. When both sides of a boundary
// would pick the same label, the right side falls back to its second-largest
// class; the correction is greedy and local to the boundary.
func TrainDecisionStump(features [][]float64, weights []float64, labels []int, numClasses int) (*DecisionStump, error) {
	const op = "TrainDecisionStump"

	n, k, err := validateDataset(op, features, labels, numClasses)
	if err != nil {
		return nil, err
	}
	if weights == nil {
		return nil, samerrors.NewValueError(op, "weights must not be nil")
	}
	if len(weights) != n {
		return nil, samerrors.NewDimensionError(op, n, len(weights), 0)
	}
	for i, w := range weights {
		if w < 0 {
			return nil, samerrors.NewValidationError("weights",
				fmt.Sprintf("must be non-negative at index %d", i), w)
		}
	}

	return trainStump(features, weights, labels, numClasses, k), nil
}

// validateDataset checks the feature matrix and labels shared by
// TrainDecisionStump and NewBooster. Returns (n, k).
func validateDataset(op string, features [][]float64, labels []int, numClasses int) (int, int, error) {
	if features == nil {
		return 0, 0, samerrors.NewValueError(op, "features must not be nil")
	}
	if labels == nil {
		return 0, 0, samerrors.NewValueError(op, "labels must not be nil")
	}
	n := len(features)
	if n == 0 {
		return 0, 0, samerrors.Wrap(samerrors.ErrEmptyData, op)
	}
	k := len(features[0])
	if k == 0 {
		return 0, 0, samerrors.NewValueError(op, "features must have at least one column")
	}
	for _, row := range features {
		if row == nil || len(row) != k {
			return 0, 0, samerrors.NewDimensionError(op, k, len(row), 1)
		}
	}
	if len(labels) != n {
		return 0, 0, samerrors.NewDimensionError(op, n, len(labels), 0)
	}
	if numClasses < 2 {
		return 0, 0, samerrors.NewValidationError("numClasses", "must be at least 2", numClasses)
	}
	for i, label := range labels {
		if label < 0 || label >= numClasses {
			return 0, 0, samerrors.NewValidationError("labels",
				fmt.Sprintf("must be in [0, %d) at index %d", numClasses, i), label)
		}
	}
	return n, k, nil
}

// splitCandidate is the best boundary found on one dimension.
type splitCandidate struct {
	dimension  int
	threshold  float64
	leftLabel  int
	rightLabel int
	score      float64
}

// trainStump runs the split search on pre-validated data. The per-dimension
// searches are independent and read-only over weights, so they fan out across
// CPUs; the reduction scans dimensions in order so the first-found tie-break
// matches a sequential scan.
func trainStump(features [][]float64, weights []float64, labels []int, numClasses, k int) *DecisionStump {
	candidates := make([]splitCandidate, k)
	parallel.ParallelizeWithThreshold(k, dimensionParallelThreshold, func(start, end int) {
		for d := start; d < end; d++ {
			candidates[d] = searchDimension(features, weights, labels, numClasses, d)
		}
	})

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}

	if best.leftLabel == best.rightLabel {
		// No boundary improved on the majority-class baseline; the stump
		// predicts one class everywhere.
		samerrors.Warn(samerrors.NewDegenerateSplitWarning(best.dimension, best.threshold))
	}

	totalError := 1 - best.score
	e := samerrors.ClampUnitOpen(totalError)
	confidence := math.Log10((1-e)/e) + math.Log10(float64(numClasses-1))

	return &DecisionStump{
		dimension:  best.dimension,
		threshold:  best.threshold,
		leftLabel:  best.leftLabel,
		rightLabel: best.rightLabel,
		totalError: totalError,
		confidence: confidence,
		nFeatures:  len(features[0]),
	}
}

// searchDimension scores every distinct value boundary along dimension d and
// returns the first boundary achieving the dimension's maximum score.
func searchDimension(features [][]float64, weights []float64, labels []int, numClasses, d int) splitCandidate {
	n := len(features)

	type valueIndex struct {
		index int
		value float64
	}
	pairs := make([]valueIndex, n)
	for i := 0; i < n; i++ {
		pairs[i] = valueIndex{index: i, value: features[i][d]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

	// Seed the split at the smallest observed value: every sample equal to it
	// goes left, the rest go right.
	leftSums := make([]float64, numClasses)
	rightSums := make([]float64, numClasses)
	for _, p := range pairs {
		if p.value == pairs[0].value {
			leftSums[labels[p.index]] += weights[p.index]
		} else {
			rightSums[labels[p.index]] += weights[p.index]
		}
	}

	leftLabel, leftWeight, rightLabel, rightWeight := weightedMajorities(leftSums, rightSums)
	best := splitCandidate{
		dimension:  d,
		threshold:  pairs[0].value,
		leftLabel:  leftLabel,
		rightLabel: rightLabel,
		score:      leftWeight + rightWeight,
	}

	// Advance the boundary through the remaining distinct values. Samples
	// sharing a value always change sides together, so the sums only update
	// when the value changes.
	idx := 1
	for idx < n {
		if pairs[idx].value == pairs[idx-1].value {
			idx++
			continue
		}
		anchor := idx
		for idx < n && pairs[idx].value == pairs[anchor].value {
			leftSums[labels[pairs[idx].index]] += weights[pairs[idx].index]
			rightSums[labels[pairs[idx].index]] -= weights[pairs[idx].index]
			idx++
		}

		leftLabel, leftWeight, rightLabel, rightWeight = weightedMajorities(leftSums, rightSums)
		if score := leftWeight + rightWeight; score > best.score {
			best = splitCandidate{
				dimension:  d,
				threshold:  pairs[anchor].value,
				leftLabel:  leftLabel,
				rightLabel: rightLabel,
				score:      score,
			}
		}
	}

	return best
}

// weightedMajorities picks the heaviest class on each side of a boundary. A
// split that assigns the same label to both sides is degenerate, so when the
// right argmax equals the left one the right side takes its second-largest
// class instead.
func weightedMajorities(left, right []float64) (leftLabel int, leftWeight float64, rightLabel int, rightWeight float64) {
	for c, w := range left {
		if w > leftWeight {
			leftLabel, leftWeight = c, w
		}
	}

	bestLabel, secondLabel := 0, 0
	bestWeight, secondWeight := 0.0, 0.0
	for c, w := range right {
		if w > bestWeight {
			secondLabel, secondWeight = bestLabel, bestWeight
			bestLabel, bestWeight = c, w
		} else if w > secondWeight {
			secondLabel, secondWeight = c, w
		}
	}

	rightLabel, rightWeight = bestLabel, bestWeight
	if bestLabel == leftLabel {
		rightLabel, rightWeight = secondLabel, secondWeight
	}
	return leftLabel, leftWeight, rightLabel, rightWeight
}

// Predict returns the stump's label for the sample: leftLabel when the value
// along the split dimension is <= the threshold, rightLabel otherwise. O(1).
func (s *DecisionStump) Predict(sample []float64) (int, error) {
	if sample == nil {
		return 0, samerrors.NewValueError("DecisionStump.Predict", "sample must not be nil")
	}
	if len(sample) != s.nFeatures {
		return 0, samerrors.NewDimensionError("DecisionStump.Predict", s.nFeatures, len(sample), 1)
	}
	return s.decide(sample), nil
}

// decide is the unvalidated hot path used by the boosting loop.
func (s *DecisionStump) decide(sample []float64) int {
	if sample[s.dimension] <= s.threshold {
		return s.leftLabel
	}
	return s.rightLabel
}

// Dimension returns the feature index the stump splits on.
func (s *DecisionStump) Dimension() int { return s.dimension }

// Threshold returns the split value; it is always an observed feature value.
func (s *DecisionStump) Threshold() float64 { return s.threshold }

// LeftLabel returns the label predicted for samples at or below the threshold.
func (s *DecisionStump) LeftLabel() int { return s.leftLabel }

// RightLabel returns the label predicted for samples above the threshold.
func (s *DecisionStump) RightLabel() int { return s.rightLabel }

// TotalError returns 1 minus the split's weighted-majority mass, i.e. the
// weighted error of the stump under the training weighting.
func (s *DecisionStump) TotalError() float64 { return s.totalError }

// Confidence returns the stump's vote weight. It is negative when the stump is
// worse than chance.
func (s *DecisionStump) Confidence() float64 { return s.confidence }
