// Package metrics provides classification evaluation metrics for samboost.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	samerrors "github.com/HernanLe100/samboost/pkg/errors"
)

// ClassificationError calculates the fraction of misclassified samples.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The error rate (between 0 and 1)
//   - An error if inputs are invalid
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil {
		return 0, samerrors.NewValueError(
			"ClassificationError",
			"input vectors cannot be nil",
		)
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, samerrors.NewValueError(
			"ClassificationError",
			"input vectors cannot be empty",
		)
	}

	if n != yPred.Len() {
		return 0, samerrors.NewDimensionError(
			"ClassificationError",
			n,
			yPred.Len(),
			0,
		)
	}

	misclassified := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			misclassified++
		}
	}

	return float64(misclassified) / float64(n), nil
}

// Accuracy calculates the classification accuracy, the fraction of correct
// predictions.
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//
// Returns:
//   - The accuracy (between 0 and 1)
//   - An error if inputs are invalid
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	errorRate, err := ClassificationError(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1.0 - errorRate, nil
}

// ConfusionMatrix calculates the numClasses x numClasses confusion matrix.
// Entry (i, j) counts samples of true class i predicted as class j. Labels
// must be integers in [0, numClasses).
//
// Parameters:
//   - yTrue: Ground truth labels
//   - yPred: Predicted labels
//   - numClasses: Number of classes
//
// Returns:
//   - The confusion matrix
//   - An error if inputs are invalid
func ConfusionMatrix(yTrue, yPred *mat.VecDense, numClasses int) (*mat.Dense, error) {
	const op = "ConfusionMatrix"

	if yTrue == nil || yPred == nil {
		return nil, samerrors.NewValueError(op, "input vectors cannot be nil")
	}

	n := yTrue.Len()
	if n == 0 {
		return nil, samerrors.NewValueError(op, "input vectors cannot be empty")
	}

	if n != yPred.Len() {
		return nil, samerrors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	if numClasses < 2 {
		return nil, samerrors.NewValidationError("numClasses", "must be at least 2", numClasses)
	}

	cm := mat.NewDense(numClasses, numClasses, nil)
	for i := 0; i < n; i++ {
		t := int(yTrue.AtVec(i))
		p := int(yPred.AtVec(i))
		if t < 0 || t >= numClasses {
			return nil, samerrors.NewValidationError("yTrue",
				"label out of range", yTrue.AtVec(i))
		}
		if p < 0 || p >= numClasses {
			return nil, samerrors.NewValidationError("yPred",
				"label out of range", yPred.AtVec(i))
		}
		cm.Set(t, p, cm.At(t, p)+1)
	}
	return cm, nil
}
