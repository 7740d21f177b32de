package ensemble

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/HernanLe100/samboost/core/model"
	"github.com/HernanLe100/samboost/metrics"
	samerrors "github.com/HernanLe100/samboost/pkg/errors"
	"github.com/HernanLe100/samboost/pkg/log"
)

var globalProvider log.LoggerProvider

// AdaBoostClassifier is a multiclass AdaBoost (SAMME) ensemble of decision
// stumps with a scikit-learn compatible surface. Class labels in y may be any
// integers; they are mapped to contiguous indices internally and mapped back
// on prediction.
type AdaBoostClassifier struct {
	state  *model.StateManager
	logger log.Logger

	// Hyperparameters
	nEstimators int // Number of boosting rounds run by Fit

	// Learned state
	booster             *Booster
	classes_            []int     // Sorted unique labels from y
	nClasses_           int       // Number of classes
	nFeatures_          int       // Number of features
	featureImportances_ []float64 // Confidence mass per split dimension, normalized
	estimatorErrors_    []float64 // Weighted error per boosting round
}

// AdaBoostOption is a functional option for AdaBoostClassifier.
type AdaBoostOption func(*AdaBoostClassifier)

// NewAdaBoostClassifier creates a new AdaBoost classifier.
func NewAdaBoostClassifier(opts ...AdaBoostOption) *AdaBoostClassifier {
	ab := &AdaBoostClassifier{
		state:       model.NewStateManager(),
		nEstimators: 50,
	}

	for _, opt := range opts {
		opt(ab)
	}

	if ab.logger == nil {
		if globalProvider == nil {
			globalProvider = log.NewZerologProvider(log.ToLogLevel("info"))
		}
		ab.logger = globalProvider.GetLoggerWithName("AdaBoostClassifier")
	}

	return ab
}

// WithNEstimators sets the number of boosting rounds run by Fit.
func WithNEstimators(n int) AdaBoostOption {
	return func(ab *AdaBoostClassifier) {
		ab.nEstimators = n
	}
}

// WithAdaBoostLogger sets the logger, replacing the zerolog default.
func WithAdaBoostLogger(logger log.Logger) AdaBoostOption {
	return func(ab *AdaBoostClassifier) {
		ab.logger = logger
	}
}

// Fit trains the ensemble: nEstimators sequential boosting rounds over the
// training set. y must be a column vector of integer class labels.
func (ab *AdaBoostClassifier) Fit(X, y mat.Matrix) error {
	const op = "AdaBoostClassifier.Fit"
	start := time.Now()

	if X == nil || y == nil {
		return samerrors.NewValueError(op, "X and y must not be nil")
	}

	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	if yCols != 1 {
		return samerrors.NewDimensionError(op, 1, yCols, 1)
	}
	if yRows != nSamples {
		return samerrors.NewDimensionError(op, nSamples, yRows, 0)
	}
	if nSamples == 0 {
		return samerrors.Wrap(samerrors.ErrEmptyData, op)
	}

	ab.state.Reset()

	// Map arbitrary integer labels to contiguous class indices.
	ab.extractClasses(y)
	if ab.nClasses_ < 2 {
		return samerrors.NewValidationError("y",
			"need at least 2 distinct classes", ab.nClasses_)
	}
	classIndex := make(map[int]int, ab.nClasses_)
	for idx, class := range ab.classes_ {
		classIndex[class] = idx
	}

	features := make([][]float64, nSamples)
	labels := make([]int, nSamples)
	for i := 0; i < nSamples; i++ {
		row := make([]float64, nFeatures)
		for j := 0; j < nFeatures; j++ {
			row[j] = X.At(i, j)
		}
		if err := samerrors.CheckNumericalStability(op, row, i); err != nil {
			return err
		}
		features[i] = row
		labels[i] = classIndex[int(y.At(i, 0))]
	}

	booster, err := NewBooster(features, labels, ab.nClasses_)
	if err != nil {
		return err
	}

	ab.nFeatures_ = nFeatures
	ab.featureImportances_ = make([]float64, nFeatures)
	ab.estimatorErrors_ = make([]float64, 0, ab.nEstimators)

	chanceError := float64(ab.nClasses_-1) / float64(ab.nClasses_)
	for round := 0; round < ab.nEstimators; round++ {
		booster.Iterate()
		stump := booster.stumps[len(booster.stumps)-1]

		if err := samerrors.CheckScalar(op, stump.Confidence(), round); err != nil {
			return err
		}

		ab.estimatorErrors_ = append(ab.estimatorErrors_, stump.TotalError())
		ab.featureImportances_[stump.Dimension()] += stump.Confidence()

		if stump.TotalError() > chanceError {
			samerrors.Warn(samerrors.NewWorseThanChanceWarning(round, stump.TotalError(), ab.nClasses_))
		}

		ab.logger.Debug("boosting round complete",
			log.RoundKey, round,
			log.StumpErrorKey, stump.TotalError(),
			log.ConfidenceKey, stump.Confidence(),
		)
	}

	ab.normalizeFeatureImportances()

	ab.booster = booster
	ab.state.SetDimensions(nFeatures, nSamples)
	ab.state.SetFitted()

	ab.logger.Info("fit complete",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.ClassesKey, ab.nClasses_,
		log.EstimatorsKey, booster.NumStumps(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// extractClasses collects the sorted unique integer labels from y.
func (ab *AdaBoostClassifier) extractClasses(y mat.Matrix) {
	rows, _ := y.Dims()
	classMap := make(map[int]bool)
	for i := 0; i < rows; i++ {
		classMap[int(y.At(i, 0))] = true
	}

	ab.classes_ = make([]int, 0, len(classMap))
	for class := range classMap {
		ab.classes_ = append(ab.classes_, class)
	}
	sort.Ints(ab.classes_)
	ab.nClasses_ = len(ab.classes_)
}

// normalizeFeatureImportances rescales importances to sum to 1. When the total
// confidence mass is zero or negative the importances are left untouched; a
// run of worse-than-chance rounds carries no usable attribution.
func (ab *AdaBoostClassifier) normalizeFeatureImportances() {
	var sum float64
	for _, imp := range ab.featureImportances_ {
		sum += imp
	}
	if sum <= 0 {
		return
	}
	for i := range ab.featureImportances_ {
		ab.featureImportances_[i] = samerrors.SafeDivide(ab.featureImportances_[i], sum)
	}
}

// Predict returns the predicted class label for each row of X as a column
// vector, using the weighted vote of all trained stumps.
func (ab *AdaBoostClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	const op = "Predict"

	if err := ab.state.RequireFitted("AdaBoostClassifier", op); err != nil {
		return nil, err
	}
	if X == nil {
		return nil, samerrors.NewValueError(op, "X must not be nil")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != ab.nFeatures_ {
		return nil, samerrors.NewDimensionError(op, ab.nFeatures_, nFeatures, 1)
	}

	predictions := mat.NewDense(nSamples, 1, nil)
	row := make([]float64, nFeatures)
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			row[j] = X.At(i, j)
		}
		idx, err := ab.booster.Predict(row)
		if err != nil {
			return nil, err
		}
		predictions.Set(i, 0, float64(ab.classes_[idx]))
	}

	ab.logger.Debug("predictions computed",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, nSamples,
	)
	return predictions, nil
}

// DecisionFunction returns the per-class accumulated confidence for each row
// of X, an nSamples x nClasses matrix. Predict is the row-wise argmax, mapped
// back to the original class labels.
func (ab *AdaBoostClassifier) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	const op = "DecisionFunction"

	if err := ab.state.RequireFitted("AdaBoostClassifier", op); err != nil {
		return nil, err
	}
	if X == nil {
		return nil, samerrors.NewValueError(op, "X must not be nil")
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != ab.nFeatures_ {
		return nil, samerrors.NewDimensionError(op, ab.nFeatures_, nFeatures, 1)
	}

	scores := mat.NewDense(nSamples, ab.nClasses_, nil)
	row := make([]float64, nFeatures)
	for i := 0; i < nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			row[j] = X.At(i, j)
		}
		scores.SetRow(i, ab.booster.confidenceSums(row))
	}
	return scores, nil
}

// Score returns the mean accuracy of Predict(X) against y. Returns 0 when the
// model is not fitted or the inputs are invalid.
func (ab *AdaBoostClassifier) Score(X, y mat.Matrix) float64 {
	predictions, err := ab.Predict(X)
	if err != nil {
		return 0
	}

	nSamples, _ := X.Dims()
	yTrue := mat.NewVecDense(nSamples, nil)
	yPred := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		yTrue.SetVec(i, y.At(i, 0))
		yPred.SetVec(i, predictions.At(i, 0))
	}

	accuracy, err := metrics.Accuracy(yTrue, yPred)
	if err != nil {
		return 0
	}

	ab.logger.Debug("score computed",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, nSamples,
		log.AccuracyKey, accuracy,
	)
	return accuracy
}

// NEstimators returns the configured number of boosting rounds.
func (ab *AdaBoostClassifier) NEstimators() int { return ab.nEstimators }

// Classes returns the sorted class labels seen during Fit.
func (ab *AdaBoostClassifier) Classes() []int {
	out := make([]int, len(ab.classes_))
	copy(out, ab.classes_)
	return out
}

// FeatureImportances returns per-dimension importance scores: the share of
// total stump confidence mass attributed to splits on each dimension.
func (ab *AdaBoostClassifier) FeatureImportances() []float64 {
	if ab.featureImportances_ == nil {
		return nil
	}
	out := make([]float64, len(ab.featureImportances_))
	copy(out, ab.featureImportances_)
	return out
}

// EstimatorErrors returns the weighted error of each boosting round in
// training order.
func (ab *AdaBoostClassifier) EstimatorErrors() []float64 {
	out := make([]float64, len(ab.estimatorErrors_))
	copy(out, ab.estimatorErrors_)
	return out
}

// EstimatorWeights returns the confidence (vote weight) of each trained stump
// in training order.
func (ab *AdaBoostClassifier) EstimatorWeights() []float64 {
	if ab.booster == nil {
		return nil
	}
	stumps := ab.booster.Stumps()
	out := make([]float64, len(stumps))
	for i, s := range stumps {
		out[i] = s.Confidence()
	}
	return out
}

// Booster returns the underlying boosting state, for callers that drive
// rounds manually or inspect weights and stumps. It shares state with the
// classifier; mutate it only instead of, not alongside, Fit.
func (ab *AdaBoostClassifier) Booster() *Booster { return ab.booster }

// GetParams returns the model hyperparameters.
func (ab *AdaBoostClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators": ab.nEstimators,
	}
}

// SetParams sets the model hyperparameters.
func (ab *AdaBoostClassifier) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "n_estimators":
			n, ok := value.(int)
			if !ok {
				return samerrors.NewValidationError(key, "must be an int", value)
			}
			ab.nEstimators = n
		default:
			return samerrors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}
