package log

// Standard attribute keys for boosting operations. Keys follow a hierarchical
// naming convention ("model.name", "data.samples") so structured logs can be
// filtered per component.

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "AdaBoostClassifier".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score".
	OperationKey = "ml.operation"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey is the number of target classes.
	ClassesKey = "data.classes"
)

// Training progress.
const (
	// RoundKey is the current boosting round (0-based).
	RoundKey = "training.round"

	// StumpErrorKey is the weighted error of the round's stump.
	StumpErrorKey = "training.stump_error"

	// ConfidenceKey is the stump's vote weight in the ensemble.
	ConfidenceKey = "training.confidence"

	// EstimatorsKey is the number of weak learners trained so far.
	EstimatorsKey = "training.estimators"
)

// Performance and error context.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// StacktraceKey carries stack trace information extracted from errors.
	StacktraceKey = "error.stacktrace"
)

// Standard operation values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
)
