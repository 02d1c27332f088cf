// Package log defines standard attribute keys for pipeline operations.
//
// Using these keys consistently across the trainer and the prediction path
// keeps the JSON logs filterable by model, operation and data shape.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model or transformer.
	// Examples: "LinearRegression", "StandardScaler", "Preprocessor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "evaluate", "save", "load"
	OperationKey = "ml.operation"
)

// Data shape.
const (
	// SamplesKey indicates the number of rows being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"
)

// Evaluation metrics.
const (
	// MSEKey records the mean squared error of an evaluation run.
	MSEKey = "metrics.mse"

	// RMSEKey records the root mean squared error of an evaluation run.
	RMSEKey = "metrics.rmse"

	// R2Key records the coefficient of determination of an evaluation run.
	R2Key = "metrics.r2"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
