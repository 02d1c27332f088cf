// Package model provides the shared estimator base and persistence helpers
// used by the preprocessing and regression packages.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is the interface for models that learn from training data.
type Fitter interface {
	// Fit trains the model on the given features and target.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict applies the model to the given features.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer is the interface for data transformations with learned state.
type Transformer interface {
	// Fit learns the transformation parameters from data.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits the parameters and transforms the same data.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Persistable is the interface for models that can be saved and loaded.
type Persistable interface {
	// Save saves the model to a file.
	Save(path string) error

	// Load loads the model from a file.
	Load(path string) error
}
