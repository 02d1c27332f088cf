package linear

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

func TestLinearRegressionFit(t *testing.T) {
	tests := []struct {
		name          string
		X             *mat.Dense
		y             *mat.VecDense
		wantWeights   []float64
		wantIntercept float64
		tolerance     float64
	}{
		{
			name: "simple line y = 2x + 1",
			X: mat.NewDense(4, 1, []float64{
				1,
				2,
				3,
				4,
			}),
			y:             mat.NewVecDense(4, []float64{3, 5, 7, 9}),
			wantWeights:   []float64{2},
			wantIntercept: 1,
			tolerance:     1e-9,
		},
		{
			name: "two features y = x1 + 2*x2 + 3",
			X: mat.NewDense(5, 2, []float64{
				1, 1,
				2, 1,
				3, 2,
				4, 3,
				5, 5,
			}),
			y:             mat.NewVecDense(5, []float64{6, 7, 10, 13, 18}),
			wantWeights:   []float64{1, 2},
			wantIntercept: 3,
			tolerance:     1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLinearRegression()
			if err := lr.Fit(tt.X, tt.y); err != nil {
				t.Fatalf("Fit failed: %v", err)
			}

			if !lr.IsFitted() {
				t.Error("model should be fitted after Fit")
			}

			weights := lr.GetWeights()
			if len(weights) != len(tt.wantWeights) {
				t.Fatalf("got %d weights, expected %d", len(weights), len(tt.wantWeights))
			}
			for i, w := range weights {
				if math.Abs(w-tt.wantWeights[i]) > tt.tolerance {
					t.Errorf("weight[%d] = %v, expected %v", i, w, tt.wantWeights[i])
				}
			}

			if math.Abs(lr.GetIntercept()-tt.wantIntercept) > tt.tolerance {
				t.Errorf("intercept = %v, expected %v", lr.GetIntercept(), tt.wantIntercept)
			}
		})
	}
}

func TestLinearRegressionFitErrors(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		lr := NewLinearRegression()
		X := mat.NewDense(1, 1, []float64{1})
		X.Reset()
		y := mat.NewVecDense(1, []float64{1})

		if err := lr.Fit(X, y); err == nil {
			t.Error("expected error for empty data")
		}
	})

	t.Run("row count mismatch", func(t *testing.T) {
		lr := NewLinearRegression()
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewVecDense(2, []float64{1, 2})

		err := lr.Fit(X, y)
		if err == nil {
			t.Fatal("expected error for row count mismatch")
		}

		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("expected DimensionError, got %T", err)
		}
	})
}

func TestLinearRegressionPredict(t *testing.T) {
	lr := NewLinearRegression()
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{5, 10}))
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	expected := []float64{11, 21}
	for i, want := range expected {
		if got := pred.At(i, 0); math.Abs(got-want) > 1e-9 {
			t.Errorf("prediction[%d] = %v, expected %v", i, got, want)
		}
	}
}

func TestLinearRegressionPredictErrors(t *testing.T) {
	t.Run("not fitted", func(t *testing.T) {
		lr := NewLinearRegression()
		_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))
		if err == nil {
			t.Fatal("expected error for unfitted model")
		}

		var notFitted *errors.NotFittedError
		if !errors.As(err, &notFitted) {
			t.Errorf("expected NotFittedError, got %T", err)
		}
	})

	t.Run("feature count mismatch", func(t *testing.T) {
		lr := NewLinearRegression()
		X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
		y := mat.NewVecDense(3, []float64{1, 2, 3})
		if err := lr.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}

		_, err := lr.Predict(mat.NewDense(1, 3, []float64{1, 2, 3}))
		if err == nil {
			t.Fatal("expected error for feature count mismatch")
		}

		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("expected DimensionError, got %T", err)
		}
	})
}

func TestLinearRegressionRankDeficient(t *testing.T) {
	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(func(w error) {})

	// Second column duplicates the first, so the design matrix is rank
	// deficient and the QR path cannot produce a finite solution.
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	foundWarning := false
	for _, w := range captured {
		var rankWarn *errors.RankDeficiencyWarning
		if errors.As(w, &rankWarn) {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Error("expected RankDeficiencyWarning for duplicated column")
	}

	// The minimum norm solution still reproduces the training targets.
	pred, err := lr.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i := 0; i < 4; i++ {
		if math.Abs(pred.At(i, 0)-y.AtVec(i)) > 1e-6 {
			t.Errorf("prediction[%d] = %v, expected %v", i, pred.At(i, 0), y.AtVec(i))
		}
	}
}

func TestLinearRegressionScore(t *testing.T) {
	lr := NewLinearRegression()
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})

	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if math.Abs(score-1) > 1e-9 {
		t.Errorf("Score = %v, expected 1 for exactly linear data", score)
	}
}

func TestLinearRegressionEvaluate(t *testing.T) {
	lr := NewLinearRegression()
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3.1, 4.9, 7.2, 8.8})

	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	report, err := lr.Evaluate(X, y)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.MSE < 0 {
		t.Errorf("MSE = %v, expected non-negative", report.MSE)
	}
	if math.Abs(report.RMSE-math.Sqrt(report.MSE)) > 1e-12 {
		t.Errorf("RMSE = %v inconsistent with MSE = %v", report.RMSE, report.MSE)
	}
	if report.R2 <= 0.9 {
		t.Errorf("R2 = %v, expected above 0.9 for near linear data", report.R2)
	}
}

func TestLinearRegressionEvaluateSinglePoint(t *testing.T) {
	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(func(w error) {})

	lr := NewLinearRegression()
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{3, 5, 7, 9})
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// Evaluating one training row of an exactly fit model. The target has
	// no variance, so R2 is reported as 0 with a warning instead of NaN.
	report, err := lr.Evaluate(mat.NewDense(1, 1, []float64{2}), mat.NewVecDense(1, []float64{5}))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if report.MSE > 1e-9 {
		t.Errorf("MSE = %v, expected near zero", report.MSE)
	}
	if report.R2 != 0 {
		t.Errorf("R2 = %v, expected 0 for a single point", report.R2)
	}
	if len(captured) == 0 {
		t.Error("expected UndefinedMetricWarning for zero variance target")
	}
}

func TestLinearRegressionSaveLoad(t *testing.T) {
	lr := NewLinearRegression()
	X := mat.NewDense(5, 2, []float64{
		1, 1,
		2, 1,
		3, 2,
		4, 3,
		5, 5,
	})
	y := mat.NewVecDense(5, []float64{6, 7, 10, 13, 18})

	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.bin")
	if err := lr.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !loaded.IsFitted() {
		t.Error("loaded model should be fitted")
	}

	XNew := mat.NewDense(2, 2, []float64{6, 6, 7, 8})

	origPred, err := lr.Predict(XNew)
	if err != nil {
		t.Fatalf("Predict on original failed: %v", err)
	}
	loadedPred, err := loaded.Predict(XNew)
	if err != nil {
		t.Fatalf("Predict on loaded failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if math.Abs(origPred.At(i, 0)-loadedPred.At(i, 0)) > 1e-9 {
			t.Errorf("prediction[%d]: original %v, loaded %v", i, origPred.At(i, 0), loadedPred.At(i, 0))
		}
	}
}

func TestLinearRegressionLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}

	var corrupt *errors.CorruptModelError
	if !errors.As(err, &corrupt) {
		t.Errorf("expected CorruptModelError, got %T", err)
	}
}

func TestNewLinearRegressionFromParamsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params RegressionParams
	}{
		{
			name: "feature count mismatch",
			params: RegressionParams{
				Coefficients: []float64{1, 2},
				Intercept:    0,
				NFeatures:    3,
			},
		},
		{
			name: "non finite coefficient",
			params: RegressionParams{
				Coefficients: []float64{math.NaN()},
				Intercept:    0,
				NFeatures:    1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLinearRegressionFromParams(tt.params)
			if err == nil {
				t.Fatal("expected error for invalid params")
			}

			var corrupt *errors.CorruptModelError
			if !errors.As(err, &corrupt) {
				t.Errorf("expected CorruptModelError, got %T", err)
			}
		})
	}
}
