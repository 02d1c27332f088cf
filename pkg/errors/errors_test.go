package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}

	msg := err.Error()
	if !strings.Contains(msg, "LinearRegression") || !strings.Contains(msg, "Predict") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestDimensionError(t *testing.T) {
	tests := []struct {
		name     string
		expected int
		got      int
		axis     int
		want     string
	}{
		{
			name:     "feature axis",
			expected: 3,
			got:      2,
			axis:     1,
			want:     "features",
		},
		{
			name:     "row axis",
			expected: 10,
			got:      8,
			axis:     0,
			want:     "rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("Predict", tt.expected, tt.got, tt.axis)

			var de *DimensionError
			if !As(err, &de) {
				t.Fatalf("expected DimensionError, got %T", err)
			}
			if de.Expected != tt.expected || de.Got != tt.got {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.expected, tt.got, de.Expected, de.Got)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected message to mention %q, got %s", tt.want, err.Error())
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("GrLivArea", "column not found in input table", nil)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.ParamName != "GrLivArea" {
		t.Errorf("expected param 'GrLivArea', got %q", ve.ParamName)
	}
}

func TestCorruptModelError(t *testing.T) {
	inner := New("unexpected EOF")
	err := NewCorruptModelError("models/model.gob", "truncated gob stream", inner)

	var ce *CorruptModelError
	if !As(err, &ce) {
		t.Fatalf("expected CorruptModelError, got %T", err)
	}
	if !Is(err, inner) {
		t.Error("expected wrapped error to be reachable via Is")
	}
	if !strings.Contains(err.Error(), "models/model.gob") {
		t.Errorf("expected path in message, got %s", err.Error())
	}
}

func TestModelErrorUnwrap(t *testing.T) {
	err := NewModelError("LinearRegression.Fit", "singular matrix", ErrSingularMatrix)

	if !Is(err, ErrSingularMatrix) {
		t.Error("expected ErrSingularMatrix to be reachable via Is")
	}
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) {
		captured = w
	})
	defer SetWarningHandler(func(w error) {})

	warning := NewUndefinedMetricWarning("R2", "zero variance in target", 0)
	Warn(warning)

	if captured == nil {
		t.Fatal("expected warning to be captured")
	}
	if !strings.Contains(captured.Error(), "R2") {
		t.Errorf("unexpected warning message: %s", captured.Error())
	}
}

func TestRankDeficiencyWarning(t *testing.T) {
	w := NewRankDeficiencyWarning("LinearRegression.Fit", 2, 4)

	msg := w.Error()
	if !strings.Contains(msg, "rank 2 of 4") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{
			name:    "stable values",
			values:  []float64{1.0, -2.5, 1e300},
			wantErr: false,
		},
		{
			name:    "contains NaN",
			values:  []float64{1.0, math.NaN(), 3.0},
			wantErr: true,
		},
		{
			name:    "contains Inf",
			values:  []float64{1.0, math.Inf(1), 3.0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumericalStability("test", tt.values)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNumericalStability() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
