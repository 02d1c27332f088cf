// Package linear は住宅価格予測のための最小二乗線形回帰モデルを提供する。
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/core/model"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/metrics"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// LinearRegression は線形回帰モデル。
//
// 学習はQR分解による最小二乗法で行う。計画行列がランク落ちしている場合は
// 特異値分解による疑似逆行列にフォールバックし、警告を発した上で最小ノルム
// 解を採用する。
//
// Fitは複数ゴルーチンからの同時呼び出しに対して安全ではない。
// 学習済みパラメータは再学習または読み込みによってのみ変更される。
type LinearRegression struct {
	model.BaseEstimator
	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片
	NFeatures int           // 特徴量の数
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit はモデルを訓練データで学習させる
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}

	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}

	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// 切片項のために X に 1 の列を追加
	// X_with_intercept = [1, X]
	XWithIntercept := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		XWithIntercept.Set(i, 0, 1.0) // 切片項
		for j := 0; j < c; j++ {
			XWithIntercept.Set(i, j+1, X.At(i, j))
		}
	}

	yDense := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		yDense.Set(i, 0, y.At(i, 0))
	}

	weights, err := solveLeastSquares(XWithIntercept, yDense)
	if err != nil {
		return err
	}

	// 数値的に不安定な解は受け付けない
	if err := errors.CheckNumericalStability("LinearRegression.Fit", weights); err != nil {
		return err
	}

	// 切片と重みを分離
	lr.Intercept = weights[0]
	lr.Weights = mat.NewVecDense(c, weights[1:])

	lr.SetFitted()

	return nil
}

// solveLeastSquares は min ||Xw - y||² を解く。
// まずQR分解を試し、行数不足・ランク落ち・条件数の悪化で解けない場合は
// SVDによる疑似逆行列で最小ノルム解を計算する。
func solveLeastSquares(X, y *mat.Dense) ([]float64, error) {
	r, c := X.Dims()

	if r >= c {
		var qr mat.QR
		qr.Factorize(X)

		var sol mat.Dense
		if err := qr.SolveTo(&sol, false, y); err == nil {
			weights := make([]float64, c)
			stable := true
			for i := 0; i < c; i++ {
				weights[i] = sol.At(i, 0)
				if math.IsNaN(weights[i]) || math.IsInf(weights[i], 0) {
					stable = false
					break
				}
			}
			if stable {
				return weights, nil
			}
		}
	}

	return solvePseudoInverse(X, y)
}

// solvePseudoInverse は w = V Σ⁺ Uᵀ y による疑似逆行列解を計算する。
// 小さな特異値はゼロとして扱い、有効ランクが列数を下回る場合は
// RankDeficiencyWarningを発する。
func solvePseudoInverse(X, y *mat.Dense) ([]float64, error) {
	r, c := X.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return nil, errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// 許容誤差: eps × max(次元) × 最大特異値
	eps := math.Pow(2, -52)
	maxDim := r
	if c > maxDim {
		maxDim = c
	}
	tol := eps * float64(maxDim) * s[0]

	// Σ⁺ Uᵀ y を計算
	k := len(s)
	uty := make([]float64, k)
	rank := 0
	for j := 0; j < k; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += u.At(i, j) * y.At(i, 0)
		}
		if s[j] > tol {
			uty[j] = sum / s[j]
			rank++
		} else {
			uty[j] = 0
		}
	}

	if rank == 0 {
		return nil, errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}
	if rank < c {
		errors.Warn(errors.NewRankDeficiencyWarning("LinearRegression.Fit", rank, c))
	}

	// w = V (Σ⁺ Uᵀ y)
	weights := make([]float64, c)
	for i := 0; i < c; i++ {
		var sum float64
		for j := 0; j < k; j++ {
			sum += v.At(i, j) * uty[j]
		}
		weights[i] = sum
	}

	return weights, nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	// 予測: y = X * weights + intercept
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}

	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	yVec, err := columnToVec(y)
	if err != nil {
		return 0, err
	}
	predVec, err := columnToVec(yPred)
	if err != nil {
		return 0, err
	}

	return metrics.R2Score(yVec, predVec)
}

// Evaluate はテストデータに対する評価指標（MSE、RMSE、R²）を計算する
func (lr *LinearRegression) Evaluate(X, y mat.Matrix) (metrics.RegressionReport, error) {
	if !lr.IsFitted() {
		return metrics.RegressionReport{}, errors.NewNotFittedError("LinearRegression", "Evaluate")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return metrics.RegressionReport{}, err
	}

	yVec, err := columnToVec(y)
	if err != nil {
		return metrics.RegressionReport{}, err
	}
	predVec, err := columnToVec(yPred)
	if err != nil {
		return metrics.RegressionReport{}, err
	}

	return metrics.Report(yVec, predVec)
}

// columnToVec はn×1行列をVecDenseに変換する
func columnToVec(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if c != 1 {
		return nil, errors.NewValueError("linear.columnToVec", "must be a column vector (n×1 matrix)")
	}
	vec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		vec.SetVec(i, m.At(i, 0))
	}
	return vec, nil
}
