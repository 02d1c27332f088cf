package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/core/model"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// RegressionParams は永続化用のスナップショット
type RegressionParams struct {
	Coefficients []float64
	Intercept    float64
	NFeatures    int
}

// Params は学習済みパラメータをスナップショットとして返す
func (lr *LinearRegression) Params() (RegressionParams, error) {
	if !lr.IsFitted() {
		return RegressionParams{}, errors.NewNotFittedError("LinearRegression", "Params")
	}
	return RegressionParams{
		Coefficients: lr.GetWeights(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
	}, nil
}

// NewLinearRegressionFromParams はスナップショットから学習済みモデルを復元する。
// 係数の本数が特徴量の数と一致しない場合はCorruptModelErrorを返す。
func NewLinearRegressionFromParams(p RegressionParams) (*LinearRegression, error) {
	if p.NFeatures <= 0 || len(p.Coefficients) != p.NFeatures {
		return nil, errors.NewCorruptModelError("", "coefficient count does not match feature count", nil)
	}
	if err := errors.CheckNumericalStability("LinearRegression.Load", p.Coefficients); err != nil {
		return nil, errors.NewCorruptModelError("", "coefficients contain non-finite values", err)
	}
	if err := errors.CheckScalar("LinearRegression.Load", p.Intercept); err != nil {
		return nil, errors.NewCorruptModelError("", "intercept is not finite", err)
	}

	lr := &LinearRegression{
		Weights:   mat.NewVecDense(p.NFeatures, append([]float64(nil), p.Coefficients...)),
		Intercept: p.Intercept,
		NFeatures: p.NFeatures,
	}
	lr.SetFitted()
	return lr, nil
}

// Save は学習済みモデルをファイルに保存する
func (lr *LinearRegression) Save(path string) error {
	params, err := lr.Params()
	if err != nil {
		return err
	}
	return model.SaveSnapshot(&params, path)
}

// Load はファイルからモデルの状態を読み込み、自身を学習済み状態にする。
// ファイルが読み取れない、または期待される形状と一致しない場合は
// CorruptModelErrorを返す。
func (lr *LinearRegression) Load(path string) error {
	var params RegressionParams
	if err := model.LoadSnapshot(&params, path); err != nil {
		return err
	}

	restored, err := NewLinearRegressionFromParams(params)
	if err != nil {
		return err
	}

	lr.Weights = restored.Weights
	lr.Intercept = restored.Intercept
	lr.NFeatures = restored.NFeatures
	lr.SetFitted()
	return nil
}

// Load はファイルから学習済みモデルを読み込む
func Load(path string) (*LinearRegression, error) {
	lr := NewLinearRegression()
	if err := lr.Load(path); err != nil {
		return nil, err
	}
	return lr, nil
}
