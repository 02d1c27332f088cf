// Package bundle は学習済みモデルと前処理の状態をひとつのファイルにまとめて
// 永続化する。前処理の状態を欠いたモデルだけの保存では、読み込み後の予測が
// 学習時と同じ特徴量表現を再現できないため、必ず両方を束ねて保存する。
package bundle

import (
	"time"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/core/model"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/linear"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/metrics"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/preprocessing"
)

// Metadata は学習の記録情報
type Metadata struct {
	TrainedAt time.Time
	Features  []string
	Report    metrics.RegressionReport
}

// Bundle は学習済み回帰モデルと前処理の状態のスナップショット
type Bundle struct {
	Model        linear.RegressionParams
	Preprocessor preprocessing.PreprocessorParams
	Metadata     Metadata
}

// New は学習済みのモデルと前処理からバンドルを構築する。
// どちらかが未学習の場合はエラーを返す。
func New(lr *linear.LinearRegression, p *preprocessing.Preprocessor, meta Metadata) (*Bundle, error) {
	modelParams, err := lr.Params()
	if err != nil {
		return nil, err
	}

	prepParams, err := p.Params()
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Model:        modelParams,
		Preprocessor: prepParams,
		Metadata:     meta,
	}, nil
}

// Save はバンドルをファイルに保存する
func (b *Bundle) Save(path string) error {
	return model.SaveSnapshot(b, path)
}

// Load はファイルからバンドルを読み込む。
// 復元できない内容の場合はCorruptModelErrorを返す。
func Load(path string) (*Bundle, error) {
	var b Bundle
	if err := model.LoadSnapshot(&b, path); err != nil {
		return nil, err
	}
	return &b, nil
}

// Restore はバンドルから学習済み状態のモデルと前処理を復元する
func (b *Bundle) Restore() (*linear.LinearRegression, *preprocessing.Preprocessor, error) {
	lr, err := linear.NewLinearRegressionFromParams(b.Model)
	if err != nil {
		return nil, nil, err
	}

	p, err := preprocessing.NewPreprocessorFromParams(b.Preprocessor)
	if err != nil {
		return nil, nil, err
	}

	return lr, p, nil
}
