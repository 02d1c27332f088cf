package preprocessing

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/core/model"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/dataset"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// Preprocessor は宣言されたスキーマに従って生のテーブルを回帰用の数値行列へ
// 変換する。変換は3段階からなる:
//
//  1. 欠損セルをゼロで埋める
//  2. カテゴリ列を学習済みの整数コードに置き換える
//  3. 数値列を標準化する（エンコード済みコードは標準化しない）
//
// エンコーダーとスケーラーの状態はFitで一度だけ学習され、以後のTransformで
// 不変のまま再利用される。暗黙的な「最初の呼び出しで学習する」挙動はない。
//
// 状態を変更するメソッド（Fit、FitTransform）は複数ゴルーチンからの
// 同時呼び出しに対して安全ではない。
type Preprocessor struct {
	model.BaseEstimator

	// Schema は特徴量列の宣言（順序が出力行列の列順を定める）
	Schema dataset.Schema

	// Seed は訓練/テスト分割の乱数シード
	Seed int64

	// TestSize はホールドアウトに回す行の割合
	TestSize float64

	// Encoders はカテゴリ列ごとの学習済みエンコーダー
	Encoders map[string]*LabelEncoder

	// Scaler は数値列全体に対する学習済みスケーラー（数値列がない場合はnil）
	Scaler *StandardScaler
}

// NewPreprocessor は既定の分割設定（シード42、ホールドアウト20%）で
// Preprocessorを作成する
func NewPreprocessor(schema dataset.Schema) (*Preprocessor, error) {
	return NewPreprocessorWithSplit(schema, dataset.DefaultSeed, dataset.DefaultTestSize)
}

// NewPreprocessorWithSplit は分割設定を指定してPreprocessorを作成する
func NewPreprocessorWithSplit(schema dataset.Schema, seed int64, testSize float64) (*Preprocessor, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}
	return &Preprocessor{
		Schema:   schema,
		Seed:     seed,
		TestSize: testSize,
		Encoders: make(map[string]*LabelEncoder),
	}, nil
}

// numericNames はスキーマ順の数値列名を返す
func (p *Preprocessor) numericNames() []string {
	var names []string
	for _, spec := range p.Schema {
		if spec.Kind == dataset.KindNumeric {
			names = append(names, spec.Name)
		}
	}
	return names
}

// checkColumns はスキーマの全列がテーブルに存在し、型が一致することを検証する
func (p *Preprocessor) checkColumns(t *dataset.Table) error {
	for _, spec := range p.Schema {
		col, ok := t.Column(spec.Name)
		if !ok {
			return errors.NewValidationError(spec.Name, "column not found in input table", t.Names())
		}
		if col.Kind != spec.Kind {
			return errors.NewValidationError(spec.Name, "column kind does not match schema declaration", col.Kind.String())
		}
	}
	return nil
}

// numericMatrix は数値列をゼロ埋めした行列として取り出す
func (p *Preprocessor) numericMatrix(t *dataset.Table) *mat.Dense {
	names := p.numericNames()
	if len(names) == 0 {
		return nil
	}
	n := t.NumRows()
	m := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		col, _ := t.Column(name)
		for i := 0; i < n; i++ {
			if col.Missing[i] {
				// 欠損はゼロで埋める
				m.Set(i, j, 0)
				continue
			}
			m.Set(i, j, col.Nums[i])
		}
	}
	return m
}

// Fit は入力テーブルからエンコーダーとスケーラーの状態を学習する
func (p *Preprocessor) Fit(t *dataset.Table) error {
	if t.NumRows() == 0 {
		return errors.NewModelError("Preprocessor.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := p.checkColumns(t); err != nil {
		return err
	}

	p.Encoders = make(map[string]*LabelEncoder)
	for _, spec := range p.Schema {
		if spec.Kind != dataset.KindCategorical {
			continue
		}
		col, _ := t.Column(spec.Name)
		tokens := make([]string, len(col.Cats))
		for i, tok := range col.Cats {
			if col.Missing[i] {
				// 欠損トークンは対応表に含めない
				continue
			}
			tokens[i] = tok
		}
		enc := NewLabelEncoder()
		if err := enc.Fit(tokens); err != nil {
			return err
		}
		p.Encoders[spec.Name] = enc
	}

	if m := p.numericMatrix(t); m != nil {
		p.Scaler = NewStandardScaler()
		if err := p.Scaler.Fit(m); err != nil {
			return err
		}
	}

	p.SetFitted()
	return nil
}

// Transform は学習済みの状態で入力テーブルを数値行列に変換する。
// 出力の列順はスキーマの宣言順に一致する。学習済みの状態と入力が同じなら
// 結果は常に同一になる（状態は変更しない）。
func (p *Preprocessor) Transform(t *dataset.Table) (*mat.Dense, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("Preprocessor", "Transform")
	}
	if t.NumRows() == 0 {
		return nil, errors.NewModelError("Preprocessor.Transform", "empty data", errors.ErrEmptyData)
	}
	if err := p.checkColumns(t); err != nil {
		return nil, err
	}

	n := t.NumRows()
	result := mat.NewDense(n, len(p.Schema), nil)

	// 数値列はまとめて標準化する
	var scaled mat.Matrix
	if m := p.numericMatrix(t); m != nil {
		var err error
		scaled, err = p.Scaler.Transform(m)
		if err != nil {
			return nil, err
		}
	}

	numIdx := 0
	for j, spec := range p.Schema {
		switch spec.Kind {
		case dataset.KindNumeric:
			for i := 0; i < n; i++ {
				result.Set(i, j, scaled.At(i, numIdx))
			}
			numIdx++
		case dataset.KindCategorical:
			col, _ := t.Column(spec.Name)
			enc := p.Encoders[spec.Name]
			for i := 0; i < n; i++ {
				if col.Missing[i] {
					// 欠損はゼロで埋める
					result.Set(i, j, 0)
					continue
				}
				code, err := enc.Encode(col.Cats[i])
				if err != nil {
					return nil, errors.Wrapf(err, "column %q", spec.Name)
				}
				result.Set(i, j, float64(code))
			}
		}
	}

	return result, nil
}

// FitTransform は状態を学習し、同じテーブルを変換する
func (p *Preprocessor) FitTransform(t *dataset.Table) (*mat.Dense, error) {
	if err := p.Fit(t); err != nil {
		return nil, err
	}
	return p.Transform(t)
}

// PrepareData はターゲット列を分離し、特徴量を変換して、行を訓練用と
// ホールドアウト用に分割する。
//
// 分割はSeedで初期化した乱数順列によるため、同じ入力と同じシードに対して
// 常に同じ分割を返す。ホールドアウト行数は ceil(n × TestSize) で、最低1行は
// 訓練側に残す。
func (p *Preprocessor) PrepareData(t *dataset.Table, target string) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	col, ok := t.Column(target)
	if !ok {
		return nil, nil, nil, nil, errors.NewValidationError(target, "target column is absent", t.Names())
	}
	if col.Kind != dataset.KindNumeric {
		return nil, nil, nil, nil, errors.NewValidationError(target, "target column must be numeric", col.Kind.String())
	}
	for i, m := range col.Missing {
		if m {
			return nil, nil, nil, nil, errors.NewValueError("Preprocessor.PrepareData",
				fmt.Sprintf("target column %q has a missing value at row %d", target, i))
		}
	}

	X, err := p.Transform(t)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	n := t.NumRows()
	if n < 2 {
		return nil, nil, nil, nil, errors.NewValueError("Preprocessor.PrepareData", "need at least 2 rows to split")
	}

	nTest := int(math.Ceil(float64(n) * p.TestSize))
	if nTest >= n {
		nTest = n - 1
	}
	nTrain := n - nTest

	rng := rand.New(rand.NewSource(p.Seed))
	perm := rng.Perm(n)

	d := len(p.Schema)
	XTrain = mat.NewDense(nTrain, d, nil)
	XTest = mat.NewDense(nTest, d, nil)
	yTrain = mat.NewVecDense(nTrain, nil)
	yTest = mat.NewVecDense(nTest, nil)

	for i, idx := range perm[:nTest] {
		for j := 0; j < d; j++ {
			XTest.Set(i, j, X.At(idx, j))
		}
		yTest.SetVec(i, col.Nums[idx])
	}
	for i, idx := range perm[nTest:] {
		for j := 0; j < d; j++ {
			XTrain.Set(i, j, X.At(idx, j))
		}
		yTrain.SetVec(i, col.Nums[idx])
	}

	return XTrain, XTest, yTrain, yTest, nil
}

// PreprocessorParams は永続化用のスナップショット。
// 学習済みのエンコーダー・スケーラーの状態をモデルと一緒に保存することで、
// 再読み込み後の推論でも学習時と同一の変換を再現できる。
type PreprocessorParams struct {
	Schema   dataset.Schema
	Seed     int64
	TestSize float64
	Encoders map[string]EncoderParams
	Scaler   *ScalerParams
}

// Params は学習済みの状態をスナップショットとして返す
func (p *Preprocessor) Params() (PreprocessorParams, error) {
	if !p.IsFitted() {
		return PreprocessorParams{}, errors.NewNotFittedError("Preprocessor", "Params")
	}

	params := PreprocessorParams{
		Schema:   append(dataset.Schema(nil), p.Schema...),
		Seed:     p.Seed,
		TestSize: p.TestSize,
		Encoders: make(map[string]EncoderParams, len(p.Encoders)),
	}
	for name, enc := range p.Encoders {
		ep, err := enc.Params()
		if err != nil {
			return PreprocessorParams{}, err
		}
		params.Encoders[name] = ep
	}
	if p.Scaler != nil {
		sp, err := p.Scaler.Params()
		if err != nil {
			return PreprocessorParams{}, err
		}
		params.Scaler = &sp
	}
	return params, nil
}

// NewPreprocessorFromParams はスナップショットから学習済みPreprocessorを復元する。
// スナップショットの形状がスキーマと矛盾する場合はCorruptModelErrorを返す。
func NewPreprocessorFromParams(params PreprocessorParams) (*Preprocessor, error) {
	if err := params.Schema.Validate(); err != nil {
		return nil, errors.NewCorruptModelError("", "invalid schema in preprocessor state", err)
	}

	p := &Preprocessor{
		Schema:   append(dataset.Schema(nil), params.Schema...),
		Seed:     params.Seed,
		TestSize: params.TestSize,
		Encoders: make(map[string]*LabelEncoder),
	}

	numericCount := 0
	for _, spec := range params.Schema {
		switch spec.Kind {
		case dataset.KindNumeric:
			numericCount++
		case dataset.KindCategorical:
			ep, ok := params.Encoders[spec.Name]
			if !ok {
				return nil, errors.NewCorruptModelError("", "missing encoder state for column "+spec.Name, nil)
			}
			enc, err := NewLabelEncoderFromParams(ep)
			if err != nil {
				return nil, err
			}
			p.Encoders[spec.Name] = enc
		}
	}

	if numericCount > 0 {
		if params.Scaler == nil {
			return nil, errors.NewCorruptModelError("", "missing scaler state for numeric columns", nil)
		}
		if params.Scaler.NFeatures != numericCount {
			return nil, errors.NewCorruptModelError("", "scaler state does not match the number of numeric columns", nil)
		}
		scaler, err := NewStandardScalerFromParams(*params.Scaler)
		if err != nil {
			return nil, err
		}
		p.Scaler = scaler
	}

	p.SetFitted()
	return p, nil
}
