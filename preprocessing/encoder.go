package preprocessing

import (
	"fmt"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/core/model"
	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// LabelEncoder はカテゴリトークンを非負整数コードに変換するエンコーダー。
// コードは最初に観測された順に0から割り当てられる。Fitで構築した対応表は
// 以後のTransformで不変のまま再利用される。
//
// 学習時に観測されなかったトークンをTransformに渡すとValidationErrorになる。
// 黙って新しいコードを割り当てると下流の予測が壊れるため、明示的に失敗させる。
type LabelEncoder struct {
	model.BaseEstimator

	// Classes はコード順（index = コード）のトークン一覧
	Classes []string

	index map[string]int
}

// NewLabelEncoder は新しいLabelEncoderを作成する
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit は観測されたトークンから対応表を構築する。
// 欠損トークン（空文字）は対応表に含めない。
func (le *LabelEncoder) Fit(tokens []string) error {
	if len(tokens) == 0 {
		return errors.NewModelError("LabelEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	le.Classes = le.Classes[:0]
	le.index = make(map[string]int)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := le.index[tok]; !ok {
			le.index[tok] = len(le.Classes)
			le.Classes = append(le.Classes, tok)
		}
	}

	le.SetFitted()
	return nil
}

// Encode は1つのトークンを学習済みコードに変換する
func (le *LabelEncoder) Encode(token string) (int, error) {
	if !le.IsFitted() {
		return 0, errors.NewNotFittedError("LabelEncoder", "Encode")
	}
	code, ok := le.index[token]
	if !ok {
		return 0, errors.NewValidationError("category", "token was not seen during fitting", token)
	}
	return code, nil
}

// Transform はトークン列をコード列に変換する
func (le *LabelEncoder) Transform(tokens []string) ([]int, error) {
	if !le.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
	}

	codes := make([]int, len(tokens))
	for i, tok := range tokens {
		code, err := le.Encode(tok)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// InverseTransform はコード列を元のトークン列に戻す
func (le *LabelEncoder) InverseTransform(codes []int) ([]string, error) {
	if !le.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	tokens := make([]string, len(codes))
	for i, code := range codes {
		if code < 0 || code >= len(le.Classes) {
			return nil, errors.NewValidationError("code", "unknown encoding", code)
		}
		tokens[i] = le.Classes[code]
	}
	return tokens, nil
}

// NumClasses は学習済みのカテゴリ数を返す
func (le *LabelEncoder) NumClasses() int {
	return len(le.Classes)
}

// EncoderParams は永続化用のスナップショット
type EncoderParams struct {
	Classes []string
}

// Params は学習済みの対応表をスナップショットとして返す
func (le *LabelEncoder) Params() (EncoderParams, error) {
	if !le.IsFitted() {
		return EncoderParams{}, errors.NewNotFittedError("LabelEncoder", "Params")
	}
	return EncoderParams{Classes: append([]string(nil), le.Classes...)}, nil
}

// NewLabelEncoderFromParams はスナップショットから学習済みエンコーダーを復元する
func NewLabelEncoderFromParams(p EncoderParams) (*LabelEncoder, error) {
	le := &LabelEncoder{
		Classes: append([]string(nil), p.Classes...),
		index:   make(map[string]int, len(p.Classes)),
	}
	for i, tok := range p.Classes {
		if _, ok := le.index[tok]; ok {
			return nil, errors.NewCorruptModelError("", fmt.Sprintf("duplicate class token %q in encoder state", tok), nil)
		}
		le.index[tok] = i
	}
	le.SetFitted()
	return le, nil
}
