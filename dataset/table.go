package dataset

import (
	"strings"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// Column は1つの観測列。Kindに応じてNumsまたはCatsのどちらかが使われる。
// Missing[i] がtrueの行は値を持たない（前処理段階でゼロ埋めされる）。
type Column struct {
	Name    string
	Kind    ColumnKind
	Nums    []float64 // KindNumericの場合の値
	Cats    []string  // KindCategoricalの場合のトークン
	Missing []bool
}

// Table は名前付き列の順序付きコレクション。
// すべての列は同じ行数を持つ。行は観測、列は特徴量に対応する。
//
// Tableは構築後は読み取り専用として扱う。複数ゴルーチンからの
// 同時構築は想定していない。
type Table struct {
	cols  []*Column
	index map[string]int
	nRows int
}

// NewTable は空のテーブルを作成する
func NewTable() *Table {
	return &Table{
		index: make(map[string]int),
	}
}

// checkRows は追加される列の行数が既存の列と一致することを検証する
func (t *Table) checkRows(op string, n int) error {
	if len(t.cols) == 0 {
		t.nRows = n
		return nil
	}
	if n != t.nRows {
		return errors.NewDimensionError(op, t.nRows, n, 0)
	}
	return nil
}

// AddNumericColumn は数値列を追加する。
// missingがnilの場合、すべての行が値を持つとみなす。
func (t *Table) AddNumericColumn(name string, values []float64, missing []bool) error {
	if _, exists := t.index[name]; exists {
		return errors.NewValidationError(name, "column already exists", name)
	}
	if missing != nil && len(missing) != len(values) {
		return errors.NewDimensionError("Table.AddNumericColumn", len(values), len(missing), 0)
	}
	if err := t.checkRows("Table.AddNumericColumn", len(values)); err != nil {
		return err
	}
	if missing == nil {
		missing = make([]bool, len(values))
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, &Column{
		Name:    name,
		Kind:    KindNumeric,
		Nums:    values,
		Missing: missing,
	})
	return nil
}

// AddCategoricalColumn はカテゴリ列を追加する。
// 欠損トークン（空文字、NA、NaN）は欠損として記録される。
func (t *Table) AddCategoricalColumn(name string, values []string) error {
	if _, exists := t.index[name]; exists {
		return errors.NewValidationError(name, "column already exists", name)
	}
	if err := t.checkRows("Table.AddCategoricalColumn", len(values)); err != nil {
		return err
	}
	missing := make([]bool, len(values))
	for i, v := range values {
		missing[i] = IsMissingToken(v)
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, &Column{
		Name:    name,
		Kind:    KindCategorical,
		Cats:    values,
		Missing: missing,
	})
	return nil
}

// NumRows は行数を返す
func (t *Table) NumRows() int {
	return t.nRows
}

// NumColumns は列数を返す
func (t *Table) NumColumns() int {
	return len(t.cols)
}

// Column は名前で列を引く
func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[idx], true
}

// HasColumn は列が存在するかどうかを返す
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Names は列名を追加順に返す
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// IsMissingToken は生データ上で欠損を意味するトークンかどうかを判定する。
// 空文字、"NA"、"NaN" を欠損として扱う。
func IsMissingToken(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN":
		return true
	}
	return false
}
