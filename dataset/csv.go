package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// ReadFile はCSVファイルをスキーマに従ってTableに読み込む。
// targetが空でない場合、ターゲット列（数値）も読み込む。
func ReadFile(path string, schema Schema, target string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return Read(bufio.NewReader(file), schema, target)
}

// Read はCSVストリームをTableに読み込む。
//
// 先頭行はヘッダとして解釈する。スキーマで宣言された列（およびターゲット列）が
// ヘッダに存在しない場合はValidationErrorを返す。数値列のセルは欠損トークンで
// あるか、floatとして解釈可能でなければならない。解釈できない非欠損トークンは
// ValueErrorとなる（黙ってゼロに置き換えることはしない）。
func Read(r io.Reader, schema Schema, target string) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	wanted := make([]ColumnSpec, 0, len(schema)+1)
	wanted = append(wanted, schema...)
	if target != "" {
		wanted = append(wanted, ColumnSpec{Name: target, Kind: KindNumeric})
	}

	for _, spec := range wanted {
		if _, ok := colIdx[spec.Name]; !ok {
			return nil, errors.NewValidationError(spec.Name, "column not found in CSV header", header)
		}
	}

	raw := make(map[string][]string, len(wanted))
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", row)
		}
		row++
		for _, spec := range wanted {
			idx := colIdx[spec.Name]
			if idx >= len(record) {
				return nil, errors.NewValueError("dataset.Read",
					fmt.Sprintf("row %d has %d fields, column %q is out of range", row, len(record), spec.Name))
			}
			raw[spec.Name] = append(raw[spec.Name], record[idx])
		}
	}

	table := NewTable()
	for _, spec := range wanted {
		cells := raw[spec.Name]
		switch spec.Kind {
		case KindNumeric:
			nums, missing, err := parseNumericColumn(spec.Name, cells)
			if err != nil {
				return nil, err
			}
			if spec.Name == target {
				// ターゲット値の欠損した行では学習できない
				for i, m := range missing {
					if m {
						return nil, errors.NewValueError("dataset.Read",
							fmt.Sprintf("target column %q has a missing value at row %d", target, i+2))
					}
				}
			}
			if err := table.AddNumericColumn(spec.Name, nums, missing); err != nil {
				return nil, err
			}
		case KindCategorical:
			if err := table.AddCategoricalColumn(spec.Name, cells); err != nil {
				return nil, err
			}
		}
	}

	return table, nil
}

// BuildRow は1行分の入力値からTableを構築する（推論パス用）。
// スキーマで宣言されたすべての列の値が必要で、欠けている場合は
// ValidationErrorを返す。
func BuildRow(schema Schema, values map[string]string) (*Table, error) {
	table := NewTable()
	for _, spec := range schema {
		cell, ok := values[spec.Name]
		if !ok {
			return nil, errors.NewValidationError(spec.Name, "no value provided for declared column", values)
		}
		switch spec.Kind {
		case KindNumeric:
			nums, missing, err := parseNumericColumn(spec.Name, []string{cell})
			if err != nil {
				return nil, err
			}
			if err := table.AddNumericColumn(spec.Name, nums, missing); err != nil {
				return nil, err
			}
		case KindCategorical:
			if err := table.AddCategoricalColumn(spec.Name, []string{cell}); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

// parseNumericColumn はセル列をfloatと欠損マスクに変換する
func parseNumericColumn(name string, cells []string) ([]float64, []bool, error) {
	nums := make([]float64, len(cells))
	missing := make([]bool, len(cells))
	for i, cell := range cells {
		if IsMissingToken(cell) {
			missing[i] = true
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, nil, errors.NewValueError("dataset.parseNumericColumn",
				fmt.Sprintf("column %q row %d: cannot parse %q as a number", name, i+2, cell))
		}
		nums[i] = v
	}
	return nums, missing, nil
}
