// Package dataset provides the typed column table the pipeline operates on,
// the declared column schema, and the collaborator-side loaders (YAML config,
// CSV files, single prediction rows).
package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// ColumnKind は列の型（数値またはカテゴリ）を表す
type ColumnKind int

const (
	// KindNumeric は浮動小数点の数値列
	KindNumeric ColumnKind = iota
	// KindCategorical は文字列トークンのカテゴリ列
	KindCategorical
)

// String はColumnKindの文字列表現を返す
func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return fmt.Sprintf("ColumnKind(%d)", int(k))
	}
}

// UnmarshalYAML はYAML上の "numeric" / "categorical" をColumnKindに変換する
func (k *ColumnKind) UnmarshalYAML(value *yaml.Node) error {
	switch value.Value {
	case "numeric":
		*k = KindNumeric
	case "categorical":
		*k = KindCategorical
	default:
		return errors.NewValidationError("kind", "must be 'numeric' or 'categorical'", value.Value)
	}
	return nil
}

// MarshalYAML はColumnKindをYAML文字列として出力する
func (k ColumnKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// ColumnSpec は1つの特徴量列の宣言（名前と型）
type ColumnSpec struct {
	Name string     `yaml:"name"`
	Kind ColumnKind `yaml:"kind"`
}

// Schema は特徴量列の順序付き宣言。
// Preprocessorの構築時に渡され、どの列をどう変換するかを一意に定める。
type Schema []ColumnSpec

// KindOf は宣言された列の型を返す。未宣言の列の場合はfalseを返す。
func (s Schema) KindOf(name string) (ColumnKind, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec.Kind, true
		}
	}
	return 0, false
}

// Names は宣言順の列名リストを返す
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, spec := range s {
		names[i] = spec.Name
	}
	return names
}

// Validate はスキーマの整合性（非空、重複列名なし）を検証する
func (s Schema) Validate() error {
	if len(s) == 0 {
		return errors.NewValueError("Schema.Validate", "schema declares no columns")
	}
	seen := make(map[string]bool, len(s))
	for _, spec := range s {
		if spec.Name == "" {
			return errors.NewValidationError("schema", "column name must not be empty", spec)
		}
		if seen[spec.Name] {
			return errors.NewValidationError("schema", "duplicate column name", spec.Name)
		}
		seen[spec.Name] = true
	}
	return nil
}

// Config は学習実行の設定ファイル全体
type Config struct {
	// Data は入力CSVのパス
	Data string `yaml:"data"`
	// Target はターゲット列の名前（例: SalePrice）
	Target string `yaml:"target"`
	// Model は学習済みバンドルの保存先パス
	Model string `yaml:"model"`
	// Plot は評価プロットの出力先パス（空なら出力しない）
	Plot string `yaml:"plot"`
	// Seed は訓練/テスト分割の乱数シード
	Seed int64 `yaml:"seed"`
	// TestSize はホールドアウトに回す行の割合
	TestSize float64 `yaml:"test_size"`
	// Schema は特徴量列の宣言
	Schema Schema `yaml:"schema"`
}

// DefaultSeed は分割を再現可能にする既定のシード
const DefaultSeed int64 = 42

// DefaultTestSize はホールドアウト割合の既定値
const DefaultTestSize = 0.2

// LoadConfig はYAML設定ファイルを読み込み、既定値を補完して検証する
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}

	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.TestSize == 0 {
		cfg.TestSize = DefaultTestSize
	}
	if cfg.TestSize <= 0 || cfg.TestSize >= 1 {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", cfg.TestSize)
	}
	if cfg.Target == "" {
		return nil, errors.NewValidationError("target", "target column name is required", cfg.Target)
	}
	if err := cfg.Schema.Validate(); err != nil {
		return nil, err
	}
	if _, declared := cfg.Schema.KindOf(cfg.Target); declared {
		return nil, errors.NewValidationError("target", "target column must not appear in the feature schema", cfg.Target)
	}

	return &cfg, nil
}
