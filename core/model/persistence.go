package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/RAHAMNIabdelkaderseifelislem/PRODIGY-ML-01/pkg/errors"
)

// SaveSnapshot はパラメータのスナップショットをgob形式でファイルに保存する
//
// スナップショットはエクスポートされたフィールドのみを持つ素朴な構造体で
// あることを想定している。学習済みオブジェクトそのものではなく、復元に
// 必要なパラメータだけを永続化する。
//
// 使用例:
//
//	params := reg.Params()
//	err := model.SaveSnapshot(&params, "model.gob")
func SaveSnapshot(snapshot interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return SaveSnapshotToWriter(snapshot, file)
}

// LoadSnapshot はファイルからパラメータのスナップショットを読み込む
//
// gobストリームが壊れている、または期待される型と一致しない場合は
// CorruptModelErrorを返す。
func LoadSnapshot(snapshot interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(snapshot); err != nil {
		return errors.NewCorruptModelError(filename, "failed to decode gob stream", err)
	}

	return nil
}

// SaveSnapshotToWriter はスナップショットをio.Writerに保存する
func SaveSnapshotToWriter(snapshot interface{}, w io.Writer) error {
	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// LoadSnapshotFromReader はio.Readerからスナップショットを読み込む
func LoadSnapshotFromReader(snapshot interface{}, r io.Reader) error {
	decoder := gob.NewDecoder(r)
	if err := decoder.Decode(snapshot); err != nil {
		return errors.NewCorruptModelError("", "failed to decode gob stream", err)
	}
	return nil
}
