package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store はイベントコレクションの永続化を抽象化する。
// コレクション全体を読み書きする契約で、部分的な追記や更新は行わない。
type Store interface {
	// LoadAll はコレクション全体をファイル順で返す。
	// ストアが未作成の場合は空のスライスを返す。
	LoadAll() ([]Event, error)
	// SaveAll はコレクション全体を書き戻し、既存の内容を置き換える。
	SaveAll([]Event) error
}

// FileStore は単一のJSONファイルにイベント配列を永続化するStore実装。
// ファイルはリクエストごとに開閉され、プロセス間の排他制御は行わない。
type FileStore struct {
	// path はJSONファイルのパス。
	path string
}

// NewFileStore は新しいFileStoreを生成する。
// ファイル自体は作成せず、親ディレクトリのみを用意する。
// ファイルが存在しない状態は空のコレクションとして扱われる。
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("データディレクトリの作成に失敗: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// LoadAll はJSONファイルからイベント配列を読み込む。
// ファイルが存在しない、または空の場合は空のスライスを返す。
// 内容が解析できない場合はCorruptStoreErrorを返す。
func (s *FileStore) LoadAll() ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("データファイルの読み込みに失敗: %w", err)
	}

	if len(data) == 0 {
		return []Event{}, nil
	}

	var evts []Event
	if err := json.Unmarshal(data, &evts); err != nil {
		return nil, &CorruptStoreError{Err: err}
	}
	return evts, nil
}

// SaveAll はイベント配列全体をJSONファイルに書き戻す。
// 可読性のため2スペースインデントで整形して保存する。
func (s *FileStore) SaveAll(evts []Event) error {
	data, err := json.MarshalIndent(evts, "", "  ")
	if err != nil {
		return fmt.Errorf("イベント配列のシリアライズに失敗: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("データファイルの書き込みに失敗: %w", err)
	}
	return nil
}
