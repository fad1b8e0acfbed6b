package events

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// スキーマ定義。seqはファイル順に相当する挿入順を保持するための列。
const schema = `
CREATE TABLE IF NOT EXISTS events (
    -- 挿入順を保持する連番
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    -- イベントの一意識別子
    id TEXT NOT NULL UNIQUE,
    -- イベント名
    event_name TEXT NOT NULL,
    -- 開催日（呼び出し側が指定した文字列をそのまま保持する）
    date TEXT NOT NULL,
    -- 開催場所
    location TEXT NOT NULL,
    -- 説明
    description TEXT NOT NULL DEFAULT '',
    -- タグ列（JSON配列として保存）
    tags TEXT NOT NULL DEFAULT '[]'
);
`

// initSchema はSQLiteデータベースにスキーマを適用する。
func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("スキーマの適用に失敗: %w", err)
	}
	return nil
}

// SQLiteStore はSQLiteデータベースにイベントを永続化するStore実装。
// JSONファイルと同じ全件読み書きの契約を保ち、コレクション全体を置き換える。
type SQLiteStore struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// NewSQLiteStore は新しいSQLiteStoreを生成する。
// データベースへの接続とスキーマの初期化を行う。
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadAll は全イベントを挿入順で読み込む。
func (s *SQLiteStore) LoadAll() ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, event_name, date, location, description, tags FROM events ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("イベントの読み込みに失敗: %w", err)
	}
	defer rows.Close()

	evts := []Event{}
	for rows.Next() {
		var e Event
		var tagsJSON string
		if err := rows.Scan(&e.ID, &e.EventName, &e.Date, &e.Location, &e.Description, &tagsJSON); err != nil {
			return nil, fmt.Errorf("イベント行の読み取りに失敗: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, &CorruptStoreError{Err: err}
		}
		evts = append(evts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("イベントの読み込みに失敗: %w", err)
	}
	return evts, nil
}

// SaveAll は全イベントをトランザクション内で置き換える。
// 既存の全行を削除してから渡された順に挿入し直す。
func (s *SQLiteStore) SaveAll(evts []Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM events`); err != nil {
		return fmt.Errorf("既存イベントの削除に失敗: %w", err)
	}

	for _, e := range evts {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("タグ列のシリアライズに失敗: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO events (id, event_name, date, location, description, tags) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.EventName, e.Date, e.Location, e.Description, string(tagsJSON),
		); err != nil {
			return fmt.Errorf("イベントの挿入に失敗: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗: %w", err)
	}
	return nil
}
