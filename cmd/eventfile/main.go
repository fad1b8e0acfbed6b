// イベント管理サービスのエントリポイント。
// イベント（名前・日付・場所・説明・タグ）のCRUD APIを提供する。
// データストアはJSONファイル（デフォルト）またはSQLiteを環境変数で選択する。
package main

import (
	"log"
	"os"

	"github.com/nao1215/eventfile/internal/events"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	store, err := newStore()
	if err != nil {
		log.Fatalf("ストアの初期化に失敗: %v", err)
	}

	server, err := events.NewServer(port, store)
	if err != nil {
		log.Fatalf("イベントサーバーの初期化に失敗: %v", err)
	}

	log.Printf("イベントサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("イベントサービスの起動に失敗: %v", err)
	}
}

// newStore は環境変数STORE_BACKENDに応じたストアを生成する。
// 未指定または"file"の場合はJSONファイル、"sqlite"の場合はSQLiteを使用する。
func newStore() (events.Store, error) {
	if os.Getenv("STORE_BACKEND") == "sqlite" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "data/events.db"
		}
		return events.NewSQLiteStore(path)
	}

	path := os.Getenv("EVENTS_FILE")
	if path == "" {
		path = "data/events.json"
	}
	return events.NewFileStore(path)
}
