package events

// Event は管理対象のイベントレコードを表す。
// JSONファイルにはこの構造体の配列がそのまま永続化される。
type Event struct {
	// ID はイベントの一意識別子（UUID）。作成時に採番され、以後変更されない。
	ID string `json:"id"`
	// EventName はイベント名。作成時に必須で、以後変更できない。
	EventName string `json:"eventName"`
	// Date はイベントの開催日。形式は呼び出し側に委ね、存在のみを検証する。
	Date string `json:"date"`
	// Location はイベントの開催場所。
	Location string `json:"location"`
	// Description はイベントの説明。省略時は空文字列。
	Description string `json:"description"`
	// Tags はイベントに付与されたタグの列。省略時は空の列。
	// 更新時はマージではなく全体が置き換えられる。
	Tags []string `json:"tags"`
}
