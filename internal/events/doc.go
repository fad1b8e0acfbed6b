// Package events はイベント（名前・日付・場所・説明・タグ）のCRUD APIを提供する。
//
// データストアは単一のJSONファイル（またはSQLiteデータベース）で、
// すべての変更操作は全件読み込み→メモリ上で変更→全件書き戻しのサイクルで行う。
package events
