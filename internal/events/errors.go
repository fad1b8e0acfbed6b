package events

import (
	"errors"
	"fmt"
)

// ErrNotFound は指定されたIDのイベントが存在しないことを表す。
var ErrNotFound = errors.New("イベントが見つかりません")

// ErrDuplicate は同一のイベント名と日付の組が既に存在することを表す。
var ErrDuplicate = errors.New("同じイベント名と日付のイベントが既に存在します")

// ValidationError はリクエスト内容の検証エラーを表す。
// 必須フィールドの欠落、変更禁止フィールドの指定、更新可能フィールドの欠如が該当する。
type ValidationError struct {
	// Reason は検証に失敗した理由。
	Reason string
}

// Error はValidationErrorのメッセージを返す。
func (e *ValidationError) Error() string {
	return e.Reason
}

// newValidationError は検証エラーを生成する。
func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CorruptStoreError はデータストアが存在するが解析できないことを表す。
// 入出力エラーとは区別され、データの破損を示す。
type CorruptStoreError struct {
	// Err は解析時に発生した元のエラー。
	Err error
}

// Error はCorruptStoreErrorのメッセージを返す。
func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("データストアが破損しています: %v", e.Err)
}

// Unwrap は元の解析エラーを返す。
func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}
