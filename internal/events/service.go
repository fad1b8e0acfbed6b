package events

import (
	"sync"

	"github.com/google/uuid"
)

// Service はイベントコレクションに対するCRUD操作のルールを実装する。
//
// すべての変更操作は全件読み込み→変更→全件書き戻しのサイクルで行うため、
// mu でサイクル全体を直列化し、同一プロセス内の並行書き込みによる
// 更新の消失（lost update）を防ぐ。別プロセスからの書き込みは保護しない。
type Service struct {
	// store はイベントコレクションの永続化先。
	store Store
	// mu は読み込み・変更・書き戻しのサイクルを直列化する。
	mu sync.Mutex
}

// NewService は新しいServiceを生成する。
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput はイベント作成の入力。
type CreateInput struct {
	// EventName はイベント名。必須。
	EventName string
	// Date は開催日。必須。
	Date string
	// Location は開催場所。必須。
	Location string
	// Description は説明。省略可能。
	Description string
	// Tags はタグの列。省略可能。
	Tags []string
}

// UpdatePatch はイベントの部分更新の入力。
// nilのフィールドは「指定なし」を表し、対応する値は変更されない。
type UpdatePatch struct {
	// EventName は変更禁止。非nilの場合は検証エラーになる。
	EventName *string
	// ID は変更禁止。非nilの場合は検証エラーになる。
	ID *string
	// Date は開催日の新しい値。
	Date *string
	// Location は開催場所の新しい値。
	Location *string
	// Description は説明の新しい値。
	Description *string
	// Tags はタグ列の新しい値。マージではなく全体を置き換える。
	Tags *[]string
}

// List は全イベントをファイル順で返す。
func (s *Service) List() ([]Event, error) {
	return s.store.LoadAll()
}

// Create は新しいイベントを作成して返す。
// イベント名・日付・場所は必須で、同じイベント名と日付の組が
// 既に存在する場合はErrDuplicateを返す。
func (s *Service) Create(in CreateInput) (*Event, error) {
	if in.EventName == "" {
		return nil, newValidationError("eventNameは必須です")
	}
	if in.Date == "" {
		return nil, newValidationError("dateは必須です")
	}
	if in.Location == "" {
		return nil, newValidationError("locationは必須です")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evts, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, e := range evts {
		if e.EventName == in.EventName && e.Date == in.Date {
			return nil, ErrDuplicate
		}
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	created := Event{
		ID:          uuid.New().String(),
		EventName:   in.EventName,
		Date:        in.Date,
		Location:    in.Location,
		Description: in.Description,
		Tags:        tags,
	}

	evts = append(evts, created)
	if err := s.store.SaveAll(evts); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update は指定されたIDのイベントを部分更新して返す。
// パッチに含まれるフィールドのみを変更し、含まれないフィールドは保持する。
// 変更禁止フィールドの指定、または更新可能フィールドが1つもない場合は
// 検証エラーを返す。重複チェックは作成時のみで、更新時には行わない。
func (s *Service) Update(id string, patch UpdatePatch) (*Event, error) {
	if patch.EventName != nil {
		return nil, newValidationError("eventNameは変更できません")
	}
	if patch.ID != nil {
		return nil, newValidationError("idは変更できません")
	}
	if patch.Date == nil && patch.Location == nil && patch.Description == nil && patch.Tags == nil {
		return nil, newValidationError("更新可能なフィールド（location, description, date, tags）が指定されていません")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	evts, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range evts {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	if patch.Date != nil {
		evts[idx].Date = *patch.Date
	}
	if patch.Location != nil {
		evts[idx].Location = *patch.Location
	}
	if patch.Description != nil {
		evts[idx].Description = *patch.Description
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		evts[idx].Tags = tags
	}

	if err := s.store.SaveAll(evts); err != nil {
		return nil, err
	}
	updated := evts[idx]
	return &updated, nil
}

// Delete は指定されたIDのイベントを削除する。
// 既に削除済みのIDに対してもErrNotFoundを返す（冪等ではない）。
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	evts, err := s.store.LoadAll()
	if err != nil {
		return err
	}

	idx := -1
	for i, e := range evts {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	evts = append(evts[:idx], evts[idx+1:]...)
	return s.store.SaveAll(evts)
}
