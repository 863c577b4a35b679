package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// HistoryStore は直近 MaxHistory 件だけを保持する履歴なのだ。
type HistoryStore struct {
	db  *sql.DB
	max int
}

func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db.Conn(), max: domain.MaxHistory}
}

// Append は履歴を先頭に追加し、上限を超えた古いものを同じトランザクションで削除します。
func (s *HistoryStore) Append(ctx context.Context, rec domain.HistoryRecord) (domain.HistoryRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	scenes, err := json.Marshal(rec.Scenes)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("シーンのエンコードに失敗しました: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO history (id, title, scenes, created_at) VALUES (?, ?, ?, ?)",
		rec.ID, rec.Title, string(scenes), formatTime(rec.CreatedAt),
	); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("履歴の追加に失敗しました: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, s.max); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("古い履歴の削除に失敗しました: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("コミットに失敗しました: %w", err)
	}
	return rec, nil
}

// List は履歴を新しい順に返すのだ。
func (s *HistoryStore) List(ctx context.Context) ([]domain.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, scenes, created_at FROM history ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("履歴の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get は ID で履歴を一件取得するのだ。
func (s *HistoryStore) Get(ctx context.Context, id string) (domain.HistoryRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, title, scenes, created_at FROM history WHERE id = ?", id)
	rec, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HistoryRecord{}, domain.NewValidationError("id", fmt.Sprintf("履歴が見つかりません: %s", id))
	}
	return rec, err
}

func (s *HistoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("履歴の削除に失敗しました: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewValidationError("id", fmt.Sprintf("履歴が見つかりません: %s", id))
	}
	return nil
}

func (s *HistoryStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("履歴の全削除に失敗しました: %w", err)
	}
	return nil
}

func scanHistory(row scanner) (domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	var scenes, createdAt string
	if err := row.Scan(&rec.ID, &rec.Title, &scenes, &createdAt); err != nil {
		return domain.HistoryRecord{}, err
	}
	if err := json.Unmarshal([]byte(scenes), &rec.Scenes); err != nil {
		return domain.HistoryRecord{}, fmt.Errorf("シーンのデコードに失敗しました: %w", err)
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}
