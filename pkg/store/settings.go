package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const settingSelectedCredential = "selected_credential"

// SettingsStore はユーザーが選んだ設定を保存するのだ。
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db.Conn()}
}

// Get は設定値を返します。未設定なら空文字列なのだ。
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("設定 %s の取得に失敗しました: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("設定 %s の保存に失敗しました: %w", key, err)
	}
	return nil
}

// SelectedCredential は選択中の認証情報 ID を返すのだ。
func (s *SettingsStore) SelectedCredential(ctx context.Context) (string, error) {
	return s.Get(ctx, settingSelectedCredential)
}

// SetSelectedCredential は認証情報 ID を保存します。プールに存在するかの検証は呼び出し側の責務なのだ。
func (s *SettingsStore) SetSelectedCredential(ctx context.Context, id string) error {
	return s.Set(ctx, settingSelectedCredential, id)
}
