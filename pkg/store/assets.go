package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

const settingDefaultsSeeded = "default_avatars_seeded"

// AssetStore は種類ごとに上限付きで保存されるアセットを管理します。
// 上限に達した場合は古いものを勝手に消さず、CapacityError を返すのだ。
type AssetStore struct {
	db *sql.DB
}

func NewAssetStore(db *DB) *AssetStore {
	return &AssetStore{db: db.Conn()}
}

// SeedDefaults は初回だけ既定のアバターを登録するのだ。
// 一度登録した後にユーザーが削除しても、再登録はしないのだ。
func (s *AssetStore) SeedDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	var seeded string
	err = tx.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", settingDefaultsSeeded).Scan(&seeded)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("初期化状態の確認に失敗しました: %w", err)
	}

	now := time.Now().UTC()
	for i, a := range domain.DefaultAvatars() {
		// 先頭の既定アバターが一覧の先頭に来るよう、作成時刻を後ろからずらすのだ
		created := now.Add(-time.Duration(i) * time.Millisecond)
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO assets (id, kind, name, image_url, identity, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			a.ID, string(a.Kind), a.Name, a.ImageURL, string(a.Identity), formatTime(created),
		); err != nil {
			return fmt.Errorf("既定のアバター %s の登録に失敗しました: %w", a.Name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", settingDefaultsSeeded, "1"); err != nil {
		return fmt.Errorf("初期化状態の記録に失敗しました: %w", err)
	}
	return tx.Commit()
}

// Save はアセットを保存して、ID と作成時刻を埋めたものを返します。
func (s *AssetStore) Save(ctx context.Context, a domain.SavedAsset) (domain.SavedAsset, error) {
	if _, err := domain.ParseAssetKind(string(a.Kind)); err != nil {
		return domain.SavedAsset{}, err
	}
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.SavedAsset{}, domain.NewValidationError("name", "名前は必須です")
	}
	if a.Identity.IsEmpty() {
		return domain.SavedAsset{}, domain.NewValidationError("identity", "DNA が空のアセットは保存できません")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.SavedAsset{}, fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets WHERE kind = ?", string(a.Kind)).Scan(&count); err != nil {
		return domain.SavedAsset{}, fmt.Errorf("件数の取得に失敗しました: %w", err)
	}
	if max := domain.CapacityFor(a.Kind); count >= max {
		return domain.SavedAsset{}, &domain.CapacityError{Kind: a.Kind, Max: max}
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO assets (id, kind, name, image_url, identity, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		a.ID, string(a.Kind), a.Name, a.ImageURL, string(a.Identity), formatTime(a.CreatedAt),
	); err != nil {
		return domain.SavedAsset{}, fmt.Errorf("アセットの保存に失敗しました: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.SavedAsset{}, fmt.Errorf("コミットに失敗しました: %w", err)
	}
	return a, nil
}

// List は指定種別のアセットを新しい順に返すのだ。
func (s *AssetStore) List(ctx context.Context, kind domain.AssetKind) ([]domain.SavedAsset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, name, image_url, identity, created_at
		FROM assets WHERE kind = ? ORDER BY created_at DESC, rowid DESC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("アセット一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var assets []domain.SavedAsset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Get は ID でアセットを取得します。見つからない場合は ValidationError なのだ。
func (s *AssetStore) Get(ctx context.Context, id string) (domain.SavedAsset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, name, image_url, identity, created_at
		FROM assets WHERE id = ?
	`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedAsset{}, domain.NewValidationError("id", fmt.Sprintf("アセットが見つかりません: %s", id))
	}
	return a, err
}

// Find は ID または名前（大文字小文字を区別しない）でアセットを探すのだ。
func (s *AssetStore) Find(ctx context.Context, kind domain.AssetKind, ref string) (domain.SavedAsset, error) {
	list, err := s.List(ctx, kind)
	if err != nil {
		return domain.SavedAsset{}, err
	}
	for _, a := range list {
		if a.ID == ref || strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return domain.SavedAsset{}, domain.NewValidationError(string(kind), fmt.Sprintf("保存済みの %s が見つかりません: %s", kind, ref))
}

// Delete は ID でアセットを削除するのだ。
func (s *AssetStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("アセットの削除に失敗しました: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewValidationError("id", fmt.Sprintf("アセットが見つかりません: %s", id))
	}
	return nil
}

// Count は指定種別の件数を返すのだ。
func (s *AssetStore) Count(ctx context.Context, kind domain.AssetKind) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets WHERE kind = ?", string(kind)).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (domain.SavedAsset, error) {
	var a domain.SavedAsset
	var kind, identity, createdAt string
	if err := row.Scan(&a.ID, &kind, &a.Name, &a.ImageURL, &identity, &createdAt); err != nil {
		return domain.SavedAsset{}, err
	}
	a.Kind = domain.AssetKind(kind)
	a.Identity = domain.IdentityDescription(identity)
	a.CreatedAt = parseTime(createdAt)
	return a, nil
}

// timeLayout は文字列比較で時系列順に並ぶよう桁を固定したレイアウトなのだ。
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
