package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "kreator.db"), nil)
	if err != nil {
		t.Fatalf("データベースのオープンに失敗しました: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kreator.db")
	db, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for _, table := range []string{"assets", "history", "settings", "_migrations"} {
		var name string
		if err := db.Conn().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name); err != nil {
			t.Errorf("テーブル %s がありません: %v", table, err)
		}
	}

	var mode string
	if err := db.Conn().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil || mode != "wal" {
		t.Errorf("journal_mode = %s, want wal (%v)", mode, err)
	}
	db.Close()

	// 二回目のオープンでマイグレーションが重複しないこと
	db2, err := Open(path, nil)
	if err != nil {
		t.Fatalf("二回目の Open() error = %v", err)
	}
	defer db2.Close()
	var count int
	db2.Conn().QueryRow("SELECT COUNT(*) FROM _migrations").Scan(&count)
	if count != 1 {
		t.Errorf("マイグレーションの記録数が不正です: %d", count)
	}
}

func TestAssetStore(t *testing.T) {
	ctx := context.Background()

	t.Run("既定のアバターは一度だけ登録されること", func(t *testing.T) {
		s := NewAssetStore(openTestDB(t))
		if err := s.SeedDefaults(ctx); err != nil {
			t.Fatalf("SeedDefaults() error = %v", err)
		}
		list, err := s.List(ctx, domain.AssetAvatar)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != len(domain.DefaultAvatars()) || list[0].Name != "Siti" {
			t.Fatalf("既定のアバターが不正です: %+v", list)
		}

		if err := s.Delete(ctx, list[0].ID); err != nil {
			t.Fatal(err)
		}
		if err := s.SeedDefaults(ctx); err != nil {
			t.Fatal(err)
		}
		if n, _ := s.Count(ctx, domain.AssetAvatar); n != len(domain.DefaultAvatars())-1 {
			t.Errorf("削除した既定のアバターが再登録されています: %d", n)
		}
	})

	t.Run("上限に達したら CapacityError で件数は変わらないこと", func(t *testing.T) {
		s := NewAssetStore(openTestDB(t))
		for i := 0; i < domain.MaxProducts; i++ {
			saved, err := s.Save(ctx, domain.SavedAsset{Kind: domain.AssetProduct, Name: fmt.Sprintf("p%d", i), Identity: "a bottle"})
			if err != nil {
				t.Fatalf("%d 件目の保存に失敗しました: %v", i+1, err)
			}
			if saved.ID == "" || saved.CreatedAt.IsZero() {
				t.Errorf("ID と作成時刻が埋められていません: %+v", saved)
			}
		}

		_, err := s.Save(ctx, domain.SavedAsset{Kind: domain.AssetProduct, Name: "overflow", Identity: "a bottle"})
		if !domain.IsCapacityError(err) {
			t.Fatalf("CapacityError であるべきです: %v", err)
		}
		if n, _ := s.Count(ctx, domain.AssetProduct); n != domain.MaxProducts {
			t.Errorf("件数が変わっています: %d", n)
		}
		list, _ := s.List(ctx, domain.AssetProduct)
		if list[0].Name != fmt.Sprintf("p%d", domain.MaxProducts-1) {
			t.Errorf("新しい順ではありません: 先頭 %s", list[0].Name)
		}
		if list[len(list)-1].Name != "p0" {
			t.Errorf("一番古いものが消えています: 末尾 %s", list[len(list)-1].Name)
		}
	})

	t.Run("入力検証", func(t *testing.T) {
		s := NewAssetStore(openTestDB(t))
		tests := []domain.SavedAsset{
			{Kind: "unknown", Name: "x", Identity: "y"},
			{Kind: domain.AssetLocation, Name: " ", Identity: "y"},
			{Kind: domain.AssetLocation, Name: "x", Identity: "  "},
		}
		for _, a := range tests {
			if _, err := s.Save(ctx, a); !domain.IsValidationError(err) {
				t.Errorf("%+v: ValidationError であるべきです: %v", a, err)
			}
		}
	})

	t.Run("Get と Find", func(t *testing.T) {
		s := NewAssetStore(openTestDB(t))
		saved, err := s.Save(ctx, domain.SavedAsset{Kind: domain.AssetLocation, Name: "Kafe Rustik", Identity: "a cozy rustic cafe"})
		if err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, saved.ID)
		if err != nil || got.Identity != saved.Identity {
			t.Errorf("Get() = %+v, %v", got, err)
		}
		found, err := s.Find(ctx, domain.AssetLocation, "kafe rustik")
		if err != nil || found.ID != saved.ID {
			t.Errorf("名前で見つかりません: %+v, %v", found, err)
		}
		if _, err := s.Get(ctx, "missing"); !domain.IsValidationError(err) {
			t.Errorf("存在しない ID は ValidationError であるべきです: %v", err)
		}
		if err := s.Delete(ctx, "missing"); !domain.IsValidationError(err) {
			t.Errorf("存在しない ID の削除は ValidationError であるべきです: %v", err)
		}
	})
}

func TestHistoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore(openTestDB(t))

	for i := 1; i <= domain.MaxHistory+2; i++ {
		if _, err := s.Append(ctx, domain.HistoryRecord{Title: fmt.Sprintf("h%d", i), Scenes: []string{"scene"}}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != domain.MaxHistory {
		t.Fatalf("履歴の件数が不正です: 期待値 %d, 実際の値 %d", domain.MaxHistory, len(list))
	}
	for i, rec := range list {
		want := fmt.Sprintf("h%d", domain.MaxHistory+2-i)
		if rec.Title != want {
			t.Errorf("%d 件目: 期待値 %s, 実際の値 %s", i, want, rec.Title)
		}
		if len(rec.Scenes) != 1 || rec.Scenes[0] != "scene" {
			t.Errorf("シーンが復元されていません: %+v", rec.Scenes)
		}
	}

	got, err := s.Get(ctx, list[0].ID)
	if err != nil || got.Title != list[0].Title {
		t.Errorf("Get() = %+v, %v", got, err)
	}

	if err := s.Delete(ctx, list[0].ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if list, _ := s.List(ctx); len(list) != 0 {
		t.Errorf("全削除されていません: %d", len(list))
	}
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	s := NewSettingsStore(openTestDB(t))

	if id, err := s.SelectedCredential(ctx); err != nil || id != "" {
		t.Fatalf("未設定は空であるべきです: %q, %v", id, err)
	}
	for _, id := range []string{"server2", "server4"} {
		if err := s.SetSelectedCredential(ctx, id); err != nil {
			t.Fatal(err)
		}
		if got, _ := s.SelectedCredential(ctx); got != id {
			t.Errorf("期待値 %s, 実際の値 %s", id, got)
		}
	}
}
