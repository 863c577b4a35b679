package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// pngHeader は http.DetectContentType が image/png と判定する最小のシグネチャなのだ。
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "product.png")
	if err := os.WriteFile(pngPath, pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(txtPath, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("ローカルファイル", func(t *testing.T) {
		part, err := Load(pngPath)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if part.MIMEType != "image/png" || !part.IsImage() {
			t.Errorf("画像パートではありません: %s", part.MIMEType)
		}
	})

	t.Run("data URL", func(t *testing.T) {
		part, err := Load(ToDataURL(pngHeader, "image/png"))
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if string(part.Data) != string(pngHeader) {
			t.Error("復号したデータが一致しません")
		}
	})

	tests := []struct {
		name   string
		source string
	}{
		{"空", ""},
		{"存在しないファイル", filepath.Join(dir, "missing.png")},
		{"画像以外", txtPath},
		{"base64 でない data URL", "data:image/png,abc"},
		{"壊れた base64", "data:image/png;base64,!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.source); !domain.IsValidationError(err) {
				t.Errorf("ValidationError であるべきです: %v", err)
			}
		})
	}
}

func TestToDataURL(t *testing.T) {
	if got := ToDataURL([]byte("abc"), ""); got != "data:image/jpeg;base64,YWJj" {
		t.Errorf("予期しない data URL: %s", got)
	}
}

func TestResolvePath(t *testing.T) {
	got, err := ResolvePath("output", "avatar-20261019-120000")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if want := filepath.Join("output", "avatar-20261019-120000"); got != want {
		t.Errorf("期待値 %s, 実際の値 %s", want, got)
	}

	indexed, err := GenerateIndexedPath(got, 2)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if want := filepath.Join("output", "avatar-20261019-120000_2"); indexed != want {
		t.Errorf("期待値 %s, 実際の値 %s", want, indexed)
	}
}
