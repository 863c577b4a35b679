package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("KREATOR_CONFIG", "")
	base := []string{"--db", filepath.Join(dir, "kreator.db"), "--output-dir", filepath.Join(dir, "out")}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"avatar", "product", "service", "video", "viral", "ebook", "song", "seo", "analyze", "asset", "history", "settings", "batch"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			if err != nil || cmd.Name() != name {
				t.Errorf("サブコマンド %s が登録されていません: %v", name, err)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"設定エラー", &domain.ConfigurationError{Message: "server1 の API キーが設定されていません"}, "kreator settings server"},
		{"それ以外", errors.New("boom"), "もう一度実行"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("ヒントに %q が含まれていません: %s", tt.want, buf.String())
			}
		})
	}
}

func TestSettingsServer(t *testing.T) {
	out, err := runRoot(t, "settings", "server")
	if err != nil {
		t.Fatalf("一覧の表示に失敗しました: %v", err)
	}
	for _, id := range []string{"server1", "server5"} {
		if !strings.Contains(out, id) {
			t.Errorf("一覧に %s がありません:\n%s", id, out)
		}
	}

	if _, err := runRoot(t, "settings", "server", "server9"); err == nil {
		t.Error("未知の接続先でエラーになりませんでした")
	}
}

func TestAssetList_Empty(t *testing.T) {
	out, err := runRoot(t, "asset", "list", "--kind", "avatar")
	if err != nil {
		t.Fatalf("一覧の表示に失敗しました: %v", err)
	}
	if !strings.Contains(out, "KIND") {
		t.Errorf("ヘッダーが表示されていません:\n%s", out)
	}
}
