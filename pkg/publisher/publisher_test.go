package publisher

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

func newTestPublisher(t *testing.T) (*Publisher, string) {
	t.Helper()
	p := NewPublisher(nil, nil)
	p.now = func() time.Time { return time.Date(2026, 10, 19, 10, 15, 0, 0, time.UTC) }
	return p, t.TempDir()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ファイルを読めません: %v", err)
	}
	return string(data)
}

func TestPublisher_PublishAvatar(t *testing.T) {
	p, out := newTestPublisher(t)
	res := domain.AvatarResult{
		Image:       &domain.ImageResponse{Data: []byte("jpeg-bytes"), MimeType: "image/jpeg"},
		ScenePrompt: "portrait",
		Identity:    "a woman",
		Trail:       domain.PromptTrail{}.Add("Ide Awal", "x"),
	}

	got, err := p.PublishAvatar(context.Background(), res, Options{OutputDir: out})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if want := filepath.Join(out, "avatar-20261019-101500"); got.Dir != want {
		t.Errorf("ディレクトリが不正です: %s", got.Dir)
	}
	if len(got.ImagePaths) != 1 || readFile(t, got.ImagePaths[0]) != "jpeg-bytes" {
		t.Errorf("画像が保存されていません: %+v", got.ImagePaths)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(readFile(t, got.ResultPath)), &decoded); err != nil {
		t.Fatalf("result.json が不正です: %v", err)
	}
	if decoded["identity"] != "a woman" || decoded["prompts_for_history"] == nil {
		t.Errorf("result.json の内容が不正です: %v", decoded)
	}
	if got.MarkdownPath != "" || got.HTMLPath != "" {
		t.Error("アバターに Markdown は不要です")
	}

	t.Run("同じ時刻の実行は別のディレクトリになること", func(t *testing.T) {
		second, err := p.PublishAvatar(context.Background(), res, Options{OutputDir: out})
		if err != nil {
			t.Fatal(err)
		}
		if second.Dir == got.Dir || !strings.HasPrefix(filepath.Base(second.Dir), "avatar-20261019-101500") {
			t.Errorf("ディレクトリが衝突しています: %s", second.Dir)
		}
	})
}

func TestPublisher_PublishEbook(t *testing.T) {
	p, out := newTestPublisher(t)
	book := domain.Ebook{
		Outline: domain.EbookOutline{Title: "Bertani di Kota", Subtitle: "Panduan", Chapters: []string{"Bab 1"}},
		Author:  "Rina",
		Chapters: []domain.EbookChapter{
			{Title: "Bab 1", Content: "Isi bab satu.\nBaris kedua."},
			{Title: "Daftar Pustaka", Content: "Smith (2020)."},
		},
		Cover:   &domain.ImageResponse{Data: []byte("cover"), MimeType: "image/jpeg"},
		Sources: []domain.GroundingSource{{Title: "Kompas", URI: "https://kompas.example"}},
	}

	got, err := p.PublishEbook(context.Background(), book, Options{OutputDir: out})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	md := readFile(t, got.MarkdownPath)
	for _, want := range []string{"# Bertani di Kota", "![Bertani di Kota](cover.jpg)", "## Bab 1", "## Daftar Pustaka", "[Kompas](https://kompas.example)"} {
		if !strings.Contains(md, want) {
			t.Errorf("ebook.md に %q がありません", want)
		}
	}
	html := readFile(t, got.HTMLPath)
	for _, want := range []string{"<title>Bertani di Kota</title>", "<h2>Bab 1</h2>", "Isi bab satu.<br>", `<img src="cover.jpg"`} {
		if !strings.Contains(html, want) {
			t.Errorf("ebook.html に %q がありません:\n%s", want, html)
		}
	}
	if filepath.Base(got.ImagePaths[0]) != "cover.jpg" {
		t.Errorf("表紙のファイル名が不正です: %s", got.ImagePaths[0])
	}
}

func TestPublisher_PublishVideoScript(t *testing.T) {
	p, out := newTestPublisher(t)
	script := domain.VideoScript{
		Title:      "Video Iklan: Siti - Kasih Solusi",
		Scenes:     []string{"Scene one prompt", "Scene two prompt"},
		Directives: []string{"Scene 1:\n- Character: Siti", "Scene 2:\n- Character: Siti"},
	}
	got, err := p.PublishVideoScript(context.Background(), script, Options{OutputDir: out})
	if err != nil {
		t.Fatal(err)
	}
	md := readFile(t, got.MarkdownPath)
	if !strings.HasPrefix(md, "# Video Iklan: Siti - Kasih Solusi") || !strings.Contains(md, "## Scene 2\n\nScene two prompt") {
		t.Errorf("script.md が不正です:\n%s", md)
	}
	if len(got.ImagePaths) != 0 || got.HTMLPath != "" {
		t.Error("スクリプトには画像も HTML もありません")
	}
}

func TestBuildMarkdown(t *testing.T) {
	t.Run("SEO は引用元を並べること", func(t *testing.T) {
		md := BuildSeoMarkdown("kopi", domain.SeoContent{
			Description: "Kopi terbaik.",
			Hashtags:    []string{"#kopi", "#umkm"},
			Sources:     []domain.GroundingSource{{URI: "https://a.example"}},
		})
		if !strings.Contains(md, "#kopi #umkm") || !strings.Contains(md, "- [https://a.example](https://a.example)") {
			t.Errorf("SEO の Markdown が不正です:\n%s", md)
		}
	})

	t.Run("バイラルはプロットを先に書くこと", func(t *testing.T) {
		plot := &domain.StoryPlot{Summary: "ringkasan", Outline: []string{"satu", "dua"}}
		md := BuildScriptMarkdown(domain.VideoScript{Title: "Konten Viral: x", Scenes: []string{"a", "b"}}, plot)
		if strings.Index(md, "1. satu") > strings.Index(md, "## Scene 1") {
			t.Errorf("プロットがシーンより後にあります:\n%s", md)
		}
	})

	t.Run("歌詞はコードブロックで改行を保つこと", func(t *testing.T) {
		md := BuildSongMarkdown(domain.Song{Title: "Senja", Artist: "Rina", Lyrics: "[Verse]\nbaris"})
		if !strings.Contains(md, "```text\n[Verse]\nbaris\n```") {
			t.Errorf("歌詞の Markdown が不正です:\n%s", md)
		}
	})
}

func TestRunDir_Concurrent(t *testing.T) {
	out := t.TempDir()
	now := time.Date(2026, 10, 19, 10, 15, 0, 0, time.UTC)

	const n = 8
	dirs := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dirs[i], errs[i] = RunDir(out, KindSeo, now)
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i, d := range dirs {
		if errs[i] != nil {
			t.Fatalf("予期しないエラー: %v", errs[i])
		}
		if seen[d] {
			t.Errorf("同じディレクトリが二度返されました: %s", d)
		}
		seen[d] = true
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			t.Errorf("ディレクトリが作成されていません: %s", d)
		}
	}
}
