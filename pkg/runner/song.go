package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/parser"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// SongRequest は歌詞とジャケット生成のリクエストなのだ。
type SongRequest struct {
	Idea      string `validate:"required"`
	Genre     string `validate:"required"`
	Mood      string `validate:"required"`
	Language  string `validate:"required"`
	Structure string
	Artist    string `validate:"required"`
}

// SongRunner は歌詞生成の実行実体なのだ。
type SongRunner struct {
	*engine
}

// NewSongRunner は依存関係を注入して初期化します。
func NewSongRunner(d Deps) (*SongRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &SongRunner{engine: e}, nil
}

// Run は歌詞、ジャケットのプロンプト、ジャケット画像を順番に生成するのだ。
func (r *SongRunner) Run(ctx context.Context, req SongRequest) (domain.Song, error) {
	req.Idea = strings.TrimSpace(req.Idea)
	req.Artist = strings.TrimSpace(req.Artist)
	if err := r.check(req); err != nil {
		return domain.Song{}, err
	}

	// 1. 歌詞
	slog.InfoContext(ctx, "歌詞を生成するのだ", "genre", req.Genre, "mood", req.Mood)
	res, err := r.text(ctx, "歌詞の生成", prompts.ModeSongLyrics, prompts.SongLyricsData{
		Idea:      req.Idea,
		Genre:     req.Genre,
		Mood:      req.Mood,
		Language:  req.Language,
		Artist:    req.Artist,
		Structure: req.Structure,
	}, nil, provider.TextOptions{StructuredOutput: true})
	if err != nil {
		return domain.Song{}, err
	}
	song, err := parser.ParseSong(res.Text)
	if err != nil {
		return domain.Song{}, fmt.Errorf("歌詞の解析に失敗しました: %w", err)
	}

	// 2. ジャケット
	summary := fmt.Sprintf("Sebuah lagu %s yang %s berjudul \"%s\" oleh %s. Liriknya tentang: %s",
		req.Genre, strings.ToLower(req.Mood), song.Title, song.Artist, req.Idea)
	coverRes, err := r.text(ctx, "ジャケットプロンプトの生成", prompts.ModeSongCover, prompts.SongCoverData{
		Title:   song.Title,
		Artist:  song.Artist,
		Summary: summary,
		Genre:   req.Genre,
		Mood:    req.Mood,
	}, nil, provider.TextOptions{})
	if err != nil {
		return domain.Song{}, err
	}
	song.CoverPrompt = domain.ScenePrompt(coverRes.Text)
	if song.Cover, err = r.render(ctx, "ジャケットの生成", song.CoverPrompt); err != nil {
		return domain.Song{}, err
	}

	song.Trail = domain.PromptTrail{}.
		Add("Ide Lagu", req.Idea).
		Add("Nama Artis", req.Artist).
		Add("Genre", req.Genre).
		Add("Mood", req.Mood).
		Add("Bahasa", req.Language).
		Add("Prompt Sampul Lagu", string(song.CoverPrompt))
	return song, nil
}
