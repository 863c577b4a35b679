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

const (
	// MaxChapters は一冊で扱える章の上限なのだ。
	MaxChapters = 20

	firstChapterContext = "Ini adalah bab pertama."
	chapterContextRunes = 300
	bibliographyTitle   = "Daftar Pustaka"
)

// EbookRequest は電子書籍生成のリクエストなのだ。
type EbookRequest struct {
	Idea     string `validate:"required"`
	Audience string `validate:"required"`
	Style    string `validate:"required"`
	Author   string `validate:"required"`
	Chapters int    `validate:"min=1,max=20"`
}

// chapterFold は章ごとの執筆で引き継ぐ状態なのだ。
// 各章の結果から次の状態を作り、ループ外の変数は書き換えないのだ。
type chapterFold struct {
	context    string
	chapters   []domain.EbookChapter
	references []string
	sources    []domain.GroundingSource
}

// next は書き終えた章を畳み込んだ新しい状態を返すのだ。
func (f chapterFold) next(ch domain.EbookChapter, refs []string, sources []domain.GroundingSource) chapterFold {
	return chapterFold{
		context:    nextChapterContext(ch.Title, ch.Content),
		chapters:   append(append([]domain.EbookChapter(nil), f.chapters...), ch),
		references: append(append([]string(nil), f.references...), refs...),
		sources:    mergeSources(f.sources, sources),
	}
}

// nextChapterContext は次の章に渡す直前の章の要約なのだ。
func nextChapterContext(title, content string) string {
	return fmt.Sprintf("Konten dari bab sebelumnya (\"%s\") adalah: %s...", title, parser.Excerpt(content, chapterContextRunes))
}

// EbookRunner は電子書籍生成の実行実体なのだ。
type EbookRunner struct {
	*engine
}

// NewEbookRunner は依存関係を注入して初期化します。
func NewEbookRunner(d Deps) (*EbookRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &EbookRunner{engine: e}, nil
}

// Run は章立て、各章の執筆、表紙の生成を順番に実行するのだ。
func (r *EbookRunner) Run(ctx context.Context, req EbookRequest) (domain.Ebook, error) {
	req.Idea = strings.TrimSpace(req.Idea)
	req.Audience = strings.TrimSpace(req.Audience)
	req.Author = strings.TrimSpace(req.Author)
	if req.Idea == "" || req.Audience == "" || req.Author == "" {
		return domain.Ebook{}, domain.NewValidationError("ebook", "Silakan isi ide Ebook, target pembaca, dan nama pengarang.")
	}
	if err := r.check(req); err != nil {
		return domain.Ebook{}, err
	}
	scientific := domain.IsScientificEbookStyle(req.Style)

	// 1. 章立て
	slog.InfoContext(ctx, "電子書籍の章立てを作成するのだ", "chapters", req.Chapters, "scientific", scientific)
	outlineRes, err := r.text(ctx, "章立ての作成", prompts.ModeEbookOutline, prompts.EbookOutlineData{
		Idea:     req.Idea,
		Audience: req.Audience,
		Style:    req.Style,
		Chapters: req.Chapters,
	}, nil, provider.TextOptions{StructuredOutput: true})
	if err != nil {
		return domain.Ebook{}, err
	}
	outline, err := parser.ParseEbookOutline(outlineRes.Text, req.Chapters)
	if err != nil {
		return domain.Ebook{}, fmt.Errorf("章立ての解析に失敗しました: %w", err)
	}

	// 2. 各章の執筆
	state := chapterFold{context: firstChapterContext}
	for i, title := range outline.Chapters {
		slog.InfoContext(ctx, "章を執筆するのだ", "index", i+1, "title", title)
		res, err := r.text(ctx, fmt.Sprintf("第%d章の執筆", i+1), prompts.ModeEbookChapter, prompts.EbookChapterData{
			Idea:         req.Idea,
			Audience:     req.Audience,
			Style:        req.Style,
			EbookTitle:   outline.Title,
			ChapterTitle: title,
			Context:      state.context,
		}, nil, provider.TextOptions{WebGrounding: scientific})
		if err != nil {
			return domain.Ebook{}, err
		}

		content := parser.StripEmphasis(res.Text)
		var refs []string
		if scientific {
			content, refs = parser.SplitBibliography(content)
		}
		state = state.next(domain.EbookChapter{Title: title, Content: strings.TrimSpace(content)}, refs, res.Sources)
	}

	chapters := state.chapters
	if refs := parser.UniqueLines(state.references); len(refs) > 0 {
		chapters = append(chapters, domain.EbookChapter{Title: bibliographyTitle, Content: strings.Join(refs, "\n")})
	}

	// 3. 表紙
	summary := fmt.Sprintf("Ide: %s. Pembaca: %s. Judul: %s. Kerangka: %s",
		req.Idea, req.Audience, outline.Title, strings.Join(outline.Chapters, ", "))
	coverRes, err := r.text(ctx, "表紙プロンプトの生成", prompts.ModeEbookCover, prompts.EbookCoverData{
		Title:   outline.Title,
		Author:  req.Author,
		Summary: summary,
	}, nil, provider.TextOptions{})
	if err != nil {
		return domain.Ebook{}, err
	}
	coverPrompt := domain.ScenePrompt(coverRes.Text)
	cover, err := r.render(ctx, "表紙の生成", coverPrompt)
	if err != nil {
		return domain.Ebook{}, err
	}

	trail := domain.PromptTrail{}.
		Add("Ide Ebook", req.Idea).
		Add("Target Pembaca", req.Audience).
		Add("Nama Pengarang", req.Author).
		Add("Gaya Penulisan", req.Style).
		Add("Prompt Sampul Ebook", string(coverPrompt))

	return domain.Ebook{
		Outline:     outline,
		Author:      req.Author,
		Chapters:    chapters,
		CoverPrompt: coverPrompt,
		Cover:       cover,
		Sources:     state.sources,
		Trail:       trail,
	}, nil
}

// mergeSources は URI で重複を取り除きながら引用元を連結するのだ。
func mergeSources(base, add []domain.GroundingSource) []domain.GroundingSource {
	out := append([]domain.GroundingSource(nil), base...)
	seen := make(map[string]struct{}, len(out))
	for _, s := range out {
		seen[s.URI] = struct{}{}
	}
	for _, s := range add {
		if _, ok := seen[s.URI]; ok {
			continue
		}
		seen[s.URI] = struct{}{}
		out = append(out, s)
	}
	return out
}
