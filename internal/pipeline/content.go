package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/publisher"
	"github.com/shouni/go-kreator-kit/pkg/runner"
)

// ViralInput はバイラル動画の入力なのだ。ProFile があれば Pro モードで実行するのだ。
type ViralInput struct {
	Idea     string   `yaml:"idea"`
	Cast     []string `yaml:"cast"`
	CastFile string   `yaml:"cast_file"`
	Scenes   int      `yaml:"scenes"`
	Style    string   `yaml:"style"`
	Mood     string   `yaml:"mood"`
	Language string   `yaml:"language"`
	Location string   `yaml:"location"`
	ProFile  string   `yaml:"pro_file"`
}

// EbookInput は電子書籍の入力なのだ。
type EbookInput struct {
	Idea     string `yaml:"idea"`
	Audience string `yaml:"audience"`
	Style    string `yaml:"style"`
	Author   string `yaml:"author"`
	Chapters int    `yaml:"chapters"`
}

// SongInput は歌詞とジャケットの入力なのだ。
type SongInput struct {
	Idea      string `yaml:"idea"`
	Genre     string `yaml:"genre"`
	Mood      string `yaml:"mood"`
	Language  string `yaml:"language"`
	Structure string `yaml:"structure"`
	Artist    string `yaml:"artist"`
}

// SeoInput は SEO 文案の入力なのだ。
type SeoInput struct {
	Topic string `yaml:"topic"`
}

// AnalyzeInput は保存用アセットの解析の入力なのだ。Kind は product か location なのだ。
type AnalyzeInput struct {
	Kind     string `yaml:"kind"`
	Image    string `yaml:"image"`
	Category string `yaml:"category"`
	SaveAs   string `yaml:"save_as"`
}

// ExecuteViral はバイラル動画のスクリプトを生成して書き出すのだ。
func ExecuteViral(ctx context.Context, appCtx *builder.AppContext, in ViralInput) (*Report, error) {
	cast, err := resolveCast(ctx, appCtx, in)
	if err != nil {
		return nil, err
	}
	language := orDefault(in.Language, DefaultLanguage)

	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildViralRunner()
	if err != nil {
		return nil, fmt.Errorf("ViralRunnerの構築に失敗したのだ: %w", err)
	}

	var res domain.ViralResult
	if in.ProFile != "" {
		var scenes []domain.ProScene
		if err := readYAMLFile(in.ProFile, &scenes); err != nil {
			return nil, err
		}
		res, err = r.RunPro(ctx, runner.ViralProRequest{Idea: in.Idea, Cast: cast, Language: language, Scenes: scenes})
	} else {
		location, lerr := resolveSubject(ctx, appCtx, domain.AssetLocation, in.Location)
		if lerr != nil {
			return nil, lerr
		}
		res, err = r.Run(ctx, runner.ViralRequest{
			Idea:     in.Idea,
			Cast:     cast,
			Scenes:   in.Scenes,
			Style:    in.Style,
			Mood:     in.Mood,
			Language: language,
			Location: location,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("バイラル動画のスクリプト生成に失敗したのだ: %w", err)
	}

	published, err := appCtx.Publisher.PublishViral(ctx, res, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("バイラル動画のスクリプトの書き出しに失敗したのだ: %w", err)
	}
	return &Report{Kind: publisher.KindViral, Published: published}, nil
}

// resolveCast は保存済みアバターの参照とキャストファイルから登場人物を集めるのだ。
func resolveCast(ctx context.Context, appCtx *builder.AppContext, in ViralInput) ([]domain.CastMember, error) {
	var cast []domain.CastMember
	for _, ref := range in.Cast {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		a, err := appCtx.Assets.Find(ctx, domain.AssetAvatar, ref)
		if err != nil {
			return nil, err
		}
		cast = append(cast, domain.CastMember{Name: a.Name, Description: a.Identity})
	}
	if in.CastFile != "" {
		var fromFile []domain.CastMember
		if err := readYAMLFile(in.CastFile, &fromFile); err != nil {
			return nil, err
		}
		cast = append(cast, fromFile...)
	}
	return cast, nil
}

// ExecuteEbook は電子書籍を生成して ebook.md と ebook.html を書き出すのだ。
func ExecuteEbook(ctx context.Context, appCtx *builder.AppContext, in EbookInput) (*Report, error) {
	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildEbookRunner()
	if err != nil {
		return nil, fmt.Errorf("EbookRunnerの構築に失敗したのだ: %w", err)
	}
	book, err := r.Run(ctx, runner.EbookRequest{
		Idea:     in.Idea,
		Audience: in.Audience,
		Style:    in.Style,
		Author:   in.Author,
		Chapters: in.Chapters,
	})
	if err != nil {
		return nil, fmt.Errorf("電子書籍の生成に失敗したのだ: %w", err)
	}
	published, err := appCtx.Publisher.PublishEbook(ctx, book, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("電子書籍の書き出しに失敗したのだ: %w", err)
	}
	return &Report{Kind: publisher.KindEbook, Published: published}, nil
}

// ExecuteSong は歌詞とジャケットを生成して書き出すのだ。
func ExecuteSong(ctx context.Context, appCtx *builder.AppContext, in SongInput) (*Report, error) {
	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildSongRunner()
	if err != nil {
		return nil, fmt.Errorf("SongRunnerの構築に失敗したのだ: %w", err)
	}
	song, err := r.Run(ctx, runner.SongRequest{
		Idea:      in.Idea,
		Genre:     in.Genre,
		Mood:      in.Mood,
		Language:  orDefault(in.Language, DefaultLanguage),
		Structure: in.Structure,
		Artist:    in.Artist,
	})
	if err != nil {
		return nil, fmt.Errorf("歌詞の生成に失敗したのだ: %w", err)
	}
	published, err := appCtx.Publisher.PublishSong(ctx, song, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("歌詞の書き出しに失敗したのだ: %w", err)
	}
	return &Report{Kind: publisher.KindSong, Published: published}, nil
}

// ExecuteSeo は SEO 文案を生成して、引用元と一緒に書き出すのだ。
func ExecuteSeo(ctx context.Context, appCtx *builder.AppContext, in SeoInput) (*Report, error) {
	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildSeoRunner()
	if err != nil {
		return nil, fmt.Errorf("SeoRunnerの構築に失敗したのだ: %w", err)
	}
	seo, err := r.Run(ctx, runner.SeoRequest{Topic: in.Topic})
	if err != nil {
		return nil, fmt.Errorf("SEO 文案の生成に失敗したのだ: %w", err)
	}
	published, err := appCtx.Publisher.PublishSeo(ctx, in.Topic, seo, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("SEO 文案の書き出しに失敗したのだ: %w", err)
	}
	return &Report{Kind: publisher.KindSeo, Published: published}, nil
}

// ExecuteAnalyze は商品またはロケーションの画像を解析して書き出し、必要なら DNA を保存するのだ。
func ExecuteAnalyze(ctx context.Context, appCtx *builder.AppContext, in AnalyzeInput) (*Report, error) {
	kind, err := domain.ParseAssetKind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if err != nil {
		return nil, err
	}
	if kind == domain.AssetAvatar {
		return nil, domain.NewValidationError("kind", "アバターは avatar コマンドで作成してください")
	}
	img, err := loadImage(in.Image)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, domain.NewValidationError("image", "画像が指定されていません")
	}

	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildAnalysisRunner()
	if err != nil {
		return nil, fmt.Errorf("AnalysisRunnerの構築に失敗したのだ: %w", err)
	}

	var res domain.AnalysisResult
	if kind == domain.AssetProduct {
		res, err = r.AnalyzeProduct(ctx, runner.AnalyzeProductRequest{Image: *img, Category: in.Category})
	} else {
		res, err = r.AnalyzeLocation(ctx, *img)
	}
	if err != nil {
		return nil, fmt.Errorf("%s の解析に失敗したのだ: %w", kind, err)
	}

	published, err := appCtx.Publisher.PublishAnalysis(ctx, res, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("解析結果の書き出しに失敗したのだ: %w", err)
	}
	report := &Report{Kind: publisher.KindAnalysis, Published: published}
	return report, saveAsset(ctx, appCtx, report, kind, in.SaveAs, in.Image, res.Identity)
}
