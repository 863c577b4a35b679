package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-kreator-kit/pkg/asset"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// 実行ディレクトリの種類なのだ。
const (
	KindAvatar   = "avatar"
	KindProduct  = "product"
	KindService  = "service"
	KindVideo    = "video"
	KindViral    = "viral"
	KindEbook    = "ebook"
	KindSong     = "song"
	KindSeo      = "seo"
	KindAnalysis = "analysis"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	Dir          string   `json:"dir"`
	ResultPath   string   `json:"result"`
	MarkdownPath string   `json:"markdown,omitempty"`
	HTMLPath     string   `json:"html,omitempty"`
	ImagePaths   []string `json:"images,omitempty"`
}

// bundle は一回分の実行で書き出すものをまとめたものなのだ。
type bundle struct {
	kind      string
	result    any
	image     *domain.ImageResponse
	imageName string
	// markdown は画像の保存先（実行ディレクトリ内の相対名）を受け取って本文を返すのだ。
	markdown     func(imageName string) string
	markdownName string
	htmlName     string
	title        string
}

// Publisher は成果物の永続化とフォーマット変換を担います。
type Publisher struct {
	writer OutputWriter
	html   *HTMLRenderer
	now    func() time.Time
}

// NewPublisher は書き出し先と HTML 変換器を受け取って Publisher を返すのだ。
func NewPublisher(writer OutputWriter, html *HTMLRenderer) *Publisher {
	if writer == nil {
		writer = LocalWriter{}
	}
	if html == nil {
		html = NewHTMLRenderer("")
	}
	return &Publisher{writer: writer, html: html, now: time.Now}
}

// PublishAvatar はアバター画像と結果を保存するのだ。
func (p *Publisher) PublishAvatar(ctx context.Context, res domain.AvatarResult, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{kind: KindAvatar, result: res, image: res.Image, imageName: asset.DefaultImageFile})
}

// PublishProductAd は商品広告シーンを保存するのだ。
func (p *Publisher) PublishProductAd(ctx context.Context, res domain.ProductAdResult, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{kind: KindProduct, result: res, image: res.Image, imageName: asset.DefaultImageFile})
}

// PublishServiceAd はサービス広告シーンを保存するのだ。
func (p *Publisher) PublishServiceAd(ctx context.Context, res domain.ServiceAdResult, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{kind: KindService, result: res, image: res.Image, imageName: asset.DefaultImageFile})
}

// PublishAnalysis は商品写真・ロケーション解析の結果を保存するのだ。
func (p *Publisher) PublishAnalysis(ctx context.Context, res domain.AnalysisResult, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{kind: KindAnalysis + "-" + string(res.Kind), result: res, image: res.Image, imageName: asset.DefaultImageFile})
}

// PublishVideoScript は動画スクリプトを JSON と Markdown で保存するのだ。
func (p *Publisher) PublishVideoScript(ctx context.Context, script domain.VideoScript, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{
		kind:         KindVideo,
		result:       script,
		markdown:     func(string) string { return BuildScriptMarkdown(script, nil) },
		markdownName: asset.DefaultScriptFile,
	})
}

// PublishViral はバイラル動画のプロットとスクリプトを保存するのだ。
func (p *Publisher) PublishViral(ctx context.Context, res domain.ViralResult, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{
		kind:         KindViral,
		result:       res,
		markdown:     func(string) string { return BuildScriptMarkdown(res.Script, res.Plot) },
		markdownName: asset.DefaultScriptFile,
	})
}

// PublishEbook は表紙、Markdown、HTML を保存するのだ。
func (p *Publisher) PublishEbook(ctx context.Context, book domain.Ebook, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{
		kind:         KindEbook,
		result:       book,
		image:        book.Cover,
		imageName:    asset.DefaultCoverFile,
		markdown:     func(cover string) string { return BuildEbookMarkdown(book, cover) },
		markdownName: asset.DefaultEbookFile,
		htmlName:     asset.DefaultEbookHTML,
		title:        book.Outline.Title,
	})
}

// PublishSong は歌詞とジャケットを保存するのだ。
func (p *Publisher) PublishSong(ctx context.Context, song domain.Song, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{
		kind:         KindSong,
		result:       song,
		image:        song.Cover,
		imageName:    asset.DefaultCoverFile,
		markdown:     func(string) string { return BuildSongMarkdown(song) },
		markdownName: asset.DefaultSongFile,
	})
}

// PublishSeo は SEO 文案を引用元付きで保存するのだ。
func (p *Publisher) PublishSeo(ctx context.Context, topic string, seo domain.SeoContent, opts Options) (PublishResult, error) {
	return p.publish(ctx, opts, bundle{
		kind:         KindSeo,
		result:       seo,
		markdown:     func(string) string { return BuildSeoMarkdown(topic, seo) },
		markdownName: asset.DefaultSeoFile,
	})
}

// publish は画像の保存、JSON の書き出し、Markdown の構築、HTML 変換を一括して実行するのだ。
func (p *Publisher) publish(ctx context.Context, opts Options, b bundle) (PublishResult, error) {
	// 1. 実行ディレクトリの決定
	dir, err := RunDir(opts.OutputDir, b.kind, p.now())
	if err != nil {
		return PublishResult{}, err
	}
	am := NewAssetManager(p.writer, dir)
	result := PublishResult{Dir: dir}

	// 2. 画像の保存
	var imageName string
	if b.image != nil && len(b.image.Data) > 0 {
		imageName = b.imageName
		path, err := am.Save(ctx, imageName, b.image.Data)
		if err != nil {
			return result, fmt.Errorf("画像の書き込みに失敗しました: %w", err)
		}
		result.ImagePaths = append(result.ImagePaths, path)
	}

	// 3. 結果の JSON
	data, err := json.MarshalIndent(b.result, "", "  ")
	if err != nil {
		return result, fmt.Errorf("結果の JSON 変換に失敗しました: %w", err)
	}
	if result.ResultPath, err = am.Save(ctx, asset.DefaultResultJSON, data); err != nil {
		return result, err
	}

	// 4. Markdown と HTML
	if b.markdown != nil {
		content := b.markdown(imageName)
		if result.MarkdownPath, err = am.Save(ctx, b.markdownName, []byte(content)); err != nil {
			return result, err
		}
		if b.htmlName != "" {
			slog.InfoContext(ctx, "HTML に変換するのだ", "title", b.title)
			doc, err := p.html.Render(b.title, []byte(content))
			if err != nil {
				return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
			}
			if result.HTMLPath, err = am.Save(ctx, b.htmlName, doc); err != nil {
				return result, err
			}
		}
	}

	slog.InfoContext(ctx, "成果物を保存したのだ", "dir", dir, "kind", b.kind)
	return result, nil
}
