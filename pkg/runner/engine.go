package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shouni/go-kreator-kit/pkg/director"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/generator"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = time.Hour
)

// Deps は各 Runner が共有する依存関係なのだ。
// Gateway と Catalog 以外は nil なら既定のものを使うのだ。
type Deps struct {
	Gateway   provider.Gateway
	Catalog   prompts.PromptCatalog
	Cache     *generator.IdentityCache
	Styles    *director.StyleManager
	Layout    *director.LayoutManager
	Composer  *generator.SceneComposer
	Validator *validator.Validate
}

// engine は全ての Runner が使う一回分の AI 呼び出しの手順をまとめたものなのだ。
type engine struct {
	gateway  provider.Gateway
	catalog  prompts.PromptCatalog
	cache    *generator.IdentityCache
	styles   *director.StyleManager
	layout   *director.LayoutManager
	composer *generator.SceneComposer
	validate *validator.Validate
}

func newEngine(d Deps) (*engine, error) {
	if d.Gateway == nil {
		return nil, fmt.Errorf("Gateway は必須です")
	}
	if d.Catalog == nil {
		return nil, fmt.Errorf("Catalog は必須です")
	}
	e := &engine{
		gateway:  d.Gateway,
		catalog:  d.Catalog,
		cache:    d.Cache,
		styles:   d.Styles,
		layout:   d.Layout,
		composer: d.Composer,
		validate: d.Validator,
	}
	if e.cache == nil {
		e.cache = generator.NewIdentityCache(defaultCacheExpiration, cacheCleanupInterval)
	}
	if e.styles == nil {
		e.styles = director.NewStyleManager()
	}
	if e.layout == nil {
		e.layout = director.NewLayoutManager()
	}
	if e.composer == nil {
		e.composer = generator.NewSceneComposer(e.layout)
	}
	if e.validate == nil {
		e.validate = validator.New()
	}
	return e, nil
}

// check はリクエスト構造体のタグを検証し、失敗を ValidationError に変換するのだ。
func (e *engine) check(req any) error {
	err := e.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("入力が不正です (%s=%s)", fe.Tag(), fe.Param()))
	}
	return domain.NewValidationError("request", err.Error())
}

// text は指定モードのインストラクションと入力ブロックで一回だけテキスト生成を呼ぶのだ。
// data が nil のときは入力ブロックを持たず、画像パートだけを渡すのだ。
func (e *engine) text(ctx context.Context, step string, mode prompts.Mode, data any, images []provider.Part, opts provider.TextOptions) (provider.TextResult, error) {
	instruction, err := e.catalog.Instruction(mode)
	if err != nil {
		return provider.TextResult{}, err
	}

	parts := make([]provider.Part, 0, len(images)+1)
	if data != nil {
		input, err := e.catalog.BuildInput(mode, data)
		if err != nil {
			return provider.TextResult{}, fmt.Errorf("入力ブロックの構築に失敗しました: %w", err)
		}
		parts = append(parts, provider.TextPart(input))
	}
	parts = append(parts, images...)

	slog.InfoContext(ctx, "テキスト生成を実行するのだ", "step", step, "mode", string(mode), "structured", opts.StructuredOutput, "grounding", opts.WebGrounding)
	res, err := e.gateway.GenerateText(ctx, instruction, parts, opts)
	if err != nil {
		return provider.TextResult{}, fmt.Errorf("%s に失敗しました: %w", step, err)
	}
	res.Text = strings.TrimSpace(res.Text)
	if res.Text == "" {
		return provider.TextResult{}, &domain.ProviderError{Op: "text", Message: step + " の応答が空です"}
	}
	return res, nil
}

// analyzeImage は画像から DNA を抽出します。同じ画像とモードの結果はキャッシュから再利用するのだ。
func (e *engine) analyzeImage(ctx context.Context, step string, mode prompts.Mode, image provider.Part) (domain.IdentityDescription, error) {
	if !image.IsImage() {
		return "", domain.NewValidationError("image", "画像が指定されていません")
	}
	dna, hit, err := e.cache.GetOrAnalyze(ctx, string(mode), image.Data, func(ctx context.Context) (domain.IdentityDescription, error) {
		res, err := e.text(ctx, step, mode, nil, []provider.Part{image}, provider.TextOptions{})
		if err != nil {
			return "", err
		}
		return domain.IdentityDescription(res.Text), nil
	})
	if err != nil {
		return "", err
	}
	if hit {
		slog.InfoContext(ctx, "解析済みの DNA を再利用するのだ", "step", step, "mode", string(mode))
	}
	return dna, nil
}

// render は ScenePrompt から画像を一枚生成するのだ。
func (e *engine) render(ctx context.Context, step string, prompt domain.ScenePrompt) (*domain.ImageResponse, error) {
	slog.InfoContext(ctx, "画像を生成するのだ", "step", step, "prompt_len", len(prompt))
	img, err := e.gateway.GenerateImage(ctx, string(prompt))
	if err != nil {
		return nil, fmt.Errorf("%s に失敗しました: %w", step, err)
	}
	if img == nil || len(img.Data) == 0 {
		return nil, &domain.ProviderError{Op: "image", Message: "AI tidak mengembalikan output gambar."}
	}
	return img, nil
}

// resolveLocation はロケーションを解決し、合成の入力に渡す値を返すのだ。
// 保存済みやスタイル専用のロケーションは Mandatory Location に入り、既定の環境は使わないのだ。
func (e *engine) resolveLocation(style domain.VideoStyle, loc domain.Subject, styleLocation string) (choice director.LocationChoice, location, environment string, err error) {
	choice, err = e.styles.ResolveLocation(style, loc, styleLocation)
	if err != nil {
		return director.LocationChoice{}, "", "", err
	}
	switch choice.Source {
	case director.LocationSaved, director.LocationStyleSpecific:
		location = choice.Text
	case director.LocationStyleDefault:
		environment = choice.Text
	case director.LocationInvented:
	}
	return choice, location, environment, nil
}
