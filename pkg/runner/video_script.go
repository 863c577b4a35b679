package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/director"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/generator"
	"github.com/shouni/go-kreator-kit/pkg/parser"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// HistoryAppender は成功した動画スクリプトを履歴に残す先なのだ。
type HistoryAppender interface {
	Append(ctx context.Context, rec domain.HistoryRecord) (domain.HistoryRecord, error)
}

// VideoScriptRequest は動画スクリプト生成のリクエストなのだ。
// 通常は直前の広告シーン生成の結果（MasterScene と DNA）を引き継いで作るのだ。
type VideoScriptRequest struct {
	MasterScene   domain.ScenePrompt `validate:"required"`
	Description   string             `validate:"required"`
	Style         domain.VideoStyle  `validate:"required"`
	Language      string             `validate:"required"`
	Scenes        int                `validate:"min=1,max=10"`
	CallToAction  string             `validate:"required"`
	Avatar        *generator.IdentityDNA
	Framing       domain.Framing
	Product       generator.IdentityDNA
	TVName        string
	NewsLocation  string
	StyleLocation string
	Location      domain.Subject
}

// AvatarName は入力ブロックに書き出す話者名を返すのだ。
func (r VideoScriptRequest) AvatarName() string {
	if r.Avatar == nil {
		return domain.NarratorName
	}
	return r.Avatar.Name
}

// VideoScriptRunner は動画スクリプト生成の実行実体なのだ。
type VideoScriptRunner struct {
	*engine
	history HistoryAppender
}

// NewVideoScriptRunner は依存関係を注入して初期化します。history は nil でもよいのだ。
func NewVideoScriptRunner(d Deps, history HistoryAppender) (*VideoScriptRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &VideoScriptRunner{engine: e, history: history}, nil
}

// Run はスタイルに応じたテンプレートでスクリプトを生成し、シーン数を検証してから履歴に残すのだ。
func (r *VideoScriptRunner) Run(ctx context.Context, req VideoScriptRequest) (domain.VideoScript, error) {
	req.CallToAction = strings.TrimSpace(req.CallToAction)
	if req.CallToAction == "" {
		return domain.VideoScript{}, domain.NewValidationError("call_to_action", "Silakan tentukan Call to Action (CTA).")
	}
	if err := r.check(req); err != nil {
		return domain.VideoScript{}, err
	}
	if req.Product.Text.IsEmpty() {
		return domain.VideoScript{}, domain.NewValidationError("product", "商品またはサービスの DNA が必要です")
	}
	if req.Framing == "" {
		req.Framing = domain.FramingDirector
	}

	var (
		mode       prompts.Mode
		data       any
		directives []string
	)
	if req.Style == domain.StyleNews {
		mode = prompts.ModeVideoScriptNews
		news := prompts.NewsScriptData{
			Description:  req.Description,
			NewsLocation: strings.TrimSpace(req.NewsLocation),
			TVName:       strings.TrimSpace(req.TVName),
			Scenes:       req.Scenes,
			CallToAction: req.CallToAction,
			Language:     req.Language,
		}
		if req.Avatar != nil {
			news.Character = req.Avatar.Text
		}
		// 保存済みロケーションはニュース形式でもスタジオ指定より優先するのだ
		choice, err := r.styles.ResolveLocation(req.Style, req.Location, req.StyleLocation)
		if err != nil {
			return domain.VideoScript{}, err
		}
		if choice.Source == director.LocationSaved {
			news.NewsLocation = choice.Text
		}
		data = news
	} else {
		mode = prompts.ModeVideoScriptStandard
		standard, blocks, err := r.standardInput(req)
		if err != nil {
			return domain.VideoScript{}, err
		}
		data, directives = standard, blocks
	}

	slog.InfoContext(ctx, "動画スクリプトを生成するのだ", "mode", string(mode), "scenes", req.Scenes, "avatar", req.AvatarName())
	res, err := r.text(ctx, "動画スクリプトの生成", mode, data, nil, provider.TextOptions{StructuredOutput: true})
	if err != nil {
		return domain.VideoScript{}, err
	}
	script, err := parser.ParseVideoScript(res.Text, req.Scenes)
	if err != nil {
		return domain.VideoScript{}, fmt.Errorf("動画スクリプトの解析に失敗しました: %w", err)
	}
	script.Title = fmt.Sprintf("Video Iklan: %s - %s", req.AvatarName(), req.Style)
	script.Directives = directives

	appendHistory(ctx, r.history, script)
	return script, nil
}

// standardInput は通常スタイルの入力ブロックとシーンごとの演出ブロックを組み立てるのだ。
func (r *VideoScriptRunner) standardInput(req VideoScriptRequest) (prompts.VideoScriptData, []string, error) {
	plan, err := r.layout.Plan(req.Scenes, req.Framing, req.Avatar != nil)
	if err != nil {
		return prompts.VideoScriptData{}, nil, err
	}
	choice, err := r.styles.ResolveLocation(req.Style, req.Location, req.StyleLocation)
	if err != nil {
		return prompts.VideoScriptData{}, nil, err
	}
	sceneDirectives, blocks := r.composer.ComposeDirectives(plan, req.Avatar, req.Product, choice.Text)

	data := prompts.VideoScriptData{
		MasterScene:     req.MasterScene,
		Description:     req.Description,
		Style:           req.Style,
		Language:        req.Language,
		Scenes:          req.Scenes,
		CallToAction:    req.CallToAction,
		AvatarName:      req.AvatarName(),
		Framing:         req.Framing,
		SceneDirectives: sceneDirectives,
	}
	if choice.Source == director.LocationStyleSpecific {
		data.StyleLocation = choice.Text
	}
	return data, blocks, nil
}

// appendHistory は履歴に追記します。失敗してもスクリプト自体は成功として扱うのだ。
func appendHistory(ctx context.Context, history HistoryAppender, script domain.VideoScript) {
	if history == nil {
		return
	}
	if _, err := history.Append(ctx, domain.HistoryRecord{Title: script.Title, Scenes: script.Scenes}); err != nil {
		slog.WarnContext(ctx, "履歴の保存に失敗したのだ", "title", script.Title, "error", err)
	}
}
