package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// AvatarAnalysisMode は参照画像からアバターを作るときの解析方法なのだ。
type AvatarAnalysisMode string

const (
	// AvatarModeReplicate は写真全体（服装・背景・ポーズ）を再現するのだ。
	AvatarModeReplicate AvatarAnalysisMode = "replicate"
	// AvatarModeFace は顔だけを抽出して新しいポートレートを作るのだ。
	AvatarModeFace AvatarAnalysisMode = "face"
)

// AvatarIdeaRequest はテキストのアイデアからアバターを作るリクエストなのだ。
type AvatarIdeaRequest struct {
	Idea  string `validate:"required"`
	Style string
}

// AvatarImageRequest は参照画像からアバターを作るリクエストなのだ。
type AvatarImageRequest struct {
	Image                  provider.Part
	Mode                   AvatarAnalysisMode `validate:"required,oneof=replicate face"`
	AdditionalInstructions string
}

// AvatarRunner はアバター生成パイプラインの実行実体なのだ。
type AvatarRunner struct {
	*engine
}

// NewAvatarRunner は依存関係を注入して初期化します。
func NewAvatarRunner(d Deps) (*AvatarRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &AvatarRunner{engine: e}, nil
}

// RunFromIdea はアイデアを最適化して描画し、描画結果から DNA を抽出するのだ。
func (r *AvatarRunner) RunFromIdea(ctx context.Context, req AvatarIdeaRequest) (domain.AvatarResult, error) {
	req.Idea = strings.TrimSpace(req.Idea)
	if req.Idea == "" {
		return domain.AvatarResult{}, domain.NewValidationError("idea", "description required")
	}
	if err := r.check(req); err != nil {
		return domain.AvatarResult{}, err
	}
	slog.InfoContext(ctx, "アイデアからアバターを生成するのだ", "style", req.Style)

	// 1. プロンプトの最適化
	opt, err := r.text(ctx, "プロンプト最適化", prompts.ModePromptOptimizer, prompts.OptimizerData{Idea: req.Idea, Style: req.Style}, nil, provider.TextOptions{})
	if err != nil {
		return domain.AvatarResult{}, err
	}
	scene := domain.ScenePrompt(opt.Text)

	trail := domain.PromptTrail{}.
		Add("Ide Awal", req.Idea).
		Add("Gaya", req.Style).
		Add("Prompt Generasi", string(scene))

	return r.finish(ctx, scene, trail)
}

// RunFromImage は参照画像を解析して描画し、描画結果から DNA を抽出するのだ。
func (r *AvatarRunner) RunFromImage(ctx context.Context, req AvatarImageRequest) (domain.AvatarResult, error) {
	if !req.Image.IsImage() {
		return domain.AvatarResult{}, domain.NewValidationError("image", "参照画像は必須です")
	}
	if err := r.check(req); err != nil {
		return domain.AvatarResult{}, err
	}

	var mode prompts.Mode
	switch req.Mode {
	case AvatarModeReplicate:
		mode = prompts.ModeReplicationAnalysis
	case AvatarModeFace:
		mode = prompts.ModeReferenceAnalysis
	default:
		return domain.AvatarResult{}, domain.NewValidationError("mode", fmt.Sprintf("不明な解析モードです: %s", req.Mode))
	}
	slog.InfoContext(ctx, "参照画像からアバターを生成するのだ", "mode", string(req.Mode))

	// 1. 参照画像の解析
	analysis, err := r.analyzeImage(ctx, "参照画像の解析", mode, req.Image)
	if err != nil {
		return domain.AvatarResult{}, err
	}
	scene := domain.ScenePrompt(analysis)
	if extra := strings.TrimSpace(req.AdditionalInstructions); extra != "" {
		scene += domain.ScenePrompt(" " + extra)
	}

	trail := domain.PromptTrail{}.
		Add("Mode Analisis", string(req.Mode)).
		Add("Instruksi Tambahan", req.AdditionalInstructions).
		Add("Prompt Generasi Final", string(scene))

	return r.finish(ctx, scene, trail)
}

// finish は描画と一貫性のための DNA 抽出を行う共通の後半手順なのだ。
func (r *AvatarRunner) finish(ctx context.Context, scene domain.ScenePrompt, trail domain.PromptTrail) (domain.AvatarResult, error) {
	// 2. 描画
	img, err := r.render(ctx, "アバター画像の生成", scene)
	if err != nil {
		return domain.AvatarResult{}, err
	}

	// 3. 描画結果から DNA を抽出
	identity, err := r.analyzeImage(ctx, "一貫性のための解析", prompts.ModeReferenceAnalysis, provider.ImagePart(img.Data, mimeOf(img)))
	if err != nil {
		return domain.AvatarResult{}, err
	}

	return domain.AvatarResult{
		Image:       img,
		ScenePrompt: scene,
		Identity:    identity,
		Trail:       trail.Add("Prompt Konsistensi Final", string(identity)),
	}, nil
}

func mimeOf(img *domain.ImageResponse) string {
	if img.MimeType == "" {
		return domain.DefaultImageMimeType
	}
	return img.MimeType
}
