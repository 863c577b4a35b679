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

// viralTitleRunes は履歴タイトルに使うアイデアの文字数なのだ。
const viralTitleRunes = 50

// ViralRequest はバイラル動画（インスタントモード）のリクエストなのだ。
type ViralRequest struct {
	Idea     string              `validate:"required"`
	Cast     []domain.CastMember `validate:"required,min=1,dive"`
	Scenes   int                 `validate:"min=1,max=10"`
	Style    string              `validate:"required"`
	Mood     string              `validate:"required"`
	Language string              `validate:"required"`
	Location domain.Subject
}

// ViralProRequest はユーザーがシーンの内訳を直接書く Pro モードのリクエストなのだ。
type ViralProRequest struct {
	Idea     string              `validate:"required"`
	Cast     []domain.CastMember `validate:"required,min=1,dive"`
	Language string              `validate:"required"`
	Scenes   []domain.ProScene   `validate:"required,min=1,max=10,dive"`
}

// ViralRunner はバイラル動画スクリプト生成の実行実体なのだ。
type ViralRunner struct {
	*engine
	history HistoryAppender
}

// NewViralRunner は依存関係を注入して初期化します。history は nil でもよいのだ。
func NewViralRunner(d Deps, history HistoryAppender) (*ViralRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &ViralRunner{engine: e, history: history}, nil
}

// Run はプロットを構築してから、そのアウトラインをもとにシーンごとのスクリプトを書くのだ。
func (r *ViralRunner) Run(ctx context.Context, req ViralRequest) (domain.ViralResult, error) {
	req.Idea = strings.TrimSpace(req.Idea)
	if err := r.check(req); err != nil {
		return domain.ViralResult{}, err
	}

	var setting string
	switch req.Location.Kind {
	case domain.SubjectSaved:
		if err := req.Location.Validate(); err != nil {
			return domain.ViralResult{}, err
		}
		setting = string(req.Location.Identity())
	case domain.SubjectNone, domain.SubjectAIChosen:
	default:
		return domain.ViralResult{}, domain.NewValidationError("location", fmt.Sprintf("不明なロケーション選択です: %s", req.Location.Kind))
	}

	// 1. プロット構築
	slog.InfoContext(ctx, "バイラル動画のプロットを構築するのだ", "scenes", req.Scenes, "cast", len(req.Cast))
	plotRes, err := r.text(ctx, "プロット構築", prompts.ModeStoryOptimizer, prompts.StoryOptimizerData{
		Idea:    req.Idea,
		Cast:    req.Cast,
		Scenes:  req.Scenes,
		Style:   req.Style,
		Mood:    req.Mood,
		Setting: setting,
	}, nil, provider.TextOptions{StructuredOutput: true})
	if err != nil {
		return domain.ViralResult{}, err
	}
	plot, err := parser.ParseStoryPlot(plotRes.Text, req.Scenes)
	if err != nil {
		return domain.ViralResult{}, fmt.Errorf("プロットの解析に失敗しました: %w", err)
	}

	// 2. シーンスクリプトの生成
	scriptRes, err := r.text(ctx, "シーンスクリプトの生成", prompts.ModeSceneGenerator, prompts.SceneGeneratorData{
		Outline:  plot.Outline,
		Cast:     req.Cast,
		Scenes:   req.Scenes,
		Style:    req.Style,
		Mood:     req.Mood,
		Language: req.Language,
	}, nil, provider.TextOptions{StructuredOutput: true})
	if err != nil {
		return domain.ViralResult{}, err
	}
	script, err := parser.ParseVideoScript(scriptRes.Text, req.Scenes)
	if err != nil {
		return domain.ViralResult{}, fmt.Errorf("シーンスクリプトの解析に失敗しました: %w", err)
	}
	script.Title = viralTitle(req.Idea)

	appendHistory(ctx, r.history, script)
	return domain.ViralResult{Plot: &plot, Script: script}, nil
}

// RunPro はプロット構築を飛ばし、ユーザーのシーン内訳を監督として仕上げるのだ。
func (r *ViralRunner) RunPro(ctx context.Context, req ViralProRequest) (domain.ViralResult, error) {
	req.Idea = strings.TrimSpace(req.Idea)
	if err := r.check(req); err != nil {
		return domain.ViralResult{}, err
	}

	scenes := make([]domain.ProScene, len(req.Scenes))
	for i, s := range req.Scenes {
		if s.SceneNumber == 0 {
			s.SceneNumber = i + 1
		}
		scenes[i] = s
	}

	slog.InfoContext(ctx, "Pro モードでシーンスクリプトを生成するのだ", "scenes", len(scenes), "cast", len(req.Cast))
	res, err := r.text(ctx, "シーンスクリプトの生成", prompts.ModeSceneGeneratorPro, prompts.SceneGeneratorProData{
		Idea:      req.Idea,
		Cast:      req.Cast,
		Language:  req.Language,
		ProScenes: scenes,
	}, nil, provider.TextOptions{StructuredOutput: true})
	if err != nil {
		return domain.ViralResult{}, err
	}
	script, err := parser.ParseVideoScript(res.Text, len(scenes))
	if err != nil {
		return domain.ViralResult{}, fmt.Errorf("シーンスクリプトの解析に失敗しました: %w", err)
	}
	script.Title = viralTitle(req.Idea)

	appendHistory(ctx, r.history, script)
	return domain.ViralResult{Script: script}, nil
}

// viralTitle はアイデアの先頭 50 文字から履歴タイトルを作るのだ。
func viralTitle(idea string) string {
	title := "Konten Viral: " + parser.Excerpt(idea, viralTitleRunes)
	if len([]rune(idea)) > viralTitleRunes {
		title += "..."
	}
	return title
}
