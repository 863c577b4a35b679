package runner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/director"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// ServiceAdRequest はサービス広告シーンのリクエストなのだ。アバターは必須なのだ。
type ServiceAdRequest struct {
	Description   string            `validate:"required"`
	Avatar        domain.Subject
	Style         domain.VideoStyle `validate:"required"`
	Location      domain.Subject
	StyleLocation string
}

// ServiceAdRunner はサービス広告シーン生成の実行実体なのだ。
type ServiceAdRunner struct {
	*engine
}

// NewServiceAdRunner は依存関係を注入して初期化します。
func NewServiceAdRunner(d Deps) (*ServiceAdRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &ServiceAdRunner{engine: e}, nil
}

// Run はサービスの解析、シーン合成、描画を順番に実行するのだ。
func (r *ServiceAdRunner) Run(ctx context.Context, req ServiceAdRequest) (domain.ServiceAdResult, error) {
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return domain.ServiceAdResult{}, domain.NewValidationError("description", "Silakan masukkan deskripsi layanan atau jasa Anda.")
	}
	if err := r.check(req); err != nil {
		return domain.ServiceAdResult{}, err
	}
	if req.Avatar.Kind != domain.SubjectSaved {
		return domain.ServiceAdResult{}, domain.NewValidationError("avatar", "Silakan pilih avatar untuk iklan Anda.")
	}
	if err := req.Avatar.Validate(); err != nil {
		return domain.ServiceAdResult{}, err
	}

	// 1. サービスの解析
	analysis, err := r.text(ctx, "サービスの解析", prompts.ModeServiceAnalysis, prompts.ServiceAnalysisData{Description: req.Description}, nil, provider.TextOptions{})
	if err != nil {
		return domain.ServiceAdResult{}, err
	}

	choice, location, environment, err := r.resolveLocation(req.Style, req.Location, req.StyleLocation)
	if err != nil {
		return domain.ServiceAdResult{}, err
	}

	// 2. シーン合成
	slog.InfoContext(ctx, "サービス広告のシーンを合成するのだ", "avatar", req.Avatar.Name(), "style", string(req.Style))
	composed, err := r.text(ctx, "シーン合成", prompts.ModeServiceComposition, prompts.ServiceCompositionData{
		ServiceDescription: analysis.Text,
		CharacterProfile:   req.Avatar.Identity(),
		Style:              req.Style,
		Location:           location,
		StyleEnvironment:   environment,
	}, nil, provider.TextOptions{})
	if err != nil {
		return domain.ServiceAdResult{}, err
	}
	scene := domain.ScenePrompt(composed.Text)

	trail := domain.PromptTrail{}.
		Add("Deskripsi Jasa (Input)", req.Description).
		Add("Analisis Jasa (AI)", analysis.Text)
	if choice.Source == director.LocationSaved {
		trail = trail.Add("Prompt Lokasi Pilihan", choice.Text)
	}
	trail = trail.Add("Prompt Generasi Adegan Final", string(scene))

	// 3. 描画
	img, err := r.render(ctx, "広告シーンの生成", scene)
	if err != nil {
		return domain.ServiceAdResult{}, err
	}

	return domain.ServiceAdResult{
		Image:       img,
		Analysis:    analysis.Text,
		ScenePrompt: scene,
		AvatarName:  req.Avatar.Name(),
		Trail:       trail,
	}, nil
}
