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

// SeoRequest は SEO 文案生成のリクエストなのだ。
type SeoRequest struct {
	Topic string `validate:"required"`
}

// SeoRunner は SEO 文案生成の実行実体なのだ。
type SeoRunner struct {
	*engine
}

// NewSeoRunner は依存関係を注入して初期化します。
func NewSeoRunner(d Deps) (*SeoRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &SeoRunner{engine: e}, nil
}

// Run は Web 検索で裏付けた一回の呼び出しで文案を作り、引用元をそのまま添えるのだ。
func (r *SeoRunner) Run(ctx context.Context, req SeoRequest) (domain.SeoContent, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if err := r.check(req); err != nil {
		return domain.SeoContent{}, err
	}

	slog.InfoContext(ctx, "SEO 文案を生成するのだ", "topic", req.Topic)
	res, err := r.text(ctx, "SEO 文案の生成", prompts.ModeSeoContent, prompts.SeoData{Topic: req.Topic}, nil, provider.TextOptions{WebGrounding: true})
	if err != nil {
		return domain.SeoContent{}, err
	}
	seo, err := parser.ParseSeoContent(res.Text)
	if err != nil {
		return domain.SeoContent{}, fmt.Errorf("AI returned invalid data format for SEO content: %w", err)
	}
	seo.Sources = res.Sources
	if seo.Sources == nil {
		seo.Sources = []domain.GroundingSource{}
	}
	return seo, nil
}
