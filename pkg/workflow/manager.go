package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shouni/go-kreator-kit/pkg/director"
	"github.com/shouni/go-kreator-kit/pkg/generator"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/runner"
)

const cacheCleanupInterval = time.Hour

// ManagerArgs は Manager の初期化に必要な依存関係なのだ。
type ManagerArgs struct {
	Config  Config
	Gateway provider.Gateway
	// History は動画スクリプトの履歴の保存先なのだ。nil なら履歴を残さないのだ。
	History runner.HistoryAppender
	// Catalog が nil の場合は埋め込みのテンプレートから新規作成するのだ。
	Catalog prompts.PromptCatalog
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
// プロンプトのカタログと DNA のキャッシュは全ての Runner で共有するのだ。
type Manager struct {
	cfg     Config
	history runner.HistoryAppender
	deps    runner.Deps
}

// New は、設定と Gateway を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.Gateway == nil {
		return nil, fmt.Errorf("Gateway は必須です")
	}

	catalog, err := initializeCatalog(args.Catalog)
	if err != nil {
		return nil, err
	}

	cfg := args.Config
	if cfg.CacheExpiration <= 0 {
		cfg.CacheExpiration = DefaultCacheExpiration
	}

	layout := director.NewLayoutManager()
	deps := runner.Deps{
		Gateway:   args.Gateway,
		Catalog:   catalog,
		Cache:     generator.NewIdentityCache(cfg.CacheExpiration, cacheCleanupInterval),
		Styles:    director.NewStyleManager(),
		Layout:    layout,
		Composer:  generator.NewSceneComposer(layout),
		Validator: validator.New(),
	}
	slog.InfoContext(ctx, "ワークフローを初期化したのだ", "text_model", cfg.GeminiModel, "image_model", cfg.ImageModel, "history", args.History != nil)

	return &Manager{
		cfg:     cfg,
		history: args.History,
		deps:    deps,
	}, nil
}

// Config は Manager が使っている設定を返すのだ。
func (m *Manager) Config() Config { return m.cfg }

// initializeCatalog は PromptCatalog を初期化します。
// 引数として既存のカタログが渡された場合はそれを返し、nil の場合は新規作成します。
func initializeCatalog(catalog prompts.PromptCatalog) (prompts.PromptCatalog, error) {
	if catalog != nil {
		return catalog, nil
	}
	c, err := prompts.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("プロンプトカタログの新規作成に失敗しました: %w", err)
	}
	return c, nil
}
