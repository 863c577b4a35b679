package builder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/shouni/go-kreator-kit/internal/config"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/publisher"
	"github.com/shouni/go-kreator-kit/pkg/store"
	"github.com/shouni/go-kreator-kit/pkg/workflow"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各 Execute 関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    *config.Config        // Configは、環境変数・設定ファイル・フラグを重ねた設定です。
	DB        *store.DB             // DBは、保存済みアセット・履歴・設定を保持する SQLite です。
	Assets    *store.AssetStore     // Assetsは、アバター・商品・ロケーションの保存先です。
	History   *store.HistoryStore   // Historyは、動画スクリプトの履歴の保存先です。
	Settings  *store.SettingsStore  // Settingsは、選択中の接続先などの保存先です。
	Publisher *publisher.Publisher  // Publisherは、生成物を出力ディレクトリへ書き出します。
	Logger    *slog.Logger          // Loggerは、component 属性付きの共通ロガーです。

	mu       sync.Mutex
	gateway  provider.Gateway   // gateway は初回の Workflow 呼び出しで接続先を解決して作る共通クライアント
	limiter  *rate.Limiter      // limiter はプロセス全体で共有する送信レート制限
	workflow *workflow.Manager  // workflow は Runner を組み立てる共通の Manager
}

// NewAppContext は AppContext の新しいインスタンスを生成する
// gateway が nil の場合は、最初に Workflow が必要になった時点で認証情報を解決して作るのだ。
func NewAppContext(ctx context.Context, cfg *config.Config, gateway provider.Gateway, logger *slog.Logger) (*AppContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Config は必須です")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}

	assets := store.NewAssetStore(db)
	if err := assets.SeedDefaults(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("既定のアバターの登録に失敗しました: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		DB:        db,
		Assets:    assets,
		History:   store.NewHistoryStore(db),
		Settings:  store.NewSettingsStore(db),
		Publisher: publisher.NewPublisher(publisher.LocalWriter{}, publisher.NewHTMLRenderer("")),
		Logger:    logger,
		gateway:   gateway,
		limiter:   cfg.Workflow().NewLimiter(),
	}, nil
}

// PublishOptions は出力先の設定を返すのだ。
func (a *AppContext) PublishOptions() publisher.Options {
	return publisher.Options{OutputDir: a.Config.OutputDir}
}

// Workflow は共通の Manager を返します。初回だけ接続先を解決して Gateway を作るのだ。
func (a *AppContext) Workflow(ctx context.Context) (workflow.Workflow, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.workflow != nil {
		return a.workflow, nil
	}
	if a.gateway == nil {
		gw, err := InitializeGateway(ctx, a)
		if err != nil {
			return nil, err
		}
		a.gateway = gw
	}

	m, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:  a.Config.Workflow(),
		Gateway: a.gateway,
		History: a.History,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローの初期化に失敗しました: %w", err)
	}
	a.workflow = m
	return m, nil
}

// Close はデータベースを閉じるのだ。
func (a *AppContext) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
