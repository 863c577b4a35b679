package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-kreator-kit/internal/logging"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// ResolveCredential は --server、保存済みの選択、プールの先頭の順で接続先を決めて認証情報を解決します。
func ResolveCredential(ctx context.Context, appCtx *AppContext) (provider.Credential, error) {
	selected := appCtx.Config.Server
	if selected == "" {
		saved, err := appCtx.Settings.SelectedCredential(ctx)
		if err != nil {
			return provider.Credential{}, fmt.Errorf("選択中の接続先の取得に失敗しました: %w", err)
		}
		selected = saved
	}
	return provider.Resolve(appCtx.Config.CredentialPool(), selected)
}

// InitializeGateway は解決済みの認証情報で Gemini の Gateway を初期化します。
func InitializeGateway(ctx context.Context, appCtx *AppContext) (provider.Gateway, error) {
	cred, err := ResolveCredential(ctx, appCtx)
	if err != nil {
		return nil, err
	}

	gwCfg := appCtx.Config.Workflow().GatewayConfig(appCtx.limiter)
	gw, err := provider.NewGeminiGateway(ctx, cred, gwCfg)
	if err != nil {
		return nil, fmt.Errorf("Gateway の初期化に失敗しました: %w", err)
	}

	appCtx.Logger.InfoContext(ctx, "接続先を解決したのだ",
		"server", cred.ID,
		"api_key", logging.SanitizeToken(cred.APIKey),
		"text_model", gwCfg.TextModel,
		"image_model", gwCfg.ImageModel)
	return gw, nil
}

// SelectServer は接続先を検証してから保存するのだ。プールにない識別子は ConfigurationError なのだ。
func SelectServer(ctx context.Context, appCtx *AppContext, id string) error {
	pool := appCtx.Config.CredentialPool()
	if !pool.Has(id) {
		return &domain.ConfigurationError{Message: fmt.Sprintf("不明な接続先です: %q (選択肢: %v)", id, pool.IDs())}
	}
	if err := appCtx.Settings.SetSelectedCredential(ctx, id); err != nil {
		return err
	}
	if !pool.Configured(id) {
		slog.WarnContext(ctx, "選択した接続先には API キーが設定されていないのだ", "server", id)
	}
	return nil
}

// ServerStatus は接続先一覧の一行分なのだ。
type ServerStatus struct {
	ID         string
	Configured bool
	Selected   bool
}

// ListServers はプールの接続先と選択状態を返すのだ。
func ListServers(ctx context.Context, appCtx *AppContext) ([]ServerStatus, error) {
	pool := appCtx.Config.CredentialPool()
	selected := appCtx.Config.Server
	if selected == "" {
		saved, err := appCtx.Settings.SelectedCredential(ctx)
		if err != nil {
			return nil, err
		}
		selected = saved
	}
	ids := pool.IDs()
	if selected == "" && len(ids) > 0 {
		selected = ids[0]
	}

	out := make([]ServerStatus, 0, len(ids))
	for _, id := range ids {
		out = append(out, ServerStatus{ID: id, Configured: pool.Configured(id), Selected: id == selected})
	}
	return out, nil
}
