package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// ImportInput は DNA テキストを直接アセットとして登録する入力なのだ。
type ImportInput struct {
	Kind         string
	Name         string
	Identity     string
	IdentityFile string
	Image        string
}

// ExecuteImport は AI を呼ばずに DNA をそのまま保存するのだ。
func ExecuteImport(ctx context.Context, appCtx *builder.AppContext, in ImportInput) (domain.SavedAsset, error) {
	kind, err := domain.ParseAssetKind(strings.ToLower(strings.TrimSpace(in.Kind)))
	if err != nil {
		return domain.SavedAsset{}, err
	}

	identity := in.Identity
	if strings.TrimSpace(identity) == "" && in.IdentityFile != "" {
		data, err := os.ReadFile(in.IdentityFile)
		if err != nil {
			return domain.SavedAsset{}, fmt.Errorf("DNA ファイル '%s' の読み込みに失敗しました: %w", in.IdentityFile, err)
		}
		identity = string(data)
	}

	if in.Image != "" {
		if _, err := loadImage(in.Image); err != nil {
			return domain.SavedAsset{}, err
		}
	}

	return appCtx.Assets.Save(ctx, domain.SavedAsset{
		Kind:     kind,
		Name:     in.Name,
		ImageURL: in.Image,
		Identity: domain.IdentityDescription(strings.TrimSpace(identity)),
	})
}
