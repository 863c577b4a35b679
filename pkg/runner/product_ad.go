package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/director"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// ProductAdRequest は商品広告シーンのリクエストなのだ。
// 商品は ProductImage（新規に解析）か Product（保存済みの DNA を再利用）のどちらか一方で指定するのだ。
type ProductAdRequest struct {
	ProductImage  *provider.Part
	Product       domain.Subject
	Avatar        domain.Subject
	Category      string            `validate:"required"`
	Style         domain.VideoStyle `validate:"required"`
	Location      domain.Subject
	StyleLocation string
}

// ProductAdRunner は商品広告シーン生成の実行実体なのだ。
type ProductAdRunner struct {
	*engine
}

// NewProductAdRunner は依存関係を注入して初期化します。
func NewProductAdRunner(d Deps) (*ProductAdRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &ProductAdRunner{engine: e}, nil
}

// Run は商品 DNA の確定、シーン合成、描画を順番に実行するのだ。
func (r *ProductAdRunner) Run(ctx context.Context, req ProductAdRequest) (domain.ProductAdResult, error) {
	req.Category = strings.TrimSpace(req.Category)
	if err := r.check(req); err != nil {
		return domain.ProductAdResult{}, err
	}
	if err := req.Avatar.Validate(); err != nil {
		return domain.ProductAdResult{}, err
	}
	if req.Avatar.Kind == domain.SubjectAIChosen {
		return domain.ProductAdResult{}, domain.NewValidationError("avatar", "Silakan pilih avatar atau opsi 'Tanpa Avatar'.")
	}

	// 1. 商品 DNA
	productDNA, err := r.productIdentity(ctx, req)
	if err != nil {
		return domain.ProductAdResult{}, err
	}
	trail := domain.PromptTrail{}.Add("Analisis DNA Produk", string(productDNA))

	// 2. ロケーションの解決
	choice, location, environment, err := r.resolveLocation(req.Style, req.Location, req.StyleLocation)
	if err != nil {
		return domain.ProductAdResult{}, err
	}

	// 3. シーン合成
	var (
		mode       prompts.Mode
		avatarName string
		data       prompts.CompositionData
	)
	data = prompts.CompositionData{
		ProductDNA:       productDNA,
		Category:         req.Category,
		Style:            req.Style,
		Location:         location,
		StyleEnvironment: environment,
	}
	switch req.Avatar.Kind {
	case domain.SubjectSaved:
		mode = prompts.ModeSceneComposition
		avatarName = req.Avatar.Name()
		data.CharacterProfile = req.Avatar.Identity()
		trail = trail.Add("Profil Avatar", string(req.Avatar.Identity()))
	case domain.SubjectNone:
		mode = prompts.ModeProductOnlyComposition
		avatarName = domain.NarratorName
	default:
		return domain.ProductAdResult{}, domain.NewValidationError("avatar", fmt.Sprintf("不明なアバター選択です: %s", req.Avatar.Kind))
	}
	if choice.Source == director.LocationSaved {
		trail = trail.Add("Prompt Lokasi Pilihan", choice.Text)
	}
	slog.InfoContext(ctx, "商品広告のシーンを合成するのだ", "avatar", avatarName, "style", string(req.Style), "location_source", int(choice.Source))

	composed, err := r.text(ctx, "シーン合成", mode, data, nil, provider.TextOptions{})
	if err != nil {
		return domain.ProductAdResult{}, err
	}
	scene := domain.ScenePrompt(composed.Text)
	trail = trail.Add("Prompt Generasi Adegan Final", string(scene))

	// 4. 描画
	img, err := r.render(ctx, "広告シーンの生成", scene)
	if err != nil {
		return domain.ProductAdResult{}, err
	}

	return domain.ProductAdResult{
		Image:           img,
		ProductIdentity: productDNA,
		ScenePrompt:     scene,
		AvatarName:      avatarName,
		Trail:           trail,
	}, nil
}

// productIdentity は新しい商品画像なら解析し、保存済み商品なら DNA をそのまま返すのだ。
func (r *ProductAdRunner) productIdentity(ctx context.Context, req ProductAdRequest) (domain.IdentityDescription, error) {
	if req.ProductImage != nil {
		if req.Product.Kind == domain.SubjectSaved {
			return "", domain.NewValidationError("product", "商品画像と保存済み商品はどちらか一方だけを指定してください")
		}
		return r.analyzeImage(ctx, "商品の解析", prompts.ModeProductAnalysis, *req.ProductImage)
	}

	switch req.Product.Kind {
	case domain.SubjectSaved:
		if err := req.Product.Validate(); err != nil {
			return "", err
		}
		slog.InfoContext(ctx, "保存済みの商品 DNA を読み込むのだ", "product", req.Product.Name())
		return req.Product.Identity(), nil
	case domain.SubjectNone, domain.SubjectAIChosen:
		return "", domain.NewValidationError("product", "Silakan unggah gambar produk.")
	default:
		return "", domain.NewValidationError("product", fmt.Sprintf("不明な商品選択です: %s", req.Product.Kind))
	}
}
