package runner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// DefaultPhotoCategory は単体の商品写真で使うカテゴリなのだ。
const DefaultPhotoCategory = "product photo"

// AnalyzeProductRequest は商品画像から DNA と商品写真を作るリクエストなのだ。
type AnalyzeProductRequest struct {
	Image    provider.Part
	Category string
}

// AnalysisRunner は保存用アセット（商品・ロケーション）の解析の実行実体なのだ。
type AnalysisRunner struct {
	*engine
}

// NewAnalysisRunner は依存関係を注入して初期化します。
func NewAnalysisRunner(d Deps) (*AnalysisRunner, error) {
	e, err := newEngine(d)
	if err != nil {
		return nil, err
	}
	return &AnalysisRunner{engine: e}, nil
}

// AnalyzeProduct は商品 DNA を抽出し、それをもとに商品写真を一枚生成するのだ。
func (r *AnalysisRunner) AnalyzeProduct(ctx context.Context, req AnalyzeProductRequest) (domain.AnalysisResult, error) {
	if !req.Image.IsImage() {
		return domain.AnalysisResult{}, domain.NewValidationError("image", "Silakan unggah gambar produk.")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = DefaultPhotoCategory
	}

	// 1. 商品 DNA
	dna, err := r.analyzeImage(ctx, "商品の解析", prompts.ModeProductAnalysis, req.Image)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	// 2. 商品写真のプロンプト
	slog.InfoContext(ctx, "商品写真のプロンプトを作成するのだ", "category", category)
	res, err := r.text(ctx, "商品写真のプロンプト作成", prompts.ModeProductPhoto, prompts.ProductPhotoData{ProductDNA: dna, Category: category}, nil, provider.TextOptions{})
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	scene := domain.ScenePrompt(res.Text)

	// 3. 描画
	img, err := r.render(ctx, "商品写真の生成", scene)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	return domain.AnalysisResult{
		Kind:        domain.AssetProduct,
		Identity:    dna,
		ScenePrompt: scene,
		Image:       img,
		Trail: domain.PromptTrail{}.
			Add("DNA Produk (Hasil Analisis)", string(dna)).
			Add("Prompt Generasi Gambar", string(scene)),
	}, nil
}

// AnalyzeLocation はロケーション画像を一回だけ解析するのだ。描画はせず、元の画像をそのまま返すのだ。
func (r *AnalysisRunner) AnalyzeLocation(ctx context.Context, image provider.Part) (domain.AnalysisResult, error) {
	if !image.IsImage() {
		return domain.AnalysisResult{}, domain.NewValidationError("image", "Silakan unggah gambar lokasi.")
	}
	dna, err := r.analyzeImage(ctx, "ロケーションの解析", prompts.ModeLocationAnalysis, image)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return domain.AnalysisResult{
		Kind:     domain.AssetLocation,
		Identity: dna,
		Image:    &domain.ImageResponse{Data: image.Data, MimeType: image.MIMEType},
		Trail:    domain.PromptTrail{}.Add("Deskripsi Lokasi (Hasil Analisis)", string(dna)),
	}, nil
}
