package workflow

import (
	"context"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/runner"
)

// Workflow は、コンテンツ種別ごとの Runner を構築するためのインターフェースを定義します。
type Workflow interface {
	BuildAvatarRunner() (AvatarRunner, error)
	BuildProductAdRunner() (ProductAdRunner, error)
	BuildServiceAdRunner() (ServiceAdRunner, error)
	BuildVideoScriptRunner() (VideoScriptRunner, error)
	BuildViralRunner() (ViralRunner, error)
	BuildEbookRunner() (EbookRunner, error)
	BuildSongRunner() (SongRunner, error)
	BuildSeoRunner() (SeoRunner, error)
	BuildAnalysisRunner() (AnalysisRunner, error)
}

// AvatarRunner は、アイデアまたは参照画像からアバターと DNA を生成する責務を持ちます。
type AvatarRunner interface {
	RunFromIdea(ctx context.Context, req runner.AvatarIdeaRequest) (domain.AvatarResult, error)
	RunFromImage(ctx context.Context, req runner.AvatarImageRequest) (domain.AvatarResult, error)
}

// ProductAdRunner は、商品広告のシーン画像を生成する責務を持ちます。
type ProductAdRunner interface {
	Run(ctx context.Context, req runner.ProductAdRequest) (domain.ProductAdResult, error)
}

// ServiceAdRunner は、サービス広告のシーン画像を生成する責務を持ちます。
type ServiceAdRunner interface {
	Run(ctx context.Context, req runner.ServiceAdRequest) (domain.ServiceAdResult, error)
}

// VideoScriptRunner は、広告シーンから動画スクリプトを生成する責務を持ちます。
type VideoScriptRunner interface {
	Run(ctx context.Context, req runner.VideoScriptRequest) (domain.VideoScript, error)
}

// ViralRunner は、バイラル動画スクリプトを生成する責務を持ちます。
type ViralRunner interface {
	Run(ctx context.Context, req runner.ViralRequest) (domain.ViralResult, error)
	RunPro(ctx context.Context, req runner.ViralProRequest) (domain.ViralResult, error)
}

// EbookRunner は、章立てから表紙までの電子書籍を生成する責務を持ちます。
type EbookRunner interface {
	Run(ctx context.Context, req runner.EbookRequest) (domain.Ebook, error)
}

// SongRunner は、歌詞とジャケットを生成する責務を持ちます。
type SongRunner interface {
	Run(ctx context.Context, req runner.SongRequest) (domain.Song, error)
}

// SeoRunner は、Web 検索で裏付けた SEO 文案を生成する責務を持ちます。
type SeoRunner interface {
	Run(ctx context.Context, req runner.SeoRequest) (domain.SeoContent, error)
}

// AnalysisRunner は、保存用の商品・ロケーション画像を解析する責務を持ちます。
type AnalysisRunner interface {
	AnalyzeProduct(ctx context.Context, req runner.AnalyzeProductRequest) (domain.AnalysisResult, error)
	AnalyzeLocation(ctx context.Context, image provider.Part) (domain.AnalysisResult, error)
}
