package provider

import (
	"context"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// Part はテキスト生成に渡す入力の一要素です。Text か Data のどちらか一方を持ちます。
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart はテキストのパートを作るのだ。
func TextPart(text string) Part { return Part{Text: text} }

// ImagePart はインライン画像のパートを作るのだ。
func ImagePart(data []byte, mime string) Part {
	return Part{Data: data, MIMEType: mime}
}

// IsImage はインライン画像パートかどうかを返すのだ。
func (p Part) IsImage() bool { return len(p.Data) > 0 }

// TextOptions はテキスト生成のオプションなのだ。
type TextOptions struct {
	StructuredOutput bool // JSON モード
	WebGrounding     bool // Google 検索による裏付け
}

// TextResult はテキスト生成の結果なのだ。
type TextResult struct {
	Text    string
	Sources []domain.GroundingSource
}

// Gateway は上流の生成 AI に対する唯一の窓口です。
// 失敗は ProviderError として返し、リトライは一切行いません。
type Gateway interface {
	GenerateText(ctx context.Context, instruction string, parts []Part, opts TextOptions) (TextResult, error)
	GenerateImage(ctx context.Context, prompt string) (*domain.ImageResponse, error)
}
