// Package providertest は provider.Gateway の台本どおりに応答するテスト用実装を提供します。
package providertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// CallKind は記録された呼び出しの種類なのだ。
type CallKind string

const (
	KindText  CallKind = "text"
	KindImage CallKind = "image"
)

// Call は Gateway に対する一回の呼び出しの記録なのだ。
type Call struct {
	Kind        CallKind
	Instruction string
	Parts       []provider.Part
	Options     provider.TextOptions
	Prompt      string
}

// Input はテキストパートを連結した「入力ブロック」を返すのだ。
func (c Call) Input() string {
	var sb strings.Builder
	for _, p := range c.Parts {
		if p.IsImage() {
			continue
		}
		sb.WriteString(p.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// HasImage は画像パートを含むかを返すのだ。
func (c Call) HasImage() bool {
	for _, p := range c.Parts {
		if p.IsImage() {
			return true
		}
	}
	return false
}

// Reply は台本の一応答なのだ。Err が設定されていればそれを返すのだ。
type Reply struct {
	Text    string
	Sources []domain.GroundingSource
	Image   *domain.ImageResponse
	Err     error
}

// Gateway は応答キューまたはハンドラで応答する Gateway なのだ。
type Gateway struct {
	mu sync.Mutex

	// TextHandler が設定されていればキューより優先されるのだ。
	TextHandler  func(call Call) (provider.TextResult, error)
	ImageHandler func(call Call) (*domain.ImageResponse, error)

	textQueue  []Reply
	imageQueue []Reply
	calls      []Call
}

// New は空の Gateway を作るのだ。
func New() *Gateway { return &Gateway{} }

// QueueText はテキスト応答を積むのだ。
func (g *Gateway) QueueText(texts ...string) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range texts {
		g.textQueue = append(g.textQueue, Reply{Text: t})
	}
	return g
}

// QueueTextReply は引用元やエラー付きのテキスト応答を積むのだ。
func (g *Gateway) QueueTextReply(r Reply) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.textQueue = append(g.textQueue, r)
	return g
}

// QueueImage は画像応答を積むのだ。
func (g *Gateway) QueueImage(r Reply) *Gateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.imageQueue = append(g.imageQueue, r)
	return g
}

// Calls は記録された呼び出しを順番どおりに返すのだ。
func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// TextCalls はテキスト生成の呼び出しだけを返すのだ。
func (g *Gateway) TextCalls() []Call { return g.filter(KindText) }

// ImageCalls は画像生成の呼び出しだけを返すのだ。
func (g *Gateway) ImageCalls() []Call { return g.filter(KindImage) }

func (g *Gateway) filter(kind CallKind) []Call {
	var out []Call
	for _, c := range g.Calls() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// GenerateText implements provider.Gateway.
func (g *Gateway) GenerateText(ctx context.Context, instruction string, parts []provider.Part, opts provider.TextOptions) (provider.TextResult, error) {
	call := Call{Kind: KindText, Instruction: instruction, Parts: append([]provider.Part(nil), parts...), Options: opts}

	g.mu.Lock()
	g.calls = append(g.calls, call)
	handler := g.TextHandler
	var reply Reply
	var ok bool
	if handler == nil && len(g.textQueue) > 0 {
		reply, g.textQueue, ok = g.textQueue[0], g.textQueue[1:], true
	}
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return provider.TextResult{}, &domain.ProviderError{Op: "text", Message: "キャンセルされました", Err: err}
	}
	if handler != nil {
		return handler(call)
	}
	if !ok {
		return provider.TextResult{}, fmt.Errorf("providertest: テキスト応答のキューが空です (%d 回目の呼び出し)", len(g.TextCalls()))
	}
	if reply.Err != nil {
		return provider.TextResult{}, reply.Err
	}
	return provider.TextResult{Text: reply.Text, Sources: reply.Sources}, nil
}

// GenerateImage implements provider.Gateway.
// キューが空のときは固定のダミー画像を返すのだ。
func (g *Gateway) GenerateImage(ctx context.Context, prompt string) (*domain.ImageResponse, error) {
	call := Call{Kind: KindImage, Prompt: prompt}

	g.mu.Lock()
	g.calls = append(g.calls, call)
	handler := g.ImageHandler
	var reply Reply
	var ok bool
	if handler == nil && len(g.imageQueue) > 0 {
		reply, g.imageQueue, ok = g.imageQueue[0], g.imageQueue[1:], true
	}
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &domain.ProviderError{Op: "image", Message: "キャンセルされました", Err: err}
	}
	if handler != nil {
		return handler(call)
	}
	if !ok {
		return &domain.ImageResponse{Data: []byte("fake-jpeg:" + prompt), MimeType: domain.DefaultImageMimeType}, nil
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return reply.Image, nil
}

var _ provider.Gateway = (*Gateway)(nil)
