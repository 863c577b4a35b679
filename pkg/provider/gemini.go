package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

const (
	DefaultTextModel    = "gemini-2.5-flash"
	DefaultImageModel   = "imagen-3.0-generate-002"
	DefaultTextTimeout  = 60 * time.Second
	DefaultImageTimeout = 90 * time.Second
	DefaultAspectRatio  = "9:16"

	msgNoImage = "AI tidak mengembalikan output gambar."
)

// modelsAPI は genai.Models のうち、このゲートウェイが使うメソッドだけを切り出したものなのだ。
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// promptFunc はプロンプト一本だけを送るテキスト生成なのだ。
// 画像パートも JSON モードも検索も使わない工程はこちらを通すのだ。
type promptFunc func(ctx context.Context, prompt, model string) (string, error)

// GatewayConfig は GeminiGateway の動作設定なのだ。
type GatewayConfig struct {
	TextModel    string
	ImageModel   string
	TextTimeout  time.Duration
	ImageTimeout time.Duration
	AspectRatio  string
	Temperature  *float32
	// Limiter はプロセス全体で共有する送信レート制限なのだ。nil なら制限しないのだ。
	Limiter *rate.Limiter
}

func (c GatewayConfig) withDefaults() GatewayConfig {
	if c.TextModel == "" {
		c.TextModel = DefaultTextModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.TextTimeout <= 0 {
		c.TextTimeout = DefaultTextTimeout
	}
	if c.ImageTimeout <= 0 {
		c.ImageTimeout = DefaultImageTimeout
	}
	if c.AspectRatio == "" {
		c.AspectRatio = DefaultAspectRatio
	}
	return c
}

// GeminiGateway は genai SDK を使った Gateway の実装です。
// 認証情報は生成時に注入され、呼び出し中に外部の状態を読むことはありません。
type GeminiGateway struct {
	models     modelsAPI
	prompt     promptFunc
	cfg        GatewayConfig
	credential string
}

// NewGeminiGateway は解決済みの認証情報でクライアントを初期化するのだ。
func NewGeminiGateway(ctx context.Context, cred Credential, cfg GatewayConfig) (*GeminiGateway, error) {
	if cred.APIKey == "" {
		return nil, &domain.ConfigurationError{Message: fmt.Sprintf("接続先 %q の API キーが空です", cred.ID)}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cred.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &domain.ConfigurationError{Message: "AIクライアントの初期化に失敗しました", Err: err}
	}
	aiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      cred.APIKey,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return nil, &domain.ConfigurationError{Message: "テキスト生成クライアントの初期化に失敗しました", Err: err}
	}
	g := newGeminiGateway(client.Models, cred.ID, cfg)
	g.prompt = func(ctx context.Context, prompt, model string) (string, error) {
		resp, err := aiClient.GenerateContent(ctx, prompt, model)
		if err != nil {
			return "", err
		}
		return resp.Text, nil
	}
	return g, nil
}

func newGeminiGateway(models modelsAPI, credentialID string, cfg GatewayConfig) *GeminiGateway {
	return &GeminiGateway{
		models:     models,
		cfg:        cfg.withDefaults(),
		credential: credentialID,
	}
}

// CredentialID はこのゲートウェイが使っている接続先の識別子なのだ。
func (g *GeminiGateway) CredentialID() string { return g.credential }

// GenerateText はインストラクションを先頭のテキストパートとして送り、続けて呼び出し側のパートを送るのだ。
func (g *GeminiGateway) GenerateText(ctx context.Context, instruction string, parts []Part, opts TextOptions) (TextResult, error) {
	if err := g.wait(ctx, "text"); err != nil {
		return TextResult{}, err
	}

	if g.prompt != nil && isPlainPrompt(parts, opts) {
		return g.generatePlain(ctx, instruction, parts)
	}

	contents := []*genai.Content{genai.NewContentFromParts(toGenaiParts(instruction, parts), genai.RoleUser)}
	config := &genai.GenerateContentConfig{Temperature: g.cfg.Temperature}
	if opts.StructuredOutput {
		config.ResponseMIMEType = "application/json"
	}
	if opts.WebGrounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.TextTimeout)
	defer cancel()

	start := time.Now()
	resp, err := g.models.GenerateContent(callCtx, g.cfg.TextModel, contents, config)
	if err != nil {
		return TextResult{}, classify(callCtx, "text", err)
	}
	slog.DebugContext(ctx, "テキスト生成が完了したのだ",
		"model", g.cfg.TextModel,
		"structured", opts.StructuredOutput,
		"grounding", opts.WebGrounding,
		"elapsed", time.Since(start))

	if resp == nil {
		return TextResult{}, &domain.ProviderError{Op: "text", Message: "AIの応答が空です"}
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return TextResult{}, &domain.ProviderError{Op: "text", Message: "AIの応答にテキストが含まれていません"}
	}

	return TextResult{Text: text, Sources: groundingSources(resp)}, nil
}

// generatePlain はインストラクションと入力を一本のプロンプトにまとめて送るのだ。
func (g *GeminiGateway) generatePlain(ctx context.Context, instruction string, parts []Part) (TextResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.TextTimeout)
	defer cancel()

	start := time.Now()
	text, err := g.prompt(callCtx, joinPrompt(instruction, parts), g.cfg.TextModel)
	if err != nil {
		return TextResult{}, classify(callCtx, "text", err)
	}
	slog.DebugContext(ctx, "テキスト生成が完了したのだ", "model", g.cfg.TextModel, "plain", true, "elapsed", time.Since(start))

	if strings.TrimSpace(text) == "" {
		return TextResult{}, &domain.ProviderError{Op: "text", Message: "AIの応答にテキストが含まれていません"}
	}
	return TextResult{Text: text}, nil
}

// GenerateImage はプロンプトから画像を1枚生成するのだ。
func (g *GeminiGateway) GenerateImage(ctx context.Context, prompt string) (*domain.ImageResponse, error) {
	if err := g.wait(ctx, "image"); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.ImageTimeout)
	defer cancel()

	resp, err := g.models.GenerateImages(callCtx, g.cfg.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    g.cfg.AspectRatio,
		OutputMIMEType: domain.DefaultImageMimeType,
	})
	if err != nil {
		return nil, classify(callCtx, "image", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, &domain.ProviderError{Op: "image", Message: msgNoImage}
	}
	img := resp.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return nil, &domain.ProviderError{Op: "image", Message: msgNoImage}
	}

	mime := img.MIMEType
	if mime == "" {
		mime = domain.DefaultImageMimeType
	}
	return &domain.ImageResponse{Data: img.ImageBytes, MimeType: mime}, nil
}

func (g *GeminiGateway) wait(ctx context.Context, op string) error {
	if g.cfg.Limiter == nil {
		return nil
	}
	if err := g.cfg.Limiter.Wait(ctx); err != nil {
		return &domain.ProviderError{Op: op, Message: "レート制限の待機中に中断されました", Err: err}
	}
	return nil
}

// classify はタイムアウトを Op "timeout" の ProviderError に変換するのだ。
func classify(callCtx context.Context, op string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.ProviderError{Op: domain.ProviderOpTimeout, Message: op + " の呼び出しがタイムアウトしました", Err: err}
	}
	if op == "image" {
		return &domain.ProviderError{Op: op, Message: "Gagal menghasilkan gambar.", Err: err}
	}
	return &domain.ProviderError{Op: op, Message: "テキスト生成に失敗しました", Err: err}
}

func isPlainPrompt(parts []Part, opts TextOptions) bool {
	if opts.StructuredOutput || opts.WebGrounding {
		return false
	}
	for _, p := range parts {
		if p.IsImage() {
			return false
		}
	}
	return true
}

func joinPrompt(instruction string, parts []Part) string {
	texts := make([]string, 0, len(parts)+1)
	texts = append(texts, instruction)
	for _, p := range parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n\n")
}

func toGenaiParts(instruction string, parts []Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts)+1)
	out = append(out, genai.NewPartFromText(instruction))
	for _, p := range parts {
		if p.IsImage() {
			out = append(out, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		out = append(out, genai.NewPartFromText(p.Text))
	}
	return out
}

func groundingSources(resp *genai.GenerateContentResponse) []domain.GroundingSource {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []domain.GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		sources = append(sources, domain.GroundingSource{Title: title, URI: chunk.Web.URI})
	}
	return sources
}
