package workflow

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-kreator-kit/pkg/provider"
)

// デフォルト値の定義なのだ
const (
	DefaultGeminiModel      = provider.DefaultTextModel
	DefaultImageModel       = provider.DefaultImageModel
	DefaultTextTimeout      = provider.DefaultTextTimeout
	DefaultImageTimeout     = provider.DefaultImageTimeout
	DefaultRateInterval     = 2 * time.Second
	DefaultCacheExpiration  = 30 * time.Minute
	DefaultBatchConcurrency = 2
	DefaultMaxScenes        = 10
	DefaultMaxChapters      = 20
)

// Config は Kreator Kit の各 Runner を動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiModel string
	ImageModel  string

	// --- Timeout & Rate ---
	TextTimeout  time.Duration
	ImageTimeout time.Duration
	RateInterval time.Duration

	// --- Generation Settings ---
	CacheExpiration  time.Duration
	BatchConcurrency int
	MaxScenes        int
	MaxChapters      int
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		GeminiModel:      DefaultGeminiModel,
		ImageModel:       DefaultImageModel,
		TextTimeout:      DefaultTextTimeout,
		ImageTimeout:     DefaultImageTimeout,
		RateInterval:     DefaultRateInterval,
		CacheExpiration:  DefaultCacheExpiration,
		BatchConcurrency: DefaultBatchConcurrency,
		MaxScenes:        DefaultMaxScenes,
		MaxChapters:      DefaultMaxChapters,
	}
}

// GatewayConfig はこの設定から GeminiGateway の設定を作るのだ。
// limiter はプロセス全体で一つだけ作って共有するのだ。
func (c Config) GatewayConfig(limiter *rate.Limiter) provider.GatewayConfig {
	return provider.GatewayConfig{
		TextModel:    c.GeminiModel,
		ImageModel:   c.ImageModel,
		TextTimeout:  c.TextTimeout,
		ImageTimeout: c.ImageTimeout,
		Limiter:      limiter,
	}
}

// NewLimiter は RateInterval ごとに一回だけ送信を許すリミッターを返すのだ。0 以下なら nil なのだ。
func (c Config) NewLimiter() *rate.Limiter {
	if c.RateInterval <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(c.RateInterval), 1)
}
