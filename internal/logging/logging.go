// Package logging は kreator の slog ロガーを組み立てるのだ。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ロガーの出力形式なのだ。
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ParseLevel は文字列のログレベルを slog.Level に変換します。不明な値は info なのだ。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger は標準エラー出力へ書き出すロガーを作成するのだ。
func NewLogger(level, format string) *slog.Logger {
	return New(os.Stderr, level, format)
}

// New は指定した Writer に対して text または json のハンドラを作るのだ。
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(format, FormatJSON) {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// WithComponent は component 属性付きのロガーを返すのだ。
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithJobID はバッチのジョブ識別子を付けるのだ。
func WithJobID(logger *slog.Logger, jobID string) *slog.Logger {
	return logger.With("job_id", jobID)
}

// SanitizeToken は API キーなどを先頭と末尾の 4 文字だけ残して伏せるのだ。
// 8 文字以下なら全体を伏せます。
func SanitizeToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
