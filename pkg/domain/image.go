package domain

import (
	"encoding/base64"
	"strings"
)

// DefaultImageMimeType は画像生成の既定出力形式なのだ。
const DefaultImageMimeType = "image/jpeg"

// ImageResponse は画像生成の結果なのだ。
type ImageResponse struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mime_type"`
}

// Base64 は画像データを base64 文字列で返すのだ。
func (r *ImageResponse) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}

// DataURL は data URL 形式に変換するのだ。
func (r *ImageResponse) DataURL() string {
	mime := r.MimeType
	if mime == "" {
		mime = DefaultImageMimeType
	}
	return "data:" + mime + ";base64," + r.Base64()
}

// Extension は MIME タイプに対応する拡張子を返すのだ。
func (r *ImageResponse) Extension() string {
	switch strings.ToLower(r.MimeType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
