package asset

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
)

const (
	// DefaultImageFile は生成画像のデフォルトのファイル名です。
	DefaultImageFile = "image.jpg"
	// DefaultCoverFile は表紙・ジャケット画像のデフォルトのファイル名です。
	DefaultCoverFile = "cover.jpg"
	// DefaultResultJSON は実行結果のデフォルトの JSON ファイル名です。
	DefaultResultJSON = "result.json"
	// DefaultScriptFile は動画スクリプトのデフォルトの Markdown ファイル名です。
	DefaultScriptFile = "script.md"
	// DefaultEbookFile は電子書籍のデフォルトの Markdown ファイル名です。
	DefaultEbookFile = "ebook.md"
	// DefaultEbookHTML は電子書籍のデフォルトの HTML ファイル名です。
	DefaultEbookHTML = "ebook.html"
	// DefaultSongFile は歌詞のデフォルトの Markdown ファイル名です。
	DefaultSongFile = "song.md"
	// DefaultSeoFile は SEO 文案のデフォルトの Markdown ファイル名です。
	DefaultSeoFile = "seo.md"

	// MaxImageBytes は参照画像として受け付ける最大サイズなのだ。
	MaxImageBytes = 20 << 20
)

// Load はローカルのパスまたは data URL から参照画像を読み込み、画像パートとして返します。
// MIME タイプは中身から判定し、画像以外は ValidationError になるのだ。
func Load(source string) (provider.Part, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return provider.Part{}, domain.NewValidationError("image", "画像が指定されていません")
	}

	var data []byte
	if strings.HasPrefix(source, "data:") {
		decoded, err := decodeDataURL(source)
		if err != nil {
			return provider.Part{}, err
		}
		data = decoded
	} else {
		info, err := os.Stat(source)
		if err != nil {
			return provider.Part{}, domain.NewValidationError("image", fmt.Sprintf("画像ファイルを開けません: %v", err))
		}
		if info.Size() > MaxImageBytes {
			return provider.Part{}, domain.NewValidationError("image", fmt.Sprintf("画像が大きすぎます: %d bytes", info.Size()))
		}
		data, err = os.ReadFile(source)
		if err != nil {
			return provider.Part{}, fmt.Errorf("画像ファイルの読み込みに失敗しました: %w", err)
		}
	}

	if len(data) == 0 {
		return provider.Part{}, domain.NewValidationError("image", "画像データが空です")
	}
	if len(data) > MaxImageBytes {
		return provider.Part{}, domain.NewValidationError("image", fmt.Sprintf("画像が大きすぎます: %d bytes", len(data)))
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return provider.Part{}, domain.NewValidationError("image", fmt.Sprintf("画像ファイルではありません: %s", mime))
	}
	return provider.ImagePart(data, mime), nil
}

// decodeDataURL は "data:<mime>;base64,<payload>" を復号するのだ。
func decodeDataURL(s string) ([]byte, error) {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, domain.NewValidationError("image", "base64 形式の data URL ではありません")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.NewValidationError("image", fmt.Sprintf("data URL の復号に失敗しました: %v", err))
	}
	return data, nil
}

// ToBase64 は画像データを base64 文字列に変換するのだ。
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToDataURL は画像データを data URL に変換するのだ。
func ToDataURL(data []byte, mime string) string {
	if mime == "" {
		mime = domain.DefaultImageMimeType
	}
	return "data:" + mime + ";base64," + ToBase64(data)
}

// ResolvePath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolvePath(baseDir, fileName string) (string, error) {
	return urlpath.ResolvePath(baseDir, fileName)
}

// GenerateIndexedPath は、指定されたベースパスの拡張子の前に連番を挿入します。
// 例: "out/image.jpg", 2 -> "out/image_2.jpg"
func GenerateIndexedPath(basePath string, index int) (string, error) {
	return urlpath.GenerateIndexedPath(basePath, index)
}
