package publisher

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 46rem; margin: 2rem auto; padding: 0 1rem; font-family: Georgia, serif; line-height: 1.7; color: #222; }
img.cover { display: block; max-width: 100%; margin: 0 auto 2rem; }
h1, h2 { font-family: system-ui, sans-serif; }
h2 { margin-top: 3rem; border-bottom: 1px solid #ddd; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTMLRenderer は Markdown を goldmark で変換し、単体で閲覧できる HTML 文書にします。
type HTMLRenderer struct {
	md   goldmark.Markdown
	lang string
}

// NewHTMLRenderer は GFM と改行の保持を有効にした HTMLRenderer を返すのだ。
func NewHTMLRenderer(lang string) *HTMLRenderer {
	if lang == "" {
		lang = "id" // デフォルト言語
	}
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		lang: lang,
	}
}

// Render は Markdown を HTML 文書に変換するのだ。
func (r *HTMLRenderer) Render(title string, markdown []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("html_renderer: Markdown の変換に失敗しました: %w", err)
	}

	var doc bytes.Buffer
	err := documentTemplate.Execute(&doc, struct {
		Lang  string
		Title string
		Body  template.HTML
	}{
		Lang:  r.lang,
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("html_renderer: HTML 文書の生成に失敗しました: %w", err)
	}
	return doc.Bytes(), nil
}
