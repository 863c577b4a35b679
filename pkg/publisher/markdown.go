package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// BuildScriptMarkdown は動画スクリプトをシーンごとの見出しで Markdown にするのだ。
func BuildScriptMarkdown(script domain.VideoScript, plot *domain.StoryPlot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", script.Title)

	if plot != nil {
		sb.WriteString("## Ringkasan Cerita\n\n")
		sb.WriteString(strings.TrimSpace(plot.Summary))
		sb.WriteString("\n\n")
		for i, line := range plot.Outline {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.TrimSpace(line))
		}
		sb.WriteString("\n")
	}

	for i, scene := range script.Scenes {
		fmt.Fprintf(&sb, "## Scene %d\n\n", i+1)
		sb.WriteString(strings.TrimSpace(scene))
		sb.WriteString("\n\n")
		if i < len(script.Directives) {
			sb.WriteString("<details><summary>Directive</summary>\n\n```text\n")
			sb.WriteString(script.Directives[i])
			sb.WriteString("\n```\n\n</details>\n\n")
		}
	}
	return sb.String()
}

// BuildEbookMarkdown は電子書籍を一つの Markdown 文書にまとめるのだ。
// coverPath が空でなければ表紙画像を先頭に置くのだ。
func BuildEbookMarkdown(book domain.Ebook, coverPath string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", book.Outline.Title)
	if book.Outline.Subtitle != "" {
		fmt.Fprintf(&sb, "*%s*\n\n", book.Outline.Subtitle)
	}
	if book.Author != "" {
		fmt.Fprintf(&sb, "oleh **%s**\n\n", book.Author)
	}
	if coverPath != "" {
		fmt.Fprintf(&sb, "![%s](%s)\n\n", book.Outline.Title, coverPath)
	}

	sb.WriteString("## Daftar Isi\n\n")
	for i, ch := range book.Chapters {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, ch.Title)
	}
	sb.WriteString("\n")

	for _, ch := range book.Chapters {
		fmt.Fprintf(&sb, "## %s\n\n", ch.Title)
		sb.WriteString(strings.TrimSpace(ch.Content))
		sb.WriteString("\n\n")
	}

	if len(book.Sources) > 0 {
		sb.WriteString("## Sumber Web\n\n")
		writeSources(&sb, book.Sources)
	}
	return sb.String()
}

// BuildSongMarkdown は歌詞とジャケットのプロンプトを Markdown にするのだ。
func BuildSongMarkdown(song domain.Song) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", song.Title)
	fmt.Fprintf(&sb, "**%s**\n\n", song.Artist)
	sb.WriteString("```text\n")
	sb.WriteString(strings.TrimSpace(song.Lyrics))
	sb.WriteString("\n```\n")
	if song.CoverPrompt != "" {
		sb.WriteString("\n## Prompt Sampul\n\n")
		sb.WriteString(string(song.CoverPrompt))
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuildSeoMarkdown は SEO 文案と引用元を Markdown にするのだ。
func BuildSeoMarkdown(topic string, seo domain.SeoContent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# SEO: %s\n\n", topic)
	sb.WriteString(strings.TrimSpace(seo.Description))
	sb.WriteString("\n\n")
	if len(seo.Hashtags) > 0 {
		sb.WriteString(strings.Join(seo.Hashtags, " "))
		sb.WriteString("\n\n")
	}
	if len(seo.Sources) > 0 {
		sb.WriteString("## Sumber\n\n")
		writeSources(&sb, seo.Sources)
	}
	return sb.String()
}

func writeSources(sb *strings.Builder, sources []domain.GroundingSource) {
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URI
		}
		fmt.Fprintf(sb, "- [%s](%s)\n", title, s.URI)
	}
	sb.WriteString("\n")
}
