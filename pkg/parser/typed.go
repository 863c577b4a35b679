package parser

import (
	"fmt"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

var (
	videoScriptShape = Shape{RootKey: "video_script", RootArray: true, RootNonEmpty: true}
	storyPlotShape   = Shape{
		RootKey:  "detailed_plot",
		Required: []string{"overall_summary", "scene_by_scene_outline"},
		Arrays:   []string{"scene_by_scene_outline"},
		NonEmpty: []string{"scene_by_scene_outline"},
	}
	ebookOutlineShape = Shape{
		RootKey:  "ebook_outline",
		Required: []string{"title", "chapters"},
		Arrays:   []string{"chapters"},
		NonEmpty: []string{"chapters"},
	}
	songShape = Shape{
		RootKey:  "song",
		Required: []string{"title", "artist", "lyrics"},
	}
	seoShape = Shape{
		RootKey:  "seo_content",
		Required: []string{"description", "hashtags"},
		Arrays:   []string{"hashtags"},
	}
)

// ParseVideoScript は video_script 配列を取り出し、要求されたシーン数と一致するか検証するのだ。
func ParseVideoScript(raw string, wantScenes int) (domain.VideoScript, error) {
	var scenes []string
	if err := ParseStructured(raw, videoScriptShape, &scenes); err != nil {
		return domain.VideoScript{}, err
	}
	if wantScenes > 0 && len(scenes) != wantScenes {
		return domain.VideoScript{}, parseError(raw,
			fmt.Sprintf("シーン数が一致しません (期待: %d, 実際: %d)", wantScenes, len(scenes)), nil)
	}
	for i, s := range scenes {
		if s == "" {
			return domain.VideoScript{}, parseError(raw, fmt.Sprintf("シーン %d が空です", i+1), nil)
		}
	}
	return domain.VideoScript{Scenes: scenes}, nil
}

// ParseStoryPlot はバイラル動画の第1フェーズの応答を解析するのだ。
func ParseStoryPlot(raw string, wantScenes int) (domain.StoryPlot, error) {
	var plot domain.StoryPlot
	if err := ParseStructured(raw, storyPlotShape, &plot); err != nil {
		return domain.StoryPlot{}, err
	}
	if wantScenes > 0 && len(plot.Outline) != wantScenes {
		return domain.StoryPlot{}, parseError(raw,
			fmt.Sprintf("プロットのシーン数が一致しません (期待: %d, 実際: %d)", wantScenes, len(plot.Outline)), nil)
	}
	return plot, nil
}

// ParseEbookOutline は章立てを解析し、章の数を検証するのだ。
func ParseEbookOutline(raw string, wantChapters int) (domain.EbookOutline, error) {
	var outline domain.EbookOutline
	if err := ParseStructured(raw, ebookOutlineShape, &outline); err != nil {
		return domain.EbookOutline{}, err
	}
	if wantChapters > 0 && len(outline.Chapters) != wantChapters {
		return domain.EbookOutline{}, parseError(raw,
			fmt.Sprintf("章の数が一致しません (期待: %d, 実際: %d)", wantChapters, len(outline.Chapters)), nil)
	}
	return outline, nil
}

// ParseSong は歌詞の応答を解析するのだ。
func ParseSong(raw string) (domain.Song, error) {
	var song domain.Song
	if err := ParseStructured(raw, songShape, &song); err != nil {
		return domain.Song{}, err
	}
	return song, nil
}

// ParseSeoContent は SEO 文案の応答を解析するのだ。引用元は呼び出し側で付与するのだ。
func ParseSeoContent(raw string) (domain.SeoContent, error) {
	var seo domain.SeoContent
	if err := ParseStructured(raw, seoShape, &seo); err != nil {
		return domain.SeoContent{}, err
	}
	return seo, nil
}
