package prompts

import (
	"embed"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// Mode は Instruction Template を識別するタスク名なのだ。
type Mode string

const (
	ModeProductAnalysis        Mode = "product_analysis"
	ModeSceneComposition       Mode = "scene_composition"
	ModeProductOnlyComposition Mode = "product_only_composition"
	ModeProductPhoto           Mode = "product_photo"
	ModeLocationAnalysis       Mode = "location_analysis"
	ModeReplicationAnalysis    Mode = "replication_analysis"
	ModeReferenceAnalysis      Mode = "reference_analysis"
	ModePromptOptimizer        Mode = "prompt_optimizer"
	ModeServiceAnalysis        Mode = "service_analysis"
	ModeServiceComposition     Mode = "service_composition"
	ModeVideoScriptStandard    Mode = "video_script_standard"
	ModeVideoScriptNews        Mode = "video_script_news"
	ModeStoryOptimizer         Mode = "story_optimizer"
	ModeSceneGenerator         Mode = "scene_generator"
	ModeSceneGeneratorPro      Mode = "scene_generator_pro"
	ModeEbookOutline           Mode = "ebook_outline"
	ModeEbookChapter           Mode = "ebook_chapter"
	ModeEbookCover             Mode = "ebook_cover"
	ModeSongLyrics             Mode = "song_lyrics"
	ModeSongCover              Mode = "song_cover"
	ModeSeoContent             Mode = "seo_content"
)

// AllModes は全てのモードを返すのだ。
func AllModes() []Mode {
	return []Mode{
		ModeProductAnalysis, ModeSceneComposition, ModeProductOnlyComposition, ModeProductPhoto,
		ModeLocationAnalysis, ModeReplicationAnalysis, ModeReferenceAnalysis, ModePromptOptimizer,
		ModeServiceAnalysis, ModeServiceComposition, ModeVideoScriptStandard, ModeVideoScriptNews,
		ModeStoryOptimizer, ModeSceneGenerator, ModeSceneGeneratorPro,
		ModeEbookOutline, ModeEbookChapter, ModeEbookCover,
		ModeSongLyrics, ModeSongCover, ModeSeoContent,
	}
}

var (
	//go:embed templates/*.md
	templateFS embed.FS
	//go:embed inputs/*.tmpl
	inputFS embed.FS
)

// imageOnlyModes は入力ブロックを持たず、画像パートだけを添えて呼び出すモードなのだ。
var imageOnlyModes = map[Mode]bool{
	ModeProductAnalysis:     true,
	ModeLocationAnalysis:    true,
	ModeReplicationAnalysis: true,
	ModeReferenceAnalysis:   true,
}

// OptimizerData は ModePromptOptimizer の入力なのだ。
type OptimizerData struct {
	Idea  string
	Style string
}

// CompositionData は商品広告シーン合成（アバターあり／商品のみ）の入力なのだ。
type CompositionData struct {
	ProductDNA       domain.IdentityDescription
	CharacterProfile domain.IdentityDescription
	Category         string
	Style            domain.VideoStyle
	Location         string
	StyleEnvironment string
}

// ProductPhotoData は単体の商品写真プロンプトの入力なのだ。
type ProductPhotoData struct {
	ProductDNA domain.IdentityDescription
	Category   string
	Location   string
}

// ServiceAnalysisData はサービス解析の入力なのだ。
type ServiceAnalysisData struct {
	Description string
}

// ServiceCompositionData はサービス広告シーン合成の入力なのだ。
type ServiceCompositionData struct {
	ServiceDescription string
	CharacterProfile   domain.IdentityDescription
	Style              domain.VideoStyle
	Location           string
	StyleEnvironment   string
}

// VideoScriptData は標準の動画スクリプトの入力なのだ。
// SceneDirectives にはシーンごとの DNA 再注入ブロックが入るのだ。
type VideoScriptData struct {
	MasterScene     domain.ScenePrompt
	Description     string
	Style           domain.VideoStyle
	Language        string
	Scenes          int
	CallToAction    string
	AvatarName      string
	Framing         domain.Framing
	StyleLocation   string
	SceneDirectives string
}

// NewsScriptData はニュース形式の動画スクリプトの入力なのだ。
type NewsScriptData struct {
	Character    domain.IdentityDescription
	Description  string
	NewsLocation string
	TVName       string
	Scenes       int
	CallToAction string
	Language     string
}

// StoryOptimizerData はバイラル動画の第1フェーズの入力なのだ。
type StoryOptimizerData struct {
	Idea    string
	Cast    []domain.CastMember
	Scenes  int
	Style   string
	Mood    string
	Setting string
}

// SceneGeneratorData はバイラル動画の第2フェーズの入力なのだ。
type SceneGeneratorData struct {
	Outline  []string
	Cast     []domain.CastMember
	Scenes   int
	Style    string
	Mood     string
	Language string
}

// SceneGeneratorProData は Pro モードの入力なのだ。
type SceneGeneratorProData struct {
	Idea      string
	Cast      []domain.CastMember
	Language  string
	ProScenes []domain.ProScene
}

// EbookOutlineData は電子書籍の章立ての入力なのだ。
type EbookOutlineData struct {
	Idea     string
	Audience string
	Style    string
	Chapters int
}

// EbookChapterData は一章分の執筆の入力なのだ。
type EbookChapterData struct {
	Idea         string
	Audience     string
	Style        string
	EbookTitle   string
	ChapterTitle string
	Context      string
}

// EbookCoverData は表紙プロンプトの入力なのだ。
type EbookCoverData struct {
	Title   string
	Author  string
	Summary string
}

// SongLyricsData は歌詞生成の入力なのだ。
type SongLyricsData struct {
	Idea      string
	Genre     string
	Mood      string
	Language  string
	Artist    string
	Structure string
}

// SongCoverData はジャケットのプロンプトの入力なのだ。
type SongCoverData struct {
	Title   string
	Artist  string
	Summary string
	Genre   string
	Mood    string
}

// SeoData は SEO 文案生成の入力なのだ。
type SeoData struct {
	Topic string
}
