package domain

// AvatarResult はアバター生成パイプラインの成果物です。
type AvatarResult struct {
	Image       *ImageResponse      `json:"-"`
	ScenePrompt ScenePrompt         `json:"scene_prompt"`
	Identity    IdentityDescription `json:"identity"`
	Trail       PromptTrail         `json:"prompts_for_history"`
}

// ProductAdResult は商品広告シーン生成の成果物なのだ。
type ProductAdResult struct {
	Image           *ImageResponse      `json:"-"`
	ProductIdentity IdentityDescription `json:"product_identity"`
	ScenePrompt     ScenePrompt         `json:"scene_prompt"`
	AvatarName      string              `json:"avatar_name"`
	Trail           PromptTrail         `json:"prompts_for_history"`
}

// ServiceAdResult はサービス広告シーン生成の成果物なのだ。
type ServiceAdResult struct {
	Image       *ImageResponse `json:"-"`
	Analysis    string         `json:"service_analysis"`
	ScenePrompt ScenePrompt    `json:"scene_prompt"`
	AvatarName  string         `json:"avatar_name"`
	Trail       PromptTrail    `json:"prompts_for_history"`
}

// VideoScript は video_script キーで返されるシーンごとの ScenePrompt の並びなのだ。
// Directives はモデルに渡したシーンごとの DNA 再注入ブロックで、監査用に残すのだ。
type VideoScript struct {
	Title      string   `json:"title,omitempty"`
	Scenes     []string `json:"video_script"`
	Directives []string `json:"scene_directives,omitempty"`
}

// StoryPlot はバイラル動画の第1フェーズ（プロット構築）の成果物なのだ。
type StoryPlot struct {
	Summary string   `json:"overall_summary"`
	Outline []string `json:"scene_by_scene_outline"`
}

// ViralResult はバイラル動画パイプラインの成果物なのだ。Pro モードでは Plot は nil なのだ。
type ViralResult struct {
	Plot   *StoryPlot  `json:"plot,omitempty"`
	Script VideoScript `json:"script"`
}

// CastMember はバイラル動画の登場人物プロファイルなのだ。
type CastMember struct {
	Name        string              `json:"name" yaml:"name" validate:"required"`
	Description IdentityDescription `json:"description" yaml:"description" validate:"required"`
}

// ProScene は Pro モードでユーザーが直接与えるシーンの内訳なのだ。
type ProScene struct {
	SceneNumber   int      `json:"scene_number" yaml:"scene_number"`
	Description   string   `json:"description" yaml:"description" validate:"required"`
	Location      string   `json:"location" yaml:"location"`
	Actions       string   `json:"actions" yaml:"actions"`
	Dialogue      string   `json:"dialogue" yaml:"dialogue"`
	Mood          string   `json:"mood" yaml:"mood"`
	ActorsInScene []string `json:"actors_in_scene" yaml:"actors_in_scene"`
}

// EbookOutline は電子書籍のタイトルと章立てなのだ。
type EbookOutline struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Chapters []string `json:"chapters"`
}

// EbookChapter は本文を書き終えた一章なのだ。
type EbookChapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Ebook は電子書籍パイプラインの成果物なのだ。
type Ebook struct {
	Outline     EbookOutline      `json:"outline"`
	Author      string            `json:"author"`
	Chapters    []EbookChapter    `json:"chapters"`
	CoverPrompt ScenePrompt       `json:"cover_prompt"`
	Cover       *ImageResponse    `json:"-"`
	Sources     []GroundingSource `json:"sources,omitempty"`
	Trail       PromptTrail       `json:"prompts_for_history"`
}

// Song は歌詞生成の成果物なのだ。
type Song struct {
	Title       string         `json:"title"`
	Artist      string         `json:"artist"`
	Lyrics      string         `json:"lyrics"`
	CoverPrompt ScenePrompt    `json:"cover_prompt,omitempty"`
	Cover       *ImageResponse `json:"-"`
	Trail       PromptTrail    `json:"prompts_for_history,omitempty"`
}

// GroundingSource は Web 検索による引用元なのだ。
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SeoContent は SEO 文案と、その根拠となった引用元なのだ。
type SeoContent struct {
	Description string            `json:"description"`
	Hashtags    []string          `json:"hashtags"`
	Sources     []GroundingSource `json:"sources"`
}

// AnalysisResult は単体の商品写真・ロケーション解析の成果物なのだ。
type AnalysisResult struct {
	Kind        AssetKind           `json:"kind"`
	Identity    IdentityDescription `json:"identity"`
	ScenePrompt ScenePrompt         `json:"scene_prompt,omitempty"`
	Image       *ImageResponse      `json:"-"`
	Trail       PromptTrail         `json:"prompts_for_history"`
}
