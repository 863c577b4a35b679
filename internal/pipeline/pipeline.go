package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/pkg/asset"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/publisher"
)

// 被写体の指定で使う予約語なのだ。それ以外は保存済みアセットの ID か名前として扱うのだ。
const (
	SubjectRefNone = "none"
	SubjectRefAI   = "ai"
)

// DefaultLanguage は言語の指定がないときに使う出力言語なのだ。
const DefaultLanguage = "Bahasa Indonesia"

// Report は一回の実行で書き出したものと保存したアセットをまとめた結果なのだ。
type Report struct {
	Kind      string                   `json:"kind"`
	Published publisher.PublishResult  `json:"published"`
	Video     *publisher.PublishResult `json:"video,omitempty"`
	Saved     *domain.SavedAsset       `json:"saved,omitempty"`
}

// styleAliases は CLI で使える短い別名なのだ。
var styleAliases = map[string]domain.VideoStyle{
	"solution":     domain.StyleSolution,
	"storytelling": domain.StyleStorytelling,
	"comedy":       domain.StyleComedy,
	"news":         domain.StyleNews,
	"korea":        domain.StyleKoreanDrama,
	"majapahit":    domain.StyleMajapahit,
	"scifi":        domain.StyleSciFi,
}

// ParseVideoStyle は表示名または別名からスタイルを解決します。空なら Kasih Solusi なのだ。
func ParseVideoStyle(s string) (domain.VideoStyle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.StyleSolution, nil
	}
	if style, ok := styleAliases[strings.ToLower(s)]; ok {
		return style, nil
	}
	for _, style := range domain.KnownVideoStyles() {
		if strings.EqualFold(string(style), s) {
			return style, nil
		}
	}
	return "", domain.NewValidationError("style", fmt.Sprintf("不明なスタイルです: %q", s))
}

// ParseFraming は director / full / medium または表示名からフレーミングを解決するのだ。
func ParseFraming(s string) (domain.Framing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "director", strings.ToLower(string(domain.FramingDirector)):
		return domain.FramingDirector, nil
	case "full", strings.ToLower(string(domain.FramingFullBody)):
		return domain.FramingFullBody, nil
	case "medium", strings.ToLower(string(domain.FramingMedium)):
		return domain.FramingMedium, nil
	default:
		return "", domain.NewValidationError("framing", fmt.Sprintf("不明なフレーミングです: %q", s))
	}
}

// resolveSubject は予約語または保存済みアセットの参照から Subject を作るのだ。
func resolveSubject(ctx context.Context, appCtx *builder.AppContext, kind domain.AssetKind, ref string) (domain.Subject, error) {
	ref = strings.TrimSpace(ref)
	switch strings.ToLower(ref) {
	case "", SubjectRefNone:
		return domain.NoSubject(), nil
	case SubjectRefAI:
		return domain.AIChosenSubject(), nil
	}
	a, err := appCtx.Assets.Find(ctx, kind, ref)
	if err != nil {
		return domain.Subject{}, err
	}
	return domain.SavedSubject(a), nil
}

// loadImage は画像の指定があれば読み込むのだ。空なら nil を返すのだ。
func loadImage(source string) (*provider.Part, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	part, err := asset.Load(source)
	if err != nil {
		return nil, err
	}
	return &part, nil
}

// saveAsset は --save-as で指定された名前で DNA を保存します。
// 保存に失敗しても生成物はすでに書き出し済みなので、Report はそのまま返すのだ。
func saveAsset(ctx context.Context, appCtx *builder.AppContext, report *Report, kind domain.AssetKind, name, imageURL string, identity domain.IdentityDescription) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	saved, err := appCtx.Assets.Save(ctx, domain.SavedAsset{
		Kind:     kind,
		Name:     name,
		ImageURL: imageURL,
		Identity: identity,
	})
	if err != nil {
		return fmt.Errorf("%s %q の保存に失敗しました: %w", kind, name, err)
	}
	slog.InfoContext(ctx, "アセットを保存したのだ", "kind", string(kind), "name", saved.Name, "id", saved.ID)
	report.Saved = &saved
	return nil
}

// firstImage は書き出した画像の先頭のパスを返すのだ。
func firstImage(res publisher.PublishResult) string {
	if len(res.ImagePaths) == 0 {
		return ""
	}
	return res.ImagePaths[0]
}

// readYAMLFile は YAML ファイルを読み込んで out にデコードするのだ。
func readYAMLFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return domain.NewValidationError("file", fmt.Sprintf("ファイル '%s' の解析に失敗しました: %v", path, err))
	}
	return nil
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
