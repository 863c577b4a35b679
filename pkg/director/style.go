package director

import (
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// LocationSource はロケーションがどこから決まったかを表すのだ。
type LocationSource int

const (
	// LocationInvented はモデルにスタイルに合う場所を考えさせるのだ。
	LocationInvented LocationSource = iota
	// LocationSaved はユーザーが選んだ保存済みロケーションの DNA なのだ。常に最優先なのだ。
	LocationSaved
	// LocationStyleSpecific はスタイル専用ロケーションとして入力された文字列なのだ。
	LocationStyleSpecific
	// LocationStyleDefault は特別スタイルの既定の環境なのだ。
	LocationStyleDefault
)

// LocationChoice は解決済みのロケーションなのだ。
type LocationChoice struct {
	Source LocationSource
	Text   string
	Name   string
}

// Mandatory は入力ブロックに「Mandatory Location」として渡すべきかを返すのだ。
func (c LocationChoice) Mandatory() bool { return c.Source == LocationSaved }

// StyleManager は動画スタイルごとの舞台設定の規則を管理します。
type StyleManager struct {
	defaults map[domain.VideoStyle]string
}

// NewStyleManager は特別スタイルの既定の環境を持った StyleManager を返すのだ。
func NewStyleManager() *StyleManager {
	return &StyleManager{
		defaults: map[domain.VideoStyle]string{
			domain.StyleNews:        "a modern, professional TV news studio with a sleek anchor desk, large broadcast monitors and bright studio lighting; presenters wear formal broadcast attire",
			domain.StyleKoreanDrama: "a majestic ancient Korean royal palace pavilion (Joseon era) beside a lotus pond, with traditional hanok architecture; characters wear traditional hanbok",
			domain.StyleMajapahit:   "a grand pendopo of carved teak wood in the Majapahit kingdom lit by torches, next to a royal garden with a lotus pond; characters wear ancient Javanese royal attire",
			domain.StyleSciFi:       "a sleek futuristic laboratory with holographic displays and flying cars visible through the window; characters wear futuristic outfits",
		},
	}
}

// DefaultLocation は特別スタイルの既定の環境を返すのだ。それ以外のスタイルでは空なのだ。
func (s *StyleManager) DefaultLocation(style domain.VideoStyle) string {
	if !domain.IsSpecialStyle(style) {
		return ""
	}
	return s.defaults[style]
}

// ResolveLocation はロケーションの優先順位を適用します。
//  1. 保存済みロケーションの DNA（どのスタイルでも必ず優先）
//  2. スタイル専用ロケーション（Korea / Majapahit / Scifi のみ）
//  3. 特別スタイルの既定の環境
//  4. モデルに任せる
func (s *StyleManager) ResolveLocation(style domain.VideoStyle, loc domain.Subject, styleSpecific string) (LocationChoice, error) {
	switch loc.Kind {
	case domain.SubjectSaved:
		if err := loc.Validate(); err != nil {
			return LocationChoice{}, err
		}
		return LocationChoice{Source: LocationSaved, Text: string(loc.Identity()), Name: loc.Name()}, nil
	case domain.SubjectNone, domain.SubjectAIChosen:
		if styleSpecific = strings.TrimSpace(styleSpecific); styleSpecific != "" && domain.AcceptsStyleLocation(style) {
			return LocationChoice{Source: LocationStyleSpecific, Text: styleSpecific}, nil
		}
		if def := s.DefaultLocation(style); def != "" {
			return LocationChoice{Source: LocationStyleDefault, Text: def}, nil
		}
		return LocationChoice{Source: LocationInvented}, nil
	default:
		return LocationChoice{}, domain.NewValidationError("location", fmt.Sprintf("不明なロケーション選択です: %s", loc.Kind))
	}
}
