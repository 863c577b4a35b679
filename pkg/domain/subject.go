package domain

import (
	"fmt"
	"strings"
)

// IdentityDescription は被写体（人物・商品・ロケーション）の視覚的な同一性を表す一段落のテキストです。
// 一度確定したら、以降のステップでは言い換えず一字一句そのまま再利用します。
type IdentityDescription string

// String は文字列表現を返すのだ。
func (d IdentityDescription) String() string { return string(d) }

// IsEmpty は空白のみの DNA を空とみなすのだ。
func (d IdentityDescription) IsEmpty() bool { return strings.TrimSpace(string(d)) == "" }

// ScenePrompt は 1 枚の画像を描画するための完全な指示文です。
type ScenePrompt string

// String は文字列表現を返すのだ。
func (p ScenePrompt) String() string { return string(p) }

// SubjectKind は被写体の選択状態を表すタグなのだ。
type SubjectKind int

const (
	// SubjectNone は選択なし（アバターならナレーター、ロケーションなら未指定）なのだ。
	SubjectNone SubjectKind = iota
	// SubjectAIChosen は AI に任せる選択なのだ。
	SubjectAIChosen
	// SubjectSaved は保存済みアセットの選択なのだ。
	SubjectSaved
)

func (k SubjectKind) String() string {
	switch k {
	case SubjectNone:
		return "none"
	case SubjectAIChosen:
		return "ai"
	case SubjectSaved:
		return "saved"
	default:
		return fmt.Sprintf("SubjectKind(%d)", int(k))
	}
}

// Subject はアバターやロケーションの選択を表すタグ付きバリアントです。
// Kind が SubjectSaved のときだけ Asset が設定されます。
type Subject struct {
	Kind  SubjectKind
	Asset *SavedAsset
}

// NoSubject は何も選択していない Subject を返すのだ。
func NoSubject() Subject { return Subject{Kind: SubjectNone} }

// AIChosenSubject は AI に任せる Subject を返すのだ。
func AIChosenSubject() Subject { return Subject{Kind: SubjectAIChosen} }

// SavedSubject は保存済みアセットを指す Subject を返すのだ。
func SavedSubject(asset SavedAsset) Subject {
	return Subject{Kind: SubjectSaved, Asset: &asset}
}

// Validate は Subject の形が正しいかを検査します。
func (s Subject) Validate() error {
	switch s.Kind {
	case SubjectNone, SubjectAIChosen:
		if s.Asset != nil {
			return NewValidationError("subject", fmt.Sprintf("%s の選択にアセットは指定できません", s.Kind))
		}
		return nil
	case SubjectSaved:
		if s.Asset == nil {
			return NewValidationError("subject", "保存済みアセットが指定されていません")
		}
		if s.Asset.Identity.IsEmpty() {
			return NewValidationError("subject", fmt.Sprintf("アセット %q の DNA が空です", s.Asset.Name))
		}
		return nil
	default:
		return NewValidationError("subject", fmt.Sprintf("不明な選択種別です: %s", s.Kind))
	}
}

// Identity は Saved のときだけアセットの DNA を返すのだ。それ以外は空文字なのだ。
func (s Subject) Identity() IdentityDescription {
	if s.Kind == SubjectSaved && s.Asset != nil {
		return s.Asset.Identity
	}
	return ""
}

// Name は Saved のときだけアセット名を返すのだ。
func (s Subject) Name() string {
	if s.Kind == SubjectSaved && s.Asset != nil {
		return s.Asset.Name
	}
	return ""
}

// IsSaved は保存済みアセットが選ばれているかを返すのだ。
func (s Subject) IsSaved() bool { return s.Kind == SubjectSaved && s.Asset != nil }
