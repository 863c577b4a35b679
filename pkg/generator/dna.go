package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// DNA のラベルなのだ。
const (
	LabelAvatar   = "AVATAR"
	LabelProduct  = "PRODUCT"
	LabelService  = "SERVICE"
	LabelLocation = "LOCATION"
)

// IdentityDNA は被写体の視覚的一貫性を保つための情報を保持します。
// Text は解析ステップで一度だけ確定し、以降は一字一句そのまま埋め込まれるのだ。
type IdentityDNA struct {
	Label string // AVATAR / PRODUCT など
	Name  string // 被写体の識別子
	Text  domain.IdentityDescription
}

// NewIdentityDNA はラベル・名前・DNA テキストから IdentityDNA を生成します。
func NewIdentityDNA(label, name string, text domain.IdentityDescription) (IdentityDNA, error) {
	if text.IsEmpty() {
		return IdentityDNA{}, domain.NewValidationError("identity", fmt.Sprintf("%s の DNA が空です", label))
	}
	if name == "" {
		name = strings.ToLower(label)
	}
	return IdentityDNA{Label: label, Name: name, Text: text}, nil
}

// FromSubject は保存済みの Subject から DNA を取り出します。Saved 以外では nil を返すのだ。
func FromSubject(label string, s domain.Subject) (*IdentityDNA, error) {
	switch s.Kind {
	case domain.SubjectSaved:
		if err := s.Validate(); err != nil {
			return nil, err
		}
		dna, err := NewIdentityDNA(label, s.Name(), s.Identity())
		if err != nil {
			return nil, err
		}
		return &dna, nil
	case domain.SubjectNone, domain.SubjectAIChosen:
		return nil, nil
	default:
		return nil, domain.NewValidationError("subject", fmt.Sprintf("不明な選択種別です: %s", s.Kind))
	}
}

// MasterDefinitions は全被写体の DNA を原文のまま並べた定義セクションを返すのだ。
func MasterDefinitions(dnas ...IdentityDNA) string {
	var sb strings.Builder
	sb.WriteString("### SUBJECT MASTER DEFINITIONS (STRICT IDENTITY)\n")
	sb.WriteString("Use each description below word-for-word whenever the subject appears. Never paraphrase, shorten or rename it.\n")
	for _, d := range dnas {
		fmt.Fprintf(&sb, "- [%s] %s: %s\n", d.Label, d.Name, d.Text)
	}
	return strings.TrimRight(sb.String(), "\n")
}
