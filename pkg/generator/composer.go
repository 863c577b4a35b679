package generator

import (
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/director"
)

// SceneComposer はシーン計画ごとに DNA を再注入した演出ブロックを組み立てます。
type SceneComposer struct {
	closing string
}

// NewSceneComposer は LayoutManager の締めの指示を引き継いで SceneComposer を生成します。
func NewSceneComposer(layout *director.LayoutManager) *SceneComposer {
	closing := "Deliver the Call to Action. No transition."
	if layout != nil && layout.Closing != "" {
		closing = layout.Closing
	}
	return &SceneComposer{closing: closing}
}

// ComposeScenes はシーンごとの演出ブロックを返します。
// アバターのいるシーンにはアバターの DNA を、商品を見せるシーンには商品の DNA を原文のまま埋め込み、
// 商品を伏せるシーンには商品の DNA を一切含めないのだ。
func (c *SceneComposer) ComposeScenes(plan []director.SceneSlot, avatar *IdentityDNA, product IdentityDNA, location string) []string {
	blocks := make([]string, len(plan))
	for i, slot := range plan {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Scene %d:\n", slot.Index)

		if avatar != nil {
			fmt.Fprintf(&sb, "- Character: %s, who is %s\n", avatar.Name, avatar.Text)
		} else {
			sb.WriteString("- Character: none. Off-screen narrator only, no people on screen.\n")
		}

		if slot.ShowProduct {
			fmt.Fprintf(&sb, "- %s (must appear exactly as described): %s\n", strings.ToLower(product.Label), product.Text)
		} else {
			sb.WriteString("- DO NOT SHOW THE PRODUCT in this scene. Establish the problem or hook only.\n")
		}

		if location != "" {
			fmt.Fprintf(&sb, "- Location: %s\n", location)
		}
		fmt.Fprintf(&sb, "- Camera framing: %s\n", slot.Shot)
		if slot.Final {
			fmt.Fprintf(&sb, "- Closing: %s", c.closing)
		} else {
			fmt.Fprintf(&sb, "- Transition: %s", slot.Transition)
		}
		blocks[i] = sb.String()
	}
	return blocks
}

// ComposeDirectives はマスター定義とシーンブロックを一つの入力セクションにまとめるのだ。
func (c *SceneComposer) ComposeDirectives(plan []director.SceneSlot, avatar *IdentityDNA, product IdentityDNA, location string) (string, []string) {
	dnas := make([]IdentityDNA, 0, 2)
	if avatar != nil {
		dnas = append(dnas, *avatar)
	}
	dnas = append(dnas, product)

	blocks := c.ComposeScenes(plan, avatar, product, location)
	var sb strings.Builder
	sb.WriteString(MasterDefinitions(dnas...))
	sb.WriteString("\n\n### PER-SCENE DIRECTIVES\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	return sb.String(), blocks
}
