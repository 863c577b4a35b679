package director

import (
	"fmt"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// MaxScenes は一本の動画スクリプトで扱えるシーン数の上限なのだ。
const MaxScenes = 10

// Shot はシーンごとのカメラのフレーミングなのだ。
type Shot string

const (
	ShotFullBody Shot = "full-body shot"
	ShotMedium   Shot = "medium shot (waist-up)"
)

// SceneSlot は一シーン分の演出計画なのだ。
type SceneSlot struct {
	Index       int // 1 始まり
	Shot        Shot
	ShowProduct bool
	Transition  string
	Final       bool
}

// LayoutManager はシーンの並びに対する演出規則を管理します。
type LayoutManager struct {
	Closing string
}

func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		Closing: "Final scene: deliver the Call to Action clearly and end on a confident closing shot. No transition.",
	}
}

// Plan は n シーン分の SceneSlot を返します。
// アバターを使い n > 1 のときは、1 シーン目で商品を見せずに課題（フック）を描くのだ。
func (l *LayoutManager) Plan(n int, framing domain.Framing, hasAvatar bool) ([]SceneSlot, error) {
	if n < 1 || n > MaxScenes {
		return nil, domain.NewValidationError("scenes", fmt.Sprintf("シーン数は 1〜%d の範囲で指定してください: %d", MaxScenes, n))
	}

	slots := make([]SceneSlot, n)
	for i := range slots {
		idx := i + 1
		slot := SceneSlot{
			Index:       idx,
			Shot:        l.shotFor(i, framing),
			ShowProduct: !(hasAvatar && n > 1 && idx == 1),
			Final:       idx == n,
		}
		if !slot.Final {
			slot.Transition = fmt.Sprintf("smooth, style-appropriate transition into scene %d", idx+1)
		}
		slots[i] = slot
	}
	return slots, nil
}

// shotFor は監督おまかせの場合、インデックスの偶奇で全身とミディアムを交互にするのだ。
func (l *LayoutManager) shotFor(index int, framing domain.Framing) Shot {
	switch framing {
	case domain.FramingFullBody:
		return ShotFullBody
	case domain.FramingMedium:
		return ShotMedium
	default:
		if index%2 == 0 {
			return ShotFullBody
		}
		return ShotMedium
	}
}
