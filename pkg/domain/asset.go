package domain

import (
	"fmt"
	"time"
)

// AssetKind は保存済みアセットの種類なのだ。
type AssetKind string

const (
	AssetAvatar   AssetKind = "avatar"
	AssetProduct  AssetKind = "product"
	AssetLocation AssetKind = "location"
)

// 種類ごとの保存上限なのだ。
const (
	MaxAvatars   = 10
	MaxProducts  = 10
	MaxLocations = 10
)

// SavedAsset はユーザーが保存したアバター・商品・ロケーションを表します。
// Identity はその被写体の IdentityDescription（DNA）で、以降の生成で一字一句そのまま再注入されます。
type SavedAsset struct {
	ID        string              `json:"id" yaml:"id"`
	Kind      AssetKind           `json:"kind" yaml:"kind"`
	Name      string              `json:"name" yaml:"name"`
	ImageURL  string              `json:"image_url" yaml:"image_url"`
	Identity  IdentityDescription `json:"identity" yaml:"identity"`
	CreatedAt time.Time           `json:"created_at" yaml:"created_at"`
}

// String はアセットの情報を文字列で返すのだ。
func (a SavedAsset) String() string {
	return fmt.Sprintf("%s (%s/%s)", a.Name, a.Kind, a.ID)
}

// ParseAssetKind は文字列から AssetKind を解決します。
func ParseAssetKind(s string) (AssetKind, error) {
	switch AssetKind(s) {
	case AssetAvatar, AssetProduct, AssetLocation:
		return AssetKind(s), nil
	default:
		return "", NewValidationError("kind", fmt.Sprintf("不明なアセット種別です: %q", s))
	}
}

// CapacityFor は種類ごとの最大保存数を返すのだ。
func CapacityFor(kind AssetKind) int {
	switch kind {
	case AssetAvatar:
		return MaxAvatars
	case AssetProduct:
		return MaxProducts
	case AssetLocation:
		return MaxLocations
	default:
		return 0
	}
}

// DefaultAvatars は初回起動時にアバター置き場へ登録される既定のアバターなのだ。
func DefaultAvatars() []SavedAsset {
	return []SavedAsset{
		{
			ID:       "default-siti",
			Kind:     AssetAvatar,
			Name:     "Siti",
			ImageURL: "https://i.postimg.cc/BQqbCZGD/download-8.jpg",
			Identity: "A photorealistic portrait of an East Asian woman in her early 20s, facing the camera, with an oval face, soft jawline, and subtle cheekbones. She has large, almond-shaped deep brown eyes with noticeable double eyelids, long dark eyelashes, and naturally arched eyebrows. Her nose is small and straight with a gently rounded tip. Her lips are medium-full, gently curved with a defined cupid's bow, holding a soft, closed-mouth smile. Her thick, long, dark wavy hair is parted slightly off-center. She has smooth, warm medium skin tone with a healthy glow.",
		},
		{
			ID:       "default-hendra",
			Kind:     AssetAvatar,
			Name:     "Hendra",
			ImageURL: "https://i.postimg.cc/zDw3Wb48/download-7.jpg",
			Identity: "A photorealistic portrait of an East Asian man in his early to mid-20s with a slender, oval face and a defined jawline, facing the camera. He has deep-set, dark brown, almond-shaped eyes with straight eyebrows. He has a straight, moderately sized nose and naturally full lips with a subtle cupid's bow. His skin is smooth with a warm undertone. He has thick, shoulder-length wavy black hair parted slightly off-center, styled loosely around his face. He has a neutral, calm expression.",
		},
	}
}
