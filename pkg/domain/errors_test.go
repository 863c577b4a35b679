package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	cfgErr := &ConfigurationError{Message: "認証情報 server3 が未設定です"}
	provErr := &ProviderError{Op: ProviderOpTimeout, Message: "deadline", Err: context.DeadlineExceeded}
	parseErr := &ParseError{Reason: "video_script がありません", Raw: "not json"}
	capErr := &CapacityError{Kind: AssetAvatar, Max: MaxAvatars}

	t.Run("ラップされていても種類を判別できること", func(t *testing.T) {
		wrapped := fmt.Errorf("パイプライン失敗: %w", cfgErr)
		if !IsConfigurationError(wrapped) {
			t.Error("ConfigurationError を判別できませんでした")
		}
		if IsProviderError(wrapped) {
			t.Error("ConfigurationError を ProviderError と誤判定しました")
		}
		if !IsProviderError(fmt.Errorf("x: %w", provErr)) {
			t.Error("ProviderError を判別できませんでした")
		}
		if !IsParseError(parseErr) || !IsCapacityError(capErr) {
			t.Error("ParseError / CapacityError を判別できませんでした")
		}
	})

	t.Run("タイムアウトは元のエラーを保持すること", func(t *testing.T) {
		if !provErr.Timeout() {
			t.Error("Timeout() が false です")
		}
		if !errors.Is(provErr, context.DeadlineExceeded) {
			t.Error("DeadlineExceeded に Unwrap できません")
		}
	})

	t.Run("設定エラーとそれ以外で導線が分かれること", func(t *testing.T) {
		if RecoveryHint(fmt.Errorf("w: %w", cfgErr)) != RecoverySettings {
			t.Error("ConfigurationError は settings 導線であるべきです")
		}
		for _, err := range []error{provErr, parseErr, capErr, NewValidationError("idea", "description required")} {
			if RecoveryHint(err) != RecoveryRetry {
				t.Errorf("%T は retry 導線であるべきです", err)
			}
		}
	})

	t.Run("メッセージに上限値が含まれること", func(t *testing.T) {
		if !strings.Contains(capErr.Error(), "10") {
			t.Errorf("上限値がメッセージにありません: %s", capErr.Error())
		}
	})
}

func TestDefaultAvatars(t *testing.T) {
	avatars := DefaultAvatars()
	if len(avatars) != 2 {
		t.Fatalf("既定のアバターは2件のはずです: %d", len(avatars))
	}
	for _, a := range avatars {
		if a.Kind != AssetAvatar || a.Identity.IsEmpty() {
			t.Errorf("不正な既定アバター: %s", a)
		}
	}
	if CapacityFor(AssetLocation) != MaxLocations {
		t.Error("ロケーションの上限が一致しません")
	}
	if _, err := ParseAssetKind("unknown"); !IsValidationError(err) {
		t.Errorf("不明な種別は ValidationError であるべきです: %v", err)
	}
}

func TestImageResponseDataURL(t *testing.T) {
	img := &ImageResponse{Data: []byte("abc")}
	if got := img.DataURL(); got != "data:image/jpeg;base64,YWJj" {
		t.Errorf("期待値 'data:image/jpeg;base64,YWJj', 実際の値 %q", got)
	}
	if img.Extension() != ".jpg" {
		t.Errorf("拡張子が不正です: %s", img.Extension())
	}
}
