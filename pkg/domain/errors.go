package domain

import (
	"errors"
	"fmt"
)

// ProviderOpTimeout は呼び出しがタイムアウトしたときの ProviderError.Op なのだ。
const ProviderOpTimeout = "timeout"

// ConfigurationError は利用可能な認証情報が解決できないことを表します。
// UI 側では「設定を見直す」導線を出す必要があるのだ。
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("設定エラー: %s: %v", e.Message, e.Err)
	}
	return "設定エラー: " + e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ValidationError は呼び出し側の入力が前提条件を満たしていないことを表します。
// パイプラインは開始されません。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "入力エラー: " + e.Message
	}
	return fmt.Sprintf("入力エラー (%s): %s", e.Field, e.Message)
}

// ProviderError は上流の AI 呼び出しが失敗した、または使える出力が無かったことを表します。
type ProviderError struct {
	Op      string // "text", "image", "timeout" など
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("AI呼び出しに失敗しました (%s): %s", e.Op, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout は呼び出しがタイムアウトによって失敗したかどうかを返すのだ。
func (e *ProviderError) Timeout() bool { return e.Op == ProviderOpTimeout }

// ParseError は構造化出力を期待したステップで、整形後のテキストが
// JSON として読めない、または要求された形を満たさないことを表します。
// Raw には診断用にモデルの生テキストをそのまま保持します。
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "AI応答の解析に失敗しました: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// CapacityError は保存済みアセットの上限を超えて保存しようとしたことを表します。
type CapacityError struct {
	Kind AssetKind
	Max  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("保存上限に達しました: %s は最大 %d 件までです。古いものを削除してから保存してください", e.Kind, e.Max)
}

// NewValidationError は ValidationError を生成するヘルパーなのだ。
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsConfigurationError は err の連鎖に ConfigurationError が含まれるかを返します。
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsValidationError は err の連鎖に ValidationError が含まれるかを返します。
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsProviderError は err の連鎖に ProviderError が含まれるかを返します。
func IsProviderError(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}

// IsParseError は err の連鎖に ParseError が含まれるかを返します。
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// IsCapacityError は err の連鎖に CapacityError が含まれるかを返します。
func IsCapacityError(err error) bool {
	var target *CapacityError
	return errors.As(err, &target)
}

// Recovery はエラー発生時にユーザーへ提示する導線の種類なのだ。
type Recovery string

const (
	RecoverySettings Recovery = "settings"
	RecoveryRetry    Recovery = "retry"
)

// RecoveryHint は設定の問題とそれ以外の失敗を区別して、取るべき導線を返すのだ。
func RecoveryHint(err error) Recovery {
	if IsConfigurationError(err) {
		return RecoverySettings
	}
	return RecoveryRetry
}
