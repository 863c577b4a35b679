package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// Shape は構造化出力に要求する形なのだ。
type Shape struct {
	// RootKey はトップレベルに必須のキーなのだ。
	RootKey string
	// RootArray はルートの値そのものが配列であることを要求するのだ。
	RootArray bool
	// RootNonEmpty はルート配列が空でないことを要求するのだ。
	RootNonEmpty bool
	// Required はルートオブジェクトの下に必須のキーなのだ（null は欠落とみなす）。
	Required []string
	// Arrays はルートオブジェクトの下で配列であるべきキーなのだ。
	Arrays []string
	// NonEmpty は空であってはならない配列のキーなのだ。
	NonEmpty []string
}

// StripFence は先頭・末尾のコードフェンス（言語タグの有無を問わない）を取り除くのだ。
// フェンスが無ければ前後の空白を除いたテキストをそのまま返すのだ。
func StripFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := fenceRegex.FindStringSubmatch(trimmed); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// ParseStructured はモデルの生テキストを JSON として解析し、Shape を検証してから
// ルートキーの値を out にデコードします。
// 失敗は全て生テキストを保持した *domain.ParseError になるのだ。状態は持たないのだ。
func ParseStructured(raw string, shape Shape, out any) error {
	doc, err := decodeDocument(raw)
	if err != nil {
		return parseError(raw, "JSON として解析できません", err)
	}

	rootValue, ok := doc[shape.RootKey]
	if !ok || isNull(rootValue) {
		return parseError(raw, fmt.Sprintf("ルートキー '%s' が見つかりません", shape.RootKey), nil)
	}

	if shape.RootArray {
		var arr []json.RawMessage
		if err := json.Unmarshal(rootValue, &arr); err != nil {
			return parseError(raw, fmt.Sprintf("'%s' が配列ではありません", shape.RootKey), err)
		}
		if shape.RootNonEmpty && len(arr) == 0 {
			return parseError(raw, fmt.Sprintf("'%s' が空の配列です", shape.RootKey), nil)
		}
	}

	if len(shape.Required) > 0 || len(shape.Arrays) > 0 || len(shape.NonEmpty) > 0 {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(rootValue, &obj); err != nil || obj == nil {
			return parseError(raw, fmt.Sprintf("'%s' がオブジェクトではありません", shape.RootKey), err)
		}
		for _, key := range shape.Required {
			if v, ok := obj[key]; !ok || isNull(v) {
				return parseError(raw, fmt.Sprintf("'%s.%s' がありません", shape.RootKey, key), nil)
			}
		}
		for _, key := range shape.Arrays {
			v, ok := obj[key]
			if !ok {
				return parseError(raw, fmt.Sprintf("'%s.%s' がありません", shape.RootKey, key), nil)
			}
			var arr []json.RawMessage
			if err := json.Unmarshal(v, &arr); err != nil || arr == nil {
				return parseError(raw, fmt.Sprintf("'%s.%s' が配列ではありません", shape.RootKey, key), err)
			}
		}
		for _, key := range shape.NonEmpty {
			var arr []json.RawMessage
			if err := json.Unmarshal(obj[key], &arr); err != nil || len(arr) == 0 {
				return parseError(raw, fmt.Sprintf("'%s.%s' が空です", shape.RootKey, key), err)
			}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rootValue, out); err != nil {
		return parseError(raw, fmt.Sprintf("'%s' を期待する型にデコードできません", shape.RootKey), err)
	}
	return nil
}

// decodeDocument はフェンスを外した本文を解析し、失敗した場合は
// 文中のフェンスブロック、最も外側の波括弧の順で取り出しを試みるのだ。
func decodeDocument(raw string) (map[string]json.RawMessage, error) {
	candidates := []string{StripFence(raw)}
	if m := jsonBlockRegex.FindStringSubmatch(raw); len(m) > 1 {
		candidates = append(candidates, m[1])
	}
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		candidates = append(candidates, raw[first:last+1])
	}

	var firstErr error
	for _, c := range candidates {
		var doc map[string]json.RawMessage
		err := json.Unmarshal([]byte(c), &doc)
		if err == nil && doc != nil {
			return doc, nil
		}
		if err == nil {
			err = fmt.Errorf("トップレベルが JSON オブジェクトではありません")
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func isNull(v json.RawMessage) bool {
	return len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func parseError(raw, reason string, err error) error {
	return &domain.ParseError{
		Reason: fmt.Sprintf("%s (応答抜粋: %q)", reason, truncateString(raw, 200)),
		Raw:    raw,
		Err:    err,
	}
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
