package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// PromptCatalog は Instruction Template と入力ブロックを提供する契約です。
type PromptCatalog interface {
	Instruction(mode Mode) (string, error)
	BuildInput(mode Mode, data any) (string, error)
}

// Catalog は埋め込まれたテンプレート群を保持します。
// インストラクションは実行時パラメータを持たない静的な文字列として扱い、
// 実行時の値は入力ブロック側のテンプレートでだけ展開するのだ。
type Catalog struct {
	instructions map[Mode]string
	inputs       map[Mode]*template.Template
}

// NewCatalog は全モードのテンプレートを読み込んで Catalog を初期化します。
func NewCatalog() (*Catalog, error) {
	funcs := template.FuncMap{"json": toJSON}

	c := &Catalog{
		instructions: make(map[Mode]string),
		inputs:       make(map[Mode]*template.Template),
	}
	for _, mode := range AllModes() {
		content, err := templateFS.ReadFile("templates/" + string(mode) + ".md")
		if err != nil {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: %w", mode, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", mode)
		}
		c.instructions[mode] = string(content)

		if imageOnlyModes[mode] {
			continue
		}
		raw, err := inputFS.ReadFile("inputs/" + string(mode) + ".tmpl")
		if err != nil {
			return nil, fmt.Errorf("入力テンプレート '%s' の読み込みに失敗しました: %w", mode, err)
		}
		tmpl, err := template.New(string(mode)).Funcs(funcs).Option("missingkey=error").Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("入力テンプレート '%s' の解析に失敗: %w", mode, err)
		}
		c.inputs[mode] = tmpl
	}

	return c, nil
}

// Instruction はモードに対応するインストラクションを返すのだ。
func (c *Catalog) Instruction(mode Mode) (string, error) {
	text, ok := c.instructions[mode]
	if !ok {
		return "", fmt.Errorf("不明なモードです: '%s'", mode)
	}
	return text, nil
}

// BuildInput は、要求されたモードに応じて入力ブロックのテンプレートを実行します。
func (c *Catalog) BuildInput(mode Mode, data any) (string, error) {
	tmpl, ok := c.inputs[mode]
	if !ok {
		return "", fmt.Errorf("不明なモードです: '%s'", mode)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("入力テンプレート '%s' の実行に失敗しました: %w", mode, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// toJSON は HTML エスケープをせずに JSON 文字列へ変換するのだ。
func toJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
