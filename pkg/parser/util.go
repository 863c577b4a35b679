package parser

import (
	"strings"
)

// StripEmphasis は本文からマークダウンの強調記号（*）を取り除くのだ。
func StripEmphasis(text string) string {
	return markdownEmphasisRegex.ReplaceAllString(text, "")
}

// SplitBibliography は章本文の「Daftar Pustaka」節を切り離し、本文と参考文献の行を返すのだ。
// 節が無ければ本文をそのまま返すのだ。
func SplitBibliography(text string) (body string, references []string) {
	loc := bibliographyRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, nil
	}
	body = strings.TrimSpace(text[:loc[0]])
	section := text[loc[4]:loc[5]]
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			references = append(references, line)
		}
	}
	return body, references
}

// UniqueLines は順序を保ったまま重複を取り除くのだ。
func UniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// Excerpt は先頭 n 文字（rune 単位）を返すのだ。
func Excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
