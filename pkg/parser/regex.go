package parser

import "regexp"

var (
	// fenceRegex は応答全体を囲むコードフェンスをキャプチャします。
	fenceRegex = regexp.MustCompile("(?s)^```[\\w-]*\\s*\\n?(.*?)\\n?\\s*```$")

	// jsonBlockRegex は応答の途中に現れる ```json ブロックをキャプチャします。
	jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

	// bibliographyRegex は章本文の末尾にある「Daftar Pustaka」節を見つけます。
	bibliographyRegex = regexp.MustCompile(`(?i)(\n|\A)Daftar Pustaka:?([\s\S]*)`)

	// markdownEmphasisRegex は本文から取り除く強調記号なのだ。
	markdownEmphasisRegex = regexp.MustCompile(`\*`)
)
