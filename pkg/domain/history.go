package domain

import "time"

// MaxHistory は履歴の保持件数なのだ。超えた分は古い順に消えるのだ。
const MaxHistory = 5

// HistoryRecord は動画スクリプト生成が成功したときに追記される一件の履歴です。
type HistoryRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Scenes    []string  `json:"scenes"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptRecord は promptsForHistory（監査用の中間成果物一覧）の一要素なのだ。
type PromptRecord struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// PromptTrail は手順順に並んだ中間成果物の一覧なのだ。
type PromptTrail []PromptRecord

// Add は末尾に一件追加した新しい一覧を返します。
func (t PromptTrail) Add(title, prompt string) PromptTrail {
	return append(t, PromptRecord{Title: title, Prompt: prompt})
}

// Has は指定タイトルの記録があるかを返すのだ。
func (t PromptTrail) Has(title string) bool {
	for _, r := range t {
		if r.Title == title {
			return true
		}
	}
	return false
}

// Titles はタイトルだけを順番どおりに返すのだ。
func (t PromptTrail) Titles() []string {
	titles := make([]string, len(t))
	for i, r := range t {
		titles[i] = r.Title
	}
	return titles
}
