package domain

import "strings"

// VideoStyle は動画・広告シーンの演出スタイルなのだ。
type VideoStyle string

const (
	StyleSolution     VideoStyle = "Kasih Solusi"
	StyleStorytelling VideoStyle = "Storytelling"
	StyleComedy       VideoStyle = "Komedi/Lucu"
	StyleNews         VideoStyle = "Gaya Siaran Berita"
	StyleKoreanDrama  VideoStyle = "Gaya Drama Korea"
	StyleMajapahit    VideoStyle = "Gaya Kerajaan Majapahit"
	StyleSciFi        VideoStyle = "Gaya Scifi/Masa Depan"
)

// KnownVideoStyles は選択可能なスタイルを表示順で返すのだ。
func KnownVideoStyles() []VideoStyle {
	return []VideoStyle{
		StyleSolution,
		StyleStorytelling,
		StyleComedy,
		StyleNews,
		StyleKoreanDrama,
		StyleMajapahit,
		StyleSciFi,
	}
}

// IsSpecialStyle は舞台設定そのものがスタイルを定義する4種類かどうかを返します。
// これらはロケーション未指定でもスタイル固有の環境を合成する必要があるのだ。
func IsSpecialStyle(style VideoStyle) bool {
	switch style {
	case StyleNews, StyleKoreanDrama, StyleMajapahit, StyleSciFi:
		return true
	default:
		return false
	}
}

// AcceptsStyleLocation はユーザーがスタイル専用ロケーションを指定できるスタイルかを返すのだ。
// ニュースは TV 名とスタジオを別枠で受け取るので対象外なのだ。
func AcceptsStyleLocation(style VideoStyle) bool {
	switch style {
	case StyleKoreanDrama, StyleMajapahit, StyleSciFi:
		return true
	default:
		return false
	}
}

// Framing はアバターのカメラフレーミングの希望なのだ。
type Framing string

const (
	FramingDirector Framing = "Default (bebas gaya campuran)"
	FramingFullBody Framing = "Full Badan"
	FramingMedium   Framing = "Setengah Badan"
)

// NarratorName はアバターを使わないときに入力ブロックへ書き出す話者名なのだ。
const NarratorName = "Narator"

// IsScientificEbookStyle は学術スタイル（Web 検索で裏付けて参考文献を付ける）かを返すのだ。
func IsScientificEbookStyle(style string) bool {
	return strings.Contains(strings.ToLower(style), "karya ilmiah")
}
