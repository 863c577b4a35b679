package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

// addVideoFlags は動画スクリプトの設定フラグを登録するのだ。
// サービス広告は説明文をそのまま使うので、withDescription を false にするのだ。
func addVideoFlags(cmd *cobra.Command, v *pipeline.VideoInput, withDescription bool) {
	f := cmd.Flags()
	f.IntVar(&v.Scenes, "scenes", 0, "動画スクリプトのシーン数 (1〜10) なのだ。")
	if withDescription {
		f.StringVar(&v.Description, "description", "", "動画スクリプト用の商品説明なのだ。")
	}
	f.StringVar(&v.Language, "language", pipeline.DefaultLanguage, "セリフの言語なのだ。")
	f.StringVar(&v.CallToAction, "cta", "", "最後のシーンの Call to Action なのだ。")
	f.StringVar(&v.Framing, "framing", "director", "アバターのフレーミング (director, full, medium) なのだ。")
	f.StringVar(&v.TVName, "tv-name", "", "ニューススタイルの番組名なのだ。")
	f.StringVar(&v.NewsLocation, "news-location", "", "ニューススタイルのスタジオなのだ。")
}
