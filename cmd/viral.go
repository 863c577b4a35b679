package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var viralIn pipeline.ViralInput

// viralCmd は、バイラル動画のシーン構成とプロンプトを生成するのだ。
var viralCmd = &cobra.Command{
	Use:   "viral",
	Short: "バイラル動画のスクリプトを生成するのだ。",
	Long: `--cast に保存済みアバターの名前を並べると、その DNA がそのまま全シーンに使われるのだ。
--pro-file にシーンごとの YAML を渡すと、一つずつ細かく指定する Pro モードになるのだよ。`,
	Example: `  kreator viral --idea "Kucing yang jadi barista" --cast Siti --cast Dimas --scenes 5 --mood Lucu
  kreator viral --idea "Kisah di pasar malam" --pro-file ./scenes.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteViral(ctx, appCtx, viralIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := viralCmd.Flags()
	f.StringVar(&viralIn.Idea, "idea", "", "動画のアイデアなのだ。")
	f.StringSliceVar(&viralIn.Cast, "cast", nil, "登場させる保存済みアバター（複数指定できるのだ）。")
	f.StringVar(&viralIn.CastFile, "cast-file", "", "name と description を並べた登場人物の YAML なのだ。")
	f.IntVar(&viralIn.Scenes, "scenes", 5, "シーン数なのだ。")
	f.StringVar(&viralIn.Style, "style", "", "映像スタイルなのだ。")
	f.StringVar(&viralIn.Mood, "mood", "", "雰囲気なのだ。")
	f.StringVar(&viralIn.Language, "language", pipeline.DefaultLanguage, "セリフの言語なのだ。")
	f.StringVar(&viralIn.Location, "location", "", "保存済みロケーションの ID または名前なのだ。")
	f.StringVar(&viralIn.ProFile, "pro-file", "", "Pro モードのシーン定義 YAML なのだ。")
	_ = viralCmd.MarkFlagRequired("idea")
}
