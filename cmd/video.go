package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var videoIn pipeline.VideoScriptInput

// videoCmd は、既存のマスターシーンと保存済みの DNA から動画スクリプトだけを作るのだ。
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "マスターシーンから動画スクリプトを生成するのだ。",
	Example: `  kreator video --master-file ./scene.txt --product Botol --avatar Siti --scenes 4 --cta "Beli sekarang!" --description "Botol minum premium"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteVideoScript(ctx, appCtx, videoIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := videoCmd.Flags()
	f.StringVar(&videoIn.MasterScene, "master", "", "マスターシーンのプロンプトなのだ。")
	f.StringVar(&videoIn.MasterSceneFile, "master-file", "", "マスターシーンのプロンプトを書いたファイルなのだ。")
	f.StringVar(&videoIn.Product, "product", "", "保存済み商品の ID または名前なのだ。")
	f.StringVar(&videoIn.ProductDNA, "product-dna", "", "商品 DNA のテキストなのだ（--product の代わり）。")
	f.StringVar(&videoIn.Avatar, "avatar", pipeline.SubjectRefNone, "保存済みアバターの ID または名前なのだ。")
	f.StringVar(&videoIn.Style, "style", "", "広告スタイルなのだ。")
	f.StringVar(&videoIn.Location, "location", "", "保存済みロケーションの ID または名前なのだ。")
	f.StringVar(&videoIn.StyleLocation, "style-location", "", "スタイル専用のロケーションなのだ。")
	addVideoFlags(videoCmd, &videoIn.Video, true)
	videoCmd.MarkFlagsOneRequired("master", "master-file")
	videoCmd.MarkFlagsOneRequired("product", "product-dna")
	_ = videoCmd.MarkFlagRequired("scenes")
}
