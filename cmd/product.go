package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var productIn pipeline.ProductInput

// productCmd は、商品広告シーンを生成し、--scenes があれば動画スクリプトまで続けるのだ。
var productCmd = &cobra.Command{
	Use:   "product",
	Short: "商品広告のシーン画像（と動画スクリプト）を生成するのだ。",
	Long: `商品は --image（新しく解析）か --product（保存済みの DNA を再利用）で指定するのだ。
--avatar に保存済みアバターの名前を渡すとそのアバターが登場し、省略するとナレーターだけの構成になるのだ。
--scenes を指定すると、生成したシーンをマスターにして動画スクリプトも作るのだよ。`,
	Example: `  kreator product --image ./botol.jpg --category Minuman --avatar Siti --style news --save-as Botol
  kreator product --product Botol --avatar Siti --location Kafe --scenes 4 --cta "Beli sekarang!"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteProductAd(ctx, appCtx, productIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := productCmd.Flags()
	f.StringVar(&productIn.Image, "image", "", "商品画像のパスまたは data URL なのだ。")
	f.StringVar(&productIn.Product, "product", "", "保存済み商品の ID または名前なのだ。")
	f.StringVar(&productIn.Avatar, "avatar", pipeline.SubjectRefNone, "保存済みアバターの ID または名前なのだ。none ならナレーターなのだ。")
	f.StringVar(&productIn.Category, "category", "", "商品カテゴリなのだ。")
	f.StringVar(&productIn.Style, "style", "", "広告スタイル (solution, storytelling, comedy, news, korea, majapahit, scifi) なのだ。")
	f.StringVar(&productIn.Location, "location", "", "保存済みロケーションの ID または名前なのだ。")
	f.StringVar(&productIn.StyleLocation, "style-location", "", "韓国ドラマ・マジャパヒト・SF スタイル専用のロケーションなのだ。")
	f.StringVar(&productIn.SaveAs, "save-as", "", "商品 DNA をこの名前で保存するのだ。")
	addVideoFlags(productCmd, &productIn.Video, true)
	productCmd.MarkFlagsOneRequired("image", "product")
	productCmd.MarkFlagsMutuallyExclusive("image", "product")
	_ = productCmd.MarkFlagRequired("category")
}
