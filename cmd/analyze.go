package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

var analyzeIn pipeline.AnalyzeInput

// analyzeCmd は、商品またはロケーションの画像から DNA を抽出するのだ。
var analyzeCmd = &cobra.Command{
	Use:       "analyze product|location",
	Short:     "商品やロケーションの画像を解析して DNA を抽出するのだ。",
	Example:   `  kreator analyze product --image ./botol.jpg --category Minuman --save-as Botol`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(domain.AssetProduct), string(domain.AssetLocation)},
	RunE: func(cmd *cobra.Command, args []string) error {
		in := analyzeIn
		in.Kind = args[0]
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteAnalyze(ctx, appCtx, in)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeIn.Image, "image", "", "解析する画像のパスまたは data URL なのだ。")
	f.StringVar(&analyzeIn.Category, "category", "", "商品カテゴリなのだ（product のとき）。")
	f.StringVar(&analyzeIn.SaveAs, "save-as", "", "抽出した DNA をこの名前で保存するのだ。")
	_ = analyzeCmd.MarkFlagRequired("image")
}
