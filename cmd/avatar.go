package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var avatarIn pipeline.AvatarInput

// avatarCmd は、アイデアまたは参照画像からアバターと DNA を生成するのだ。
var avatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "アイデアまたは参照画像からアバターを生成するのだ。",
	Long: `--idea を指定するとテキストからプロンプトを最適化して描画し、
--image を指定すると参照画像を解析して描画するのだ。
どちらの場合も描画結果から DNA を抽出するので、--save-as で保存すれば他の生成で使い回せるのだよ。`,
	Example: `  kreator avatar --idea "seorang barista muda yang ramah" --style "Cinematic Film" --save-as Dimas
  kreator avatar --image ./foto.jpg --mode face --instructions "wearing a red jacket"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteAvatar(ctx, appCtx, avatarIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := avatarCmd.Flags()
	f.StringVar(&avatarIn.Idea, "idea", "", "アバターのアイデアなのだ。")
	f.StringVar(&avatarIn.Style, "style", "", "画風（例: Cinematic Film）なのだ。")
	f.StringVar(&avatarIn.Image, "image", "", "参照画像のパスまたは data URL なのだ。")
	f.StringVar(&avatarIn.Mode, "mode", "replicate", "参照画像の解析方法 (replicate, face) なのだ。")
	f.StringVar(&avatarIn.Instructions, "instructions", "", "参照画像モードで追加する指示なのだ。")
	f.StringVar(&avatarIn.SaveAs, "save-as", "", "生成した DNA をこの名前でアバターとして保存するのだ。")
	avatarCmd.MarkFlagsOneRequired("idea", "image")
	avatarCmd.MarkFlagsMutuallyExclusive("idea", "image")
}
