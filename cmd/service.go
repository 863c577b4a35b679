package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var serviceIn pipeline.ServiceInput

// serviceCmd は、サービス広告シーンを生成するのだ。アバターは必須なのだ。
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "サービス広告のシーン画像（と動画スクリプト）を生成するのだ。",
	Example: `  kreator service --description "Jasa cuci sepatu premium antar-jemput" --avatar Hendra --scenes 3 --cta "Pesan via WhatsApp"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteServiceAd(ctx, appCtx, serviceIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := serviceCmd.Flags()
	f.StringVar(&serviceIn.Description, "description", "", "サービスの説明なのだ。")
	f.StringVar(&serviceIn.Avatar, "avatar", "", "保存済みアバターの ID または名前なのだ。")
	f.StringVar(&serviceIn.Style, "style", "", "広告スタイルなのだ。")
	f.StringVar(&serviceIn.Location, "location", "", "保存済みロケーションの ID または名前なのだ。")
	f.StringVar(&serviceIn.StyleLocation, "style-location", "", "スタイル専用のロケーションなのだ。")
	addVideoFlags(serviceCmd, &serviceIn.Video, false)
	_ = serviceCmd.MarkFlagRequired("description")
	_ = serviceCmd.MarkFlagRequired("avatar")
}
