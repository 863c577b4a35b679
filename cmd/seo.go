package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var seoTopic string

// seoCmd は、Web 検索で裏付けた SEO 文案を生成するのだ。トピックはフラグでも引数でも渡せるのだ。
var seoCmd = &cobra.Command{
	Use:     "seo [topic]",
	Short:   "検索結果に基づく SEO 文案を生成するのだ。",
	Example: `  kreator seo "Tren kopi susu 2026"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := seoTopic
		if topic == "" {
			topic = strings.Join(args, " ")
		}
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteSeo(ctx, appCtx, pipeline.SeoInput{Topic: topic})
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	seoCmd.Flags().StringVar(&seoTopic, "topic", "", "調べるトピックなのだ。")
}
