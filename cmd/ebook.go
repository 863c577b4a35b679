package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var ebookIn pipeline.EbookInput

// ebookCmd は、目次から各章の本文と表紙までを生成するのだ。
var ebookCmd = &cobra.Command{
	Use:     "ebook",
	Short:   "電子書籍（目次・本文・表紙）を生成するのだ。",
	Example: `  kreator ebook --idea "Panduan memulai usaha kopi rumahan" --audience "Pemula" --author "Rina" --chapters 6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteEbook(ctx, appCtx, ebookIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := ebookCmd.Flags()
	f.StringVar(&ebookIn.Idea, "idea", "", "本のテーマなのだ。")
	f.StringVar(&ebookIn.Audience, "audience", "", "想定読者なのだ。")
	f.StringVar(&ebookIn.Style, "style", "", "文体なのだ。")
	f.StringVar(&ebookIn.Author, "author", "", "著者名なのだ。")
	f.IntVar(&ebookIn.Chapters, "chapters", 5, "章の数なのだ。")
	_ = ebookCmd.MarkFlagRequired("idea")
}
