package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var songIn pipeline.SongInput

var songCmd = &cobra.Command{
	Use:     "song",
	Short:   "歌詞とジャケット画像を生成するのだ。",
	Example: `  kreator song --idea "Rindu kampung halaman" --genre Pop --mood Sendu --artist "Kreator"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			report, err := pipeline.ExecuteSong(ctx, appCtx, songIn)
			printReport(cmd.OutOrStdout(), report)
			return err
		})
	},
}

func init() {
	f := songCmd.Flags()
	f.StringVar(&songIn.Idea, "idea", "", "歌のテーマなのだ。")
	f.StringVar(&songIn.Genre, "genre", "", "ジャンルなのだ。")
	f.StringVar(&songIn.Mood, "mood", "", "雰囲気なのだ。")
	f.StringVar(&songIn.Language, "language", pipeline.DefaultLanguage, "歌詞の言語なのだ。")
	f.StringVar(&songIn.Structure, "structure", "", "曲の構成（例: Verse-Chorus-Verse-Chorus-Bridge-Chorus）なのだ。")
	f.StringVar(&songIn.Artist, "artist", "", "ジャケットに載せるアーティスト名なのだ。")
	_ = songCmd.MarkFlagRequired("idea")
}
