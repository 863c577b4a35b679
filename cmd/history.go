package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// historyCmd は動画スクリプトの生成履歴を扱うのだ。
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: fmt.Sprintf("動画スクリプトの生成履歴（最新 %d 件）を扱うのだ。", domain.MaxHistory),
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "履歴を新しい順に表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			records, err := appCtx.History.List(ctx)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), records)
			return nil
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "履歴のシーンを表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			rec, err := appCtx.History.Get(ctx, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", rec.Title, rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			for i, scene := range rec.Scenes {
				fmt.Fprintf(w, "\n--- Scene %d ---\n%s\n", i+1, scene)
			}
			return nil
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "履歴を一件削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			if err := appCtx.History.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "削除したのだ: %s\n", args[0])
			return nil
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "履歴をすべて削除するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			if err := appCtx.History.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "履歴を空にしたのだ。")
			return nil
		})
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyClearCmd)
}
