package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "永続化された設定を扱うのだ。",
}

// settingsServerCmd は、引数なしなら接続先の一覧を、引数ありならその接続先を保存するのだ。
var settingsServerCmd = &cobra.Command{
	Use:     "server [id]",
	Short:   "AI の接続先を表示・選択するのだ。",
	Example: "  kreator settings server\n  kreator settings server server2",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				if err := builder.SelectServer(ctx, appCtx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(w, "接続先を %s に切り替えたのだ。\n", args[0])
				return nil
			}

			servers, err := builder.ListServers(ctx, appCtx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tID\tAPI KEY\tENV")
			for _, s := range servers {
				mark, state := "", "未設定"
				if s.Selected {
					mark = "*"
				}
				if s.Configured {
					state = "設定済み"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, s.ID, state, config.CredentialEnvName(s.ID))
			}
			return tw.Flush()
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsServerCmd)
}
