package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
)

var (
	batchFile        string
	batchConcurrency int
)

// batchCmd は、YAML に並べた独立したジョブをまとめて実行するのだ。
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "YAML に並べた生成ジョブをまとめて実行するのだ。",
	Long: `ジョブは互いに独立していて、--concurrency 件ずつ並行に実行されるのだ。
一件が失敗しても残りは最後まで実行し、最後に失敗したジョブをまとめて報告するのだよ。`,
	Example: `  kreator batch --file ./jobs.yaml --concurrency 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := pipeline.LoadJobs(batchFile)
		if err != nil {
			return err
		}
		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.BatchConcurrency
		}
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			results, err := pipeline.ExecuteBatch(ctx, appCtx, jobs, concurrency)
			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "JOB\tSTATUS\tELAPSED\tOUTPUT")
			for _, r := range results {
				status, out := "OK", ""
				if r.Err != nil {
					status = "FAILED"
				}
				if r.Report != nil {
					out = r.Report.Published.Dir
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, status, r.Duration.Round(time.Millisecond), out)
			}
			if ferr := tw.Flush(); ferr != nil {
				return ferr
			}
			return err
		})
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "ジョブを並べた YAML ファイルなのだ。")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "同時に実行するジョブ数なのだ（省略時は設定値）。")
	_ = batchCmd.MarkFlagRequired("file")
}
