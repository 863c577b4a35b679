package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shouni/go-kreator-kit/internal/pipeline"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/publisher"
)

// printReport は書き出したファイルと保存したアセットを表示するのだ。
func printReport(w io.Writer, report *pipeline.Report) {
	if report == nil {
		return
	}
	printPublished(w, report.Kind, report.Published)
	if report.Video != nil {
		printPublished(w, publisher.KindVideo, *report.Video)
	}
	if report.Saved != nil {
		fmt.Fprintf(w, "保存したアセット: %s\n", report.Saved)
	}
}

func printPublished(w io.Writer, kind string, res publisher.PublishResult) {
	fmt.Fprintf(w, "[%s] %s\n", kind, res.Dir)
	for _, p := range res.ImagePaths {
		fmt.Fprintf(w, "  画像:     %s\n", p)
	}
	if res.MarkdownPath != "" {
		fmt.Fprintf(w, "  Markdown: %s\n", res.MarkdownPath)
	}
	if res.HTMLPath != "" {
		fmt.Fprintf(w, "  HTML:     %s\n", res.HTMLPath)
	}
	fmt.Fprintf(w, "  結果:     %s\n", res.ResultPath)
}

// printAssets はアセットを表形式で表示するのだ。
func printAssets(w io.Writer, assets []domain.SavedAsset) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tCREATED")
	for _, a := range assets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Kind, a.Name, a.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

// printHistory は履歴を表形式で表示するのだ。
func printHistory(w io.Writer, records []domain.HistoryRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSCENES\tCREATED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.Title, len(r.Scenes), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	tw.Flush()
}
