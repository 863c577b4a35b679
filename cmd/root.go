package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/config"
	"github.com/shouni/go-kreator-kit/internal/logging"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

var (
	opts config.Options
	cfg  *config.Config
)

// rootCmd は kreator のルートコマンドなのだ。
var rootCmd = &cobra.Command{
	Use:   "kreator",
	Short: "AI でアバター・広告シーン・動画スクリプト・電子書籍などを生成するのだ。",
	Long: `kreator は生成 AI を使ってマーケティング用のコンテンツを作る CLI なのだ。
アバターや商品の見た目（DNA）を保存しておけば、以降の生成で一字一句そのまま再利用されるのだよ。`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRunAppE,
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(
		avatarCmd,
		productCmd,
		serviceCmd,
		videoCmd,
		viralCmd,
		ebookCmd,
		songCmd,
		seoCmd,
		analyzeCmd,
		assetCmd,
		historyCmd,
		settingsCmd,
		batchCmd,
	)
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML 設定ファイルのパスなのだ（環境変数 KREATOR_CONFIG でも指定できるのだ）。")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "アセット・履歴・設定を保存する SQLite のパスなのだ。")
	cmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "生成物を書き出すディレクトリなのだ。")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "ログレベル (debug, info, warn, error) なのだ。")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "ログ形式 (text, json) なのだ。")
	cmd.PersistentFlags().StringVar(&opts.Server, "server", "", "今回だけ使う接続先 (server1〜server5) なのだ。")
}

// preRunAppE は、コマンド実行前に設定を読み込んでロガーを差し替えるのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(opts)
	if err != nil {
		return err
	}
	cfg = loaded
	slog.SetDefault(logging.NewLogger(cfg.LogLevel, cfg.LogFormat))
	return nil
}

// withApp は AppContext を用意して fn を実行し、終わったらデータベースを閉じるのだ。
func withApp(cmd *cobra.Command, fn func(ctx context.Context, appCtx *builder.AppContext) error) error {
	ctx := cmd.Context()
	appCtx, err := builder.NewAppContext(ctx, cfg, nil, logging.WithComponent(slog.Default(), cmd.Name()))
	if err != nil {
		return err
	}
	defer appCtx.Close()
	return fn(ctx, appCtx)
}

// printError はエラーと、エラーの種類に応じた次の一手を表示するのだ。
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "エラー: %v\n", err)
	switch domain.RecoveryHint(err) {
	case domain.RecoverySettings:
		fmt.Fprintln(w, "ヒント: `kreator settings server` で接続先を確認するか、設定ファイルや環境変数 (KREATOR_SERVER1_API_KEY など) を見直してほしいのだ。")
	default:
		fmt.Fprintln(w, "ヒント: 入力を確認して、もう一度実行してほしいのだ。")
	}
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
