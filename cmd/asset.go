package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/pipeline"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

var (
	assetKind string
	importIn  pipeline.ImportInput
)

// assetCmd は保存済みのアバター・商品・ロケーションを管理するのだ。
var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "保存済みのアバター・商品・ロケーションを管理するのだ。",
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "保存済みアセットを一覧表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			var kinds []domain.AssetKind
			if assetKind != "" {
				kind, err := domain.ParseAssetKind(assetKind)
				if err != nil {
					return err
				}
				kinds = []domain.AssetKind{kind}
			} else {
				kinds = []domain.AssetKind{domain.AssetAvatar, domain.AssetProduct, domain.AssetLocation}
			}
			var all []domain.SavedAsset
			for _, kind := range kinds {
				list, err := appCtx.Assets.List(ctx, kind)
				if err != nil {
					return err
				}
				all = append(all, list...)
			}
			printAssets(cmd.OutOrStdout(), all)
			return nil
		})
	},
}

var assetShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "アセットの DNA を表示するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			a, err := appCtx.Assets.Get(ctx, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", a)
			if a.ImageURL != "" {
				fmt.Fprintf(w, "画像: %s\n", a.ImageURL)
			}
			fmt.Fprintf(w, "\n%s\n", a.Identity)
			return nil
		})
	},
}

var assetDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "アセットを削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			if err := appCtx.Assets.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "削除したのだ: %s\n", args[0])
			return nil
		})
	},
}

var assetImportCmd = &cobra.Command{
	Use:     "import",
	Short:   "DNA テキストを AI を使わずにそのまま登録するのだ。",
	Example: `  kreator asset import --kind location --name "Kafe Senja" --identity-file ./kafe.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, appCtx *builder.AppContext) error {
			saved, err := pipeline.ExecuteImport(ctx, appCtx, importIn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "保存したアセット: %s\n", saved)
			return nil
		})
	},
}

func init() {
	assetListCmd.Flags().StringVar(&assetKind, "kind", "", "絞り込む種類 (avatar, product, location) なのだ。")

	f := assetImportCmd.Flags()
	f.StringVar(&importIn.Kind, "kind", "", "種類 (avatar, product, location) なのだ。")
	f.StringVar(&importIn.Name, "name", "", "名前なのだ。")
	f.StringVar(&importIn.Identity, "identity", "", "DNA テキストなのだ。")
	f.StringVar(&importIn.IdentityFile, "identity-file", "", "DNA テキストを書いたファイルなのだ。")
	f.StringVar(&importIn.Image, "image", "", "一緒に記録する画像のパスなのだ。")
	_ = assetImportCmd.MarkFlagRequired("kind")
	_ = assetImportCmd.MarkFlagRequired("name")
	assetImportCmd.MarkFlagsOneRequired("identity", "identity-file")

	assetCmd.AddCommand(assetListCmd, assetShowCmd, assetDeleteCmd, assetImportCmd)
}
