package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter はデータを外部ストレージに保存するためのインターフェースです。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// LocalWriter はローカルのファイルシステムに書き出す OutputWriter なのだ。
type LocalWriter struct{}

// Write は親ディレクトリを作成してからファイルを書き出すのだ。
func (LocalWriter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// AssetManager は一回分の実行ディレクトリ内での保存パスと永続化を管理します。
type AssetManager struct {
	writer  OutputWriter
	baseDir string // 保存先の実行ディレクトリ (例: "output/video-20261019-101500")
}

func NewAssetManager(writer OutputWriter, baseDir string) *AssetManager {
	return &AssetManager{
		writer:  writer,
		baseDir: baseDir,
	}
}

// Save はデータを保存し、その保存先のパスを返します。
func (am *AssetManager) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	fullPath, err := resolvePath(am.baseDir, fileName)
	if err != nil {
		return "", err
	}
	if err := am.writer.Write(ctx, fullPath, data); err != nil {
		return "", fmt.Errorf("asset_manager: %s の保存に失敗しました: %w", fileName, err)
	}
	return fullPath, nil
}
