package publisher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shouni/go-kreator-kit/pkg/asset"
)

const (
	runDirTimeLayout = "20060102-150405"
	maxRunDirIndex   = 100
)

// resolvePath は実行ディレクトリとファイル名から出力パスを生成するのだ。
func resolvePath(baseDir, fileName string) (string, error) {
	p, err := asset.ResolvePath(baseDir, fileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	return p, nil
}

// RunDir は "<outputDir>/<kind>-<timestamp>" を作成して返します。
// 同じ秒に同じ種類の実行が重なった場合は "_2", "_3" と連番を付けるのだ。
// ディレクトリは os.Mkdir で確保するので、並行に呼ばれても同じ場所は返さないのだ。
func RunDir(outputDir, kind string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s-%s", strings.ToLower(strings.TrimSpace(kind)), now.Format(runDirTimeLayout))
	dir, err := resolvePath(outputDir, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
	}

	candidate := dir
	for i := 1; i <= maxRunDirIndex; i++ {
		if i > 1 {
			if candidate, err = asset.GenerateIndexedPath(dir, i); err != nil {
				return "", fmt.Errorf("連番付きパスの生成に失敗しました: %w", err)
			}
		}
		err := os.Mkdir(candidate, 0o755)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("実行ディレクトリの作成に失敗しました: %w", err)
		}
	}
	return "", fmt.Errorf("空いている出力ディレクトリが見つかりません: %s", dir)
}
