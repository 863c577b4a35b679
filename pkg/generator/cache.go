package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// AnalyzeFunc は画像から DNA を抽出する重い処理なのだ。
type AnalyzeFunc func(ctx context.Context) (domain.IdentityDescription, error)

// IdentityCache は同じ画像に対する解析結果を再利用します。
// 同時に同じ画像が解析される場合は singleflight で一回にまとめるのだ。
type IdentityCache struct {
	store *cache.Cache
	group singleflight.Group
}

// NewIdentityCache は有効期限とクリーンアップ間隔を指定して IdentityCache を生成します。
func NewIdentityCache(expiration, cleanup time.Duration) *IdentityCache {
	return &IdentityCache{store: cache.New(expiration, cleanup)}
}

// CacheKey はモードと画像のハッシュからキーを作るのだ。
func CacheKey(mode string, image []byte) string {
	sum := sha256.Sum256(image)
	return mode + ":" + hex.EncodeToString(sum[:])
}

// GetOrAnalyze はキャッシュ済みの DNA を返し、無ければ analyze を一度だけ実行します。
// 二つ目の戻り値はキャッシュヒットかどうかなのだ。
// ctx がキャンセルされるとその呼び出しだけが先に戻り、解析自体は続くのだ。
func (c *IdentityCache) GetOrAnalyze(ctx context.Context, mode string, image []byte, analyze AnalyzeFunc) (domain.IdentityDescription, bool, error) {
	key := CacheKey(mode, image)
	if v, ok := c.store.Get(key); ok {
		if dna, ok := v.(domain.IdentityDescription); ok {
			return dna, true, nil
		}
	}

	// 解析は待っている全員のものなので、最初の呼び出し元のキャンセルには引きずられないのだ
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// 待機中に別の呼び出しが解析を終えている可能性があるので再確認するのだ
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		dna, err := analyze(shared)
		if err != nil {
			return nil, err
		}
		if dna.IsEmpty() {
			return nil, &domain.ProviderError{Op: "text", Message: "解析結果の DNA が空です"}
		}
		c.store.Set(key, dna, cache.DefaultExpiration)
		return dna, nil
	})

	var val interface{}
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		val = res.Val
	}

	dna, ok := val.(domain.IdentityDescription)
	if !ok {
		return "", false, fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return dna, false, nil
}

// Len はキャッシュされている件数を返すのだ。
func (c *IdentityCache) Len() int {
	return c.store.ItemCount()
}
