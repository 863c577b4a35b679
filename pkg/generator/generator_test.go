package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shouni/go-kreator-kit/pkg/director"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

const (
	avatarText  = "An Indonesian woman in her late 20s, oval face, warm brown skin, wearing a pastel pink hijab."
	productText = "A 250ml matte black aluminium bottle with a gold screw cap and a minimalist white logo."
)

func mustDNA(t *testing.T, label, name string, text domain.IdentityDescription) IdentityDNA {
	t.Helper()
	dna, err := NewIdentityDNA(label, name, text)
	if err != nil {
		t.Fatalf("DNA の生成に失敗しました: %v", err)
	}
	return dna
}

func TestNewIdentityDNA(t *testing.T) {
	if _, err := NewIdentityDNA(LabelProduct, "x", "   "); !domain.IsValidationError(err) {
		t.Fatalf("空の DNA は ValidationError であるべきです: %v", err)
	}
	dna := mustDNA(t, LabelProduct, "", productText)
	if dna.Name != "product" {
		t.Errorf("名前の既定値が不正です: %s", dna.Name)
	}
}

func TestFromSubject(t *testing.T) {
	saved := domain.SavedSubject(domain.SavedAsset{Kind: domain.AssetAvatar, Name: "Siti", Identity: avatarText})
	dna, err := FromSubject(LabelAvatar, saved)
	if err != nil || dna == nil {
		t.Fatalf("保存済みアバターから DNA を取り出せませんでした: %v", err)
	}
	if dna.Text != avatarText || dna.Name != "Siti" {
		t.Errorf("DNA が一致しません: %+v", dna)
	}

	for _, s := range []domain.Subject{domain.NoSubject(), domain.AIChosenSubject()} {
		dna, err := FromSubject(LabelAvatar, s)
		if err != nil || dna != nil {
			t.Errorf("%s: nil であるべきです: %+v, %v", s.Kind, dna, err)
		}
	}
}

func TestMasterDefinitions(t *testing.T) {
	got := MasterDefinitions(mustDNA(t, LabelAvatar, "Siti", avatarText), mustDNA(t, LabelProduct, "Produk", productText))
	for _, want := range []string{"STRICT IDENTITY", "[AVATAR] Siti: " + avatarText, "[PRODUCT] Produk: " + productText} {
		if !strings.Contains(got, want) {
			t.Errorf("マスター定義に %q が含まれていません:\n%s", want, got)
		}
	}
}

func TestComposeScenes(t *testing.T) {
	lm := director.NewLayoutManager()
	composer := NewSceneComposer(lm)
	avatar := mustDNA(t, LabelAvatar, "Siti", avatarText)
	product := mustDNA(t, LabelProduct, "Produk", productText)

	for n := 1; n <= 5; n++ {
		plan, err := lm.Plan(n, domain.FramingDirector, true)
		if err != nil {
			t.Fatalf("n=%d: 計画の作成に失敗しました: %v", n, err)
		}
		blocks := composer.ComposeScenes(plan, &avatar, product, "a cozy rustic cafe")
		if len(blocks) != n {
			t.Fatalf("n=%d: ブロック数が一致しません: %d", n, len(blocks))
		}
		for i, b := range blocks {
			if !strings.Contains(b, avatarText) {
				t.Errorf("n=%d scene=%d: アバターの DNA が原文のまま含まれていません", n, i+1)
			}
			hasProduct := strings.Contains(b, productText)
			if n > 1 && i == 0 {
				if hasProduct {
					t.Errorf("n=%d: 1 シーン目に商品の DNA が含まれています", n)
				}
				if !strings.Contains(b, "DO NOT SHOW THE PRODUCT") {
					t.Errorf("n=%d: 1 シーン目に商品を隠す指示がありません", n)
				}
			} else if !hasProduct {
				t.Errorf("n=%d scene=%d: 商品の DNA が含まれていません", n, i+1)
			}
			if !strings.Contains(b, "a cozy rustic cafe") {
				t.Errorf("n=%d scene=%d: ロケーションが含まれていません", n, i+1)
			}
		}
		if !strings.Contains(blocks[n-1], lm.Closing) {
			t.Errorf("n=%d: 最終シーンに締めの指示がありません", n)
		}
	}

	t.Run("ナレーターの場合は人物を出さないこと", func(t *testing.T) {
		plan, _ := lm.Plan(2, domain.FramingDirector, false)
		blocks := composer.ComposeScenes(plan, nil, product, "")
		for _, b := range blocks {
			if !strings.Contains(b, "Off-screen narrator") || !strings.Contains(b, productText) {
				t.Errorf("ナレーターのシーンが不正です:\n%s", b)
			}
			if strings.Contains(b, "Location:") {
				t.Errorf("ロケーション未指定なのに出力されています:\n%s", b)
			}
		}
	})

	t.Run("ComposeDirectives はマスター定義を先頭に置くこと", func(t *testing.T) {
		plan, _ := lm.Plan(3, domain.FramingMedium, true)
		text, blocks := composer.ComposeDirectives(plan, &avatar, product, "")
		if !strings.HasPrefix(text, "### SUBJECT MASTER DEFINITIONS") {
			t.Errorf("マスター定義が先頭にありません:\n%s", text)
		}
		if !strings.HasSuffix(text, blocks[len(blocks)-1]) {
			t.Error("最後のシーンブロックで終わっていません")
		}
	})
}

func TestIdentityCache(t *testing.T) {
	ctx := context.Background()

	t.Run("同じ画像は一度だけ解析されること", func(t *testing.T) {
		c := NewIdentityCache(time.Minute, time.Minute)
		var calls int32
		analyze := func(ctx context.Context) (domain.IdentityDescription, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(10 * time.Millisecond)
			return productText, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				dna, _, err := c.GetOrAnalyze(ctx, "product_analysis", []byte("img"), analyze)
				if err != nil || dna != productText {
					t.Errorf("予期しない結果です: %q, %v", dna, err)
				}
			}()
		}
		wg.Wait()

		_, hit, err := c.GetOrAnalyze(ctx, "product_analysis", []byte("img"), analyze)
		if err != nil || !hit {
			t.Errorf("キャッシュヒットするべきです: hit=%v err=%v", hit, err)
		}
		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("解析回数が一致しません: 期待値 1, 実際の値 %d", got)
		}
	})

	t.Run("先に待っていた呼び出しのキャンセルが他の呼び出しに波及しないこと", func(t *testing.T) {
		c := NewIdentityCache(time.Minute, time.Minute)
		started := make(chan struct{})
		release := make(chan struct{})
		var calls int32
		var analyzeErr atomic.Value
		analyze := func(ctx context.Context) (domain.IdentityDescription, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
			}
			<-release
			if err := ctx.Err(); err != nil {
				analyzeErr.Store(err)
			}
			return productText, nil
		}

		firstCtx, cancel := context.WithCancel(ctx)
		firstErr := make(chan error, 1)
		go func() {
			_, _, err := c.GetOrAnalyze(firstCtx, "product_analysis", []byte("img"), analyze)
			firstErr <- err
		}()
		<-started

		type result struct {
			dna domain.IdentityDescription
			err error
		}
		second := make(chan result, 1)
		go func() {
			dna, _, err := c.GetOrAnalyze(ctx, "product_analysis", []byte("img"), analyze)
			second <- result{dna, err}
		}()
		time.Sleep(20 * time.Millisecond)

		cancel()
		if err := <-firstErr; !errors.Is(err, context.Canceled) {
			t.Errorf("キャンセルした呼び出しは context.Canceled を返すべきです: %v", err)
		}
		close(release)

		got := <-second
		if got.err != nil || got.dna != productText {
			t.Errorf("待っていた呼び出しが失敗しました: %q, %v", got.dna, got.err)
		}
		if v := analyzeErr.Load(); v != nil {
			t.Errorf("解析に渡された ctx がキャンセルされています: %v", v)
		}
		if n := atomic.LoadInt32(&calls); n != 1 {
			t.Errorf("解析回数が一致しません: 期待値 1, 実際の値 %d", n)
		}
	})

	t.Run("モードが違えば別のキーになること", func(t *testing.T) {
		if CacheKey("product_analysis", []byte("a")) == CacheKey("location_analysis", []byte("a")) {
			t.Error("キーが衝突しています")
		}
	})

	t.Run("失敗はキャッシュされないこと", func(t *testing.T) {
		c := NewIdentityCache(time.Minute, time.Minute)
		boom := errors.New("boom")
		_, _, err := c.GetOrAnalyze(ctx, "m", []byte("x"), func(ctx context.Context) (domain.IdentityDescription, error) {
			return "", boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("元のエラーが返されるべきです: %v", err)
		}
		_, _, err = c.GetOrAnalyze(ctx, "m", []byte("x"), func(ctx context.Context) (domain.IdentityDescription, error) {
			return " ", nil
		})
		if !domain.IsProviderError(err) {
			t.Fatalf("空の DNA は ProviderError であるべきです: %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("失敗がキャッシュされています: %d", c.Len())
		}
	})
}
