package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/provider/providertest"
)

func TestProductAdRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("ナレーターと韓国ドラマ風では既定の環境で合成すること", func(t *testing.T) {
		gw := providertest.New().QueueText("A matte black bottle on a lacquered table in a Joseon palace pavilion.")
		deps := newDeps(t, gw)
		r, err := NewProductAdRunner(deps)
		if err != nil {
			t.Fatal(err)
		}

		res, err := r.Run(ctx, ProductAdRequest{
			Product:  savedProduct(),
			Avatar:   domain.NoSubject(),
			Category: "Minuman",
			Style:    domain.StyleKoreanDrama,
			Location: domain.NoSubject(),
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}

		texts := gw.TextCalls()
		if len(texts) != 1 {
			t.Fatalf("保存済み商品では解析を呼ばないはずです: %d 回", len(texts))
		}
		if modeOf(t, deps.Catalog.(*prompts.Catalog), texts[0]) != prompts.ModeProductOnlyComposition {
			t.Error("商品のみの合成モードではありません")
		}
		input := texts[0].Input()
		for _, want := range []string{"hanbok", "palace", productDNA} {
			if !strings.Contains(input, want) {
				t.Errorf("入力に %q が含まれていません:\n%s", want, input)
			}
		}
		if strings.Contains(input, "Mandatory Location") {
			t.Error("既定の環境が Mandatory Location として渡されています")
		}
		if res.AvatarName != domain.NarratorName || res.Trail.Has("Profil Avatar") {
			t.Errorf("ナレーターの結果が不正です: %s %v", res.AvatarName, res.Trail.Titles())
		}
		if res.ProductIdentity != productDNA {
			t.Error("保存済みの DNA が再利用されていません")
		}
		if len(gw.ImageCalls()) != 1 || gw.ImageCalls()[0].Prompt != string(res.ScenePrompt) {
			t.Error("合成結果がそのまま描画されていません")
		}
	})

	t.Run("保存済みアバターとロケーションの履歴の順番", func(t *testing.T) {
		gw := providertest.New().QueueText("Siti holds the bottle in a rustic cafe.")
		deps := newDeps(t, gw)
		r, _ := NewProductAdRunner(deps)

		res, err := r.Run(ctx, ProductAdRequest{
			Product:  savedProduct(),
			Avatar:   savedAvatar(),
			Category: "Minuman",
			Style:    domain.StyleKoreanDrama,
			Location: savedLocation(),
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		want := []string{"Analisis DNA Produk", "Profil Avatar", "Prompt Lokasi Pilihan", "Prompt Generasi Adegan Final"}
		if got := res.Trail.Titles(); !equalStrings(got, want) {
			t.Errorf("履歴のタイトルが不正です: %v", got)
		}
		input := gw.TextCalls()[0].Input()
		if !strings.Contains(input, locationDNA) || !strings.Contains(input, sitiDNA) {
			t.Errorf("DNA が原文のまま渡されていません:\n%s", input)
		}
		if strings.Contains(input, "hanbok") {
			t.Error("保存済みロケーションがあるのに既定の環境が混ざっています")
		}
		if modeOf(t, deps.Catalog.(*prompts.Catalog), gw.TextCalls()[0]) != prompts.ModeSceneComposition {
			t.Error("アバターありの合成モードではありません")
		}
		if res.AvatarName != "Siti" {
			t.Errorf("アバター名が不正です: %s", res.AvatarName)
		}
	})

	t.Run("保存済みロケーションは全スタイルで優先されること", func(t *testing.T) {
		for _, style := range domain.KnownVideoStyles() {
			gw := providertest.New().QueueText("scene")
			r, _ := NewProductAdRunner(newDeps(t, gw))
			_, err := r.Run(ctx, ProductAdRequest{
				Product: savedProduct(), Avatar: domain.NoSubject(), Category: "x",
				Style: style, Location: savedLocation(), StyleLocation: "Area Candi/Stupa Batu",
			})
			if err != nil {
				t.Fatalf("%s: 予期しないエラー: %v", style, err)
			}
			input := gw.TextCalls()[0].Input()
			if !strings.Contains(input, "**Mandatory Location Description:** "+locationDNA) {
				t.Errorf("%s: 保存済みロケーションが使われていません:\n%s", style, input)
			}
			if strings.Contains(input, "Style Environment") || strings.Contains(input, "Candi") {
				t.Errorf("%s: 他のロケーションが混ざっています:\n%s", style, input)
			}
		}
	})

	t.Run("商品画像は解析結果をキャッシュすること", func(t *testing.T) {
		gw := providertest.New().QueueText(productDNA, "first scene", "second scene")
		r, _ := NewProductAdRunner(newDeps(t, gw))
		img := provider.ImagePart([]byte("product-photo"), "image/jpeg")
		req := ProductAdRequest{ProductImage: &img, Avatar: domain.NoSubject(), Category: "x", Style: domain.StyleSolution}

		for i := 0; i < 2; i++ {
			res, err := r.Run(ctx, req)
			if err != nil {
				t.Fatalf("%d 回目: 予期しないエラー: %v", i+1, err)
			}
			if res.ProductIdentity != productDNA {
				t.Errorf("%d 回目: DNA が一致しません: %s", i+1, res.ProductIdentity)
			}
		}
		if n := len(gw.TextCalls()); n != 3 {
			t.Errorf("解析は一回だけのはずです: テキスト呼び出し %d 回", n)
		}
	})

	t.Run("入力の検証", func(t *testing.T) {
		img := provider.ImagePart([]byte("p"), "image/jpeg")
		tests := []struct {
			name string
			req  ProductAdRequest
		}{
			{"商品なし", ProductAdRequest{Avatar: domain.NoSubject(), Category: "x", Style: domain.StyleSolution}},
			{"画像と保存済み商品の両方", ProductAdRequest{ProductImage: &img, Product: savedProduct(), Category: "x", Style: domain.StyleSolution}},
			{"AI 任せのアバター", ProductAdRequest{Product: savedProduct(), Avatar: domain.AIChosenSubject(), Category: "x", Style: domain.StyleSolution}},
			{"カテゴリなし", ProductAdRequest{Product: savedProduct(), Category: "  ", Style: domain.StyleSolution}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				gw := providertest.New()
				r, _ := NewProductAdRunner(newDeps(t, gw))
				if _, err := r.Run(ctx, tt.req); !domain.IsValidationError(err) {
					t.Fatalf("ValidationError であるべきです: %v", err)
				}
				if len(gw.Calls()) != 0 {
					t.Errorf("AI が呼ばれています: %d", len(gw.Calls()))
				}
			})
		}
	})

	t.Run("合成が失敗したら描画しないこと", func(t *testing.T) {
		gw := providertest.New().QueueTextReply(providertest.Reply{Err: &domain.ProviderError{Op: "text", Message: "quota", Err: errUpstream}})
		r, _ := NewProductAdRunner(newDeps(t, gw))
		_, err := r.Run(ctx, ProductAdRequest{Product: savedProduct(), Category: "x", Style: domain.StyleSolution})
		if !domain.IsProviderError(err) {
			t.Fatalf("ProviderError であるべきです: %v", err)
		}
		if len(gw.ImageCalls()) != 0 {
			t.Error("失敗後に描画しています")
		}
	})
}

func TestServiceAdRunner_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("解析結果を合成の入力に使うこと", func(t *testing.T) {
		analysis := "Layanan laundry kilat dengan antar jemput gratis."
		gw := providertest.New().QueueText(analysis, "Siti hands over a neatly folded shirt.")
		deps := newDeps(t, gw)
		r, _ := NewServiceAdRunner(deps)

		res, err := r.Run(ctx, ServiceAdRequest{
			Description: "jasa laundry",
			Avatar:      savedAvatar(),
			Style:       domain.StyleSciFi,
			Location:    savedLocation(),
		})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		texts := gw.TextCalls()
		if len(texts) != 2 {
			t.Fatalf("テキスト呼び出しは 2 回のはずです: %d", len(texts))
		}
		catalog := deps.Catalog.(*prompts.Catalog)
		if modeOf(t, catalog, texts[0]) != prompts.ModeServiceAnalysis || modeOf(t, catalog, texts[1]) != prompts.ModeServiceComposition {
			t.Error("モードの順番が不正です")
		}
		if !strings.Contains(texts[1].Input(), analysis) || !strings.Contains(texts[1].Input(), sitiDNA) {
			t.Errorf("合成の入力が不正です:\n%s", texts[1].Input())
		}
		want := []string{"Deskripsi Jasa (Input)", "Analisis Jasa (AI)", "Prompt Lokasi Pilihan", "Prompt Generasi Adegan Final"}
		if got := res.Trail.Titles(); !equalStrings(got, want) {
			t.Errorf("履歴のタイトルが不正です: %v", got)
		}
		if res.AvatarName != "Siti" || res.Analysis != analysis {
			t.Errorf("結果が不正です: %+v", res)
		}
	})

	t.Run("アバターは必須であること", func(t *testing.T) {
		for _, avatar := range []domain.Subject{domain.NoSubject(), domain.AIChosenSubject()} {
			gw := providertest.New()
			r, _ := NewServiceAdRunner(newDeps(t, gw))
			_, err := r.Run(ctx, ServiceAdRequest{Description: "x", Avatar: avatar, Style: domain.StyleSolution})
			if !domain.IsValidationError(err) {
				t.Errorf("%s: ValidationError であるべきです: %v", avatar.Kind, err)
			}
			if len(gw.Calls()) != 0 {
				t.Errorf("%s: AI が呼ばれています", avatar.Kind)
			}
		}
	})
}

func TestNewEngine(t *testing.T) {
	if _, err := newEngine(Deps{Catalog: newCatalog(t)}); err == nil {
		t.Error("Gateway なしはエラーになるべきです")
	}
	if _, err := newEngine(Deps{Gateway: providertest.New()}); err == nil {
		t.Error("Catalog なしはエラーになるべきです")
	}
	e, err := newEngine(newDeps(t, providertest.New()))
	if err != nil {
		t.Fatal(err)
	}
	if e.cache == nil || e.styles == nil || e.layout == nil || e.composer == nil || e.validate == nil {
		t.Errorf("既定値が補われていません: %+v", e)
	}
}
