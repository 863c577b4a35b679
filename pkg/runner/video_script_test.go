package runner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/generator"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider/providertest"
)

func videoRequest(t *testing.T, n int, withAvatar bool) VideoScriptRequest {
	t.Helper()
	product, err := generator.NewIdentityDNA(generator.LabelProduct, "Botol", productDNA)
	if err != nil {
		t.Fatal(err)
	}
	req := VideoScriptRequest{
		MasterScene:  "Siti holds the bottle in a rustic cafe.",
		Description:  "Botol minum premium",
		Style:        domain.StyleSolution,
		Language:     "Bahasa Indonesia",
		Scenes:       n,
		CallToAction: "Beli sekarang!",
		Product:      product,
	}
	if withAvatar {
		avatar, err := generator.NewIdentityDNA(generator.LabelAvatar, "Siti", sitiDNA)
		if err != nil {
			t.Fatal(err)
		}
		req.Avatar = &avatar
	}
	return req
}

func TestVideoScriptRunner_Run(t *testing.T) {
	ctx := context.Background()

	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("アバターあり %d シーン", n), func(t *testing.T) {
			gw := providertest.New().QueueText(videoScriptJSON(n))
			history := &fakeHistory{}
			r, err := NewVideoScriptRunner(newDeps(t, gw), history)
			if err != nil {
				t.Fatal(err)
			}

			script, err := r.Run(ctx, videoRequest(t, n, true))
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if len(script.Scenes) != n || len(script.Directives) != n {
				t.Fatalf("シーン数が一致しません: scenes=%d directives=%d", len(script.Scenes), len(script.Directives))
			}
			for i, block := range script.Directives {
				if !strings.Contains(block, sitiDNA) {
					t.Errorf("scene %d: アバターの DNA が再注入されていません", i+1)
				}
				hidden := n > 1 && i == 0
				if strings.Contains(block, productDNA) == hidden {
					t.Errorf("scene %d: 商品の見せ方が不正です (hidden=%v):\n%s", i+1, hidden, block)
				}
			}

			input := gw.TextCalls()[0].Input()
			if !strings.Contains(input, "### PER-SCENE DIRECTIVES") || !strings.Contains(input, "**Number of Scenes:** "+fmt.Sprint(n)) {
				t.Errorf("入力ブロックが不正です:\n%s", input)
			}
			if !gw.TextCalls()[0].Options.StructuredOutput {
				t.Error("JSON モードで呼ばれていません")
			}

			if len(history.records) != 1 {
				t.Fatalf("履歴は一件追記されるはずです: %d", len(history.records))
			}
			rec := history.records[0]
			if rec.Title != "Video Iklan: Siti - Kasih Solusi" || len(rec.Scenes) != n {
				t.Errorf("履歴の内容が不正です: %+v", rec)
			}
		})
	}

	t.Run("アバターなしはナレーターとして全シーンで商品を見せること", func(t *testing.T) {
		gw := providertest.New().QueueText(videoScriptJSON(3))
		r, _ := NewVideoScriptRunner(newDeps(t, gw), nil)
		script, err := r.Run(ctx, videoRequest(t, 3, false))
		if err != nil {
			t.Fatal(err)
		}
		if script.Title != "Video Iklan: Narator - Kasih Solusi" {
			t.Errorf("タイトルが不正です: %s", script.Title)
		}
		for i, block := range script.Directives {
			if !strings.Contains(block, productDNA) {
				t.Errorf("scene %d: 商品が隠されています", i+1)
			}
		}
	})

	t.Run("シーン数が一致しなければ ParseError で履歴に残さないこと", func(t *testing.T) {
		gw := providertest.New().QueueText(videoScriptJSON(2))
		history := &fakeHistory{}
		r, _ := NewVideoScriptRunner(newDeps(t, gw), history)
		_, err := r.Run(ctx, videoRequest(t, 3, true))
		if !domain.IsParseError(err) {
			t.Fatalf("ParseError であるべきです: %v", err)
		}
		if len(history.records) != 0 {
			t.Error("失敗したスクリプトが履歴に残っています")
		}
		if len(gw.TextCalls()) != 1 {
			t.Error("再試行してはいけません")
		}
	})

	t.Run("履歴の保存に失敗してもスクリプトは返すこと", func(t *testing.T) {
		gw := providertest.New().QueueText(videoScriptJSON(1))
		r, _ := NewVideoScriptRunner(newDeps(t, gw), &fakeHistory{err: errUpstream})
		script, err := r.Run(ctx, videoRequest(t, 1, true))
		if err != nil || len(script.Scenes) != 1 {
			t.Fatalf("スクリプトが返されていません: %v", err)
		}
	})

	t.Run("ニュース形式は既定値を使うこと", func(t *testing.T) {
		gw := providertest.New().QueueText(videoScriptJSON(2))
		deps := newDeps(t, gw)
		r, _ := NewVideoScriptRunner(deps, nil)
		req := videoRequest(t, 2, false)
		req.Style = domain.StyleNews
		script, err := r.Run(ctx, req)
		if err != nil {
			t.Fatal(err)
		}
		call := gw.TextCalls()[0]
		if modeOf(t, deps.Catalog.(*prompts.Catalog), call) != prompts.ModeVideoScriptNews {
			t.Error("ニュース形式のモードではありません")
		}
		for _, want := range []string{"Studio TV Modern", "Kreator News", "A professional news anchor."} {
			if !strings.Contains(call.Input(), want) {
				t.Errorf("既定値 %q が使われていません:\n%s", want, call.Input())
			}
		}
		if script.Directives != nil {
			t.Error("ニュース形式には演出ブロックはありません")
		}
	})

	t.Run("ニュース形式でも保存済みロケーションを優先すること", func(t *testing.T) {
		gw := providertest.New().QueueText(videoScriptJSON(2))
		r, _ := NewVideoScriptRunner(newDeps(t, gw), nil)
		req := videoRequest(t, 2, false)
		req.Style = domain.StyleNews
		req.NewsLocation = "Studio Lantai 3"
		req.Location = savedLocation()
		if _, err := r.Run(ctx, req); err != nil {
			t.Fatal(err)
		}
		input := gw.TextCalls()[0].Input()
		if !strings.Contains(input, locationDNA) {
			t.Errorf("保存済みロケーションの DNA が入力にありません:\n%s", input)
		}
		for _, unwanted := range []string{"Studio TV Modern", "Studio Lantai 3"} {
			if strings.Contains(input, unwanted) {
				t.Errorf("%q が保存済みロケーションより優先されています", unwanted)
			}
		}
	})

	t.Run("スタイル専用ロケーションを渡すこと", func(t *testing.T) {
		gw := providertest.New().QueueText(videoScriptJSON(2))
		r, _ := NewVideoScriptRunner(newDeps(t, gw), nil)
		req := videoRequest(t, 2, true)
		req.Style = domain.StyleMajapahit
		req.StyleLocation = "Area Candi/Stupa Batu"
		script, err := r.Run(ctx, req)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(gw.TextCalls()[0].Input(), "**[Style-Specific Location (Optional)]:** Area Candi/Stupa Batu") {
			t.Error("スタイル専用ロケーションが入力にありません")
		}
		for i, block := range script.Directives {
			if !strings.Contains(block, "- Location: Area Candi/Stupa Batu") {
				t.Errorf("scene %d: ロケーションが再注入されていません", i+1)
			}
		}
	})

	t.Run("入力の検証", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*VideoScriptRequest)
		}{
			{"CTA なし", func(r *VideoScriptRequest) { r.CallToAction = " " }},
			{"0 シーン", func(r *VideoScriptRequest) { r.Scenes = 0 }},
			{"11 シーン", func(r *VideoScriptRequest) { r.Scenes = 11 }},
			{"商品 DNA なし", func(r *VideoScriptRequest) { r.Product = generator.IdentityDNA{} }},
			{"マスターシーンなし", func(r *VideoScriptRequest) { r.MasterScene = "" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				gw := providertest.New()
				r, _ := NewVideoScriptRunner(newDeps(t, gw), nil)
				req := videoRequest(t, 3, true)
				tt.mutate(&req)
				if _, err := r.Run(ctx, req); !domain.IsValidationError(err) {
					t.Fatalf("ValidationError であるべきです: %v", err)
				}
				if len(gw.Calls()) != 0 {
					t.Error("AI が呼ばれています")
				}
			})
		}
	})
}
