package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/prompts"
	"github.com/shouni/go-kreator-kit/pkg/provider/providertest"
)

const (
	sitiDNA     = "An Indonesian woman in her late 20s with an oval face, warm brown skin and a pastel pink hijab."
	productDNA  = "A 250ml matte black aluminium bottle with a gold screw cap and a minimalist white logo."
	locationDNA = "A cozy rustic cafe with exposed brick walls, warm Edison bulbs and wooden tables."
)

func newCatalog(t *testing.T) *prompts.Catalog {
	t.Helper()
	c, err := prompts.NewCatalog()
	if err != nil {
		t.Fatalf("カタログの初期化に失敗しました: %v", err)
	}
	return c
}

func newDeps(t *testing.T, gw *providertest.Gateway) Deps {
	t.Helper()
	return Deps{Gateway: gw, Catalog: newCatalog(t)}
}

// modeOf は呼び出しのインストラクションからモードを逆引きするのだ。
func modeOf(t *testing.T, c *prompts.Catalog, call providertest.Call) prompts.Mode {
	t.Helper()
	for _, m := range prompts.AllModes() {
		if text, _ := c.Instruction(m); text == call.Instruction {
			return m
		}
	}
	t.Fatalf("インストラクションに対応するモードがありません")
	return ""
}

func savedAvatar() domain.Subject {
	return domain.SavedSubject(domain.SavedAsset{ID: "a1", Kind: domain.AssetAvatar, Name: "Siti", Identity: sitiDNA})
}

func savedProduct() domain.Subject {
	return domain.SavedSubject(domain.SavedAsset{ID: "p1", Kind: domain.AssetProduct, Name: "Botol", Identity: productDNA})
}

func savedLocation() domain.Subject {
	return domain.SavedSubject(domain.SavedAsset{ID: "l1", Kind: domain.AssetLocation, Name: "Kafe", Identity: locationDNA})
}

func videoScriptJSON(n int) string {
	scenes := make([]string, n)
	for i := range scenes {
		scenes[i] = fmt.Sprintf("%q", fmt.Sprintf("scene %d prompt", i+1))
	}
	return "```json\n{\"video_script\": [" + strings.Join(scenes, ", ") + "]}\n```"
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fakeHistory は追記された履歴を記録するだけの HistoryAppender なのだ。
type fakeHistory struct {
	mu      sync.Mutex
	records []domain.HistoryRecord
	err     error
}

func (h *fakeHistory) Append(ctx context.Context, rec domain.HistoryRecord) (domain.HistoryRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return domain.HistoryRecord{}, h.err
	}
	h.records = append(h.records, rec)
	return rec, nil
}

var errUpstream = errors.New("upstream unavailable")
