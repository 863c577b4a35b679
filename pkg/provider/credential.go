package provider

import (
	"fmt"
	"strings"

	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// DefaultCredentialIDs は認証情報プールの固定された識別子なのだ。
var DefaultCredentialIDs = []string{"server1", "server2", "server3", "server4", "server5"}

// Credential は解決済みの接続先認証情報なのだ。
type Credential struct {
	ID     string
	APIKey string
}

// String は API キーを伏せた表現を返すのだ。
func (c Credential) String() string {
	return fmt.Sprintf("%s(%s)", c.ID, maskKey(c.APIKey))
}

// CredentialPool は順序付きの「識別子 → API キー」の小さなプールなのだ。
type CredentialPool struct {
	ids  []string
	keys map[string]string
}

// NewCredentialPool は識別子の順序を保ったままプールを作成します。
// keys に含まれない識別子は「未設定」として扱われるのだ。
func NewCredentialPool(ids []string, keys map[string]string) *CredentialPool {
	copied := make(map[string]string, len(keys))
	for k, v := range keys {
		copied[k] = strings.TrimSpace(v)
	}
	return &CredentialPool{ids: append([]string(nil), ids...), keys: copied}
}

// IDs はプールの識別子を順番どおりに返すのだ。
func (p *CredentialPool) IDs() []string {
	return append([]string(nil), p.ids...)
}

// Has は識別子がプールに含まれるかを返すのだ。
func (p *CredentialPool) Has(id string) bool {
	for _, v := range p.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Configured はキーが設定されているかを返すのだ。
func (p *CredentialPool) Configured(id string) bool {
	return p.keys[id] != ""
}

// Resolve は選択中の識別子から認証情報を解決します。
// 未選択なら先頭のメンバーを使い、解決できなければ ConfigurationError を返すのだ。
func Resolve(pool *CredentialPool, selectedID string) (Credential, error) {
	if pool == nil || len(pool.ids) == 0 {
		return Credential{}, &domain.ConfigurationError{Message: "認証情報プールが空です"}
	}
	id := strings.TrimSpace(selectedID)
	if id == "" {
		id = pool.ids[0]
	}
	if !pool.Has(id) {
		return Credential{}, &domain.ConfigurationError{Message: fmt.Sprintf("不明な接続先です: %q", id)}
	}
	key := pool.keys[id]
	if key == "" {
		return Credential{}, &domain.ConfigurationError{Message: fmt.Sprintf("接続先 %s の API キーが設定されていません", id)}
	}
	return Credential{ID: id, APIKey: key}, nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
