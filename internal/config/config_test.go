package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/workflow"
)

// clearEnv はテスト中に外部の環境変数が混ざらないようにするのだ。
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		EnvConfigFile, EnvDBPath, EnvOutputDir, EnvGeminiModel, EnvImageModel,
		EnvTextTimeout, EnvImageTimeout, EnvBatchConcurrency, EnvGeminiAPIKey,
	}
	for _, id := range provider.DefaultCredentialIDs {
		keys = append(keys, CredentialEnvName(id))
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kreator.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(Options{})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	def := workflow.DefaultConfig()
	if cfg.GeminiModel != def.GeminiModel || cfg.ImageModel != def.ImageModel {
		t.Errorf("既定のモデルではありません: %s / %s", cfg.GeminiModel, cfg.ImageModel)
	}
	if cfg.TextTimeout != def.TextTimeout || cfg.ImageTimeout != def.ImageTimeout {
		t.Errorf("既定のタイムアウトではありません: %v / %v", cfg.TextTimeout, cfg.ImageTimeout)
	}
	if cfg.OutputDir != DefaultOutputDir || filepath.Base(cfg.DBPath) != DefaultDBFile {
		t.Errorf("既定の保存先ではありません: %s / %s", cfg.OutputDir, cfg.DBPath)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("既定のログ設定ではありません: %s / %s", cfg.LogLevel, cfg.LogFormat)
	}

	// キー未設定でも読み込み自体は成功し、解決時に ConfigurationError になるのだ
	if _, err := provider.Resolve(cfg.CredentialPool(), ""); !domain.IsConfigurationError(err) {
		t.Errorf("ConfigurationError であるべきです: %v", err)
	}
}

func TestLoadConfig_Layers(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
db: /tmp/from-file.db
output_dir: file-out
batch_concurrency: 4
credentials:
  server1: file-key-1
  server3: file-key-3
models:
  text: file-text-model
timeouts:
  text: 45s
  image: 2m
`)

	t.Run("設定ファイルの値が反映されること", func(t *testing.T) {
		cfg, err := LoadConfig(Options{ConfigFile: path})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if cfg.DBPath != "/tmp/from-file.db" || cfg.OutputDir != "file-out" || cfg.BatchConcurrency != 4 {
			t.Errorf("設定ファイルの値ではありません: %+v", cfg)
		}
		if cfg.GeminiModel != "file-text-model" || cfg.TextTimeout != 45*time.Second || cfg.ImageTimeout != 2*time.Minute {
			t.Errorf("モデル・タイムアウトが反映されていません: %+v", cfg)
		}
		cred, err := provider.Resolve(cfg.CredentialPool(), "server3")
		if err != nil || cred.APIKey != "file-key-3" {
			t.Errorf("server3 のキーが解決できません: %v %v", cred, err)
		}
	})

	t.Run("環境変数が設定ファイルより優先されること", func(t *testing.T) {
		t.Setenv(EnvGeminiModel, "env-text-model")
		t.Setenv(EnvTextTimeout, "10s")
		t.Setenv(CredentialEnvName("server1"), "env-key-1")
		cfg, err := LoadConfig(Options{ConfigFile: path})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if cfg.GeminiModel != "env-text-model" || cfg.TextTimeout != 10*time.Second {
			t.Errorf("環境変数が優先されていません: %+v", cfg)
		}
		if cfg.APIKeys["server1"] != "env-key-1" {
			t.Errorf("server1 のキーが環境変数の値ではありません: %s", cfg.APIKeys["server1"])
		}
	})

	t.Run("フラグが最優先であること", func(t *testing.T) {
		t.Setenv(EnvOutputDir, "env-out")
		cfg, err := LoadConfig(Options{ConfigFile: path, OutputDir: "flag-out", DBPath: "/tmp/flag.db", Server: "server3"})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if cfg.OutputDir != "flag-out" || cfg.DBPath != "/tmp/flag.db" || cfg.Server != "server3" {
			t.Errorf("フラグが優先されていません: %+v", cfg)
		}
	})
}

func TestLoadConfig_GeminiAPIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGeminiAPIKey, "gemini-fallback-key")

	cfg, err := LoadConfig(Options{})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	cred, err := provider.Resolve(cfg.CredentialPool(), "")
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if cred.ID != "server1" || cred.APIKey != "gemini-fallback-key" {
		t.Errorf("GEMINI_API_KEY が server1 に使われていません: %+v", cred)
	}

	t.Setenv(CredentialEnvName("server1"), "server1-key")
	cfg, _ = LoadConfig(Options{})
	if cfg.APIKeys["server1"] != "server1-key" {
		t.Errorf("専用のキーが優先されるべきです: %s", cfg.APIKeys["server1"])
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) Options
	}{
		{
			name: "存在しない設定ファイル",
			setup: func(t *testing.T) Options {
				return Options{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}
			},
		},
		{
			name: "壊れたYAML",
			setup: func(t *testing.T) Options {
				return Options{ConfigFile: writeYAML(t, "credentials: [broken")}
			},
		},
		{
			name: "不明な接続先",
			setup: func(t *testing.T) Options {
				return Options{ConfigFile: writeYAML(t, "credentials:\n  server9: key\n")}
			},
		},
		{
			name: "不正なタイムアウト",
			setup: func(t *testing.T) Options {
				t.Setenv(EnvImageTimeout, "soon")
				return Options{}
			},
		},
		{
			name: "不正な並列数",
			setup: func(t *testing.T) Options {
				t.Setenv(EnvBatchConcurrency, "0")
				return Options{}
			},
		},
		{
			name: "不正なログ形式",
			setup: func(t *testing.T) Options {
				return Options{LogFormat: "xml"}
			},
		},
		{
			name: "不明な--server",
			setup: func(t *testing.T) Options {
				return Options{Server: "server6"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(tt.setup(t))
			if !domain.IsConfigurationError(err) {
				t.Errorf("ConfigurationError であるべきです: %v", err)
			}
		})
	}
}

func TestConfig_Workflow(t *testing.T) {
	cfg := &Config{GeminiModel: "m", ImageModel: "i", TextTimeout: time.Second, ImageTimeout: 2 * time.Second, BatchConcurrency: 3}
	w := cfg.Workflow()
	def := workflow.DefaultConfig()
	if w.GeminiModel != "m" || w.ImageModel != "i" || w.BatchConcurrency != 3 {
		t.Errorf("設定が引き継がれていません: %+v", w)
	}
	if w.RateInterval != def.RateInterval || w.MaxScenes != def.MaxScenes {
		t.Errorf("未指定の項目は既定値であるべきです: %+v", w)
	}
}
