package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
	"gopkg.in/yaml.v3"

	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/provider"
	"github.com/shouni/go-kreator-kit/pkg/workflow"
)

// デフォルト値の定義なのだ
const (
	DefaultDataDir   = ".kreator"
	DefaultDBFile    = "kreator.db"
	DefaultOutputDir = "output"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// 環境変数名なのだ
const (
	EnvConfigFile       = "KREATOR_CONFIG"
	EnvDBPath           = "KREATOR_DB"
	EnvOutputDir        = "KREATOR_OUTPUT_DIR"
	EnvGeminiModel      = "GEMINI_MODEL"
	EnvImageModel       = "IMAGE_GEMINI_MODEL"
	EnvTextTimeout      = "KREATOR_TEXT_TIMEOUT"
	EnvImageTimeout     = "KREATOR_IMAGE_TIMEOUT"
	EnvBatchConcurrency = "KREATOR_BATCH_CONCURRENCY"
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
)

// Config はアプリケーション全体の設定（認証情報・モデル・保存先）を保持する構造体なのだ。
type Config struct {
	ConfigFile string
	DBPath     string `validate:"required"`
	OutputDir  string `validate:"required"`
	LogLevel   string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat  string `validate:"omitempty,oneof=text json"`
	// Server は --server で一時的に指定された接続先なのだ。空なら保存済みの選択を使うのだ。
	Server string

	GeminiModel      string        `validate:"required"`
	ImageModel       string        `validate:"required"`
	TextTimeout      time.Duration `validate:"gt=0"`
	ImageTimeout     time.Duration `validate:"gt=0"`
	BatchConcurrency int           `validate:"min=1,max=16"`

	// APIKeys は「接続先識別子 → API キー」なのだ。
	APIKeys map[string]string
}

// Options は CLI の永続フラグから渡される上書き値なのだ。
type Options struct {
	ConfigFile string // --config
	DBPath     string // --db
	OutputDir  string // --output-dir
	LogLevel   string // --log-level
	LogFormat  string // --log-format
	Server     string // --server
}

// fileConfig は YAML 設定ファイルの形なのだ。
type fileConfig struct {
	DB               string            `yaml:"db"`
	OutputDir        string            `yaml:"output_dir"`
	LogLevel         string            `yaml:"log_level"`
	LogFormat        string            `yaml:"log_format"`
	Credentials      map[string]string `yaml:"credentials"`
	BatchConcurrency int               `yaml:"batch_concurrency"`
	Models           struct {
		Text  string `yaml:"text"`
		Image string `yaml:"image"`
	} `yaml:"models"`
	Timeouts struct {
		Text  string `yaml:"text"`
		Image string `yaml:"image"`
	} `yaml:"timeouts"`
}

// LoadConfig は .env・YAML 設定ファイル・環境変数・フラグの順に重ねて設定を組み立てるのだ。
// 後から読んだものが優先されるのだ。
func LoadConfig(opts Options) (*Config, error) {
	// .env が無いのは普通のことなので無視するのだ
	_ = godotenv.Load()

	path := firstNonEmpty(opts.ConfigFile, envutil.GetEnv(EnvConfigFile, ""))
	var file fileConfig
	if path != "" {
		loaded, err := readFile(path)
		if err != nil {
			return nil, err
		}
		file = *loaded
	}

	defaults := workflow.DefaultConfig()
	cfg := &Config{
		ConfigFile:  path,
		DBPath:      firstNonEmpty(opts.DBPath, envutil.GetEnv(EnvDBPath, ""), file.DB, defaultDBPath()),
		OutputDir:   firstNonEmpty(opts.OutputDir, envutil.GetEnv(EnvOutputDir, ""), file.OutputDir, DefaultOutputDir),
		LogLevel:    strings.ToLower(firstNonEmpty(opts.LogLevel, file.LogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(firstNonEmpty(opts.LogFormat, file.LogFormat, DefaultLogFormat)),
		Server:      strings.TrimSpace(opts.Server),
		GeminiModel: firstNonEmpty(envutil.GetEnv(EnvGeminiModel, ""), file.Models.Text, defaults.GeminiModel),
		ImageModel:  firstNonEmpty(envutil.GetEnv(EnvImageModel, ""), file.Models.Image, defaults.ImageModel),
		APIKeys:     make(map[string]string, len(provider.DefaultCredentialIDs)),
	}

	var err error
	if cfg.TextTimeout, err = durationSetting(EnvTextTimeout, file.Timeouts.Text, defaults.TextTimeout); err != nil {
		return nil, err
	}
	if cfg.ImageTimeout, err = durationSetting(EnvImageTimeout, file.Timeouts.Image, defaults.ImageTimeout); err != nil {
		return nil, err
	}
	if cfg.BatchConcurrency, err = intSetting(EnvBatchConcurrency, file.BatchConcurrency, defaults.BatchConcurrency); err != nil {
		return nil, err
	}

	for id, key := range file.Credentials {
		if !isKnownCredential(id) {
			return nil, &domain.ConfigurationError{Message: fmt.Sprintf("設定ファイルに不明な接続先があります: %q", id)}
		}
		cfg.APIKeys[id] = strings.TrimSpace(key)
	}
	for _, id := range provider.DefaultCredentialIDs {
		if v := envutil.GetEnv(CredentialEnvName(id), ""); v != "" {
			cfg.APIKeys[id] = strings.TrimSpace(v)
		}
	}
	first := provider.DefaultCredentialIDs[0]
	if cfg.APIKeys[first] == "" {
		cfg.APIKeys[first] = strings.TrimSpace(envutil.GetEnv(EnvGeminiAPIKey, ""))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証し、問題があれば ConfigurationError を返すのだ。
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &domain.ConfigurationError{Message: "設定値が不正です", Err: err}
	}
	if c.Server != "" && !isKnownCredential(c.Server) {
		return &domain.ConfigurationError{Message: fmt.Sprintf("不明な接続先です: %q", c.Server)}
	}
	return nil
}

// Workflow は Runner 向けの設定を返すのだ。
func (c *Config) Workflow() workflow.Config {
	w := workflow.DefaultConfig()
	w.GeminiModel = c.GeminiModel
	w.ImageModel = c.ImageModel
	w.TextTimeout = c.TextTimeout
	w.ImageTimeout = c.ImageTimeout
	w.BatchConcurrency = c.BatchConcurrency
	return w
}

// CredentialPool は固定の識別子で認証情報プールを作るのだ。
func (c *Config) CredentialPool() *provider.CredentialPool {
	return provider.NewCredentialPool(provider.DefaultCredentialIDs, c.APIKeys)
}

// CredentialEnvName は接続先識別子に対応する環境変数名を返すのだ（server1 → KREATOR_SERVER1_API_KEY）。
func CredentialEnvName(id string) string {
	return "KREATOR_" + strings.ToUpper(id) + "_API_KEY"
}

func readFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.ConfigurationError{Message: fmt.Sprintf("設定ファイルが見つかりません: %s", path), Err: err}
		}
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &domain.ConfigurationError{Message: fmt.Sprintf("設定ファイルの解析に失敗しました: %s", path), Err: err}
	}
	return &fc, nil
}

func durationSetting(env, fromFile string, def time.Duration) (time.Duration, error) {
	raw := firstNonEmpty(envutil.GetEnv(env, ""), fromFile)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &domain.ConfigurationError{Message: fmt.Sprintf("タイムアウトの形式が不正です: %q", raw), Err: err}
	}
	return d, nil
}

func intSetting(env string, fromFile, def int) (int, error) {
	if raw := envutil.GetEnv(env, ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, &domain.ConfigurationError{Message: fmt.Sprintf("%s は整数で指定してください: %q", env, raw), Err: err}
		}
		return n, nil
	}
	if fromFile != 0 {
		return fromFile, nil
	}
	return def, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DefaultDataDir, DefaultDBFile)
	}
	return filepath.Join(home, DefaultDataDir, DefaultDBFile)
}

func isKnownCredential(id string) bool {
	for _, v := range provider.DefaultCredentialIDs {
		if v == id {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
