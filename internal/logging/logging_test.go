package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): 期待値 %v, 実際の値 %v", tt.in, tt.want, got)
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("JSON形式で出力されること", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithComponent(New(&buf, "info", FormatJSON), "runner")
		logger.Info("生成を開始するのだ", "step", "render")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("JSON として読めません: %v (%s)", err, buf.String())
		}
		if entry["component"] != "runner" || entry["step"] != "render" {
			t.Errorf("属性が不足しています: %v", entry)
		}
	})

	t.Run("レベル未満のログは出力されないこと", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, "warn", FormatText)
		logger.Info("出ないのだ")
		logger.Warn("出るのだ")
		out := buf.String()
		if strings.Contains(out, "出ないのだ") || !strings.Contains(out, "出るのだ") {
			t.Errorf("レベルによる絞り込みが効いていません: %s", out)
		}
	})

	t.Run("ジョブIDが付与されること", func(t *testing.T) {
		var buf bytes.Buffer
		WithJobID(New(&buf, "info", FormatText), "job-3").Info("完了")
		if !strings.Contains(buf.String(), "job_id=job-3") {
			t.Errorf("job_id がありません: %s", buf.String())
		}
	})
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("short"); got != "****" {
		t.Errorf("短いトークンは全体を伏せるべきです: %s", got)
	}
	if got := SanitizeToken("AIzaSyExampleKey1234"); got != "AIza...1234" {
		t.Errorf("期待値 AIza...1234, 実際の値 %s", got)
	}
}
