package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_BASE_URL", "")
	t.Setenv("DEEPSEEK_CHAT_MODEL", "")
	t.Setenv("DEEPSEEK_REASONER_MODEL", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()

	assert.Equal(t, "8008", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "", cfg.DeepSeekAPIKey)
	assert.Equal(t, "https://api.deepseek.com", cfg.DeepSeekBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.ChatModel)
	assert.Equal(t, "deepseek-reasoner", cfg.ReasonerModel)
	assert.Equal(t, int64(32), cfg.MaxUploadMB)
	assert.Equal(t, "*", cfg.FrontendURL)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("DEEPSEEK_BASE_URL", "http://localhost:8080")
	t.Setenv("DEEPSEEK_CHAT_MODEL", "custom-chat")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("FRONTEND_URL", "https://deepread.example.com")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sk-test", cfg.DeepSeekAPIKey)
	assert.Equal(t, "http://localhost:8080", cfg.DeepSeekBaseURL)
	assert.Equal(t, "custom-chat", cfg.ChatModel)
	assert.Equal(t, int64(8), cfg.MaxUploadMB)
	assert.Equal(t, "https://deepread.example.com", cfg.FrontendURL)
}

func TestLoad_BadUploadLimitFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	cfg := Load()
	assert.Equal(t, int64(32), cfg.MaxUploadMB)
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := &Config{MaxUploadMB: 4}
	assert.Equal(t, int64(4<<20), cfg.MaxUploadBytes())
}
