package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// DeepSeek API
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	ChatModel       string
	ReasonerModel   string

	// Uploads
	MaxUploadMB int64

	// Frontend
	FrontendURL string
}

// Load reads configuration from the environment, picking up a .env file if
// one exists. DEEPSEEK_API_KEY is deliberately optional: callers may supply
// their own key per request, so a missing default only matters at call time.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:            getEnvOrDefault("PORT", "8008"),
		Env:             getEnvOrDefault("ENV", "development"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: getEnvOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		ChatModel:       getEnvOrDefault("DEEPSEEK_CHAT_MODEL", "deepseek-chat"),
		ReasonerModel:   getEnvOrDefault("DEEPSEEK_REASONER_MODEL", "deepseek-reasoner"),
		MaxUploadMB:     getEnvAsInt64OrDefault("MAX_UPLOAD_MB", 32),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "*"),
	}
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsInt64OrDefault(key string, defaultVal int64) int64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}
