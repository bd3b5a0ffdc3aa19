package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Chat provider names accepted in CHAT_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Safety modes accepted in CHAT_SAFETY_MODE.
const (
	SafetyModePermissive = "permissive"
	SafetyModeStandard   = "standard"
)

type StoreConfig struct {
	DatabaseURL    string
	DatabaseSchema string
}

// IsConfigured returns true if the order store can be reached at all
func (c StoreConfig) IsConfigured() bool {
	return c.DatabaseURL != ""
}

type ChatConfig struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	SafetyMode      string
	Temperature     float64
	ContextLimit    int
}

// IsConfigured returns true if the selected provider has a credential
func (c ChatConfig) IsConfigured() bool {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey != ""
	}
	return c.GeminiAPIKey != ""
}

type AppConfig struct {
	// Core configuration
	Port               string // Optional with default "5000"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	ServerLogsURL      string
	StaticDir          string
	UseStrictConfig    bool // If true, error when any feature is not fully configured

	// Ops webhooks (both optional)
	SlackAlertWebhookURL string
	OrderNotifWebhookURL string

	// Feature configurations (grouped)
	StoreConfig StoreConfig
	ChatConfig  ChatConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	chatProvider := getEnvWithDefault("CHAT_PROVIDER", ProviderGemini)
	if chatProvider != ProviderGemini && chatProvider != ProviderAnthropic {
		return nil, fmt.Errorf("unknown CHAT_PROVIDER %q (expected %q or %q)",
			chatProvider, ProviderGemini, ProviderAnthropic)
	}

	safetyMode := getEnvWithDefault("CHAT_SAFETY_MODE", SafetyModePermissive)
	if safetyMode != SafetyModePermissive && safetyMode != SafetyModeStandard {
		return nil, fmt.Errorf("unknown CHAT_SAFETY_MODE %q (expected %q or %q)",
			safetyMode, SafetyModePermissive, SafetyModeStandard)
	}

	config := &AppConfig{
		// Core configuration
		Port:               getEnvWithDefault("PORT", "5000"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		ServerLogsURL:      getEnvWithDefault("SERVER_LOGS_URL", ""),
		StaticDir:          getEnvWithDefault("STATIC_DIR", "./static"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "false") == "true",

		// Ops webhooks (optional)
		SlackAlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		OrderNotifWebhookURL: os.Getenv("ORDER_NOTIF_WEBHOOK_URL"),

		// Order store configuration (optional)
		StoreConfig: StoreConfig{
			DatabaseURL:    os.Getenv("DATABASE_URL"),
			DatabaseSchema: getEnvWithDefault("DB_SCHEMA", "public"),
		},

		// Chat configuration (optional)
		ChatConfig: ChatConfig{
			Provider:        chatProvider,
			GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
			GeminiModel:     getEnvWithDefault("GEMINI_MODEL", "gemini-flash-latest"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  getEnvWithDefault("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
			SafetyMode:      safetyMode,
			Temperature:     getEnvFloatWithDefault("CHAT_TEMPERATURE", 0.7),
			ContextLimit:    getEnvIntWithDefault("CHAT_CONTEXT_LIMIT", 50),
		},
	}

	if config.ChatConfig.ContextLimit <= 0 {
		return nil, fmt.Errorf("CHAT_CONTEXT_LIMIT must be positive, got %d", config.ChatConfig.ContextLimit)
	}

	// Log which features are configured
	if config.StoreConfig.IsConfigured() {
		log.Printf("✅ Order store configured")
	} else {
		log.Printf("⚠️ Order store not configured - order registration will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("order store is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.ChatConfig.IsConfigured() {
		log.Printf("✅ Chat provider configured: %s", config.ChatConfig.Provider)
	} else {
		log.Printf("⚠️ Chat provider not configured - chatbot will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("chat provider is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Invalid value for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
