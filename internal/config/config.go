package config

import (
	"log"
	"os"
)

type Provider string

const (
	ProviderMock        Provider = "mock"
	ProviderOpenAI      Provider = "openai"
	ProviderHuggingFace Provider = "huggingface"
	ProviderGemini      Provider = "gemini"
)

type Config struct {
	Port string

	Provider  Provider
	ModelName string

	// Bearer credentials for the hosted providers. Empty means the
	// missing-credential path is taken before any network call.
	OpenAIAPIKey      string
	HuggingFaceAPIKey string

	GCPProjectID string
	GCPLocation  string

	StorageBackend string // "memory", "redis" or "firestore"
	RedisAddr      string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config
func Load() *Config {
	providerStr := getEnv("PALS_PROVIDER", "mock")
	var provider Provider
	switch providerStr {
	case "openai":
		provider = ProviderOpenAI
	case "huggingface":
		provider = ProviderHuggingFace
	case "gemini":
		provider = ProviderGemini
	default:
		provider = ProviderMock
	}

	cfg := &Config{
		Port: getEnv("PALS_PORT", "8080"),

		Provider:  provider,
		ModelName: getEnv("PALS_MODEL_NAME", ""),

		OpenAIAPIKey:      getEnv("PALS_OPENAI_API_KEY", ""),
		HuggingFaceAPIKey: getEnv("PALS_HF_API_KEY", ""),

		GCPProjectID: getEnv("PALS_GCP_PROJECT", ""),
		GCPLocation:  getEnv("PALS_GCP_LOCATION", "us-central1"),

		StorageBackend: getEnv("PALS_STORAGE_BACKEND", "memory"),
		RedisAddr:      getEnv("PALS_REDIS_ADDR", "localhost:6379"),
	}

	// Minimal validation for the backends that need infrastructure.
	if cfg.Provider == ProviderGemini && cfg.GCPProjectID == "" {
		log.Fatal("PALS_GCP_PROJECT must be set when PALS_PROVIDER=gemini")
	}
	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("PALS_GCP_PROJECT must be set when PALS_STORAGE_BACKEND=firestore")
	}

	return cfg
}
