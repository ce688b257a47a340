package main

import (
	"context"
	"log"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	httpadapter "github.com/Yash7702/perspective-pals/internal/adapters/http"
	"github.com/Yash7702/perspective-pals/internal/adapters/llm"
	firestorestore "github.com/Yash7702/perspective-pals/internal/adapters/storage/firestore"
	memstore "github.com/Yash7702/perspective-pals/internal/adapters/storage/memory"
	redisstore "github.com/Yash7702/perspective-pals/internal/adapters/storage/redis"
	"github.com/Yash7702/perspective-pals/internal/app/conversation"
	"github.com/Yash7702/perspective-pals/internal/app/roundtable"
	"github.com/Yash7702/perspective-pals/internal/config"
	"github.com/Yash7702/perspective-pals/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Generation backend: mock, OpenAI, Hugging Face or Gemini
	var (
		llmClient domain.GenerationClient
		err       error
	)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		log.Println("[LLM] Using OpenAI client")
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.ModelName)
	case config.ProviderHuggingFace:
		log.Println("[LLM] Using Hugging Face client")
		llmClient = llm.NewHuggingFaceClient(cfg.HuggingFaceAPIKey, cfg.ModelName)
	case config.ProviderGemini:
		log.Println("[LLM] Using Gemini client")
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	default:
		log.Println("[LLM] Using MOCK client")
		llmClient = llm.NewMockClient()
	}

	// Storage: Firestore, Redis or Memory
	var history domain.HistoryStore

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		history = fsStore

	case "redis":
		log.Printf("[STORE] Using Redis storage (addr=%s)", cfg.RedisAddr)
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		history = redisstore.NewHistoryStore(client)

	default:
		log.Println("[STORE] Using in-memory storage")
		history = memstore.NewHistoryStore()
	}

	personas := domain.DefaultRegistry()
	orch := roundtable.NewOrchestrator(llmClient, personas)
	svc := conversation.NewService(orch, personas, history)

	handler := httpadapter.NewServer(svc, personas)

	port := ":" + cfg.Port
	log.Println("Perspective Pals API listening on port:", port)
	if err := http.ListenAndServe(port, handler); err != nil {
		log.Fatal(err)
	}
}
