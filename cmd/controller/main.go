package main

// #region imports
import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/config"
	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
	"github.com/caiti-ai/session-controller/internal/session"
	"github.com/caiti-ai/session-controller/internal/turn"
)

// #endregion

// #region main
func main() {
	cfgPath := envOr("SESSION_CONFIG", "config.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", cfgPath, err)
	}

	logger, err := logging.New(cfg.Paths.LogsDir)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
	defer logger.Sync()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is not set in environment")
	}
	client := llm.NewOpenAIClient(cfg.OpenAI, apiKey)

	events, err := logging.OpenSessionLog(cfg.Paths.SessionDB)
	if err != nil {
		log.Fatalf("failed to open session log: %v", err)
	}
	defer events.Close()

	ch := turn.NewChannel(cfg.Paths.RecordCSV, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	orch := session.New(cfg, ch, client, events, rng, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- orch.Run(ctx) }()

	fmt.Println("Session controller ready.")
	fmt.Printf("  subject: %s | session: %s\n", cfg.App.SubjectID, orch.SessionID())

	runConsole(cfg.Paths.RecordCSV, done, logger)
}

// runConsole is the terminal UI actor: it prints each question as it
// arrives and submits typed answers until the session finishes.
func runConsole(recordPath string, done <-chan error, logger *zap.Logger) {
	ui := turn.NewUI(recordPath, 100*time.Millisecond)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case err := <-done:
			if err != nil {
				logger.Error("session ended with error", zap.Error(err))
				os.Exit(1)
			}
			logger.Info("session complete")
			return
		default:
		}

		question, pending, err := ui.PollQuestion()
		if err != nil {
			logger.Warn("record read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if !pending {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		fmt.Printf("\nCaiTI: %s\n> ", question)
		if !scanner.Scan() {
			return
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			answer = " "
		}
		if err := ui.SubmitAnswer(answer); err != nil {
			logger.Warn("answer submission failed", zap.Error(err))
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion
