package main

// #region imports
import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/caiti-ai/session-controller/internal/config"
	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
	"github.com/caiti-ai/session-controller/internal/replay"
	"github.com/caiti-ai/session-controller/internal/session"
	"github.com/caiti-ai/session-controller/internal/turn"
)

// #endregion

// #region main

func main() {
	scriptPath := flag.String("script", "", "path to replies file, one answer per line")
	recordPath := flag.String("record", "", "attach to an already-running session's record file")
	cfgPath := flag.String("config", envOr("SESSION_CONFIG", "config.yaml"), "path to config (session mode)")
	timeout := flag.Duration("timeout", 10*time.Minute, "abort the replay after this long")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --script replies.txt [--record record.csv | --config config.yaml]")
		os.Exit(2)
	}

	replies, err := loadScript(*scriptPath)
	if err != nil {
		log.Fatalf("failed to load script: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var exitCode int
	if *recordPath != "" {
		exitCode = runAttachMode(ctx, *recordPath, replies)
	} else {
		exitCode = runSessionMode(ctx, *cfgPath, replies)
	}
	os.Exit(exitCode)
}

// #endregion

// #region attach-mode

// runAttachMode plays the scripted user against a record file owned by a
// separately running controller or server process.
func runAttachMode(ctx context.Context, recordPath string, replies []string) int {
	actor := replay.NewActor(recordPath, 100*time.Millisecond, replies)
	err := actor.Run(ctx)
	printTranscript(actor.Transcript())
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay error: %v\n", err)
		return 1
	}
	return 0
}

// #endregion

// #region session-mode

// runSessionMode runs a complete session in-process: the orchestrator on one
// side of the record, the scripted actor on the other.
func runSessionMode(ctx context.Context, cfgPath string, replies []string) int {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config %s: %v\n", cfgPath, err)
		return 2
	}

	logger, err := logging.New(cfg.Paths.LogsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logging: %v\n", err)
		return 2
	}
	defer logger.Sync()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY is not set in environment")
		return 2
	}
	client := llm.NewOpenAIClient(cfg.OpenAI, apiKey)

	events, err := logging.OpenSessionLog(cfg.Paths.SessionDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open session log: %v\n", err)
		return 2
	}
	defer events.Close()

	ch := turn.NewChannel(cfg.Paths.RecordCSV, logger)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	orch := session.New(cfg, ch, client, events, rng, logger)

	actor := replay.NewActor(cfg.Paths.RecordCSV, 100*time.Millisecond, replies)
	actorCtx, stopActor := context.WithCancel(ctx)
	actorDone := make(chan error, 1)
	go func() { actorDone <- actor.Run(actorCtx) }()

	sessionErr := orch.Run(ctx)
	stopActor()
	if err := <-actorDone; err != nil {
		fmt.Fprintf(os.Stderr, "actor error: %v\n", err)
	}

	printTranscript(actor.Transcript())
	if sessionErr != nil {
		fmt.Fprintf(os.Stderr, "session error: %v\n", sessionErr)
		return 1
	}
	fmt.Printf("session %s complete\n", orch.SessionID())
	return 0
}

// #endregion

// #region helpers

// loadScript reads one reply per line. Blank lines and lines starting with
// '#' are skipped.
func loadScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var replies []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		replies = append(replies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return replies, nil
}

func printTranscript(questions []string) {
	for i, q := range questions {
		fmt.Printf("[%d] %s\n", i+1, q)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion
