package main

// #region imports
import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/config"
	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
	"github.com/caiti-ai/session-controller/internal/session"
	"github.com/caiti-ai/session-controller/internal/turn"
)

// #endregion

// questionWait bounds how long /gpt blocks for the next pending question
// before giving up and returning an empty string.
const questionWait = 60 * time.Second

// #region server

type gptRequest struct {
	UserInput string `json:"user_input"`
	SubjectID string `json:"subject_ID"`
}

type gptResponse struct {
	SubjectID string `json:"subject_ID"`
	Question  string `json:"question"`
}

// server owns one session at a time: "start" launches the orchestrator in a
// background goroutine, subsequent posts relay answers through the record.
type server struct {
	cfg    *config.Config
	client llm.Client
	events *logging.SessionLog
	ui     *turn.UI
	log    *zap.Logger

	mu      sync.Mutex
	running bool
}

func (s *server) startSessionIfNeeded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	// The record must exist before the first question wait starts polling.
	if _, err := os.Stat(s.cfg.Paths.RecordCSV); os.IsNotExist(err) {
		if err := turn.Write(s.cfg.Paths.RecordCSV, turn.Record{RespLock: 1}); err != nil {
			s.log.Error("record bootstrap failed", zap.Error(err))
		}
	}

	ch := turn.NewChannel(s.cfg.Paths.RecordCSV, s.log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	orch := session.New(s.cfg, ch, s.client, s.events, rng, s.log)

	go func() {
		s.log.Info("session started", zap.String("session_id", orch.SessionID()))
		if err := orch.Run(context.Background()); err != nil {
			s.log.Error("session ended with error", zap.Error(err))
		} else {
			s.log.Info("session finished")
		}
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()
}

func (s *server) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// awaitQuestion blocks until the orchestrator publishes a question, or the
// wait budget expires, in which case it returns an empty string.
func (s *server) awaitQuestion(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, questionWait)
	defer cancel()
	question, err := s.ui.AwaitQuestion(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", nil
		}
		return "", err
	}
	return question, nil
}

func (s *server) handleGPT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req gptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if strings.EqualFold(strings.TrimSpace(req.UserInput), "start") {
		s.startSessionIfNeeded()
	} else {
		if err := s.ui.SubmitAnswer(req.UserInput); err != nil {
			s.log.Error("answer submission failed", zap.Error(err))
			http.Error(w, "failed to record answer", http.StatusInternalServerError)
			return
		}
	}

	question, err := s.awaitQuestion(r.Context())
	if err != nil {
		s.log.Error("question wait failed", zap.Error(err))
		http.Error(w, "failed to read question", http.StatusInternalServerError)
		return
	}

	writeJSON(w, gptResponse{SubjectID: req.SubjectID, Question: question})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "idle"
	if s.isRunning() {
		status = "running"
	}
	writeJSON(w, map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

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

	events, err := logging.OpenSessionLog(cfg.Paths.SessionDB)
	if err != nil {
		log.Fatalf("failed to open session log: %v", err)
	}
	defer events.Close()

	srv := &server{
		cfg:    cfg,
		client: llm.NewOpenAIClient(cfg.OpenAI, apiKey),
		events: events,
		ui:     turn.NewUI(cfg.Paths.RecordCSV, 100*time.Millisecond),
		log:    logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/gpt", srv.handleGPT)
	mux.HandleFunc("/health", srv.handleHealth)

	addr := envOr("SESSION_ADDR", ":8080")
	httpSrv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	logger.Info("session server listening", zap.String("addr", addr))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion
