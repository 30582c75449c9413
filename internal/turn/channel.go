// Package turn implements the single-slot question/answer handshake between
// the UI actor and the orchestrator. The record lives in a four-column CSV
// file written by atomic replace; the lock pair enforces strict alternation.
package turn

// #region imports
import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// #endregion

// #region record

// Header is the record's column order. Order is significant: both actors and
// external tooling read the file positionally.
var Header = []string{"Question", "Question_Lock", "Resp", "Resp_Lock"}

// Record is the single handshake row. QuestionLock=1 means a question is
// pending for the UI actor; RespLock=0 means an answer is pending for the
// orchestrator.
type Record struct {
	Question     string
	QuestionLock int
	Resp         string
	RespLock     int
}

// #endregion

// #region channel

const (
	defaultPollInterval = 100 * time.Millisecond
	readRetries         = 5
	readRetryBackoff    = 50 * time.Millisecond
)

// Channel mediates the handshake from the orchestrator side and carries the
// pending-prefix buffer consumed by the next emitted question.
type Channel struct {
	path     string
	interval time.Duration
	prefix   string
	log      *zap.Logger
}

// Option configures a Channel.
type Option func(*Channel)

// WithPollInterval overrides the busy-poll delay (tests use a short one).
func WithPollInterval(d time.Duration) Option {
	return func(c *Channel) { c.interval = d }
}

// NewChannel creates a channel over the record file at path.
func NewChannel(path string, log *zap.Logger, opts ...Option) *Channel {
	c := &Channel{path: path, interval: defaultPollInterval, log: log.Named("turn")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// #endregion

// #region file-io

// Read loads the record, retrying transient failures (missing or empty file
// while the counterpart writes) a bounded number of times before giving up.
func Read(path string) (Record, error) {
	var lastErr error
	for i := 0; i < readRetries; i++ {
		rec, err := readOnce(path)
		if err == nil {
			return rec, nil
		}
		lastErr = err
		time.Sleep(readRetryBackoff)
	}
	return Record{}, fmt.Errorf("read turn record: %w", lastErr)
}

func readOnce(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Record{}, err
	}
	if len(rows) < 2 || len(rows[1]) < 4 {
		return Record{}, fmt.Errorf("turn record %s is incomplete", path)
	}
	qLock, err := strconv.Atoi(rows[1][1])
	if err != nil {
		return Record{}, fmt.Errorf("parse Question_Lock: %w", err)
	}
	rLock, err := strconv.Atoi(rows[1][3])
	if err != nil {
		return Record{}, fmt.Errorf("parse Resp_Lock: %w", err)
	}
	return Record{Question: rows[1][0], QuestionLock: qLock, Resp: rows[1][2], RespLock: rLock}, nil
}

// Write replaces the record atomically (write temp, then rename) so a reader
// never observes a half-written row.
func Write(path string, rec Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create record dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	w := csv.NewWriter(f)
	rows := [][]string{
		Header,
		{rec.Question, strconv.Itoa(rec.QuestionLock), rec.Resp, strconv.Itoa(rec.RespLock)},
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

// #endregion

// #region bootstrap

// Bootstrap creates the record if absent, or recovers a session left mid-turn
// by forcing QuestionLock=0 and RespLock=1.
func (c *Channel) Bootstrap() error {
	rec, err := Read(c.path)
	if err != nil {
		rec = Record{Question: "", QuestionLock: 0, Resp: "", RespLock: 1}
		return Write(c.path, rec)
	}
	rec.QuestionLock = 0
	rec.RespLock = 1
	return Write(c.path, rec)
}

// #endregion

// #region prefix

// SetPrefix stores text to be prepended (with a blank line) to the next
// emitted question. At most one pending prefix exists; a later call replaces
// an unconsumed one.
func (c *Channel) SetPrefix(text string) {
	c.prefix = text
}

// #endregion

// #region emit

// EmitQuestion waits for the UI actor to release the question slot, then
// publishes text (with any pending prefix) and locks the slot.
func (c *Channel) EmitQuestion(ctx context.Context, text string) error {
	for {
		if err := sleepCtx(ctx, c.interval); err != nil {
			return err
		}
		rec, err := Read(c.path)
		if err != nil {
			return err
		}
		if rec.QuestionLock != 0 {
			continue
		}
		combined := text
		if c.prefix != "" {
			combined = c.prefix + "\n\n" + text
		}
		rec.Question = combined
		rec.QuestionLock = 1
		if err := Write(c.path, rec); err != nil {
			return err
		}
		c.prefix = ""
		c.log.Info("question emitted", zap.String("question", combined))
		return nil
	}
}

// #endregion

// #region await

// AwaitRawAnswer blocks until the UI actor provides an answer, consumes it,
// and returns the raw text.
func (c *Channel) AwaitRawAnswer(ctx context.Context) (string, error) {
	for {
		if err := sleepCtx(ctx, c.interval); err != nil {
			return "", err
		}
		rec, err := Read(c.path)
		if err != nil {
			return "", err
		}
		if rec.RespLock != 0 {
			continue
		}
		rec.RespLock = 1
		if err := Write(c.path, rec); err != nil {
			return "", err
		}
		c.log.Info("answer received", zap.String("answer", rec.Resp))
		return rec.Resp, nil
	}
}

// AwaitAnswer consumes the next answer and splits it into clause segments.
func (c *Channel) AwaitAnswer(ctx context.Context) ([]string, error) {
	raw, err := c.AwaitRawAnswer(ctx)
	if err != nil {
		return nil, err
	}
	return SplitSegments(raw), nil
}

// #endregion

// #region unlock

// ForceUnlockQuestion clears a question lock left set after a final system
// message so the UI side is never blocked at session end.
func (c *Channel) ForceUnlockQuestion() error {
	rec, err := Read(c.path)
	if err != nil {
		return err
	}
	if rec.QuestionLock == 1 {
		rec.QuestionLock = 0
		if err := Write(c.path, rec); err != nil {
			return err
		}
		c.log.Info("force-unlocked question lock after system message")
	}
	return nil
}

// #endregion

// #region segments

// SplitSegments breaks an answer into non-empty trimmed clauses. List
// conjunctions are treated as sentence boundaries.
func SplitSegments(text string) []string {
	text = strings.ReplaceAll(text, ", and", ".")
	text = strings.ReplaceAll(text, "but", ".")
	parts := strings.Split(text, ".")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimPrefix(p, " ")
		if p == "" {
			continue
		}
		segments = append(segments, p)
	}
	return segments
}

// #endregion

// #region helpers

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// #endregion
