// Package session runs a full screening session end to end: greeting, the
// learned item-selection loop, the follow-up exercise, and result export.
package session

// #region imports
import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/analyze"
	"github.com/caiti-ai/session-controller/internal/cbt"
	"github.com/caiti-ai/session-controller/internal/config"
	"github.com/caiti-ai/session-controller/internal/library"
	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
	"github.com/caiti-ai/session-controller/internal/phrase"
	"github.com/caiti-ai/session-controller/internal/reflect"
	"github.com/caiti-ai/session-controller/internal/rl"
	"github.com/caiti-ai/session-controller/internal/screen"
	"github.com/caiti-ai/session-controller/internal/turn"
)

// #endregion

// #region prompts

const greetingRaw = "Hello, I'm CaiTI, your intelligence therapist. Thank you for joining me today. " +
	"Let's get started with a couple of questions about your recent daily life."

const greetingRewritePrompt = `You are a warm, concise, and professional therapist-assistant.

Task: Given an opening greeting, rewrite it to sound supportive, welcoming, and clear, suitable for the very first message of a therapeutic screening conversation.

Rules:
- 1-2 short sentences.
- Friendly, non-judgmental tone.
- No extra headers or labels; output the final greeting directly.
`

const closingPrompt = `You are a warm, concise, and professional therapist-assistant.

Background: This message appears at the end of a brief screening session.
Goal: Generate a short closing message for the user.

Instructions:
- Indicate there is no area of concern identified today and say goodbye.
- 1-2 sentences only.
- Friendly, non-judgmental tone.
- No headers or labels; output the final message directly.
`

const fallbackClosing = "Thank you for your time today. Take care, and goodbye."

// #endregion

// #region orchestrator

// Orchestrator owns one subject's session over a turn channel.
type Orchestrator struct {
	cfg    *config.Config
	ch     *turn.Channel
	client llm.Client
	prober *screen.Prober
	cbt    *cbt.Engine
	events *logging.SessionLog
	rng    *rand.Rand
	log    *zap.Logger

	sessionID string
	now       func() time.Time
}

// New wires the full session pipeline. events may be nil; provenance is
// best-effort and never blocks a session.
func New(cfg *config.Config, ch *turn.Channel, client llm.Client, events *logging.SessionLog, rng *rand.Rand, log *zap.Logger) *Orchestrator {
	gen := phrase.NewGenerator(client)
	o := &Orchestrator{
		cfg:       cfg,
		ch:        ch,
		client:    client,
		cbt:       cbt.NewEngine(client, gen, log),
		events:    events,
		rng:       rng,
		log:       log.Named("session"),
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
	o.prober = screen.NewProber(
		analyze.NewClassifier(client, log),
		gen,
		reflect.NewProtocol(client, log),
		o,
		rng,
		log,
	)
	return o
}

// SessionID identifies this run in the event log.
func (o *Orchestrator) SessionID() string { return o.sessionID }

func (o *Orchestrator) record(eventType string, item int, detail string) {
	if o.events == nil {
		return
	}
	if err := o.events.Append(logging.Event{
		SessionID: o.sessionID,
		Type:      eventType,
		Item:      item,
		Detail:    detail,
	}); err != nil {
		o.log.Warn("session event append failed", zap.Error(err))
	}
}

// Classified logs one segment's classification outcome against the item
// being probed. It implements screen.Recorder.
func (o *Orchestrator) Classified(item int, r analyze.Result) {
	detail := fmt.Sprintf("%s, %d", r.Label, r.Score)
	if r.IsKeyword() {
		detail = r.Keyword
	}
	o.record(logging.EventClassify, item, detail)
}

// #endregion

// #region exchange

// recordedExchange routes turn traffic through the channel while mirroring
// every delivered question and received answer into the provenance log,
// tagged with the item currently on the table (0 outside the item loop).
type recordedExchange struct {
	*turn.Channel
	o    *Orchestrator
	item int
}

func (e *recordedExchange) EmitQuestion(ctx context.Context, text string) error {
	if err := e.Channel.EmitQuestion(ctx, text); err != nil {
		return err
	}
	e.o.record(logging.EventQuestion, e.item, text)
	return nil
}

func (e *recordedExchange) AwaitRawAnswer(ctx context.Context) (string, error) {
	raw, err := e.Channel.AwaitRawAnswer(ctx)
	if err != nil {
		return "", err
	}
	e.o.record(logging.EventAnswer, e.item, raw)
	return raw, nil
}

func (e *recordedExchange) AwaitAnswer(ctx context.Context) ([]string, error) {
	raw, err := e.AwaitRawAnswer(ctx)
	if err != nil {
		return nil, err
	}
	return turn.SplitSegments(raw), nil
}

// #endregion

// #region run

// Run executes the whole session and persists its artifacts. It returns
// once the closing message is delivered or the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.ch.Bootstrap(); err != nil {
		return fmt.Errorf("bootstrap turn channel: %w", err)
	}
	lib, err := library.Load(o.cfg.Paths.QuestionLib)
	if err != nil {
		return fmt.Errorf("load question library: %w", err)
	}
	qt := o.loadQTable()
	o.record(logging.EventSessionUp, 0, o.cfg.App.SubjectID)

	o.stageGreeting(ctx)
	ex := &recordedExchange{Channel: o.ch, o: o}

	selector := rl.NewSelector(o.cfg.RL.Epsilon, o.rng)
	mask := rl.NewMask(o.cfg.RL.ItemNStates)
	newQ := qt.Clone()
	state := 0
	userStopped := false

	for !mask.Exhausted() {
		action, err := selector.Choose(qt, state, mask)
		if err != nil {
			return fmt.Errorf("select item: %w", err)
		}
		mask.Disable(action)
		ex.item = action

		reward, stopped, err := o.prober.ProbeItem(ctx, ex, lib, action)
		if err != nil {
			return fmt.Errorf("probe item %d: %w", action, err)
		}
		userStopped = userStopped || stopped

		next, r := rl.Feedback(action, reward, stopped, mask)
		rl.Update(newQ, state, action, r, next, o.cfg.RL.Alpha, o.cfg.RL.Gamma)
		o.record(logging.EventQUpdate, action,
			"reward="+strconv.FormatFloat(r, 'g', -1, 64))

		if next.Terminal {
			o.record(logging.EventTerminal, action, terminalReason(stopped))
			break
		}
		state = next.Index
	}

	if err := o.persistLearning(lib, newQ); err != nil {
		return err
	}

	// A stop before any item was answered skips the exercise entirely; the
	// user has asked to leave.
	ranCBT := false
	ex.item = 0
	if !(userStopped && !anyAnswered(lib)) {
		ranCBT, err = o.cbt.Run(ctx, ex, lib)
		if err != nil {
			return fmt.Errorf("cbt exercise: %w", err)
		}
		if ranCBT {
			o.record(logging.EventCBTStage, 0, "completed")
		}
	}

	if err := o.persistResults(lib); err != nil {
		return err
	}

	if !ranCBT {
		o.deliverClosing(ctx, ex)
	}
	return nil
}

// stageGreeting rewrites the canned greeting and stages it so the first
// question carries it. A failed rewrite falls back to the canned text.
func (o *Orchestrator) stageGreeting(ctx context.Context) {
	greeting, err := o.client.Complete(ctx, greetingRewritePrompt, greetingRaw)
	if err != nil {
		o.log.Warn("greeting rewrite failed, using canned greeting", zap.Error(err))
		greeting = greetingRaw
	}
	o.ch.SetPrefix(greeting)
}

// deliverClosing emits the final message and clears a question lock the UI
// will never release, since no answer follows a goodbye.
func (o *Orchestrator) deliverClosing(ctx context.Context, ex *recordedExchange) {
	closing, err := o.client.Complete(ctx, closingPrompt, "cbt_used: false")
	if err != nil {
		o.log.Warn("closing generation failed, using fallback", zap.Error(err))
		closing = fallbackClosing
	}
	if err := ex.EmitQuestion(ctx, closing); err != nil {
		o.log.Warn("closing delivery failed", zap.Error(err))
		return
	}
	if err := ex.ForceUnlockQuestion(); err != nil {
		o.log.Warn("question unlock failed", zap.Error(err))
	}
}

// #endregion

// #region persistence

// loadQTable restores the subject's learned values, seeding a fresh table
// when none have been saved yet.
func (o *Orchestrator) loadQTable() *rl.QTable {
	path := rl.TablePath(o.cfg.Paths.DataDir, o.cfg.App.SubjectID)
	if _, err := os.Stat(path); err == nil {
		qt, err := rl.Load(path)
		if err == nil {
			o.log.Info("loaded item q-table", zap.String("path", path))
			return qt
		}
		o.log.Warn("q-table unreadable, reseeding", zap.String("path", path), zap.Error(err))
	}
	return rl.NewQTable(o.cfg.RL.ItemNStates, o.cfg.RL.ItemImportance)
}

// persistLearning snapshots the annotated library and writes back the
// updated value table.
func (o *Orchestrator) persistLearning(lib library.Library, qt *rl.QTable) error {
	snapshot := library.SnapshotPath(o.cfg.Paths.QuestionLib, o.now().Unix())
	if err := library.Save(snapshot, lib); err != nil {
		return fmt.Errorf("snapshot question library: %w", err)
	}
	o.log.Info("saved question library snapshot", zap.String("path", snapshot))

	path := rl.TablePath(o.cfg.Paths.DataDir, o.cfg.App.SubjectID)
	if err := qt.Save(path); err != nil {
		return fmt.Errorf("save item q-table: %w", err)
	}
	return nil
}

// persistResults snapshots the library once more, with any exercise notes,
// and writes the per-item report.
func (o *Orchestrator) persistResults(lib library.Library) error {
	snapshot := library.SnapshotPath(o.cfg.Paths.QuestionLib, o.now().Unix())
	if err := library.Save(snapshot, lib); err != nil {
		return fmt.Errorf("snapshot question library: %w", err)
	}
	if err := library.ExportResults(o.cfg.Paths.ReportFile, lib); err != nil {
		return fmt.Errorf("export results: %w", err)
	}
	if err := library.ExportNotes(o.cfg.Paths.NotesFile, lib); err != nil {
		return fmt.Errorf("export notes: %w", err)
	}
	return nil
}

func anyAnswered(lib library.Library) bool {
	for _, item := range lib.Items() {
		for _, q := range lib.Questions(item) {
			if rec, ok := lib.Get(item, q); ok && rec.Answered() {
				return true
			}
		}
	}
	return false
}

func terminalReason(stopped bool) string {
	if stopped {
		return "user_stop"
	}
	return "items_exhausted"
}

// #endregion
