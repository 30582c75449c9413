// Package cbt walks the user through a bounded cognitive-behavioural
// exercise over one of the dimensions flagged as concerning during
// screening: identify the unhelpful thought, challenge it, reframe it.
package cbt

// #region imports
import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/analyze"
	"github.com/caiti-ai/session-controller/internal/library"
	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/phrase"
)

// #endregion

// #region types

// Stage questions, asked verbatim; the reasoner prompts reference them.
const (
	identifyQuestion  = "Can you try to identify any unhelpful thoughts you have that contribute to this situation?"
	challengeQuestion = "Can you challenge your thought?"
	reframeQuestion   = "What is another way of thinking about this situation?"
)

// guidedRetries bounds how many guided attempts each stage allows after the
// first rejected answer.
const guidedRetries = 2

const fallbackClosing = "Thank you for working through this with me today. Take care, and goodbye."

// Exchange is the turn-channel surface the engine drives.
type Exchange interface {
	EmitQuestion(ctx context.Context, text string) error
	AwaitRawAnswer(ctx context.Context) (string, error)
	SetPrefix(text string)
}

// Engine runs the staged exercise.
type Engine struct {
	client llm.Client
	gen    *phrase.Generator
	log    *zap.Logger
}

// NewEngine builds the exercise engine.
func NewEngine(client llm.Client, gen *phrase.Generator, log *zap.Logger) *Engine {
	return &Engine{client: client, gen: gen, log: log.Named("cbt")}
}

// candidate is one flagged dimension the user may choose to work on.
type candidate struct {
	item     int
	question int
	rec      *library.Record
}

// userStopped reports whether a reply asks to end the session.
func userStopped(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "stop")
}

// #endregion

// #region run

// Run offers the flagged dimensions, walks the chosen one through the three
// stages, and records the outcome as a note on the chosen record. It
// reports whether the exercise produced any user-visible turn, so the
// caller knows whether a separate closing message is still owed.
func (e *Engine) Run(ctx context.Context, ex Exchange, lib library.Library) (bool, error) {
	candidates := flagged(lib)
	if len(candidates) == 0 {
		e.log.Info("no dimension flagged for follow-up work")
		return false, nil
	}

	chosen, lastReply, ok, err := e.chooseDimension(ctx, ex, candidates)
	if err != nil || !ok {
		return true, err
	}
	statement := statementFor(chosen.rec)
	e.log.Info("dimension chosen for exercise",
		zap.Int("item", chosen.item), zap.String("dimension", chosen.rec.Label))

	if userStopped(lastReply) {
		return true, nil
	}
	// Recap the chosen statement in the user's own terms before asking them
	// to identify thoughts, so the first stage question lands with context.
	if recap, err := e.gen.SecondPerson(ctx, statement); err == nil {
		ex.SetPrefix(recap)
	} else {
		e.log.Warn("statement recap failed", zap.Error(err))
	}
	thoughts, ok, err := e.runStage(ctx, ex, stageSpec{
		question: identifyQuestion,
		reason: func(reply string) (string, string) {
			return identifyReasonerPrompt, fmt.Sprintf("\"STATEMENT: %s; UNHELPFUL_THOUGHTS: %s;\"", statement, reply)
		},
		guide: func() (string, string) {
			return identifyGuidePrompt, "STATEMENT: " + statement
		},
	})
	if err != nil {
		return true, err
	}
	if !ok {
		if !userStopped(thoughts) {
			e.recordFailure(chosen.rec, statement, "1_failed", thoughts, "")
		}
		return true, nil
	}

	challenge, ok, err := e.runStage(ctx, ex, stageSpec{
		question: challengeQuestion,
		reason: func(reply string) (string, string) {
			return challengeReasonerPrompt, fmt.Sprintf("\"STATEMENT: %s; UNHELPFUL_THOUGHTS: %s; CHALLENGE: %s;\"", statement, thoughts, reply)
		},
		guide: func() (string, string) {
			return challengeGuidePrompt, fmt.Sprintf("STATEMENT: %s. UNHELPFUL_THOUGHTS: %s", statement, thoughts)
		},
	})
	if err != nil {
		return true, err
	}
	if !ok {
		if !userStopped(challenge) {
			e.recordFailure(chosen.rec, statement, "2_failed", thoughts, challenge)
		}
		return true, nil
	}

	// Recap the user's challenge in their own words before asking for the
	// reframe, so the final question lands with context.
	if recap, err := e.gen.SecondPerson(ctx, challenge); err == nil {
		ex.SetPrefix(recap)
	} else {
		e.log.Warn("challenge recap failed", zap.Error(err))
	}
	reframe, ok, err := e.runStage(ctx, ex, stageSpec{
		question: reframeQuestion,
		reason: func(reply string) (string, string) {
			return reframeReasonerPrompt, fmt.Sprintf("\"STATEMENT: %s; UNHELPFUL_THOUGHTS: %s; CHALLENGE: %s; REFRAME: %s;\"", statement, thoughts, challenge, reply)
		},
		guide: func() (string, string) {
			return reframeGuidePrompt, fmt.Sprintf("STATEMENT: %s. UNHELPFUL_THOUGHTS: %s. CHALLENGE: %s", statement, thoughts, challenge)
		},
	})
	if err != nil {
		return true, err
	}
	if !ok {
		if !userStopped(reframe) {
			e.recordFailure(chosen.rec, statement, "3_failed", thoughts, challenge)
		}
		return true, nil
	}

	chosen.rec.AddNote([]string{
		"CBT_dimension: " + chosen.rec.Label,
		"CBT_statement: " + statement,
		"CBT_unhelpful_thoughts: " + thoughts,
		"CBT_challenge: " + challenge,
		"CBT_reframe: " + reframe,
		"CBT_stage: success",
	})

	closing, err := e.client.Complete(ctx, closingSystemPrompt, "cbt_used: true")
	if err != nil {
		e.log.Warn("closing generation failed, using fallback", zap.Error(err))
		closing = fallbackClosing
	}
	if err := ex.EmitQuestion(ctx, closing); err != nil {
		return true, fmt.Errorf("emit closing: %w", err)
	}
	return true, nil
}

// #endregion

// #region menu

// chooseDimension presents the flagged dimensions and parses the user's
// choice. One malformed reply earns a re-prompt; a second abandons the
// exercise without notes.
func (e *Engine) chooseDimension(ctx context.Context, ex Exchange, candidates []candidate) (candidate, string, bool, error) {
	menu, err := e.menuQuestion(ctx, candidates)
	if err != nil {
		return candidate{}, "", false, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		if err := ex.EmitQuestion(ctx, menu); err != nil {
			return candidate{}, "", false, fmt.Errorf("emit dimension menu: %w", err)
		}
		reply, err := ex.AwaitRawAnswer(ctx)
		if err != nil {
			return candidate{}, "", false, fmt.Errorf("collect dimension choice: %w", err)
		}
		if userStopped(reply) {
			return candidate{}, reply, false, nil
		}
		if idx, ok := parseChoice(reply, candidates); ok {
			return candidates[idx], reply, true, nil
		}
		menu = fmt.Sprintf("Sorry, I didn't catch that. Please enter a number between 1 and %d.", len(candidates))
	}
	e.log.Info("dimension choice failed twice, abandoning exercise")
	return candidate{}, "", false, nil
}

// menuQuestion asks the model to phrase the choice prompt, falling back to
// a plain numbered list.
func (e *Engine) menuQuestion(ctx context.Context, candidates []candidate) (string, error) {
	var history strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&history, "%d. %s (score 2): %s\n", i+1, c.rec.Label, c.rec.Questions[0])
	}
	raw, err := e.client.Complete(ctx, menuSystemPrompt, "HISTORY: "+history.String())
	if err != nil {
		e.log.Warn("menu generation failed, using plain list", zap.Error(err))
		return "Which of these would you like to work on today?\n" + history.String() +
			"Please reply with a number.", nil
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "QUESTION:")), nil
}

// parseChoice accepts a leading 1-based number or a dimension label
// mentioned anywhere in the reply.
func parseChoice(reply string, candidates []candidate) (int, bool) {
	fields := strings.Fields(reply)
	if len(fields) > 0 {
		digits := strings.TrimFunc(fields[0], func(r rune) bool { return r < '0' || r > '9' })
		if n, err := strconv.Atoi(digits); err == nil && n >= 1 && n <= len(candidates) {
			return n - 1, true
		}
	}
	lower := strings.ToLower(reply)
	for i, c := range candidates {
		if strings.Contains(lower, strings.ToLower(c.rec.Label)) {
			return i, true
		}
	}
	return 0, false
}

// #endregion

// #region stages

type stageSpec struct {
	question string
	reason   func(reply string) (system, user string)
	guide    func() (system, user string)
}

// runStage asks the stage question and accepts the first reply the reasoner
// approves, guiding up to guidedRetries times. The last collected reply is
// always returned so failures can be recorded.
func (e *Engine) runStage(ctx context.Context, ex Exchange, spec stageSpec) (string, bool, error) {
	if err := ex.EmitQuestion(ctx, spec.question); err != nil {
		return "", false, fmt.Errorf("emit stage question: %w", err)
	}
	reply, err := ex.AwaitRawAnswer(ctx)
	if err != nil {
		return "", false, fmt.Errorf("collect stage answer: %w", err)
	}

	for attempt := 0; ; attempt++ {
		if userStopped(reply) {
			return reply, false, nil
		}
		system, user := spec.reason(reply)
		raw, err := e.client.Complete(ctx, system, user)
		if err != nil {
			return reply, false, fmt.Errorf("stage reasoner: %w", err)
		}
		if analyze.ParseDecision(raw) == "0" {
			return reply, true, nil
		}
		if attempt >= guidedRetries {
			e.log.Info("stage attempts exhausted", zap.String("question", spec.question))
			return reply, false, nil
		}

		system, user = spec.guide()
		guide, err := e.client.Complete(ctx, system, user)
		if err != nil {
			return reply, false, fmt.Errorf("stage guide: %w", err)
		}
		if err := ex.EmitQuestion(ctx, guide); err != nil {
			return reply, false, fmt.Errorf("emit stage guide: %w", err)
		}
		reply, err = ex.AwaitRawAnswer(ctx)
		if err != nil {
			return reply, false, fmt.Errorf("collect guided answer: %w", err)
		}
	}
}

// recordFailure notes an abandoned stage, carrying only the fields the
// exercise actually produced before failing.
func (e *Engine) recordFailure(rec *library.Record, statement, stage, thoughts, challenge string) {
	note := []string{
		"CBT_dimension: " + rec.Label,
		"CBT_statement: " + statement,
	}
	if thoughts != "" {
		note = append(note, "CBT_unhelpful_thoughts: "+thoughts)
	}
	if challenge != "" {
		note = append(note, "CBT_challenge: "+challenge)
	}
	rec.AddNote(append(note, "CBT_stage: "+stage))
}

// #endregion

// #region selection

// flagged lists every record carrying at least one severity-2 score, in
// item order.
func flagged(lib library.Library) []candidate {
	var out []candidate
	for _, item := range lib.Items() {
		for _, q := range lib.Questions(item) {
			rec, _ := lib.Get(item, q)
			if rec.HasSeverity(2) {
				out = append(out, candidate{item: item, question: q, rec: rec})
			}
		}
	}
	return out
}

// statementFor recovers the user's own words about the flagged dimension,
// preferring the latest and most elaborated response.
func statementFor(rec *library.Record) string {
	for i := len(rec.Notes) - 1; i >= 0; i-- {
		for _, prefix := range []string{"followup_resp_1: ", "followup_resp: ", "original_resp: "} {
			for _, field := range rec.Notes[i] {
				if strings.HasPrefix(field, prefix) && strings.TrimSpace(field[len(prefix):]) != "" {
					return field[len(prefix):]
				}
			}
		}
	}
	return rec.Questions[0]
}

// #endregion
