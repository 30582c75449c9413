// Package screen drives the per-item screening exchange: pick a question
// variant, collect and classify the answer, score it, and escalate
// concerning answers into a follow-up.
package screen

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/analyze"
	"github.com/caiti-ai/session-controller/internal/library"
	"github.com/caiti-ai/session-controller/internal/phrase"
)

// #endregion

// #region evaluation

// Evaluation is the outcome of scanning one answer's classified segments.
type Evaluation struct {
	Valid     bool
	Terminate bool
	FollowUp  string
}

// Evaluator scores classified answer segments against the probed question.
type Evaluator struct {
	gen *phrase.Generator
	log *zap.Logger
}

// NewEvaluator builds an evaluator over the phrase generator used for
// follow-up wording.
func NewEvaluator(gen *phrase.Generator, log *zap.Logger) *Evaluator {
	return &Evaluator{gen: gen, log: log}
}

// Evaluate scans results in order and acts on the first decisive one. A Stop
// keyword ends the session. Yes/No keywords score through the question's
// outcome map; an on-dimension classification scores directly. Severity
// above 1 produces a follow-up question. Maybe/Question segments are
// skipped, and if nothing decisive is found the answer is invalid.
func (e *Evaluator) Evaluate(ctx context.Context, rec *library.Record, results []analyze.Result, segments []string, originalQuestion string) (Evaluation, error) {
	for i, r := range results {
		switch r.Keyword {
		case analyze.KeywordStop:
			e.log.Info("stop keyword received, terminating evaluation")
			return Evaluation{Valid: true, Terminate: true}, nil

		case analyze.KeywordYes, analyze.KeywordNo:
			severity, ok := rec.OutcomeScores[r.Keyword]
			if !ok {
				severity = analyze.ScoreUnset
			}
			rec.AddScore(severity)

			var followUp string
			if severity > 1 {
				var err error
				followUp, err = e.keywordFollowUp(ctx, rec.Questions[0], r.Keyword)
				if err != nil {
					return Evaluation{}, err
				}
			}
			rec.AddNote([]string{
				"original_question: " + originalQuestion,
				"original_resp: " + segmentAt(segments, i),
			})
			return Evaluation{Valid: true, FollowUp: followUp}, nil

		case analyze.KeywordMaybe, analyze.KeywordQuestion:
			continue
		}

		if strings.EqualFold(analyze.NormalizeLabel(r.Label), analyze.NormalizeLabel(rec.Label)) && r.Score >= 0 && r.Score <= 2 {
			rec.AddScore(r.Score)

			var followUp string
			if r.Score > 1 {
				second, err := e.gen.SecondPerson(ctx, segmentAt(segments, i))
				if err != nil {
					return Evaluation{}, fmt.Errorf("restate response: %w", err)
				}
				followUp = "You mentioned that " + strings.ToLower(second) + " Can you tell me more?"
			}
			rec.AddNote([]string{
				"original_question: " + originalQuestion,
				"original_resp: " + segmentAt(segments, i),
			})
			return Evaluation{Valid: true, FollowUp: followUp}, nil
		}
	}
	e.log.Info("no decisive segment found, answer invalid")
	return Evaluation{}, nil
}

// keywordFollowUp builds the "It seems that ..." escalation from the item's
// base question, restated to match the polarity of the answer.
func (e *Evaluator) keywordFollowUp(ctx context.Context, baseQuestion, keyword string) (string, error) {
	var statement string
	var err error
	if keyword == analyze.KeywordYes {
		statement, err = e.gen.PositiveStatement(ctx, baseQuestion)
	} else {
		statement, err = e.gen.NegativeStatement(ctx, baseQuestion)
	}
	if err != nil {
		return "", fmt.Errorf("restate question: %w", err)
	}
	tellMore, err := e.gen.Synonymous(ctx, " Can you tell me more about it?")
	if err != nil {
		return "", fmt.Errorf("rephrase invitation: %w", err)
	}
	return "It seems that " + statement + " " + tellMore, nil
}

func segmentAt(segments []string, i int) string {
	if i < len(segments) {
		return segments[i]
	}
	if len(segments) > 0 {
		return segments[0]
	}
	return ""
}

// #endregion
