package screen

// #region imports
import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/analyze"
	"github.com/caiti-ai/session-controller/internal/library"
	"github.com/caiti-ai/session-controller/internal/phrase"
	"github.com/caiti-ai/session-controller/internal/reflect"
)

// #endregion

// #region types

// rewriteProbability is how often a question variant gets a synonymous
// rewrite before being asked.
const rewriteProbability = 0.95

// Exchange is the turn-channel surface the prober needs for a full probe.
type Exchange interface {
	EmitQuestion(ctx context.Context, text string) error
	AwaitRawAnswer(ctx context.Context) (string, error)
	AwaitAnswer(ctx context.Context) ([]string, error)
	SetPrefix(text string)
}

// Recorder receives each segment's classification outcome for the session
// provenance log. A nil Recorder disables recording.
type Recorder interface {
	Classified(item int, result analyze.Result)
}

// Prober runs the single-question cycle for one item: ask, classify,
// evaluate, retry once on an invalid answer, and hand concerning answers to
// the reflection-validation protocol.
type Prober struct {
	classifier *analyze.Classifier
	eval       *Evaluator
	gen        *phrase.Generator
	rv         *reflect.Protocol
	rec        Recorder
	rng        *rand.Rand
	log        *zap.Logger
}

// NewProber wires the probe cycle's collaborators together. rec may be nil.
func NewProber(classifier *analyze.Classifier, gen *phrase.Generator, rv *reflect.Protocol, rec Recorder, rng *rand.Rand, log *zap.Logger) *Prober {
	log = log.Named("screen")
	return &Prober{
		classifier: classifier,
		eval:       NewEvaluator(gen, log),
		gen:        gen,
		rv:         rv,
		rec:        rec,
		rng:        rng,
		log:        log,
	}
}

// #endregion

// #region probe

// ProbeItem asks the item's question and scores the answer. Items answered
// in an earlier session are not re-asked; their recorded mean severity is
// returned as-is. The returned reward is the mean of the item's severity
// history and terminate reports whether the user asked to stop.
func (p *Prober) ProbeItem(ctx context.Context, ex Exchange, lib library.Library, item int) (float64, bool, error) {
	rec, ok := lib.Get(item, 1)
	if !ok {
		return 0, false, fmt.Errorf("item %d has no question record", item)
	}
	if rec.Answered() {
		p.log.Info("item already answered, reusing recorded severity",
			zap.Int("item", item), zap.Float64("mean", rec.MeanScore()))
		return rec.MeanScore(), false, nil
	}

	question := p.pickQuestion(ctx, rec)
	eval, segments, err := p.askOnce(ctx, ex, rec, item, question)
	if err != nil {
		return 0, false, err
	}
	if !eval.Valid && !eval.Terminate {
		// One clarification attempt with the identical question.
		p.log.Info("invalid answer, re-asking once", zap.Int("item", item))
		eval, segments, err = p.askOnce(ctx, ex, rec, item, question)
		if err != nil {
			return 0, false, err
		}
	}

	if eval.FollowUp != "" {
		originalResp := ""
		if len(segments) > 0 {
			originalResp = segments[0]
		}
		outcome, err := p.rv.Run(ctx, ex, rec.Label, question, originalResp, eval.FollowUp)
		if err != nil {
			return 0, false, fmt.Errorf("reflection validation for item %d: %w", item, err)
		}
		rec.AddNote(outcome.NoteFields(question, originalResp))
	}

	return rec.MeanScore(), eval.Terminate, nil
}

// pickQuestion chooses one of the item's question variants and usually
// rewrites it so repeat sessions do not hear identical wording.
func (p *Prober) pickQuestion(ctx context.Context, rec *library.Record) string {
	question := rec.Questions[p.rng.Intn(len(rec.Questions))]
	if p.rng.Float64() < rewriteProbability {
		rewritten, err := p.gen.Synonymous(ctx, question)
		if err != nil {
			p.log.Warn("question rewrite failed, using original wording", zap.Error(err))
			return question
		}
		question = rewritten
	}
	return question
}

func (p *Prober) askOnce(ctx context.Context, ex Exchange, rec *library.Record, item int, question string) (Evaluation, []string, error) {
	if err := ex.EmitQuestion(ctx, question); err != nil {
		return Evaluation{}, nil, fmt.Errorf("emit question: %w", err)
	}
	segments, err := ex.AwaitAnswer(ctx)
	if err != nil {
		return Evaluation{}, nil, fmt.Errorf("collect answer: %w", err)
	}
	results := make([]analyze.Result, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		res := p.classifier.Classify(ctx, seg, question, rec.Label)
		if p.rec != nil {
			p.rec.Classified(item, res)
		}
		results = append(results, res)
	}
	eval, err := p.eval.Evaluate(ctx, rec, results, segments, question)
	return eval, segments, err
}

// #endregion
