// Package reflect runs the reflection-validation exchange that follows a
// concerning answer: collect a follow-up, check it is on topic, guide once
// if it is not, and close with an empathic validation.
package reflect

// #region imports
import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/caiti-ai/session-controller/internal/analyze"
	"github.com/caiti-ai/session-controller/internal/llm"
)

// #endregion

// #region types

// Exchange is the slice of the turn channel the protocol needs: emit one
// question, wait for the raw reply.
type Exchange interface {
	EmitQuestion(ctx context.Context, text string) error
	AwaitRawAnswer(ctx context.Context) (string, error)
	SetPrefix(text string)
}

// Outcome captures everything the exchange produced, in the order the note
// record expects it.
type Outcome struct {
	FollowUp   string // first follow-up reply
	Decision   string // "0" related, "1" unrelated
	Guide      string // guidance text, empty when the first reply was related
	FollowUp1  string // reply after guidance, empty when no guidance was needed
	Validation string // empathic validation, delivered as the next question's prefix
}

// NoteFields renders the outcome as note lines appended after the original
// question and response.
func (o Outcome) NoteFields(originalQuestion, originalResp string) []string {
	return []string{
		"original_question: " + originalQuestion,
		"original_resp: " + originalResp,
		"followup_resp: " + o.FollowUp,
		"rv_decision: " + o.Decision,
		"rv_guide: " + o.Guide,
		"followup_resp_1: " + o.FollowUp1,
		"rv_validation: " + o.Validation,
	}
}

// Protocol drives the exchange over a turn channel and a completion client.
type Protocol struct {
	client llm.Client
	log    *zap.Logger
}

// NewProtocol builds the reflection-validation protocol.
func NewProtocol(client llm.Client, log *zap.Logger) *Protocol {
	return &Protocol{client: client, log: log.Named("reflect")}
}

// #endregion

// #region run

// Run emits followUpQuestion, evaluates the reply against the topic, guides
// at most once, and stages the validation text as the prefix of whatever the
// controller says next. The validation never becomes a standalone turn.
func (p *Protocol) Run(ctx context.Context, ex Exchange, topic, originalQuestion, originalResp, followUpQuestion string) (Outcome, error) {
	if err := ex.EmitQuestion(ctx, followUpQuestion); err != nil {
		return Outcome{}, fmt.Errorf("emit follow-up question: %w", err)
	}
	followUp, err := ex.AwaitRawAnswer(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("collect follow-up: %w", err)
	}

	raw, err := p.client.Complete(ctx, reasonerSystemPrompt, payload(topic, originalQuestion, originalResp, followUp))
	if err != nil {
		return Outcome{}, fmt.Errorf("reflection reasoner: %w", err)
	}
	out := Outcome{FollowUp: followUp, Decision: analyze.ParseDecision(raw)}
	p.log.Info("reflection decision", zap.String("topic", topic), zap.String("decision", out.Decision))

	if out.Decision == "1" {
		guide, err := p.client.Complete(ctx, guideSystemPrompt, payload(topic, originalQuestion, originalResp, followUp))
		if err != nil {
			return Outcome{}, fmt.Errorf("reflection guide: %w", err)
		}
		out.Guide = guide
		if err := ex.EmitQuestion(ctx, guide); err != nil {
			return Outcome{}, fmt.Errorf("emit guide: %w", err)
		}
		followUp, err = ex.AwaitRawAnswer(ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("collect guided follow-up: %w", err)
		}
		out.FollowUp1 = followUp
	}

	validation, err := p.client.Complete(ctx, validationSystemPrompt, payload(topic, originalQuestion, originalResp, followUp))
	if err != nil {
		return Outcome{}, fmt.Errorf("reflection validation: %w", err)
	}
	out.Validation = validation
	ex.SetPrefix(validation)
	return out, nil
}

func payload(topic, originalQuestion, originalResp, followUp string) string {
	return fmt.Sprintf(`{"Topic": %q, "Original Question": %q, "Original Response": %q, "Follow Up Response": %q}`,
		topic, originalQuestion, originalResp, followUp)
}

// #endregion
