package reflect

// #region imports
import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
)

// #endregion

// #region fake exchange

type fakeExchange struct {
	answers  []string
	Emitted  []string
	Prefixes []string
}

func (f *fakeExchange) EmitQuestion(_ context.Context, text string) error {
	f.Emitted = append(f.Emitted, text)
	return nil
}

func (f *fakeExchange) AwaitRawAnswer(context.Context) (string, error) {
	next := f.answers[0]
	f.answers = f.answers[1:]
	return next, nil
}

func (f *fakeExchange) SetPrefix(text string) {
	f.Prefixes = append(f.Prefixes, text)
}

// #endregion

// #region tests

func TestRun_RelatedFollowUpSkipsGuide(t *testing.T) {
	client := &llm.ScriptedClient{
		Rules: []llm.Rule{
			{Contains: []string{"DECISION = 0"}, Reply: "DECISION: 0"},
			{Contains: []string{"empathic validation"}, Reply: "VALIDATION: That sounds hard."},
		},
	}
	ex := &fakeExchange{answers: []string{"I eat when stressed."}}
	p := NewProtocol(client, logging.Nop())

	out, err := p.Run(context.Background(), ex, "Maintaining stable weight",
		"Have your weight changed recently?", "My weight went up.", "Can you tell me more about it?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := Outcome{
		FollowUp:   "I eat when stressed.",
		Decision:   "0",
		Validation: "VALIDATION: That sounds hard.",
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("outcome mismatch (-want +got):\n%s", diff)
	}
	if len(ex.Emitted) != 1 {
		t.Errorf("emitted %d questions, want 1", len(ex.Emitted))
	}
	if len(ex.Prefixes) != 1 || ex.Prefixes[0] != out.Validation {
		t.Errorf("validation was not staged as prefix: %v", ex.Prefixes)
	}
}

func TestRun_UnrelatedFollowUpGuidesOnce(t *testing.T) {
	client := &llm.ScriptedClient{
		Rules: []llm.Rule{
			{Contains: []string{"DECISION = 0", "I love movies."}, Reply: "DECISION: 1"},
			{Contains: []string{"lead the client to the right direction", "empathic"}, Reply: "VALIDATION: Thank you for sharing."},
			{Contains: []string{"lead the client to the right direction"}, Reply: "Guide: Let's get back to your weight."},
		},
	}
	ex := &fakeExchange{answers: []string{"I love movies.", "I snack at night."}}
	p := NewProtocol(client, logging.Nop())

	out, err := p.Run(context.Background(), ex, "Maintaining stable weight",
		"Have your weight changed recently?", "My weight went up.", "Can you tell me more about it?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Decision != "1" {
		t.Errorf("Decision = %q, want 1", out.Decision)
	}
	if out.Guide != "Guide: Let's get back to your weight." {
		t.Errorf("Guide = %q", out.Guide)
	}
	if out.FollowUp != "I love movies." || out.FollowUp1 != "I snack at night." {
		t.Errorf("follow-ups = %q, %q", out.FollowUp, out.FollowUp1)
	}
	if len(ex.Emitted) != 2 {
		t.Errorf("emitted %d questions, want 2 (follow-up + guide)", len(ex.Emitted))
	}
}

func TestOutcome_NoteFields(t *testing.T) {
	out := Outcome{
		FollowUp:   "f",
		Decision:   "1",
		Guide:      "g",
		FollowUp1:  "f1",
		Validation: "v",
	}
	want := []string{
		"original_question: q",
		"original_resp: r",
		"followup_resp: f",
		"rv_decision: 1",
		"rv_guide: g",
		"followup_resp_1: f1",
		"rv_validation: v",
	}
	if diff := cmp.Diff(want, out.NoteFields("q", "r")); diff != "" {
		t.Errorf("note fields mismatch (-want +got):\n%s", diff)
	}
}

// #endregion
