package cbt

// #region imports
import (
	"context"
	"strings"
	"testing"

	"github.com/caiti-ai/session-controller/internal/library"
	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
	"github.com/caiti-ai/session-controller/internal/phrase"
)

// #endregion

// #region fakes

type fakeExchange struct {
	replies  []string
	Emitted  []string
	Prefixes []string
}

func (f *fakeExchange) EmitQuestion(_ context.Context, text string) error {
	f.Emitted = append(f.Emitted, text)
	return nil
}

func (f *fakeExchange) AwaitRawAnswer(context.Context) (string, error) {
	next := f.replies[0]
	f.replies = f.replies[1:]
	return next, nil
}

func (f *fakeExchange) SetPrefix(text string) {
	f.Prefixes = append(f.Prefixes, text)
}

func flaggedLibrary() library.Library {
	rec := &library.Record{
		Label:     "sleep",
		Questions: []string{"How is your sleep?"},
	}
	rec.AddScore(2)
	rec.AddNote([]string{
		"original_question: How is your sleep?",
		"original_resp: I barely sleep these days.",
	})
	benign := &library.Record{Label: "mood", Questions: []string{"How is your mood?"}}
	benign.AddScore(0)
	return library.Library{1: {1: rec}, 2: {1: benign}}
}

func newTestEngine(rules []llm.Rule) (*Engine, *llm.ScriptedClient) {
	client := &llm.ScriptedClient{Rules: rules}
	return NewEngine(client, phrase.NewGenerator(client), logging.Nop()), client
}

func baseRules() []llm.Rule {
	return []llm.Rule{
		{Contains: []string{"choose a dimension"}, Reply: "QUESTION: Which area would you like to work on? 1. sleep"},
		{Contains: []string{"Justify if the user is identify"}, Reply: "DECISION: 0"},
		{Contains: []string{"Justify if the patient challenges"}, Reply: "DECISION: 0"},
		{Contains: []string{"Justify if the patient reframes"}, Reply: "DECISION: 0"},
		{Contains: []string{"second-person", "barely sleep"}, Reply: "You barely sleep these days."},
		{Contains: []string{"second-person"}, Reply: "You asked whether the worry is really true."},
		{Contains: []string{"closing message"}, Reply: "Great work today. Goodbye!"},
	}
}

// #endregion

// #region tests

func TestRun_NoFlaggedDimensionsSkips(t *testing.T) {
	e, _ := newTestEngine(baseRules())
	lib := library.Library{1: {1: &library.Record{Label: "mood", Questions: []string{"q"}, ScoreHistory: []int{0}}}}
	ex := &fakeExchange{}

	ran, err := e.Run(context.Background(), ex, lib)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ran {
		t.Error("ran = true, want false with nothing flagged")
	}
	if len(ex.Emitted) != 0 {
		t.Errorf("emitted %d turns, want 0", len(ex.Emitted))
	}
}

func TestRun_SuccessfulExercise(t *testing.T) {
	e, _ := newTestEngine(baseRules())
	lib := flaggedLibrary()
	ex := &fakeExchange{replies: []string{
		"1",
		"I think I can't function without staying up late.",
		"Is it actually true that I work better at night?",
		"I could plan my evenings so I wind down earlier.",
	}}

	ran, err := e.Run(context.Background(), ex, lib)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatal("ran = false, want true")
	}
	// menu, three stage questions, closing
	if len(ex.Emitted) != 5 {
		t.Fatalf("emitted %d turns, want 5: %v", len(ex.Emitted), ex.Emitted)
	}
	if ex.Emitted[len(ex.Emitted)-1] != "Great work today. Goodbye!" {
		t.Errorf("closing = %q", ex.Emitted[len(ex.Emitted)-1])
	}
	// statement recap before the identify question, challenge recap before
	// the reframe question
	if len(ex.Prefixes) != 2 {
		t.Fatalf("prefixes = %v, want 2 recaps", ex.Prefixes)
	}
	if !strings.Contains(ex.Prefixes[0], "barely sleep") {
		t.Errorf("statement recap = %q", ex.Prefixes[0])
	}
	if !strings.Contains(ex.Prefixes[1], "You asked") {
		t.Errorf("challenge recap = %q", ex.Prefixes[1])
	}

	rec, _ := lib.Get(1, 1)
	last := rec.Notes[len(rec.Notes)-1]
	if last[len(last)-1] != "CBT_stage: success" {
		t.Errorf("stage tag = %q, want success", last[len(last)-1])
	}
	if last[0] != "CBT_dimension: sleep" {
		t.Errorf("dimension field = %q", last[0])
	}
	if last[1] != "CBT_statement: I barely sleep these days." {
		t.Errorf("statement field = %q", last[1])
	}
}

func TestRun_StatementPrefersGuidedFollowUp(t *testing.T) {
	e, _ := newTestEngine(baseRules())
	lib := flaggedLibrary()
	rec, _ := lib.Get(1, 1)
	rec.AddNote([]string{
		"original_question: How is your sleep?",
		"original_resp: I barely sleep these days.",
		"followup_resp: I love movies.",
		"rv_decision: 1",
		"rv_guide: g",
		"followup_resp_1: Work worries keep me up at night.",
		"rv_validation: v",
	})
	ex := &fakeExchange{replies: []string{"sleep", "thoughts", "challenge", "reframe"}}

	if _, err := e.Run(context.Background(), ex, lib); err != nil {
		t.Fatalf("Run: %v", err)
	}
	last := rec.Notes[len(rec.Notes)-1]
	if last[1] != "CBT_statement: Work worries keep me up at night." {
		t.Errorf("statement field = %q, want the guided follow-up", last[1])
	}
}

func TestRun_StageRetriesAreBounded(t *testing.T) {
	rules := []llm.Rule{
		{Contains: []string{"choose a dimension"}, Reply: "QUESTION: Pick one. 1. sleep"},
		{Contains: []string{"Justify if the user is identify"}, Reply: "DECISION: 1"},
		{Contains: []string{"recognize negative thoughts"}, Reply: "UNHELPFUL_THOUGHTS: Maybe you believe rest is wasted time."},
	}
	e, _ := newTestEngine(rules)
	lib := flaggedLibrary()
	ex := &fakeExchange{replies: []string{"1", "dunno", "still dunno", "no idea"}}

	ran, err := e.Run(context.Background(), ex, lib)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatal("ran = false, want true")
	}
	// menu, identify question, two guided retries; the flow then abandons
	if len(ex.Emitted) != 4 {
		t.Fatalf("emitted %d turns, want 4: %v", len(ex.Emitted), ex.Emitted)
	}
	rec, _ := lib.Get(1, 1)
	last := rec.Notes[len(rec.Notes)-1]
	if last[len(last)-1] != "CBT_stage: 1_failed" {
		t.Errorf("stage tag = %q, want 1_failed", last[len(last)-1])
	}
	// nothing past the identify stage was produced, so nothing else is noted
	if len(last) != 4 {
		t.Fatalf("failure note has %d fields, want 4: %v", len(last), last)
	}
	for _, field := range last {
		if strings.HasPrefix(field, "CBT_challenge:") {
			t.Errorf("identify failure note carries a challenge field: %v", last)
		}
	}
}

func TestRun_MenuRetriesOnceThenAbandons(t *testing.T) {
	e, _ := newTestEngine(baseRules())
	lib := flaggedLibrary()
	ex := &fakeExchange{replies: []string{"what do you mean", "huh"}}

	ran, err := e.Run(context.Background(), ex, lib)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatal("ran = false, want true")
	}
	if len(ex.Emitted) != 2 {
		t.Fatalf("emitted %d turns, want 2 (menu + re-prompt)", len(ex.Emitted))
	}
	if !strings.Contains(ex.Emitted[1], "number between 1 and 1") {
		t.Errorf("re-prompt = %q", ex.Emitted[1])
	}
	rec, _ := lib.Get(1, 1)
	if len(rec.Notes) != 1 {
		t.Errorf("abandoned menu left notes: %v", rec.Notes)
	}
}

func TestRun_StopAbandonsSilently(t *testing.T) {
	e, _ := newTestEngine(baseRules())
	lib := flaggedLibrary()
	ex := &fakeExchange{replies: []string{"1", "please stop"}}

	ran, err := e.Run(context.Background(), ex, lib)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatal("ran = false, want true")
	}
	rec, _ := lib.Get(1, 1)
	if len(rec.Notes) != 1 {
		t.Errorf("stop left extra notes: %v", rec.Notes)
	}
	// menu and identify question only; no closing after a stop
	if len(ex.Emitted) != 2 {
		t.Errorf("emitted %d turns, want 2", len(ex.Emitted))
	}
}

func TestParseChoice(t *testing.T) {
	candidates := []candidate{
		{rec: &library.Record{Label: "sleep"}},
		{rec: &library.Record{Label: "finance"}},
	}
	tests := []struct {
		reply string
		want  int
		ok    bool
	}{
		{"1", 0, true},
		{"2.", 1, true},
		{"the finance one", 1, true},
		{"Sleep please", 0, true},
		{"3", 0, false},
		{"none of these", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.reply, candidates)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseChoice(%q) = (%d, %v), want (%d, %v)", tt.reply, got, ok, tt.want, tt.ok)
		}
	}
}

// #endregion
