package analyze

// #region imports
import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/caiti-ai/session-controller/internal/llm"
	"github.com/caiti-ai/session-controller/internal/logging"
)

// #endregion

// #region helpers

func newTestClassifier(reply string) (*Classifier, *llm.ScriptedClient) {
	client := &llm.ScriptedClient{Default: reply}
	return NewClassifier(client, logging.Nop()), client
}

// #endregion

// #region classify tests

func TestClassify_QuickKeywordSkipsModel(t *testing.T) {
	tests := []struct {
		segment string
		want    string
	}{
		{"Yes, I do", "Yes"},
		{"no way", "No"},
		{"Maybe? I am not sure", "Maybe"},
		{"please stop now", "Stop"},
		{"I have a question for you", "Question"},
	}
	for _, tt := range tests {
		c, client := newTestClassifier("should not be called")
		got := c.Classify(context.Background(), tt.segment, "q", "mood")
		if got.Keyword != tt.want {
			t.Errorf("Classify(%q).Keyword = %q, want %q", tt.segment, got.Keyword, tt.want)
		}
		if got.Label != "mood" {
			t.Errorf("Classify(%q).Label = %q, want mood", tt.segment, got.Label)
		}
		if client.CallCount() != 0 {
			t.Errorf("Classify(%q) called the model", tt.segment)
		}
	}
}

func TestClassify_QuickKeywordOnlyInFirstTenTokens(t *testing.T) {
	c, client := newTestClassifier("1_mood, 1")
	seg := "one two three four five six seven eight nine ten stop"
	got := c.Classify(context.Background(), seg, "q", "mood")
	if got.Keyword == "Stop" {
		t.Fatal("keyword beyond token window was matched")
	}
	if client.CallCount() != 1 {
		t.Errorf("model calls = %d, want 1", client.CallCount())
	}
}

func TestClassify_ParsesModelOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  Result
	}{
		{"plain pair", "1_mood, 2", Result{Label: "mood", Score: 2}},
		{"bare label", "talk, 1", Result{Label: "talk", Score: 1}},
		{"dla prefix", "DLA_3_talk - 0", Result{Label: "talk", Score: 0}},
		{"colon sep", "3_talk:1", Result{Label: "talk", Score: 1}},
		{"res json", `{"res": "3_talk, 1"}`, Result{Label: "talk", Score: 1}},
		{"split json", `{"dimension": "3_talk", "score": 1}`, Result{Label: "talk", Score: 1}},
		{"keyword with score", "Yes, 0", Result{Label: "mood", Keyword: "Yes"}},
		{"other fallback", "Other, 0", Result{Label: "NA", Score: 99}},
		{"garbage", "!!!", Result{Label: "NA", Score: 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClassifier(tt.reply)
			got := c.Classify(context.Background(), "my weight went up a lot", "q", "mood")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_ModelErrorIsSentinel(t *testing.T) {
	client := &llm.ScriptedClient{} // no rules, no default: every call errors
	c := NewClassifier(client, logging.Nop())
	got := c.Classify(context.Background(), "something unclassifiable", "q", "mood")
	if got.Label != LabelNA || got.Score != ScoreUnset {
		t.Errorf("Classify = %+v, want NA sentinel", got)
	}
}

// #endregion

// #region decision tests

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"1_weight", "weight"},
		{"DLA_18_hygiene", "hygiene"},
		{"21_sports", "sports"},
		{"weight", "weight"},
		{"5_work_dayoff", "work_dayoff"},
	}
	for _, tt := range tests {
		if got := NormalizeLabel(tt.label); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"DECISION: 0", "0"},
		{"DECISION: 1", "1"},
		{"0", "0"},
		{"the answer is 1", "1"},
		{"related (0)", "0"},
		{"", "1"},
	}
	for _, tt := range tests {
		if got := ParseDecision(tt.raw); got != tt.want {
			t.Errorf("ParseDecision(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// #endregion
