package phrase

// #region imports
import (
	"context"
	"strings"
	"testing"

	"github.com/caiti-ai/session-controller/internal/llm"
)

// #endregion

func TestSynonymous_StripsEchoedScaffolding(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"clean", "I feel down.", "I feel down."},
		{"answer prefix", "Answer: I feel down.", "I feel down."},
		{"echoed exchange", "User: I am sad.\nAnswer: I feel down.", "I feel down."},
		{"trailing space", "  I feel down.  ", "I feel down."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&llm.ScriptedClient{Default: tt.reply})
			got, err := g.Synonymous(context.Background(), "I am sad.")
			if err != nil {
				t.Fatalf("Synonymous: %v", err)
			}
			if got != tt.want {
				t.Errorf("Synonymous = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewrite_CapitalizesInput(t *testing.T) {
	client := &llm.ScriptedClient{Default: "You feel sad."}
	g := NewGenerator(client)
	if _, err := g.SecondPerson(context.Background(), "i feel sad."); err != nil {
		t.Fatalf("SecondPerson: %v", err)
	}
	if len(client.Calls) != 1 || !strings.Contains(client.Calls[0], "User:I feel sad.") {
		t.Errorf("prompt did not capitalize the input: %q", client.Calls)
	}
}

func TestGenerators_RouteToDistinctPrompts(t *testing.T) {
	client := &llm.ScriptedClient{
		Rules: []llm.Rule{
			{Contains: []string{"positive declarative"}, Reply: "You have trouble sleeping."},
			{Contains: []string{"negative declarative"}, Reply: "You don't sleep well."},
			{Contains: []string{"second-person"}, Reply: "You sleep late."},
		},
	}
	g := NewGenerator(client)
	ctx := context.Background()

	pos, err := g.PositiveStatement(ctx, "Do you have trouble sleeping?")
	if err != nil || pos != "You have trouble sleeping." {
		t.Errorf("PositiveStatement = %q, %v", pos, err)
	}
	neg, err := g.NegativeStatement(ctx, "Do you sleep well?")
	if err != nil || neg != "You don't sleep well." {
		t.Errorf("NegativeStatement = %q, %v", neg, err)
	}
	second, err := g.SecondPerson(ctx, "I sleep late.")
	if err != nil || second != "You sleep late." {
		t.Errorf("SecondPerson = %q, %v", second, err)
	}
}

func TestRewrite_PropagatesClientError(t *testing.T) {
	g := NewGenerator(&llm.ScriptedClient{}) // no rules, no default
	if _, err := g.Synonymous(context.Background(), "anything"); err == nil {
		t.Fatal("Synonymous with failing client succeeded")
	}
}
