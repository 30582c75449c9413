// Package phrase holds the small text-rewriting tasks the controller leans
// on to keep its scripted questions from sounding canned: synonymous
// rewrites, person changes, and question-to-statement conversions.
package phrase

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/caiti-ai/session-controller/internal/llm"
)

// #endregion

// #region prompts

const synonymousSystemPrompt = "You generate synonymous sentences for a given text. Return only the rewritten sentence, without any prefixes."

const synonymousTemplate = `Generate synonymous sentences.

    User: I am sad.
    Answer: I feel sad.
    User: I really enjoy my work recently.
    Answer: I like my job a lot those days.
    User: I have problem hearing you well.
    Answer: I have problem understand you well.
    User:%s
    Answer:`

const secondPersonSystemPrompt = "Convert first-person to second-person statements."

const secondPersonTemplate = `Change from first-person sentence to second-person.

    User: I feel so depressed daily.
    Answer: You feel so depressed daily.
    User: I am so happy.
    Answer: You are so happy.
    User: I am under a lot of pressure.
    Answer: You are under a lot of pressure.
    User:%s
    Answer:`

const positiveSystemPrompt = "Turn a question into a positive declarative sentence."

const positiveTemplate = `Change from question to positive declarative sentence.

    User: Do you have coping skills to help you calm down.
    Answer: You have coping skills to help you calm down.
    User: Do you have self-harming behaviours?
    Answer: You have self-harming behaviours.
    User: Are you involved in any legal issues recently?
    Answer: You are involved in some legal issues recently.
    User:%s
    Answer:`

const negativeSystemPrompt = "Turn a question into a negative declarative sentence."

const negativeTemplate = `Change from question to negative declarative sentence.

    User: Do you have coping skills to help you calm down.
    Answer: You don't have coping skills to help you calm down.
    User: Do you feel productive?
    Answer: You don't feel productive.
    User: Have you done anything creative recently?
    Answer: You haven't done anything creative recently.
    User:%s
    Answer:`

// #endregion

// #region generator

// Generator runs the few-shot rewriting prompts against a completion client.
type Generator struct {
	client llm.Client
}

// NewGenerator builds a generator over a completion client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) rewrite(ctx context.Context, system, template, input string) (string, error) {
	raw, err := g.client.Complete(ctx, system, fmt.Sprintf(template, capitalize(input)))
	if err != nil {
		return "", err
	}
	return stripAnswerPrefix(raw), nil
}

// Synonymous rewrites text while preserving its meaning.
func (g *Generator) Synonymous(ctx context.Context, text string) (string, error) {
	return g.rewrite(ctx, synonymousSystemPrompt, synonymousTemplate, text)
}

// SecondPerson converts a first-person statement to second person.
func (g *Generator) SecondPerson(ctx context.Context, text string) (string, error) {
	return g.rewrite(ctx, secondPersonSystemPrompt, secondPersonTemplate, text)
}

// PositiveStatement turns a question into a positive declarative sentence.
func (g *Generator) PositiveStatement(ctx context.Context, question string) (string, error) {
	return g.rewrite(ctx, positiveSystemPrompt, positiveTemplate, question)
}

// NegativeStatement turns a question into a negative declarative sentence.
func (g *Generator) NegativeStatement(ctx context.Context, question string) (string, error) {
	return g.rewrite(ctx, negativeSystemPrompt, negativeTemplate, question)
}

// #endregion

// #region helpers

// stripAnswerPrefix removes any echoed few-shot scaffolding, keeping only
// the text after the last "Answer:" marker.
func stripAnswerPrefix(raw string) string {
	result := strings.TrimSpace(raw)
	lower := strings.ToLower(result)
	if idx := strings.LastIndex(lower, "answer:"); idx >= 0 {
		return strings.TrimSpace(result[idx+len("answer:"):])
	}
	if strings.HasPrefix(result, "User:") {
		for _, line := range strings.Split(result, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(strings.ToLower(trimmed), "answer:") {
				result = strings.TrimSpace(trimmed[len("answer:"):])
			}
		}
	}
	return result
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// #endregion
