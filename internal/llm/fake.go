package llm

// #region imports
import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// #endregion

// #region scripted

// Rule maps prompts to a canned reply. A rule matches when every fragment
// appears in the concatenated system+user text.
type Rule struct {
	Contains []string
	Reply    string
}

// ScriptedClient answers from an ordered rule list, first match wins. It
// records every exchange so tests and replays can assert on prompt traffic.
type ScriptedClient struct {
	Rules   []Rule
	Default string

	mu    sync.Mutex
	Calls []string
}

// Complete matches the prompt against the rule list.
func (c *ScriptedClient) Complete(_ context.Context, system, user string) (string, error) {
	joined := system + "\n" + user
	c.mu.Lock()
	c.Calls = append(c.Calls, joined)
	c.mu.Unlock()

	for _, r := range c.Rules {
		matched := true
		for _, frag := range r.Contains {
			if !strings.Contains(joined, frag) {
				matched = false
				break
			}
		}
		if matched {
			return r.Reply, nil
		}
	}
	if c.Default != "" {
		return c.Default, nil
	}
	return "", fmt.Errorf("no scripted reply for prompt: %.80s", joined)
}

// CallCount returns how many completions were requested.
func (c *ScriptedClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}

// #endregion
