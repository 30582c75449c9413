// Package replay drives a session from a scripted user, exercising the real
// turn channel on disk. It backs the orchestrator tests and the replay
// command.
package replay

// #region imports
import (
	"context"
	"sync"
	"time"

	"github.com/caiti-ai/session-controller/internal/turn"
)

// #endregion

// #region actor

// Actor plays the user side of the turn channel: it waits for each question,
// records it, and submits the next scripted reply. Once the script runs out
// it keeps consuming questions without answering, so closing messages are
// still acknowledged.
type Actor struct {
	ui      *turn.UI
	replies []string

	mu         sync.Mutex
	transcript []string
}

// NewActor builds an actor over the record file at path.
func NewActor(path string, interval time.Duration, replies []string) *Actor {
	return &Actor{ui: turn.NewUI(path, interval), replies: replies}
}

// Run consumes questions until the context is cancelled. It only returns an
// error on channel corruption; cancellation is the normal exit.
func (a *Actor) Run(ctx context.Context) error {
	for {
		question, err := a.ui.AwaitQuestion(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		a.mu.Lock()
		a.transcript = append(a.transcript, question)
		reply := ""
		if len(a.replies) > 0 {
			reply = a.replies[0]
			a.replies = a.replies[1:]
		}
		a.mu.Unlock()
		if reply == "" {
			continue
		}
		if err := a.ui.SubmitAnswer(reply); err != nil {
			return err
		}
	}
}

// Transcript returns the questions seen so far.
func (a *Actor) Transcript() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.transcript))
	copy(out, a.transcript)
	return out
}

// #endregion
