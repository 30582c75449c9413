package turn

// #region imports
import (
	"context"
	"time"
)

// #endregion

// #region ui-actor

// UI is the counterpart side of the handshake: it consumes questions and
// produces answers. The console loop, the HTTP server, and the replay harness
// all drive the record through this type.
type UI struct {
	path     string
	interval time.Duration
}

// NewUI creates the UI-side accessor for the record at path.
func NewUI(path string, interval time.Duration) *UI {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &UI{path: path, interval: interval}
}

// AwaitQuestion blocks until a question is pending, releases the question
// lock, and returns the text.
func (u *UI) AwaitQuestion(ctx context.Context) (string, error) {
	for {
		if err := sleepCtx(ctx, u.interval); err != nil {
			return "", err
		}
		rec, err := Read(u.path)
		if err != nil {
			return "", err
		}
		if rec.QuestionLock != 1 {
			continue
		}
		rec.QuestionLock = 0
		if err := Write(u.path, rec); err != nil {
			return "", err
		}
		return rec.Question, nil
	}
}

// PollQuestion performs a single non-blocking check for a pending question.
// It returns ok=false when no question is waiting.
func (u *UI) PollQuestion() (string, bool, error) {
	rec, err := Read(u.path)
	if err != nil {
		return "", false, err
	}
	if rec.QuestionLock != 1 {
		return "", false, nil
	}
	rec.QuestionLock = 0
	if err := Write(u.path, rec); err != nil {
		return "", false, err
	}
	return rec.Question, true, nil
}

// SubmitAnswer publishes the user's answer and releases the answer lock.
func (u *UI) SubmitAnswer(text string) error {
	rec, err := Read(u.path)
	if err != nil {
		return err
	}
	rec.Resp = text
	rec.RespLock = 0
	return Write(u.path, rec)
}

// #endregion
