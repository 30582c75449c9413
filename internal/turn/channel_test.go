package turn

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/caiti-ai/session-controller/internal/logging"
)

// #region helpers

func newTestChannel(t *testing.T) (*Channel, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.csv")
	c := NewChannel(path, logging.Nop(), WithPollInterval(time.Millisecond))
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return c, path
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// #endregion helpers

func TestBootstrap_CreatesRecord(t *testing.T) {
	_, path := newTestChannel(t)
	rec, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := Record{Question: "", QuestionLock: 0, Resp: "", RespLock: 1}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestBootstrap_RecoversMidTurn(t *testing.T) {
	c, path := newTestChannel(t)
	if err := Write(path, Record{Question: "pending", QuestionLock: 1, Resp: "old", RespLock: 0}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := c.Bootstrap(); err != nil {
		t.Fatalf("re-bootstrap: %v", err)
	}
	rec, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rec.QuestionLock != 0 || rec.RespLock != 1 {
		t.Errorf("locks after recovery: got (%d,%d), want (0,1)", rec.QuestionLock, rec.RespLock)
	}
}

func TestLockAlternation(t *testing.T) {
	c, path := newTestChannel(t)
	ctx := testCtx(t)
	ui := NewUI(path, time.Millisecond)

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 3; i++ {
			if _, err := ui.AwaitQuestion(ctx); err != nil {
				done <- err
				return
			}
			if err := ui.SubmitAnswer("fine"); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 3; i++ {
		if err := c.EmitQuestion(ctx, "How are you?"); err != nil {
			t.Fatalf("emit %d: %v", i, err)
		}
		if _, err := c.AwaitRawAnswer(ctx); err != nil {
			t.Fatalf("await %d: %v", i, err)
		}
		// After a completed exchange pair the locks must disagree: the
		// question slot is free and the answer slot is consumed.
		rec, err := Read(path)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if rec.QuestionLock == rec.RespLock {
			t.Fatalf("exchange %d: locks both %d", i, rec.QuestionLock)
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("ui actor: %v", err)
	}
}

func TestEmitQuestion_ConsumesPrefix(t *testing.T) {
	c, path := newTestChannel(t)
	ctx := testCtx(t)
	ui := NewUI(path, time.Millisecond)

	c.SetPrefix("I hear how hard that has been.")

	got := make(chan string, 2)
	go func() {
		for i := 0; i < 2; i++ {
			q, err := ui.AwaitQuestion(ctx)
			if err != nil {
				got <- "error: " + err.Error()
				return
			}
			got <- q
			ui.SubmitAnswer("ok")
		}
	}()

	if err := c.EmitQuestion(ctx, "How is your sleep?"); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if q := <-got; q != "I hear how hard that has been.\n\nHow is your sleep?" {
		t.Errorf("first question: got %q", q)
	}
	if _, err := c.AwaitRawAnswer(ctx); err != nil {
		t.Fatalf("await: %v", err)
	}

	// The prefix must not survive its first use.
	if err := c.EmitQuestion(ctx, "How is your mood?"); err != nil {
		t.Fatalf("emit second: %v", err)
	}
	if q := <-got; q != "How is your mood?" {
		t.Errorf("second question: got %q", q)
	}
}

func TestForceUnlockQuestion(t *testing.T) {
	c, path := newTestChannel(t)
	if err := Write(path, Record{Question: "goodbye", QuestionLock: 1, Resp: "", RespLock: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := c.ForceUnlockQuestion(); err != nil {
		t.Fatalf("force unlock: %v", err)
	}
	rec, _ := Read(path)
	if rec.QuestionLock != 0 {
		t.Errorf("question lock: got %d, want 0", rec.QuestionLock)
	}
}

func TestRead_MissingFileIsHardError(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("want error for missing record")
	}
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "I sleep badly.", []string{"I sleep badly"}},
		{"list conjunction", "I gained weight, and I eat late.", []string{"I gained weight", "I eat late"}},
		{"contrast", "I try but I fail.", []string{"I try ", "I fail"}},
		{"empty clauses", "Yes.. ", []string{"Yes"}},
		{"blank", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSegments(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
