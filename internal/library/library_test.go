package library

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// #region helpers

func sampleLibrary() Library {
	return Library{
		1: {
			1: &Record{
				Label:         "weight",
				Questions:     []string{"Have you noticed any significant weight change recently?"},
				OutcomeScores: map[string]int{"Yes": 2, "No": 0},
				ScoreHistory:  []int{},
				Notes:         [][]string{},
			},
		},
		2: {
			1: &Record{
				Label:         "house",
				Questions:     []string{"Do you keep up with housework?"},
				OutcomeScores: map[string]int{"Yes": 0, "No": 2},
				ScoreHistory:  []int{2},
				Notes:         [][]string{{"original_question: Do you keep up with housework?", "original_resp: No"}},
			},
		},
	}
}

// #endregion helpers

func TestRoundTripJSON(t *testing.T) {
	lib := sampleLibrary()
	raw, err := json.Marshal(lib)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Library
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(lib, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshal_UsesHistoricalShape(t *testing.T) {
	raw, err := json.Marshal(sampleLibrary())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var tree map[string]map[string]map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("decode as tree: %v", err)
	}
	rec, ok := tree["1"]["1"]
	if !ok {
		t.Fatal("missing string-keyed entry tree[\"1\"][\"1\"]")
	}
	if rec["label"] != "weight" {
		t.Errorf("label: got %v", rec["label"])
	}
	if rec["Yes"] != float64(2) {
		t.Errorf("Yes outcome score: got %v", rec["Yes"])
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "question_lib.json")
	lib := sampleLibrary()
	if err := Save(path, lib); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(lib, got); diff != "" {
		t.Errorf("load mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendOnlyAccessors(t *testing.T) {
	rec := &Record{Label: "mood", OutcomeScores: map[string]int{}}
	if rec.Answered() {
		t.Error("fresh record reports answered")
	}
	rec.AddScore(2)
	rec.AddScore(1)
	rec.AddNote([]string{"original_resp: I feel low"})
	if !rec.Answered() {
		t.Error("record with scores reports unanswered")
	}
	if got := rec.MeanScore(); got != 1.5 {
		t.Errorf("mean score: got %v, want 1.5", got)
	}
	if !rec.HasSeverity(2) || rec.HasSeverity(0) {
		t.Errorf("severity lookup wrong: %v", rec.ScoreHistory)
	}
}

func TestGet_AbsenceIsNotAnError(t *testing.T) {
	lib := sampleLibrary()
	if _, ok := lib.Get(9, 1); ok {
		t.Error("expected absence for unknown item")
	}
	if _, ok := lib.Get(1, 9); ok {
		t.Error("expected absence for unknown question")
	}
	if rec, ok := lib.Get(2, 1); !ok || rec.Label != "house" {
		t.Errorf("existing record lookup failed: %v %v", rec, ok)
	}
}

func TestSnapshotPath(t *testing.T) {
	got := SnapshotPath("data/8899/question_lib.json", 1700000000)
	want := "data/8899/question_lib_1700000000.json"
	if got != want {
		t.Errorf("snapshot path: got %q, want %q", got, want)
	}
}

func TestExportResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "report.csv")
	if err := ExportResults(path, sampleLibrary()); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("empty report")
	}
}

func TestExportNotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "notes.csv")
	if err := ExportNotes(path, sampleLibrary()); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read notes: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one note row", len(lines))
	}
	if !strings.HasPrefix(lines[1], "house,") {
		t.Errorf("note row %q should be keyed by the dimension label", lines[1])
	}
}
