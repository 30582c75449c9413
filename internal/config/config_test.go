package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
app:
  subject_id: "42"
paths:
  data_dir: "data/${subject_id}"
  logs_dir: "data/${subject_id}/logs"
  result_dir: "data/${subject_id}/results"
  question_lib: "data/${subject_id}/question_lib.json"
  report_file: "data/${subject_id}/results/report.csv"
  notes_file: "data/${subject_id}/results/notes.csv"
  record_csv: "data/${subject_id}/record.csv"
  session_db: "data/${subject_id}/session.db"
rl:
  item_n_states: 3
  epsilon: 0.9
  alpha: 0.1
  gamma: 0.9
  item_importance: [0.0, 1.0, 0.5]
openai:
  model: "gpt-4o"
  temperature: 0.7
  max_tokens: 300
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsSubjectID(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.RecordCSV != "data/42/record.csv" {
		t.Errorf("record_csv: got %q", cfg.Paths.RecordCSV)
	}
	if cfg.Paths.QuestionLib != "data/42/question_lib.json" {
		t.Errorf("question_lib: got %q", cfg.Paths.QuestionLib)
	}
}

func TestLoad_RejectsImportanceMismatch(t *testing.T) {
	body := strings.Replace(sampleConfig, "[0.0, 1.0, 0.5]", "[0.0, 1.0]", 1)
	_, err := Load(writeConfig(t, body))
	if err == nil {
		t.Fatal("want error for importance/state count mismatch")
	}
}

func TestLoad_RejectsMissingSubject(t *testing.T) {
	body := strings.Replace(sampleConfig, `subject_id: "42"`, `subject_id: ""`, 1)
	_, err := Load(writeConfig(t, body))
	if err == nil {
		t.Fatal("want error for empty subject_id")
	}
}
