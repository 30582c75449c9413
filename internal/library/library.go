// Package library holds the item/question dimension records probed during
// screening: labels, candidate question texts, outcome score tables, score
// history, and free-text evidence notes.
package library

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// #endregion

// #region record

// Record is one screening dimension: a single question slot under an item.
// ScoreHistory and Notes are append-only for the life of a session.
type Record struct {
	Label         string
	Questions     []string
	OutcomeScores map[string]int
	ScoreHistory  []int
	Notes         [][]string
}

// AddScore appends a severity value to the history.
func (r *Record) AddScore(score int) {
	r.ScoreHistory = append(r.ScoreHistory, score)
}

// AddNote appends one evidence-note entry.
func (r *Record) AddNote(note []string) {
	r.Notes = append(r.Notes, note)
}

// Answered reports whether this dimension has been probed.
func (r *Record) Answered() bool { return len(r.ScoreHistory) > 0 }

// MeanScore is the average recorded severity, 0 when unanswered.
func (r *Record) MeanScore() float64 {
	if len(r.ScoreHistory) == 0 {
		return 0
	}
	sum := 0
	for _, s := range r.ScoreHistory {
		sum += s
	}
	return float64(sum) / float64(len(r.ScoreHistory))
}

// HasSeverity reports whether the history contains the given severity value.
func (r *Record) HasSeverity(score int) bool {
	for _, s := range r.ScoreHistory {
		if s == score {
			return true
		}
	}
	return false
}

// #endregion

// #region library

// Library maps item index → question index → record. Indexes start at 1;
// index 0 is the selector's synthetic start state and never has records.
type Library map[int]map[int]*Record

// Get returns the record at (item, question) and whether it exists. Absence
// is an expected condition, not an error.
func (l Library) Get(item, question int) (*Record, bool) {
	qs, ok := l[item]
	if !ok {
		return nil, false
	}
	rec, ok := qs[question]
	return rec, ok
}

// Items returns the item indexes in ascending order.
func (l Library) Items() []int {
	items := make([]int, 0, len(l))
	for i := range l {
		items = append(items, i)
	}
	sort.Ints(items)
	return items
}

// Questions returns the question indexes under an item in ascending order.
func (l Library) Questions(item int) []int {
	qs := make([]int, 0, len(l[item]))
	for q := range l[item] {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

// Label returns the dimension label at (item, question), or "" if absent.
func (l Library) Label(item, question int) string {
	rec, ok := l.Get(item, question)
	if !ok {
		return ""
	}
	return rec.Label
}

// #endregion

// #region json

// The persisted form mirrors the historical layout exactly: stringified
// integer keys at both levels, and the Yes/No outcome scores flattened into
// the record object next to "label", "question", "score", and "notes".

type recordJSON struct {
	Label     string     `json:"label"`
	Questions []string   `json:"question"`
	Yes       *int       `json:"Yes,omitempty"`
	No        *int       `json:"No,omitempty"`
	Score     []int      `json:"score"`
	Notes     [][]string `json:"notes"`
}

// MarshalJSON writes the historical nested string-keyed tree.
func (l Library) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]recordJSON, len(l))
	for item, qs := range l {
		inner := make(map[string]recordJSON, len(qs))
		for q, rec := range qs {
			rj := recordJSON{
				Label:     rec.Label,
				Questions: rec.Questions,
				Score:     rec.ScoreHistory,
				Notes:     rec.Notes,
			}
			if rj.Score == nil {
				rj.Score = []int{}
			}
			if rj.Notes == nil {
				rj.Notes = [][]string{}
			}
			if v, ok := rec.OutcomeScores["Yes"]; ok {
				y := v
				rj.Yes = &y
			}
			if v, ok := rec.OutcomeScores["No"]; ok {
				n := v
				rj.No = &n
			}
			inner[strconv.Itoa(q)] = rj
		}
		out[strconv.Itoa(item)] = inner
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the historical nested string-keyed tree.
func (l *Library) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	lib := make(Library, len(raw))
	for itemKey, qs := range raw {
		item, err := strconv.Atoi(itemKey)
		if err != nil {
			return fmt.Errorf("item key %q is not an integer: %w", itemKey, err)
		}
		inner := make(map[int]*Record, len(qs))
		for qKey, rj := range qs {
			q, err := strconv.Atoi(qKey)
			if err != nil {
				return fmt.Errorf("question key %q is not an integer: %w", qKey, err)
			}
			rec := &Record{
				Label:         rj.Label,
				Questions:     rj.Questions,
				OutcomeScores: map[string]int{},
				ScoreHistory:  rj.Score,
				Notes:         rj.Notes,
			}
			if rj.Yes != nil {
				rec.OutcomeScores["Yes"] = *rj.Yes
			}
			if rj.No != nil {
				rec.OutcomeScores["No"] = *rj.No
			}
			inner[q] = rec
		}
		lib[item] = inner
	}
	*l = lib
	return nil
}

// #endregion

// #region persistence

// Load reads a question library from disk.
func Load(path string) (Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question library: %w", err)
	}
	var lib Library
	if err := json.Unmarshal(raw, &lib); err != nil {
		return nil, fmt.Errorf("parse question library: %w", err)
	}
	return lib, nil
}

// Save writes the library atomically.
func Save(path string, lib Library) error {
	raw, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encode question library: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write question library: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace question library: %w", err)
	}
	return nil
}

// SnapshotPath derives a timestamped snapshot name from the base path:
// question_lib.json → question_lib_<unix>.json.
func SnapshotPath(base string, unix int64) string {
	if strings.HasSuffix(base, ".json") {
		return strings.TrimSuffix(base, ".json") + "_" + strconv.FormatInt(unix, 10) + ".json"
	}
	return base + "_" + strconv.FormatInt(unix, 10)
}

// #endregion
