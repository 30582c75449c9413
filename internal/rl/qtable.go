// Package rl implements the epsilon-greedy tabular Q-learning selector that
// picks which screening item to probe next and learns from session outcomes.
package rl

// #region imports
import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// #endregion

// #region qtable

// QTable is a dense [states][actions] value matrix. Actions are labeled by
// their stringified index, matching the persisted column headers.
type QTable struct {
	NStates int
	Values  [][]float64
}

// NewQTable builds a table seeded column-wise with the per-item importance
// weights, biasing initial exploitation toward important items.
func NewQTable(nStates int, importance []float64) *QTable {
	values := make([][]float64, nStates)
	for s := range values {
		values[s] = make([]float64, nStates)
		for a := 0; a < nStates; a++ {
			values[s][a] = importance[a]
		}
	}
	return &QTable{NStates: nStates, Values: values}
}

// Row returns the action-value slice for a state.
func (q *QTable) Row(state int) []float64 { return q.Values[state] }

// MaxRow returns the maximum value in a state's row.
func (q *QTable) MaxRow(state int) float64 {
	max := q.Values[state][0]
	for _, v := range q.Values[state][1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Clone deep-copies the table.
func (q *QTable) Clone() *QTable {
	values := make([][]float64, q.NStates)
	for s := range values {
		values[s] = append([]float64(nil), q.Values[s]...)
	}
	return &QTable{NStates: q.NStates, Values: values}
}

// #endregion

// #region persistence

// TablePath returns the per-subject Q-table file under dir.
func TablePath(dir, subjectID string) string {
	return filepath.Join(dir, "q_tables", fmt.Sprintf("item_qtable_%s.csv", subjectID))
}

// Save writes the table in the labeled dense layout: a header row of action
// labels and one row per state prefixed with the state index.
func (q *QTable) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create q-table dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create q-table file: %w", err)
	}
	w := csv.NewWriter(f)

	header := make([]string, q.NStates+1)
	for a := 0; a < q.NStates; a++ {
		header[a+1] = strconv.Itoa(a)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write q-table header: %w", err)
	}
	for s := 0; s < q.NStates; s++ {
		row := make([]string, q.NStates+1)
		row[0] = strconv.Itoa(s)
		for a, v := range q.Values[s] {
			row[a+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write q-table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush q-table: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close q-table file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace q-table file: %w", err)
	}
	return nil
}

// Load reads a table previously written by Save. The caller decides whether
// a missing file is an error; learning state is optional at session start.
func Load(path string) (*QTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open q-table: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse q-table: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("q-table %s has no state rows", path)
	}
	nStates := len(rows) - 1
	q := &QTable{NStates: nStates, Values: make([][]float64, nStates)}
	for s := 0; s < nStates; s++ {
		row := rows[s+1]
		if len(row) != nStates+1 {
			return nil, fmt.Errorf("q-table row %d has %d columns, want %d", s, len(row), nStates+1)
		}
		q.Values[s] = make([]float64, nStates)
		for a := 0; a < nStates; a++ {
			v, err := strconv.ParseFloat(row[a+1], 64)
			if err != nil {
				return nil, fmt.Errorf("q-table value [%d][%d]: %w", s, a, err)
			}
			q.Values[s][a] = v
		}
	}
	return q, nil
}

// #endregion
