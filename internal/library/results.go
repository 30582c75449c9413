package library

// #region imports
import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// #endregion

// #region results-export

// ExportResults writes the tabular session report: one row per dimension with
// its label, score history, and evidence notes. The file is replaced
// atomically.
func ExportResults(path string, lib Library) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Item Label", "Score", "Notes"}); err != nil {
		f.Close()
		return fmt.Errorf("write results header: %w", err)
	}
	for _, item := range lib.Items() {
		for _, q := range lib.Questions(item) {
			rec := lib[item][q]
			row := []string{
				rec.Label,
				fmt.Sprintf("%v", rec.ScoreHistory),
				fmt.Sprintf("%v", rec.Notes),
			}
			if err := w.Write(row); err != nil {
				f.Close()
				return fmt.Errorf("write results row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush results: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close results file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace results file: %w", err)
	}
	return nil
}

// #endregion

// #region notes-export

// ExportNotes flattens every evidence note into its own row, one field per
// "key: value" entry, keyed by the owning dimension label. The file is
// replaced atomically.
func ExportNotes(path string, lib Library) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create notes dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create notes file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Item Label", "Note"}); err != nil {
		f.Close()
		return fmt.Errorf("write notes header: %w", err)
	}
	for _, item := range lib.Items() {
		for _, q := range lib.Questions(item) {
			rec := lib[item][q]
			for _, note := range rec.Notes {
				row := append([]string{rec.Label}, note...)
				if err := w.Write(row); err != nil {
					f.Close()
					return fmt.Errorf("write notes row: %w", err)
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush notes: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close notes file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace notes file: %w", err)
	}
	return nil
}

// #endregion
