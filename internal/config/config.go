// Package config loads the controller configuration from config.yaml.
package config

// #region imports
import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region types

// Config is the full controller configuration.
type Config struct {
	App    App    `yaml:"app"`
	Paths  Paths  `yaml:"paths"`
	RL     RL     `yaml:"rl"`
	OpenAI OpenAI `yaml:"openai"`
}

// App holds session-level identity settings.
type App struct {
	SubjectID string `yaml:"subject_id"`
}

// Paths holds all on-disk locations. Every path may reference ${subject_id},
// which is expanded at load time.
type Paths struct {
	DataDir     string `yaml:"data_dir"`
	LogsDir     string `yaml:"logs_dir"`
	ResultDir   string `yaml:"result_dir"`
	QuestionLib string `yaml:"question_lib"`
	ReportFile  string `yaml:"report_file"`
	NotesFile   string `yaml:"notes_file"`
	RecordCSV   string `yaml:"record_csv"`
	SessionDB   string `yaml:"session_db"`
}

// RL holds the Q-learning hyperparameters for item selection.
type RL struct {
	ItemNStates    int       `yaml:"item_n_states"`
	Epsilon        float64   `yaml:"epsilon"`
	Alpha          float64   `yaml:"alpha"`
	Gamma          float64   `yaml:"gamma"`
	ItemImportance []float64 `yaml:"item_importance"`
}

// OpenAI holds the language-model service settings.
type OpenAI struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// #endregion

// #region load

// Load reads and validates a config file, expanding ${subject_id} in paths.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.expand()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) expand() {
	sub := c.App.SubjectID
	for _, p := range []*string{
		&c.Paths.DataDir, &c.Paths.LogsDir, &c.Paths.ResultDir,
		&c.Paths.QuestionLib, &c.Paths.ReportFile, &c.Paths.NotesFile,
		&c.Paths.RecordCSV, &c.Paths.SessionDB,
	} {
		*p = strings.ReplaceAll(*p, "${subject_id}", sub)
	}
}

func (c *Config) validate() error {
	if c.App.SubjectID == "" {
		return fmt.Errorf("app.subject_id is required")
	}
	if c.RL.ItemNStates < 2 {
		return fmt.Errorf("rl.item_n_states must be at least 2, got %d", c.RL.ItemNStates)
	}
	if len(c.RL.ItemImportance) != c.RL.ItemNStates {
		return fmt.Errorf("rl.item_importance has %d entries, want %d",
			len(c.RL.ItemImportance), c.RL.ItemNStates)
	}
	if c.RL.Epsilon < 0 || c.RL.Epsilon > 1 {
		return fmt.Errorf("rl.epsilon must be in [0,1], got %v", c.RL.Epsilon)
	}
	if c.Paths.QuestionLib == "" || c.Paths.RecordCSV == "" {
		return fmt.Errorf("paths.question_lib and paths.record_csv are required")
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai.model is required")
	}
	return nil
}

// #endregion
