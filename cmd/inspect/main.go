package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caiti-ai/session-controller/internal/logging"
	"github.com/caiti-ai/session-controller/internal/rl"
)

// #endregion

// #region main

func main() {
	dbPath := flag.String("db", "", "path to session_events.db")
	sessionID := flag.String("session", "", "show one session's events")
	last := flag.Int("last", 20, "show N most recent sessions")
	qtablePath := flag.String("qtable", "", "print a saved q-table instead of the event log")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" && *qtablePath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/session_events.db [--session id] [--last N] [--json]")
		fmt.Fprintln(os.Stderr, "       inspect --qtable path/to/item_qtable_subject.csv [--json]")
		os.Exit(2)
	}

	var err error
	switch {
	case *qtablePath != "":
		err = runQTableMode(*qtablePath, *jsonOut)
	case *sessionID != "":
		err = runEventMode(*dbPath, *sessionID, *jsonOut)
	default:
		err = runListMode(*dbPath, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion

// #region list-mode

type sessionRow struct {
	SessionID string `json:"session_id"`
	Events    int    `json:"events"`
	StartedAt string `json:"started_at"`
	LastAt    string `json:"last_at"`
}

func runListMode(dbPath string, last int, jsonOut bool) error {
	log, err := logging.OpenSessionLog(dbPath)
	if err != nil {
		return err
	}
	defer log.Close()

	sessions, err := log.Sessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]sessionRow, len(sessions))
	for i, s := range sessions {
		rows[i] = sessionRow{
			SessionID: s.SessionID,
			Events:    s.Events,
			StartedAt: s.StartedAt.Format(time.RFC3339),
			LastAt:    s.LastAt.Format(time.RFC3339),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	fmt.Printf("%-36s  %6s  %-20s  %s\n", "Session", "Events", "Started", "Last Event")
	for _, r := range rows {
		fmt.Printf("%-36s  %6d  %-20s  %s\n", r.SessionID, r.Events, r.StartedAt, r.LastAt)
	}
	return nil
}

// #endregion

// #region event-mode

type eventRow struct {
	Type      string `json:"event_type"`
	Item      int    `json:"item"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}

func runEventMode(dbPath, sessionID string, jsonOut bool) error {
	log, err := logging.OpenSessionLog(dbPath)
	if err != nil {
		return err
	}
	defer log.Close()

	events, err := log.Events(sessionID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintf(os.Stderr, "no events found for session %s\n", sessionID)
		return nil
	}

	rows := make([]eventRow, len(events))
	for i, ev := range events {
		rows[i] = eventRow{
			Type:      ev.Type,
			Item:      ev.Item,
			Detail:    ev.Detail,
			CreatedAt: ev.CreatedAt.Format(time.RFC3339),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}
	fmt.Printf("%-14s  %4s  %-20s  %s\n", "Event", "Item", "Time", "Detail")
	for _, r := range rows {
		fmt.Printf("%-14s  %4d  %-20s  %s\n", r.Type, r.Item, r.CreatedAt, r.Detail)
	}
	return nil
}

// #endregion

// #region qtable-mode

type qtableRow struct {
	State  int       `json:"state"`
	Best   int       `json:"best_action"`
	Max    float64   `json:"max_value"`
	Values []float64 `json:"values"`
}

func runQTableMode(path string, jsonOut bool) error {
	qt, err := rl.Load(path)
	if err != nil {
		return err
	}

	rows := make([]qtableRow, qt.NStates)
	for s := 0; s < qt.NStates; s++ {
		values := qt.Row(s)
		best := 0
		for a, v := range values {
			if v > values[best] {
				best = a
			}
		}
		rows[s] = qtableRow{State: s, Best: best, Max: values[best], Values: values}
	}

	if jsonOut {
		return printJSON(rows)
	}
	fmt.Printf("%5s  %4s  %10s\n", "State", "Best", "Max Value")
	for _, r := range rows {
		fmt.Printf("%5d  %4d  %10.4f\n", r.State, r.Best, r.Max)
	}
	return nil
}

// #endregion

// #region helpers

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion
