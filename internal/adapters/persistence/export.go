package persistence

import (
	"encoding/json"
	"io"
	"os"

	"github.com/eventgames/snakeladders-go/internal/domain/game"
)

// exportRecord is the human-downloadable dump format: the current state plus
// the session's move history. It is a one-way artifact, never read back in.
type exportRecord struct {
	ExportedAt  string             `json:"exportedAt"`
	GameID      string             `json:"gameId"`
	State       stateRecord        `json:"state"`
	MoveHistory []moveHistoryEntry `json:"moveHistory"`
}

type moveHistoryEntry struct {
	Turn      int    `json:"turn"`
	RollerID  string `json:"rollerId"`
	TargetID  string `json:"targetId"`
	Dice      [2]int `json:"dice"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Timestamp string `json:"timestamp"`
}

// WriteExport dumps the state and move history as indented JSON.
func WriteExport(w io.Writer, state *game.State, history []game.MoveRecord, exportedAt string) error {
	rec := exportRecord{
		ExportedAt:  exportedAt,
		GameID:      state.ID,
		State:       encodeState(state),
		MoveHistory: make([]moveHistoryEntry, 0, len(history)),
	}
	for _, m := range history {
		rec.MoveHistory = append(rec.MoveHistory, moveHistoryEntry{
			Turn:      m.Turn,
			RollerID:  m.RollerID,
			TargetID:  m.TargetID,
			Dice:      m.Dice,
			From:      m.From,
			To:        m.To,
			Timestamp: m.Timestamp.Format(timeLayout),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// ExportToFile writes the dump to path, creating or truncating the file.
func ExportToFile(path string, state *game.State, history []game.MoveRecord, exportedAt string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteExport(f, state, history, exportedAt)
}
