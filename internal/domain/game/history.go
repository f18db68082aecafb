package game

import "time"

// MoveRecord is one completed move in a session's history. The history is
// session-scoped: it feeds the one-way export dump and is never persisted
// with the snapshot or read back in.
type MoveRecord struct {
	Turn      int
	RollerID  string
	TargetID  string
	Dice      [2]int
	From      int
	To        int
	Timestamp time.Time
}
