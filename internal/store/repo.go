package store

import (
	"time"

	"github.com/abhisek/konnektoren/internal/command"
	"github.com/abhisek/konnektoren/internal/game"
)

// QueryOpts configures command log queries with filtering and pagination.
type QueryOpts struct {
	SessionID string // only this session ("" = all)
	Limit     int    // max results (0 = unlimited)
	After     int64  // sequence > After
	Before    int64  // sequence < Before (0 = no bound)
}

// Snapshot represents a point-in-time capture of the game state.
type Snapshot struct {
	ID        int
	Sequence  int64
	SessionID string
	Timestamp time.Time
	State     *game.State
}

// Entry is one recorded command.
type Entry struct {
	Sequence  int64
	SessionID string
	Timestamp time.Time
	Command   command.Command
}

// Commands returns the commands of entries in order.
func Commands(entries []Entry) []command.Command {
	out := make([]command.Command, len(entries))
	for i, e := range entries {
		out[i] = e.Command
	}
	return out
}
