package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/konnektoren/internal/controller"
	"github.com/abhisek/konnektoren/internal/game"
)

// SnapshotRepo stores game state snapshots. It implements
// controller.Persistence: every save writes a new snapshot and prunes old
// ones.
type SnapshotRepo struct {
	db   *sql.DB
	seq  *sequence
	keep int

	// SessionID is stamped on snapshots written through SaveGameState.
	SessionID string
}

var _ controller.Persistence = (*SnapshotRepo)(nil)

// Save stores a new snapshot.
func (r *SnapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.State)
	if err != nil {
		return fmt.Errorf("marshal snapshot state: %w", err)
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(snapshotsTable.Name).
		Columns("sequence", "session_id", "timestamp", "data").
		Values(snap.Sequence, snap.SessionID, ts.UTC().Format(time.RFC3339Nano), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot, or nil if none exist.
func (r *SnapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "session_id", "timestamp", "data").
		From(entsql.Table(snapshotsTable.Name)).
		OrderBy(entsql.Desc("sequence"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap      Snapshot
		timestamp string
		data      string
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&snap.ID, &snap.Sequence, &snap.SessionID, &timestamp, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	if snap.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
		return nil, fmt.Errorf("parse snapshot timestamp: %w", err)
	}
	var state game.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot state: %w", err)
	}
	snap.State = &state
	return &snap, nil
}

// Prune deletes all but the keep most recent snapshots.
func (r *SnapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence threshold: the keep-th most recent snapshot.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(snapshotsTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(snapshotsTable.Name).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(snapshotsTable.Name)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

// SaveGameState writes s as a new snapshot at the next global sequence.
func (r *SnapshotRepo) SaveGameState(ctx context.Context, s *game.State) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if err := r.Save(ctx, &Snapshot{Sequence: seq, SessionID: r.SessionID, State: s}); err != nil {
		return err
	}
	if r.keep > 0 {
		return r.Prune(ctx, r.keep)
	}
	return nil
}

// LoadGameState returns the state of the latest snapshot.
func (r *SnapshotRepo) LoadGameState(ctx context.Context) (*game.State, error) {
	snap, err := r.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil || snap.State == nil || snap.State.Game == nil {
		return nil, controller.ErrNoSavedState
	}
	return snap.State, nil
}
