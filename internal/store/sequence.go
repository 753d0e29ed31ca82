package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceRow is the id of the only row in the global_sequence table.
const sequenceRow = 1

// sequence hands out one increasing number shared by snapshots and logged
// commands, so rows of both tables can be ordered against each other: the
// commands issued after a snapshot are those with a larger sequence.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequence seeds the counter row unless it exists. The table itself is
// created by the migration.
func newSequence(ctx context.Context, db *sql.DB) (*sequence, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sequenceTable.Name).
		Columns("id", "next_val").
		Values(sequenceRow, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequence{db: db}, nil
}

// Next returns the current value and advances the counter in one statement.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = ? RETURNING next_val - 1`,
		sequenceRow,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
