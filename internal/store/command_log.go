package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/konnektoren/internal/command"
)

// CommandLog is the append-only record of published commands. Commands are
// stored in their wire format.
type CommandLog struct {
	db  *sql.DB
	seq *sequence
}

// Append records cmd for sessionID at the next global sequence.
func (l *CommandLog) Append(ctx context.Context, sessionID string, cmd command.Command) error {
	payload, err := command.Marshal(cmd)
	if err != nil {
		return err
	}
	seq, err := l.seq.Next(ctx)
	if err != nil {
		return err
	}

	action := ""
	switch c := cmd.(type) {
	case command.GameCommand:
		action = string(c.Action)
	case command.ChallengeCommand:
		action = string(c.Action)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(commandsTable.Name).
		Columns("sequence", "session_id", "timestamp", "type", "action", "payload").
		Values(seq, sessionID, time.Now().UTC().Format(time.RFC3339Nano), string(cmd.Type()), action, string(payload)).
		Query()
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append command: %w", err)
	}
	return nil
}

// Entries returns recorded commands in sequence order.
func (l *CommandLog) Entries(ctx context.Context, opts QueryOpts) ([]Entry, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "session_id", "timestamp", "payload").
		From(entsql.Table(commandsTable.Name)).
		OrderBy("sequence")
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			timestamp string
			payload   string
		)
		if err := rows.Scan(&e.Sequence, &e.SessionID, &timestamp, &payload); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, fmt.Errorf("parse command timestamp: %w", err)
		}
		if e.Command, err = command.Parse([]byte(payload)); err != nil {
			return nil, fmt.Errorf("decode command %d: %w", e.Sequence, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}
	return entries, nil
}

// Sessions returns the distinct session ids in order of their first command.
func (l *CommandLog) Sessions(ctx context.Context) ([]string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("session_id").
		From(entsql.Table(commandsTable.Name)).
		GroupBy("session_id").
		OrderBy("MIN(sequence)").
		Query()

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LatestSession returns the session with the most recent command, or "" if
// the log is empty.
func (l *CommandLog) LatestSession(ctx context.Context) (string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("session_id").
		From(entsql.Table(commandsTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()
	var id string
	err := l.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest session: %w", err)
	}
	return id, nil
}

// MarkReset records that the game started over and returns the mark's
// sequence. Commands logged before it no longer describe the current game.
func (l *CommandLog) MarkReset(ctx context.Context) (int64, error) {
	seq, err := l.seq.Next(ctx)
	if err != nil {
		return 0, err
	}
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(resetsTable.Name).
		Columns("sequence", "timestamp").
		Values(seq, time.Now().UTC().Format(time.RFC3339Nano)).
		Query()
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("mark reset: %w", err)
	}
	return seq, nil
}

// LastReset returns the sequence of the latest reset mark, or 0 if the game
// was never reset. Pass it as QueryOpts.After to read the current game's
// commands.
func (l *CommandLog) LastReset(ctx context.Context) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Max("sequence")).
		From(entsql.Table(resetsTable.Name)).
		Query()
	var seq sql.NullInt64
	if err := l.db.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
		return 0, fmt.Errorf("query last reset: %w", err)
	}
	return seq.Int64, nil
}
