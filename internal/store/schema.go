package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// snapshotsColumns holds the columns for the "snapshots" table.
	snapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
	}
	// snapshotsTable holds the schema information for the "snapshots" table.
	snapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    snapshotsColumns,
		PrimaryKey: []*schema.Column{snapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshot_sequence", Columns: []*schema.Column{snapshotsColumns[1]}},
		},
	}

	// commandsColumns holds the columns for the "commands" table.
	commandsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "session_id", Type: field.TypeString},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "type", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "payload", Type: field.TypeString, Size: 2147483647},
	}
	// commandsTable holds the schema information for the "commands" table.
	commandsTable = &schema.Table{
		Name:       "commands",
		Columns:    commandsColumns,
		PrimaryKey: []*schema.Column{commandsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "command_session_id", Columns: []*schema.Column{commandsColumns[2]}},
		},
	}

	// sequenceColumns holds the columns for the single-row "global_sequence"
	// table.
	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// sequenceTable holds the schema information for the "global_sequence" table.
	sequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    sequenceColumns,
		PrimaryKey: []*schema.Column{sequenceColumns[0]},
	}

	// resetsColumns holds the columns for the "command_resets" table.
	resetsColumns = []*schema.Column{
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeString},
	}
	// resetsTable marks the sequence at which the game was reset.
	resetsTable = &schema.Table{
		Name:       "command_resets",
		Columns:    resetsColumns,
		PrimaryKey: []*schema.Column{resetsColumns[0]},
	}

	tables = []*schema.Table{snapshotsTable, commandsTable, sequenceTable, resetsTable}
)
