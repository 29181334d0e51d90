package types

// Dao is the backend-agnostic data access capability. Callers describe
// statements with field lists, a table name, argument values and predicates;
// only Execute accepts raw SQL and it is reserved for schema and pragma
// bootstrap. Implementations serialize all operations over one connection.
type Dao interface {
	// Init enables foreign keys and creates the schema if it does not exist.
	// It is safe to call more than once.
	Init() error

	// Select returns one Record per matching row, keyed by every requested field.
	Select(fields []string, table string, wheres []Where) ([]Record, error)

	// Insert writes len(args)/len(fields) rows in one statement. When replace
	// is set, a row that conflicts on a uniqueness constraint is replaced.
	// A field/argument count mismatch returns ErrFieldArgMismatch without
	// touching the backend.
	Insert(fields []string, table string, args []Value, replace bool) (int64, error)

	// Update sets fields to args on rows matching wheres.
	Update(fields []string, table string, args []Value, wheres []Where) (int64, error)

	// Delete removes rows matching wheres. No predicates deletes every row.
	Delete(table string, wheres []Where) (int64, error)

	// Execute runs a statement without bound parameters.
	Execute(sql string) error

	// Close releases the connection.
	Close() error
}
