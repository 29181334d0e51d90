// Package sqlite implements types.Dao over an SQLite database using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// memoryDSN opens a private in-memory database.
const memoryDSN = ":memory:"

// Backend implements types.Dao. It owns a single connection and holds mu
// for the full duration of every operation, so statements from concurrent
// callers never interleave.
type Backend struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
	log  *zap.SugaredLogger
}

var _ types.Dao = (*Backend)(nil)

// Open validates config, creates DataDir if needed and opens
// <DataDir>/<DBFile>. The schema is not touched; call Init.
func Open(config types.Config) (*Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return OpenFile(filepath.Join(dataDir, config.DBFileName()))
}

// OpenFile opens the database at path.
func OpenFile(path string) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeError(err)
	}
	// One connection: pragmas apply to every statement and an in-memory
	// database survives between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storeError(err)
	}

	b := &Backend{db: db, path: path, log: zap.S().Named("sqlite")}
	b.log.Debugw("opened database", "path", path)
	return b, nil
}

// OpenMemory opens a private in-memory database.
func OpenMemory() (*Backend, error) {
	return OpenFile(memoryDSN)
}

// Path returns the database location the backend was opened with.
func (b *Backend) Path() string {
	return b.path
}

// Init enables foreign keys and creates the student and score tables if
// they do not exist.
func (b *Backend) Init() error {
	b.log.Debug("initialising")
	for _, stmt := range initStatements {
		if err := b.Execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Select implements types.Dao.
func (b *Backend) Select(fields []string, table string, wheres []types.Where) ([]types.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return nil, types.ErrClosed
	}

	where, values := whereClause(wheres, 0)
	query := selectSQL(fields, table) + where
	args, err := bindArgs(values)
	if err != nil {
		return nil, err
	}
	b.log.Debugw("select", "sql", query, "args", fmt.Sprint(values))

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		raw := make([]any, len(fields))
		ptrs := make([]any, len(fields))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, storeError(err)
		}
		rec := make(types.Record, len(fields))
		for i, f := range fields {
			v, err := columnValue(f, raw[i])
			if err != nil {
				return nil, err
			}
			rec[f] = v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	b.log.Debugw("selected", "table", table, "rows", len(records))
	return records, nil
}

// Insert implements types.Dao.
func (b *Backend) Insert(fields []string, table string, values []types.Value, replace bool) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return 0, types.ErrClosed
	}

	query, err := insertSQL(fields, table, len(values), replace)
	if err != nil {
		return 0, err
	}
	return b.exec(query, values)
}

// Update implements types.Dao.
func (b *Backend) Update(fields []string, table string, values []types.Value, wheres []types.Where) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return 0, types.ErrClosed
	}

	query, err := updateSQL(fields, table, len(values))
	if err != nil {
		return 0, err
	}
	where, whereValues := whereClause(wheres, len(values))
	all := make([]types.Value, 0, len(values)+len(whereValues))
	all = append(all, values...)
	all = append(all, whereValues...)
	return b.exec(query+where, all)
}

// Delete implements types.Dao.
func (b *Backend) Delete(table string, wheres []types.Where) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return 0, types.ErrClosed
	}

	where, values := whereClause(wheres, 0)
	return b.exec(deleteSQL(table)+where, values)
}

// Execute implements types.Dao.
func (b *Backend) Execute(stmt string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.db == nil {
		return types.ErrClosed
	}

	b.log.Debugw("execute", "sql", stmt)
	if _, err := b.db.Exec(stmt); err != nil {
		b.log.Errorw("execute failed", "sql", stmt, "error", err)
		return storeError(err)
	}
	return nil
}

// Close releases the connection. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return storeError(err)
	}
	return nil
}

// exec binds values and runs a write statement. The caller must hold b.mu.
func (b *Backend) exec(query string, values []types.Value) (int64, error) {
	args, err := bindArgs(values)
	if err != nil {
		return 0, err
	}
	b.log.Debugw("exec", "sql", query, "args", fmt.Sprint(values))

	res, err := b.db.Exec(query, args...)
	if err != nil {
		b.log.Errorw("exec failed", "sql", query, "error", err)
		return 0, storeError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeError(err)
	}
	return n, nil
}

// storeError wraps a driver error so that only the diagnostic text crosses
// the Dao boundary.
func storeError(err error) error {
	return fmt.Errorf("%w: %s", types.ErrStore, err.Error())
}
