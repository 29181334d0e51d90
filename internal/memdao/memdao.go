// Package memdao is an in-memory types.Dao for tests. It evaluates
// predicates directly against stored records and records every call, so
// callers can assert on what reached the Dao.
package memdao

import (
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// Call is one recorded Dao invocation.
type Call struct {
	Op     string
	Table  string
	Fields []string
	Values []types.Value
	Wheres []types.Where
}

// Dao implements types.Dao over maps. Tables must exist before use; Init
// creates the student and score tables with the same UNIQUE constraints as
// the SQLite schema. A column missing from a record is NULL and never
// conflicts.
type Dao struct {
	mu     sync.Mutex
	tables map[string]*table
	calls  []Call
	closed bool

	// Err, when set, is returned by every operation before it runs.
	Err error
}

type table struct {
	rows   []types.Record
	unique [][]string
}

var _ types.Dao = (*Dao)(nil)

// New returns an empty Dao with no tables.
func New() *Dao {
	return &Dao{tables: make(map[string]*table)}
}

// CreateTable adds an empty table if it does not exist. Each unique entry
// is a column set that no two rows may share.
func (d *Dao) CreateTable(name string, unique ...[]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.createTable(name, unique...)
}

// Calls returns a copy of the recorded calls.
func (d *Dao) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// Rows returns copies of the records in table.
func (d *Dao) Rows(name string) []types.Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.tables[name]
	if !ok {
		return nil
	}
	out := make([]types.Record, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, maps.Clone(row))
	}
	return out
}

// Init implements types.Dao.
func (d *Dao) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.begin(Call{Op: "init"}); err != nil {
		return err
	}
	d.createTable(types.StudentTable, []string{types.FieldID}, []string{types.FieldFirstNames, types.FieldLastName})
	d.createTable(types.ScoreTable, []string{types.FieldDate})
	return nil
}

// Select implements types.Dao.
func (d *Dao) Select(fields []string, table string, wheres []types.Where) ([]types.Record, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.begin(Call{Op: "select", Table: table, Fields: fields, Wheres: wheres}); err != nil {
		return nil, err
	}
	t, err := d.table(table)
	if err != nil {
		return nil, err
	}

	var out []types.Record
	for _, row := range t.rows {
		ok, err := matches(row, wheres)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rec := make(types.Record, len(fields))
		for _, f := range fields {
			v, present := row[f]
			if !present {
				return nil, fmt.Errorf("%w: column %s is NULL", types.ErrValue, f)
			}
			rec[f] = v
		}
		out = append(out, rec)
	}
	return out, nil
}

// Insert implements types.Dao.
func (d *Dao) Insert(fields []string, table string, values []types.Value, replace bool) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.begin(Call{Op: "insert", Table: table, Fields: fields, Values: values}); err != nil {
		return 0, err
	}
	if len(fields) == 0 || len(values) == 0 || len(values)%len(fields) != 0 {
		return 0, fmt.Errorf("%w: %d fields, %d args", types.ErrFieldArgMismatch, len(fields), len(values))
	}
	if err := bindable(values); err != nil {
		return 0, err
	}
	t, err := d.table(table)
	if err != nil {
		return 0, err
	}

	// The batch lands on a copy so a failed statement leaves no rows.
	rows := append([]types.Record(nil), t.rows...)
	var n int64
	for i := 0; i < len(values); i += len(fields) {
		rec := make(types.Record, len(fields))
		for j, f := range fields {
			rec[f] = values[i+j]
		}
		cols, hits := t.conflicts(rows, rec, -1)
		if len(hits) > 0 {
			if !replace {
				return 0, uniqueErr(table, cols)
			}
			rows = without(rows, hits)
		}
		rows = append(rows, rec)
		n++
	}
	t.rows = rows
	return n, nil
}

// Update implements types.Dao.
func (d *Dao) Update(fields []string, table string, values []types.Value, wheres []types.Where) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.begin(Call{Op: "update", Table: table, Fields: fields, Values: values, Wheres: wheres}); err != nil {
		return 0, err
	}
	if len(fields) == 0 || len(values) != len(fields) {
		return 0, fmt.Errorf("%w: %d fields, %d args", types.ErrFieldArgMismatch, len(fields), len(values))
	}
	if err := bindable(values); err != nil {
		return 0, err
	}
	t, err := d.table(table)
	if err != nil {
		return 0, err
	}

	rows := append([]types.Record(nil), t.rows...)
	var changed []int
	for i, row := range rows {
		ok, err := matches(row, wheres)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		next := maps.Clone(row)
		for j, f := range fields {
			next[f] = values[j]
		}
		rows[i] = next
		changed = append(changed, i)
	}
	for _, i := range changed {
		if cols, hits := t.conflicts(rows, rows[i], i); len(hits) > 0 {
			return 0, uniqueErr(table, cols)
		}
	}
	t.rows = rows
	return int64(len(changed)), nil
}

// Delete implements types.Dao.
func (d *Dao) Delete(table string, wheres []types.Where) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.begin(Call{Op: "delete", Table: table, Wheres: wheres}); err != nil {
		return 0, err
	}
	t, err := d.table(table)
	if err != nil {
		return 0, err
	}

	var kept []types.Record
	var n int64
	for _, row := range t.rows {
		ok, err := matches(row, wheres)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return n, nil
}

// Execute records stmt and does nothing else.
func (d *Dao) Execute(stmt string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.begin(Call{Op: "execute", Table: stmt})
}

// Close implements types.Dao.
func (d *Dao) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// begin records c and reports the injected or closed error. The caller
// must hold d.mu.
func (d *Dao) begin(c Call) error {
	d.calls = append(d.calls, c)
	if d.closed {
		return types.ErrClosed
	}
	return d.Err
}

func (d *Dao) table(name string) (*table, error) {
	t, ok := d.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: no such table: %s", types.ErrStore, name)
	}
	return t, nil
}

// createTable is CreateTable without the lock. An existing table keeps its
// rows and constraints.
func (d *Dao) createTable(name string, unique ...[]string) {
	if _, ok := d.tables[name]; !ok {
		d.tables[name] = &table{unique: unique}
	}
}

// conflicts returns the first unique column set rec violates and the
// indexes of every row in rows it collides with. Row skip is ignored.
func (t *table) conflicts(rows []types.Record, rec types.Record, skip int) ([]string, []int) {
	var first []string
	var hits []int
	for i, row := range rows {
		if i == skip {
			continue
		}
		for _, cols := range t.unique {
			if sameKey(row, rec, cols) {
				if first == nil {
					first = cols
				}
				hits = append(hits, i)
				break
			}
		}
	}
	return first, hits
}

// sameKey reports whether a and b hold equal non-NULL values in every
// column of cols.
func sameKey(a, b types.Record, cols []string) bool {
	for _, c := range cols {
		av, aok := a[c]
		bv, bok := b[c]
		if !aok || !bok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

// uniqueErr mirrors the SQLite constraint message.
func uniqueErr(table string, cols []string) error {
	qualified := make([]string, len(cols))
	for i, c := range cols {
		qualified[i] = table + "." + c
	}
	return fmt.Errorf("%w: UNIQUE constraint failed: %s", types.ErrStore, strings.Join(qualified, ", "))
}

// matches reports whether row satisfies every predicate.
func matches(row types.Record, wheres []types.Where) (bool, error) {
	for _, w := range wheres {
		if err := bindable([]types.Value{w.Value}); err != nil {
			return false, err
		}
		v, ok := row[w.Field]
		if !ok {
			return false, nil
		}
		ok, err := compare(v, w.Symbol, w.Value)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// compare evaluates stored <sym> want. Integers compare numerically and
// text compares bytewise, as SQLite does for these column types.
func compare(stored types.Value, sym types.Symbol, want types.Value) (bool, error) {
	switch sym {
	case types.EQ, types.IN:
		return stored.Equal(want), nil
	case types.LT:
		if stored.Kind() != want.Kind() {
			return false, nil
		}
		if stored.Kind() == types.KindInteger {
			a, _ := stored.AsInt32()
			b, _ := want.AsInt32()
			return a < b, nil
		}
		a, _ := stored.AsString()
		b, _ := want.AsString()
		return a < b, nil
	default:
		return false, fmt.Errorf("%w: unknown symbol %s", types.ErrValue, sym)
	}
}

// bindable rejects list values the way the SQLite binder does.
func bindable(values []types.Value) error {
	for i, v := range values {
		if k := v.Kind(); k == types.KindTextList || k == types.KindIntegerList {
			return fmt.Errorf("%w: Unable to convert to sql: %s at position %d", types.ErrValue, k, i+1)
		}
	}
	return nil
}

// without returns rows minus the indexes in drop, which are ascending.
func without(rows []types.Record, drop []int) []types.Record {
	kept := make([]types.Record, 0, len(rows)-len(drop))
	next := 0
	for i, row := range rows {
		if next < len(drop) && drop[next] == i {
			next++
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
