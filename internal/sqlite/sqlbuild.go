package sqlite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// Statement text is built from field lists and predicates only. Placeholders
// are numbered from 1, left to right, across the whole statement.

// whereClause renders wheres as " WHERE f1=?n AND f2<?n+1 ..." with
// numbering starting at start+1, and returns the values to bind in the same
// order. No predicates renders the empty string.
func whereClause(wheres []types.Where, start int) (string, []types.Value) {
	if len(wheres) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(wheres))
	args := make([]types.Value, 0, len(wheres))
	n := start
	for _, w := range wheres {
		n++
		args = append(args, w.Value)
		switch w.Symbol {
		case types.IN:
			conds = append(conds, w.Field+" IN (?"+strconv.Itoa(n)+")")
		default:
			conds = append(conds, w.Field+w.Symbol.SQL()+"?"+strconv.Itoa(n))
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func selectSQL(fields []string, table string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ","), table)
}

// insertSQL renders one value tuple when nargs equals the field count and
// nargs/len(fields) tuples when it is a multiple. Any other count is
// ErrFieldArgMismatch.
func insertSQL(fields []string, table string, nargs int, replace bool) (string, error) {
	nfields := len(fields)
	if nfields == 0 || nargs == 0 || nargs%nfields != 0 {
		return "", fmt.Errorf("%w: number of args doesn't work with number of records (%d fields, %d args)",
			types.ErrFieldArgMismatch, nfields, nargs)
	}

	var b strings.Builder
	b.WriteString("INSERT ")
	if replace {
		b.WriteString("OR REPLACE ")
	}
	fmt.Fprintf(&b, "INTO %s (%s) VALUES ", table, strings.Join(fields, ","))

	n := 0
	for row := 0; row < nargs/nfields; row++ {
		if row > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for col := 0; col < nfields; col++ {
			if col > 0 {
				b.WriteByte(',')
			}
			n++
			b.WriteString("$" + strconv.Itoa(n))
		}
		b.WriteByte(')')
	}
	return b.String(), nil
}

// updateSQL renders "UPDATE t SET f1=?1,f2=?2". Each field takes exactly one
// argument.
func updateSQL(fields []string, table string, nargs int) (string, error) {
	if len(fields) == 0 || nargs != len(fields) {
		return "", fmt.Errorf("%w: %d fields, %d args", types.ErrFieldArgMismatch, len(fields), nargs)
	}
	sets := make([]string, nargs)
	for i := 0; i < nargs; i++ {
		sets[i] = fields[i] + "=?" + strconv.Itoa(i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(sets, ",")), nil
}

func deleteSQL(table string) string {
	return "DELETE FROM " + table
}
