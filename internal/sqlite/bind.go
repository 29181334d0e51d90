package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// bindArgs converts values to driver arguments. Only Text and Integer are
// bindable; a list value fails here, before the statement reaches SQLite.
func bindArgs(values []types.Value) ([]any, error) {
	args := make([]any, len(values))
	for i, v := range values {
		switch v.Kind() {
		case types.KindInteger:
			n, _ := v.AsInt32()
			args[i] = int64(n)
		case types.KindText:
			s, _ := v.AsString()
			args[i] = s
		case types.KindTextList, types.KindIntegerList:
			return nil, fmt.Errorf("%w: Unable to convert to sql: %s at position %d", types.ErrValue, v.Kind(), i+1)
		default:
			return nil, fmt.Errorf("%w: unknown value kind %s", types.ErrValue, v.Kind())
		}
	}
	return args, nil
}

// columnValue converts a scanned column. Integers are narrowed to 32 bits
// without a range check. NULL, REAL and BLOB columns are not supported.
func columnValue(field string, raw any) (types.Value, error) {
	switch c := raw.(type) {
	case int64:
		return types.Integer(int32(c)), nil
	case string:
		return types.Text(c), nil
	case nil:
		return types.Value{}, fmt.Errorf("%w: column %s is NULL", types.ErrValue, field)
	case float64:
		return types.Value{}, fmt.Errorf("%w: column %s holds a REAL, which is not supported", types.ErrValue, field)
	case []byte:
		return types.Value{}, fmt.Errorf("%w: column %s holds a BLOB, which is not supported", types.ErrValue, field)
	default:
		return types.Value{}, fmt.Errorf("%w: column %s has unsupported type %T", types.ErrValue, field, raw)
	}
}
