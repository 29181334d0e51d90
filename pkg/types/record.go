package types

import (
	"fmt"
	"time"
)

// Record is one physical row keyed by field name.
type Record map[string]Value

// Get returns the value for field or ErrValue "Missing <field>".
func (r Record) Get(field string) (Value, error) {
	v, ok := r[field]
	if !ok {
		return Value{}, fmt.Errorf("%w: Missing %s", ErrValue, field)
	}
	return v, nil
}

// Text returns field narrowed to a string.
func (r Record) Text(field string) (string, error) {
	v, err := r.Get(field)
	if err != nil {
		return "", err
	}
	return v.AsString()
}

// Int32 returns field narrowed to an int32.
func (r Record) Int32(field string) (int32, error) {
	v, err := r.Get(field)
	if err != nil {
		return 0, err
	}
	return v.AsInt32()
}

// Date returns field parsed as a YYYY-MM-DD date.
func (r Record) Date(field string) (time.Time, error) {
	v, err := r.Get(field)
	if err != nil {
		return time.Time{}, err
	}
	return v.AsDate()
}

// Equal reports whether r and other hold the same keys and values.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
