package types

// Symbol is the comparison operator of a Where predicate.
type Symbol int

// Supported comparators. There is no OR, NOT or grouping.
const (
	EQ Symbol = iota
	LT
	IN
)

// SQL returns the operator text for s.
func (s Symbol) SQL() string {
	switch s {
	case EQ:
		return "="
	case LT:
		return "<"
	case IN:
		return "IN"
	default:
		return "="
	}
}

func (s Symbol) String() string {
	switch s {
	case EQ:
		return "EQ"
	case LT:
		return "LT"
	case IN:
		return "IN"
	default:
		return "Symbol(?)"
	}
}

// Where is a single filter condition. A list of Where values is combined
// with AND in declaration order.
type Where struct {
	Field  string
	Symbol Symbol
	Value  Value
}

// NewWhere builds a predicate on field.
func NewWhere(field string, symbol Symbol, value Value) Where {
	return Where{Field: field, Symbol: symbol, Value: value}
}

// Equal reports whether w and other are the same predicate.
func (w Where) Equal(other Where) bool {
	return w.Field == other.Field && w.Symbol == other.Symbol && w.Value.Equal(other.Value)
}
