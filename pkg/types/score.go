package types

import (
	"strings"
	"time"
)

// Score is one timed-test result for a student on a date. ID refers to
// Student.ID.
type Score struct {
	ID        string    `json:"id"`
	Correct   int32     `json:"correct"`
	Incorrect int32     `json:"incorrect"`
	Date      time.Time `json:"date"`
}

// NewScore parses date and builds a Score for the student id.
func NewScore(id string, correct, incorrect int32, date string) (*Score, error) {
	d, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		return nil, err
	}
	return &Score{ID: id, Correct: correct, Incorrect: incorrect, Date: d}, nil
}

// Args returns the write arguments in ScoreFields order.
func (s *Score) Args() []Value {
	return []Value{
		Text(s.ID),
		Integer(s.Correct),
		Integer(s.Incorrect),
		DateValue(s.Date),
	}
}

// ScoreFromRecord converts a selected row.
func ScoreFromRecord(rec Record) (*Score, error) {
	id, err := rec.Text(FieldID)
	if err != nil {
		return nil, err
	}
	correct, err := rec.Int32(FieldCorrect)
	if err != nil {
		return nil, err
	}
	incorrect, err := rec.Int32(FieldIncorrect)
	if err != nil {
		return nil, err
	}
	date, err := rec.Date(FieldDate)
	if err != nil {
		return nil, err
	}
	return &Score{ID: id, Correct: correct, Incorrect: incorrect, Date: date}, nil
}

// ScoresFromRecords converts every record or none.
func ScoresFromRecords(recs []Record) ([]*Score, error) {
	out := make([]*Score, 0, len(recs))
	for _, rec := range recs {
		s, err := ScoreFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// FlattenScores concatenates each score's Args in input order.
func FlattenScores(scores []*Score) []Value {
	args := make([]Value, 0, len(scores)*len(ScoreFields()))
	for _, s := range scores {
		args = append(args, s.Args()...)
	}
	return args
}
