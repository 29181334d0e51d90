package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Student is a person whose scores are tracked. ID is generated when the
// entity is constructed, never by the store.
type Student struct {
	ID          string    `json:"id"`
	FirstNames  string    `json:"first_names"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

// NewStudent validates the fields and assigns a fresh ID.
// Returns ErrInvalidName for blank names and ErrBadDate for a malformed dob.
func NewStudent(firstNames, lastName, dob string) (*Student, error) {
	firstNames = strings.TrimSpace(firstNames)
	lastName = strings.TrimSpace(lastName)
	if firstNames == "" || lastName == "" {
		return nil, ErrInvalidName
	}
	d, err := ParseDate(strings.TrimSpace(dob))
	if err != nil {
		return nil, err
	}
	return &Student{
		ID:          newID(),
		FirstNames:  firstNames,
		LastName:    lastName,
		DateOfBirth: d,
	}, nil
}

// FullName joins first and last names with a space.
func (s *Student) FullName() string {
	return s.FirstNames + " " + s.LastName
}

// Args returns the write arguments in StudentFields order.
func (s *Student) Args() []Value {
	return []Value{
		Text(s.ID),
		Text(s.FirstNames),
		Text(s.LastName),
		DateValue(s.DateOfBirth),
	}
}

// StudentFromRecord converts a selected row. The first missing or
// mistyped field is returned as the error.
func StudentFromRecord(rec Record) (*Student, error) {
	id, err := rec.Text(FieldID)
	if err != nil {
		return nil, err
	}
	first, err := rec.Text(FieldFirstNames)
	if err != nil {
		return nil, err
	}
	last, err := rec.Text(FieldLastName)
	if err != nil {
		return nil, err
	}
	dob, err := rec.Date(FieldDateOfBirth)
	if err != nil {
		return nil, err
	}
	return &Student{ID: id, FirstNames: first, LastName: last, DateOfBirth: dob}, nil
}

// StudentsFromRecords converts every record or none.
func StudentsFromRecords(recs []Record) ([]*Student, error) {
	out := make([]*Student, 0, len(recs))
	for _, rec := range recs {
		s, err := StudentFromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// FlattenStudents concatenates each student's Args in input order for a
// batch insert.
func FlattenStudents(students []*Student) []Value {
	args := make([]Value, 0, len(students)*len(StudentFields()))
	for _, s := range students {
		args = append(args, s.Args()...)
	}
	return args
}

// newID returns a UUID v7, falling back to v4.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
