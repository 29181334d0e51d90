package types

// Table names.
const (
	StudentTable = "student"
	ScoreTable   = "score"
)

// Column names, in canonical order. Entity Args follow the same order, and
// the order must match the field list passed to Insert or Update because
// placeholders are positional.
const (
	FieldID          = "id"
	FieldFirstNames  = "first_names"
	FieldLastName    = "last_name"
	FieldDateOfBirth = "date_of_birth"
	FieldCorrect     = "correct"
	FieldIncorrect   = "incorrect"
	FieldDate        = "date"
)

// StudentFields returns the student column list.
func StudentFields() []string {
	return []string{FieldID, FieldFirstNames, FieldLastName, FieldDateOfBirth}
}

// ScoreFields returns the score column list.
func ScoreFields() []string {
	return []string{FieldID, FieldCorrect, FieldIncorrect, FieldDate}
}
