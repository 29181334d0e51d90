package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudent(t *testing.T) {
	s, err := NewStudent(" first ", "last", "1990-01-23")
	require.NoError(t, err)
	assert.Equal(t, "first", s.FirstNames)
	assert.Equal(t, "last", s.LastName)
	assert.Equal(t, time.Date(1990, 1, 23, 0, 0, 0, 0, time.UTC), s.DateOfBirth)
	assert.NotEmpty(t, s.ID)

	other, err := NewStudent("first", "last", "1990-01-23")
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, other.ID)
}

func TestNewStudent_Invalid(t *testing.T) {
	_, err := NewStudent("", "last", "1990-01-23")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewStudent("first", "  ", "1990-01-23")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewStudent("first", "last", "23/01/1990")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestStudentFromRecord(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		want    *Student
		wantErr string
	}{
		{
			name: "complete record",
			rec: Record{
				FieldID:          Text("st1"),
				FieldFirstNames:  Text("first"),
				FieldLastName:    Text("last"),
				FieldDateOfBirth: Text("1990-01-23"),
			},
			want: &Student{
				ID:          "st1",
				FirstNames:  "first",
				LastName:    "last",
				DateOfBirth: time.Date(1990, 1, 23, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "missing id",
			rec: Record{
				FieldFirstNames: Text("first"),
				FieldLastName:   Text("last"),
			},
			wantErr: "Missing id",
		},
		{
			name: "missing date of birth",
			rec: Record{
				FieldID:         Text("st1"),
				FieldFirstNames: Text("first"),
				FieldLastName:   Text("last"),
			},
			wantErr: "Missing date_of_birth",
		},
		{
			name: "integer where text expected",
			rec: Record{
				FieldID:          Integer(1),
				FieldFirstNames:  Text("first"),
				FieldLastName:    Text("last"),
				FieldDateOfBirth: Text("1990-01-23"),
			},
			wantErr: "not a String",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StudentFromRecord(tt.rec)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrValue)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStudentArgsMatchFields(t *testing.T) {
	s := &Student{ID: "st1", FirstNames: "Ben", LastName: "Jones", DateOfBirth: time.Date(1990, 1, 23, 0, 0, 0, 0, time.UTC)}
	args := s.Args()
	require.Len(t, args, len(StudentFields()))

	rec := Record{}
	for i, f := range StudentFields() {
		rec[f] = args[i]
	}
	back, err := StudentFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestStudentsFromRecords_AbortsOnFirstFailure(t *testing.T) {
	good := Record{
		FieldID:          Text("st1"),
		FieldFirstNames:  Text("Ben"),
		FieldLastName:    Text("Jones"),
		FieldDateOfBirth: Text("1990-01-23"),
	}
	bad := Record{FieldID: Text("st2")}

	got, err := StudentsFromRecords([]Record{good, bad, good})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrValue)
	assert.Contains(t, err.Error(), "Missing first_names")
}

func TestFlattenStudents(t *testing.T) {
	dob := time.Date(1990, 1, 23, 0, 0, 0, 0, time.UTC)
	students := []*Student{
		{ID: "st1", FirstNames: "Ben", LastName: "Jones", DateOfBirth: dob},
		{ID: "st2", FirstNames: "Gemma", LastName: "Forbes", DateOfBirth: dob.AddDate(-2, 0, 0)},
	}
	want := []Value{
		Text("st1"), Text("Ben"), Text("Jones"), Text("1990-01-23"),
		Text("st2"), Text("Gemma"), Text("Forbes"), Text("1988-01-23"),
	}
	assert.Equal(t, want, FlattenStudents(students))
}
