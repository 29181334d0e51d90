package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/scorg/internal/sqlite"
	"github.com/mesh-intelligence/scorg/pkg/types"
)

// newSQLiteServices wires both services to a fresh in-memory database.
func newSQLiteServices(t *testing.T) (*StudentService, *ScoreService) {
	t.Helper()
	dao, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { dao.Close() })

	students := NewStudentService(dao)
	require.NoError(t, students.Init())
	return students, NewScoreService(dao)
}

func TestSQLite_DeleteStudentRemovesOnlyTheirScores(t *testing.T) {
	students, scores := newSQLiteServices(t)
	ben := mustStudent(t, "Ben", "Jones", "1990-01-23")
	gemma := mustStudent(t, "Gemma", "Forbes", "1988-09-30")
	_, err := students.AddMany([]*types.Student{ben, gemma})
	require.NoError(t, err)

	_, err = scores.AddMany([]*types.Score{
		mustScore(t, ben.ID, 10, 1, "2021-01-01"),
		mustScore(t, ben.ID, 11, 1, "2021-01-02"),
		mustScore(t, gemma.ID, 12, 2, "2021-01-03"),
	})
	require.NoError(t, err)

	n, err := students.Delete(ben.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = students.Get(ben.ID)
	assert.ErrorIs(t, err, types.ErrNoStudent)
	left, err := scores.ForStudent(ben.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := scores.ForStudent(gemma.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestSQLite_DeleteMissingStudent(t *testing.T) {
	students, _ := newSQLiteServices(t)

	n, err := students.Delete("missing")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_DuplicateNameRejected(t *testing.T) {
	students, _ := newSQLiteServices(t)
	require.NoError(t, students.Add(mustStudent(t, "Ben", "Jones", "1990-01-23")))

	err := students.Add(mustStudent(t, "Ben", "Jones", "1991-01-01"))
	assert.ErrorIs(t, err, types.ErrStore)
}

func TestSQLite_ScoresRequireStudent(t *testing.T) {
	_, scores := newSQLiteServices(t)

	err := scores.Add(mustScore(t, "nobody", 1, 1, "2021-01-01"))
	assert.ErrorIs(t, err, types.ErrStore)
}

func TestSQLite_ScoresRoundTrip(t *testing.T) {
	students, scores := newSQLiteServices(t)
	ben := mustStudent(t, "Ben", "Jones", "1990-01-23")
	require.NoError(t, students.Add(ben))
	want := []*types.Score{
		mustScore(t, ben.ID, 10, 1, "2021-01-01"),
		mustScore(t, ben.ID, 30, 0, "2021-02-01"),
	}
	_, err := scores.AddMany([]*types.Score{want[1], want[0]})
	require.NoError(t, err)

	got, err := scores.ForStudent(ben.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	latest, err := scores.Latest(ben.ID)
	require.NoError(t, err)
	assert.Equal(t, want[1], latest)

	cutoff, err := types.ParseDate("2021-02-01")
	require.NoError(t, err)
	before, err := scores.Before(ben.ID, cutoff)
	require.NoError(t, err)
	assert.Equal(t, want[:1], before)
}

func TestSQLite_PutReplacesScoreOnSameDate(t *testing.T) {
	students, scores := newSQLiteServices(t)
	ben := mustStudent(t, "Ben", "Jones", "1990-01-23")
	require.NoError(t, students.Add(ben))
	require.NoError(t, scores.Add(mustScore(t, ben.ID, 10, 1, "2021-01-01")))

	err := scores.Add(mustScore(t, ben.ID, 20, 2, "2021-01-01"))
	require.ErrorIs(t, err, types.ErrStore)

	n, err := scores.Put([]*types.Score{mustScore(t, ben.ID, 20, 2, "2021-01-01")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := scores.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int32(20), all[0].Correct)
}
