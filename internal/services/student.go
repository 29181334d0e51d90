// Package services provides entity-level operations over a types.Dao.
// Services translate between Student/Score values and the Dao's
// Record/Value representation and apply the lookup rules of the domain.
package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// StudentService reads and writes students.
type StudentService struct {
	dao types.Dao
	log *zap.SugaredLogger
}

// NewStudentService returns a StudentService over dao.
func NewStudentService(dao types.Dao) *StudentService {
	return &StudentService{dao: dao, log: zap.S().Named("student_service")}
}

// Init creates the schema.
func (s *StudentService) Init() error {
	s.log.Debug("initialising")
	return s.dao.Init()
}

// All returns every student in store order.
func (s *StudentService) All() ([]*types.Student, error) {
	s.log.Debug("getting all students")
	return s.selectStudents(nil)
}

// Get returns the student with id. Zero or several matches return
// ErrNoStudent.
func (s *StudentService) Get(id string) (*types.Student, error) {
	s.log.Debugw("getting student", "id", id)
	students, err := s.selectStudents([]types.Where{
		types.NewWhere(types.FieldID, types.EQ, types.Text(id)),
	})
	if err != nil {
		return nil, err
	}
	if len(students) != 1 {
		return nil, fmt.Errorf("%w: id %s", types.ErrNoStudent, id)
	}
	return students[0], nil
}

// IDForName returns the id of the student named first last. Zero or
// several matches return ErrNoStudent.
func (s *StudentService) IDForName(first, last string) (string, error) {
	s.log.Debugw("getting id for name", "first_names", first, "last_name", last)
	recs, err := s.dao.Select([]string{types.FieldID}, types.StudentTable, []types.Where{
		types.NewWhere(types.FieldFirstNames, types.EQ, types.Text(first)),
		types.NewWhere(types.FieldLastName, types.EQ, types.Text(last)),
	})
	if err != nil {
		return "", err
	}
	if len(recs) != 1 {
		return "", fmt.Errorf("%w: %s %s", types.ErrNoStudent, first, last)
	}
	return recs[0].Text(types.FieldID)
}

// Add inserts one student.
func (s *StudentService) Add(student *types.Student) error {
	s.log.Debugw("adding student", "id", student.ID, "name", student.FullName())
	_, err := s.dao.Insert(types.StudentFields(), types.StudentTable, student.Args(), false)
	return err
}

// AddMany inserts students in one statement and returns the number added.
// An empty slice never reaches the Dao.
func (s *StudentService) AddMany(students []*types.Student) (int64, error) {
	if len(students) == 0 {
		return 0, nil
	}
	s.log.Debugw("adding students", "count", len(students))
	return s.dao.Insert(types.StudentFields(), types.StudentTable, types.FlattenStudents(students), false)
}

// Update overwrites the student with student.ID and returns the rows
// changed.
func (s *StudentService) Update(student *types.Student) (int64, error) {
	s.log.Debugw("updating student", "id", student.ID)
	return s.dao.Update(types.StudentFields(), types.StudentTable, student.Args(), []types.Where{
		types.NewWhere(types.FieldID, types.EQ, types.Text(student.ID)),
	})
}

// Delete removes the student's scores and then the student, returning the
// number of student rows removed. The two statements are not atomic: if
// the second fails the scores are already gone.
func (s *StudentService) Delete(id string) (int64, error) {
	s.log.Debugw("deleting student", "id", id)
	byID := []types.Where{types.NewWhere(types.FieldID, types.EQ, types.Text(id))}
	scores, err := s.dao.Delete(types.ScoreTable, byID)
	if err != nil {
		return 0, err
	}
	deleted, err := s.dao.Delete(types.StudentTable, byID)
	if err != nil {
		s.log.Errorw("scores deleted but student delete failed", "id", id, "scores", scores, "error", err)
		return 0, err
	}
	s.log.Debugw("deleted student", "id", id, "students", deleted, "scores", scores)
	return deleted, nil
}

func (s *StudentService) selectStudents(wheres []types.Where) ([]*types.Student, error) {
	recs, err := s.dao.Select(types.StudentFields(), types.StudentTable, wheres)
	if err != nil {
		return nil, err
	}
	return types.StudentsFromRecords(recs)
}
