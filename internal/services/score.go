package services

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/scorg/pkg/types"
)

// ScoreService reads and writes scores.
type ScoreService struct {
	dao types.Dao
	log *zap.SugaredLogger
}

// NewScoreService returns a ScoreService over dao.
func NewScoreService(dao types.Dao) *ScoreService {
	return &ScoreService{dao: dao, log: zap.S().Named("score_service")}
}

// Add inserts one score.
func (s *ScoreService) Add(score *types.Score) error {
	s.log.Debugw("adding score", "id", score.ID, "date", types.FormatDate(score.Date))
	_, err := s.dao.Insert(types.ScoreFields(), types.ScoreTable, score.Args(), false)
	return err
}

// AddMany inserts scores in one statement and returns the number added.
// An empty slice never reaches the Dao.
func (s *ScoreService) AddMany(scores []*types.Score) (int64, error) {
	if len(scores) == 0 {
		return 0, nil
	}
	s.log.Debugw("adding scores", "count", len(scores))
	return s.dao.Insert(types.ScoreFields(), types.ScoreTable, types.FlattenScores(scores), false)
}

// Put inserts scores, replacing any stored score on the same date, and
// returns the number written. An empty slice never reaches the Dao.
func (s *ScoreService) Put(scores []*types.Score) (int64, error) {
	if len(scores) == 0 {
		return 0, nil
	}
	s.log.Debugw("putting scores", "count", len(scores))
	return s.dao.Insert(types.ScoreFields(), types.ScoreTable, types.FlattenScores(scores), true)
}

// All returns every score, oldest first.
func (s *ScoreService) All() ([]*types.Score, error) {
	return s.selectScores(nil)
}

// ForStudent returns the student's scores, oldest first.
func (s *ScoreService) ForStudent(id string) ([]*types.Score, error) {
	return s.selectScores([]types.Where{
		types.NewWhere(types.FieldID, types.EQ, types.Text(id)),
	})
}

// Before returns the student's scores dated strictly before date, oldest
// first.
func (s *ScoreService) Before(id string, date time.Time) ([]*types.Score, error) {
	return s.selectScores([]types.Where{
		types.NewWhere(types.FieldID, types.EQ, types.Text(id)),
		types.NewWhere(types.FieldDate, types.LT, types.DateValue(date)),
	})
}

// ForStudents returns the scores of each id, keyed by id. Ids without
// scores map to an empty slice.
func (s *ScoreService) ForStudents(ids []string) (map[string][]*types.Score, error) {
	out := make(map[string][]*types.Score, len(ids))
	for _, id := range ids {
		scores, err := s.ForStudent(id)
		if err != nil {
			return nil, err
		}
		out[id] = scores
	}
	return out, nil
}

// Latest returns the student's most recent score, or ErrNoScores.
func (s *ScoreService) Latest(id string) (*types.Score, error) {
	scores, err := s.ForStudent(id)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: student %s", types.ErrNoScores, id)
	}
	return scores[len(scores)-1], nil
}

// Delete removes the student's score on date and returns the rows removed.
func (s *ScoreService) Delete(id string, date time.Time) (int64, error) {
	s.log.Debugw("deleting score", "id", id, "date", types.FormatDate(date))
	return s.dao.Delete(types.ScoreTable, []types.Where{
		types.NewWhere(types.FieldID, types.EQ, types.Text(id)),
		types.NewWhere(types.FieldDate, types.EQ, types.DateValue(date)),
	})
}

func (s *ScoreService) selectScores(wheres []types.Where) ([]*types.Score, error) {
	recs, err := s.dao.Select(types.ScoreFields(), types.ScoreTable, wheres)
	if err != nil {
		return nil, err
	}
	scores, err := types.ScoresFromRecords(recs)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(scores, func(a, b *types.Score) int {
		return a.Date.Compare(b.Date)
	})
	s.log.Debugw("selected scores", "count", len(scores))
	return scores, nil
}
