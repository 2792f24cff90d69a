package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	path  string
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "test.db")
	store, err := Open(s.path)
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreSuite) save(player string, score int) int64 {
	id, err := s.store.SaveRun(Run{Player: player, Score: score, Level: 1, GameOver: true})
	s.Require().NoError(err)
	return id
}

func (s *StoreSuite) TestOpenCreatesFile() {
	_, err := os.Stat(s.path)
	s.NoError(err)
}

func (s *StoreSuite) TestOpenCreatesNestedDirectories() {
	path := filepath.Join(s.T().TempDir(), "subdir", "deep", "test.db")

	store, err := Open(path)
	s.Require().NoError(err)
	defer store.Close()

	_, err = os.Stat(path)
	s.NoError(err)
}

func (s *StoreSuite) TestSaveAndRetrieveRun() {
	id, err := s.store.SaveRun(Run{
		Player:   "alice",
		Score:    4200,
		Lines:    23,
		Level:    3,
		Pieces:   61,
		Duration: 95*time.Second + 250*time.Millisecond,
		GameOver: true,
	})
	s.Require().NoError(err)
	s.Positive(id)

	run, err := s.store.RunByID(id)
	s.Require().NoError(err)
	s.Require().NotNil(run)
	s.Equal("alice", run.Player)
	s.Equal(4200, run.Score)
	s.Equal(23, run.Lines)
	s.Equal(3, run.Level)
	s.Equal(61, run.Pieces)
	s.Equal(95*time.Second+250*time.Millisecond, run.Duration)
	s.True(run.GameOver)
	s.False(run.CreatedAt.IsZero())
}

func (s *StoreSuite) TestRunByIDMissing() {
	run, err := s.store.RunByID(404)
	s.NoError(err)
	s.Nil(run)
}

func (s *StoreSuite) TestTopRunsOrderAndLimit() {
	for i := 1; i <= 5; i++ {
		s.save("p", i*100)
	}

	runs, err := s.store.TopRuns(3)
	s.Require().NoError(err)
	s.Require().Len(runs, 3)
	s.Equal(500, runs[0].Score)
	s.Equal(400, runs[1].Score)
	s.Equal(300, runs[2].Score)
}

func (s *StoreSuite) TestTopRunsTiesFavourEarlierRun() {
	first := s.save("a", 100)
	s.save("b", 100)

	runs, err := s.store.TopRuns(10)
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Equal(first, runs[0].ID)
}

func (s *StoreSuite) TestTopRunsDefaultLimit() {
	for i := 0; i < 15; i++ {
		s.save("p", i)
	}

	runs, err := s.store.TopRuns(0)
	s.Require().NoError(err)
	s.Len(runs, 10)
}

func (s *StoreSuite) TestRecentRuns() {
	s.save("p", 300)
	s.save("p", 100)
	last := s.save("p", 200)

	runs, err := s.store.RecentRuns(2)
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Equal(last, runs[0].ID)
	s.Equal(100, runs[1].Score)
}

func (s *StoreSuite) TestPlayerRuns() {
	s.save("alice", 100)
	s.save("bob", 900)
	s.save("alice", 300)

	runs, err := s.store.PlayerRuns("alice", 10)
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Equal(300, runs[0].Score)
	for _, r := range runs {
		s.Equal("alice", r.Player)
	}
}

func (s *StoreSuite) TestBestScore() {
	best, err := s.store.BestScore()
	s.Require().NoError(err)
	s.Zero(best)

	s.save("p", 100)
	s.save("p", 300)
	s.save("p", 200)

	best, err = s.store.BestScore()
	s.Require().NoError(err)
	s.Equal(300, best)
}

func (s *StoreSuite) TestClearRuns() {
	s.save("p", 100)
	s.save("p", 200)

	s.Require().NoError(s.store.ClearRuns())

	runs, err := s.store.TopRuns(10)
	s.Require().NoError(err)
	s.Empty(runs)
}

func (s *StoreSuite) TestSummary() {
	empty, err := s.store.Summary()
	s.Require().NoError(err)
	s.Zero(empty.Games)
	s.True(empty.LastPlayed.IsZero())

	_, err = s.store.SaveRun(Run{Score: 100, Lines: 4})
	s.Require().NoError(err)
	_, err = s.store.SaveRun(Run{Score: 300, Lines: 10})
	s.Require().NoError(err)

	sum, err := s.store.Summary()
	s.Require().NoError(err)
	s.Equal(2, sum.Games)
	s.Equal(300, sum.BestScore)
	s.InDelta(200.0, sum.AvgScore, 0.001)
	s.Equal(int64(14), sum.TotalLines)
	s.False(sum.LastPlayed.IsZero())
}

func (s *StoreSuite) TestAbandonedRunKeepsFlag() {
	id, err := s.store.SaveRun(Run{Score: 50, GameOver: false})
	s.Require().NoError(err)

	run, err := s.store.RunByID(id)
	s.Require().NoError(err)
	s.False(run.GameOver)
}
