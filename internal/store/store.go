package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fastrand"
	"golang.org/x/crypto/bcrypt"

	"github.com/trivio-games/trivio/internal/cache"
	"github.com/trivio-games/trivio/internal/database"
	questionDb "github.com/trivio-games/trivio/internal/database/question/database"
	questionModel "github.com/trivio-games/trivio/internal/database/question/model"
	statDb "github.com/trivio-games/trivio/internal/database/stat/database"
	statModel "github.com/trivio-games/trivio/internal/database/stat/model"
	userDb "github.com/trivio-games/trivio/internal/database/user/database"
	userModel "github.com/trivio-games/trivio/internal/database/user/model"
	"github.com/trivio-games/trivio/internal/trivia"
)

var _ trivia.Store = (*Store)(nil)

func New(db *database.DB, userCache, statCache cache.Cache) (*Store, error) {
	s := &Store{
		users:     userDb.New(db, userCache),
		questions: questionDb.New(db),
		stats:     statDb.New(db, statCache),
	}

	if err := s.questions.Seed(seedQuestions); err != nil {
		return nil, fmt.Errorf("seed questions: %w", err)
	}

	return s, nil
}

// Store glues the game core to the bolt-backed entity databases.
type Store struct {
	users     *userDb.DB
	questions *questionDb.DB
	stats     *statDb.DB
}

func (s *Store) UserExists(username string) (bool, error) {
	ok, err := s.users.Exists(username)
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return ok, nil
}

func (s *Store) CredentialsMatch(username, password string) (bool, error) {
	ok, err := s.users.Match(username, password)
	if err != nil {
		return false, fmt.Errorf("match: %w", err)
	}

	return ok, nil
}

func (s *Store) AddUser(username, password, email string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	u := userModel.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Store(u); err != nil {
		if errors.Is(err, userDb.ExistsErr) {
			return false, nil
		}
		return false, fmt.Errorf("store: %w", err)
	}

	return true, nil
}

// Questions draws count random bank entries and shuffles each answer set
// into the playable form.
func (s *Store) Questions(count int) ([]trivia.Question, error) {
	entries, err := s.questions.Fetch(count)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	questions := make([]trivia.Question, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, playable(e))
	}

	return questions, nil
}

func playable(e questionModel.Question) trivia.Question {
	answers := make([]string, 0, len(e.Wrong)+1)
	answers = append(answers, e.Correct)
	answers = append(answers, e.Wrong...)

	correct := 0
	for i := len(answers) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		answers[i], answers[j] = answers[j], answers[i]
		switch correct {
		case i:
			correct = j
		case j:
			correct = i
		}
	}

	return trivia.Question{Text: e.Text, Answers: answers, CorrectID: uint32(correct)}
}

func (s *Store) SubmitGameStatistics(progress trivia.PlayerProgress, username string, gameID uint64) error {
	m := statModel.NewStat(username, gameID)
	m.CorrectAnswers = progress.CorrectCount
	m.WrongAnswers = progress.WrongCount
	m.AvgAnswerTime = progress.AvgAnswerTime

	if err := s.stats.Add(m); err != nil {
		return fmt.Errorf("add stat: %w", err)
	}

	return nil
}

func (s *Store) NextGameID() (uint64, error) {
	id, err := s.stats.NextGameID()
	if err != nil {
		return 0, fmt.Errorf("next game id: %w", err)
	}

	return id, nil
}

func (s *Store) PlayerGames(username string) (int, error) {
	agg, err := s.stats.FetchProfileStat(username)
	if err != nil {
		return 0, fmt.Errorf("fetch profile stat: %w", err)
	}

	return agg.Games, nil
}

func (s *Store) PlayerCorrectAnswers(username string) (int, error) {
	agg, err := s.stats.FetchProfileStat(username)
	if err != nil {
		return 0, fmt.Errorf("fetch profile stat: %w", err)
	}

	return agg.CorrectAnswers, nil
}

func (s *Store) PlayerTotalAnswers(username string) (int, error) {
	agg, err := s.stats.FetchProfileStat(username)
	if err != nil {
		return 0, fmt.Errorf("fetch profile stat: %w", err)
	}

	return agg.TotalAnswers, nil
}

func (s *Store) PlayerAverageAnswerTime(username string) (float64, error) {
	agg, err := s.stats.FetchProfileStat(username)
	if err != nil {
		return 0, fmt.Errorf("fetch profile stat: %w", err)
	}

	return agg.AvgAnswerTime, nil
}

func (s *Store) PlayerScore(username string) (int, error) {
	agg, err := s.stats.FetchProfileStat(username)
	if err != nil {
		return 0, fmt.Errorf("fetch profile stat: %w", err)
	}

	return agg.Score, nil
}

func (s *Store) HighScores() ([]trivia.HighScore, error) {
	usernames, points, err := s.stats.HighScores()
	if err != nil {
		return nil, fmt.Errorf("high scores: %w", err)
	}

	scores := make([]trivia.HighScore, 0, len(usernames))
	for i, username := range usernames {
		scores = append(scores, trivia.HighScore{Username: username, Score: points[i]})
	}

	return scores, nil
}
