package trivia

import "fmt"

type submittedStat struct {
	progress PlayerProgress
	username string
	gameID   uint64
}

// fakeStore is the in-memory gateway the package tests run against.
type fakeStore struct {
	users     map[string]string
	questions []Question

	submitted  []submittedStat
	submitErr  error
	nextGameID uint64

	games       map[string]int
	correct     map[string]int
	total       map[string]int
	avgTime     map[string]float64
	score       map[string]int
	highScores  []HighScore
	statsErr    error
	questionErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]string{},
		games:   map[string]int{},
		correct: map[string]int{},
		total:   map[string]int{},
		avgTime: map[string]float64{},
		score:   map[string]int{},
	}
}

func (f *fakeStore) UserExists(username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeStore) CredentialsMatch(username, password string) (bool, error) {
	stored, ok := f.users[username]
	return ok && stored == password, nil
}

func (f *fakeStore) AddUser(username, password, _ string) (bool, error) {
	if _, ok := f.users[username]; ok {
		return false, nil
	}
	f.users[username] = password
	return true, nil
}

func (f *fakeStore) Questions(count int) ([]Question, error) {
	if f.questionErr != nil {
		return nil, f.questionErr
	}
	if count > len(f.questions) {
		return nil, fmt.Errorf("not enough questions")
	}
	return f.questions[:count], nil
}

func (f *fakeStore) SubmitGameStatistics(progress PlayerProgress, username string, gameID uint64) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitted = append(f.submitted, submittedStat{progress: progress, username: username, gameID: gameID})
	return nil
}

func (f *fakeStore) NextGameID() (uint64, error) {
	return f.nextGameID, nil
}

func (f *fakeStore) PlayerGames(username string) (int, error) {
	return f.games[username], f.statsErr
}

func (f *fakeStore) PlayerCorrectAnswers(username string) (int, error) {
	return f.correct[username], f.statsErr
}

func (f *fakeStore) PlayerTotalAnswers(username string) (int, error) {
	return f.total[username], f.statsErr
}

func (f *fakeStore) PlayerAverageAnswerTime(username string) (float64, error) {
	return f.avgTime[username], f.statsErr
}

func (f *fakeStore) PlayerScore(username string) (int, error) {
	return f.score[username], f.statsErr
}

func (f *fakeStore) HighScores() ([]HighScore, error) {
	return f.highScores, f.statsErr
}

func questionSet(n int) []Question {
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, Question{
			Text:      fmt.Sprintf("question %d", i),
			Answers:   []string{"a", "b", "c", "d"},
			CorrectID: uint32(i % 4),
		})
	}
	return questions
}
