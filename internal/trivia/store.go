package trivia

// Question is the playable form handed to clients: the prompt plus the
// shuffled answer set, with the correct answer pinned by id.
type Question struct {
	Text      string
	Answers   []string
	CorrectID uint32
}

// HighScore is one entry of the global leaderboard.
type HighScore struct {
	Username string
	Score    int
}

// Store is the persistence gateway the game core runs against.
type Store interface {
	UserExists(username string) (bool, error)
	CredentialsMatch(username, password string) (bool, error)
	// AddUser reports false when the username is already taken.
	AddUser(username, password, email string) (bool, error)

	Questions(count int) ([]Question, error)

	SubmitGameStatistics(progress PlayerProgress, username string, gameID uint64) error
	NextGameID() (uint64, error)

	PlayerGames(username string) (int, error)
	PlayerCorrectAnswers(username string) (int, error)
	PlayerTotalAnswers(username string) (int, error)
	PlayerAverageAnswerTime(username string) (float64, error)
	PlayerScore(username string) (int, error)
	HighScores() ([]HighScore, error)
}
