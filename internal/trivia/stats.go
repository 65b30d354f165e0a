package trivia

import (
	"fmt"
	"strconv"

	"github.com/trivio-games/trivio/internal/strpool"
)

// PersonalStats renders the player's aggregate record as the display lines
// the client shows verbatim.
func PersonalStats(store Store, username string) ([]string, error) {
	lines := []string{username + ":"}

	games, err := store.PlayerGames(username)
	if err != nil {
		return nil, fmt.Errorf("player games: %w", err)
	}

	if games == 0 {
		return append(lines, "No games yet"), nil
	}

	correct, err := store.PlayerCorrectAnswers(username)
	if err != nil {
		return nil, fmt.Errorf("player correct answers: %w", err)
	}

	total, err := store.PlayerTotalAnswers(username)
	if err != nil {
		return nil, fmt.Errorf("player total answers: %w", err)
	}

	avgTime, err := store.PlayerAverageAnswerTime(username)
	if err != nil {
		return nil, fmt.Errorf("player average answer time: %w", err)
	}

	score, err := store.PlayerScore(username)
	if err != nil {
		return nil, fmt.Errorf("player score: %w", err)
	}

	lines = append(lines,
		statLine("Game count: ", strconv.Itoa(games)),
		statLine("Average answer time: ", strconv.FormatFloat(avgTime, 'f', 1, 64)),
		statLine("Correct answers: ", strconv.Itoa(correct)),
		statLine("Total answers: ", strconv.Itoa(total)),
		statLine("Average score: ", strconv.Itoa(score)),
	)

	return lines, nil
}

// HighScoreLines renders the global top list, best first, one line per
// place.
func HighScoreLines(store Store) ([]string, error) {
	scores, err := store.HighScores()
	if err != nil {
		return nil, fmt.Errorf("high scores: %w", err)
	}

	lines := make([]string, 0, len(scores))
	for i, s := range scores {
		lines = append(lines, scoreLine(i+1, s))
	}

	return lines, nil
}

func scoreLine(place int, s HighScore) string {
	sb := strpool.Get()
	defer func() {
		sb.Reset()
		strpool.Put(sb)
	}()

	sb.WriteString(strconv.Itoa(place))
	sb.WriteString(": ")
	sb.WriteString(s.Username)
	sb.WriteString(" - ")
	sb.WriteString(strconv.Itoa(s.Score))

	return sb.String()
}

func statLine(label, value string) string {
	sb := strpool.Get()
	defer func() {
		sb.Reset()
		strpool.Put(sb)
	}()

	sb.WriteString(label)
	sb.WriteString(value)
	return sb.String()
}
