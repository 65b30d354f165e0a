package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalStats(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.games["alice"] = 3
	store.correct["alice"] = 20
	store.total["alice"] = 30
	store.avgTime["alice"] = 42.5
	store.score["alice"] = 150

	lines, err := PersonalStats(store, "alice")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"alice:",
		"Game count: 3",
		"Average answer time: 42.5",
		"Correct answers: 20",
		"Total answers: 30",
		"Average score: 150",
	}, lines)
}

func TestPersonalStatsNoGames(t *testing.T) {
	t.Parallel()

	lines, err := PersonalStats(newFakeStore(), "ghost")
	require.NoError(t, err)

	assert.Equal(t, []string{"ghost:", "No games yet"}, lines)
}

func TestHighScoreLines(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.highScores = []HighScore{
		{Username: "alice", Score: 300},
		{Username: "bob", Score: 180},
		{Username: "carol", Score: 90},
	}

	lines, err := HighScoreLines(store)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1: alice - 300",
		"2: bob - 180",
		"3: carol - 90",
	}, lines)
}

func TestHighScoreLinesEmpty(t *testing.T) {
	t.Parallel()

	lines, err := HighScoreLines(newFakeStore())
	require.NoError(t, err)
	assert.Empty(t, lines)
}
