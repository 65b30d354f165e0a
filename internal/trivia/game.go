package trivia

import (
	"fmt"
	"sync"
)

// FalseAnswerID is outside every answer set, submitting it always scores as
// a wrong answer. It stands in for an answer that never arrived in time.
const FalseAnswerID uint32 = 10

var (
	OutOfQuestionsErr = fmt.Errorf("out of questions")
	PlayerNotFoundErr = fmt.Errorf("player not found")
)

// PlayerProgress is one player's live tally within a game.
type PlayerProgress struct {
	CurrentQuestion uint32
	CorrectCount    uint32
	WrongCount      uint32
	// Running average answer time in deciseconds
	AvgAnswerTime uint32
	Retired       bool
}

// PlayerResult is the per-player line of the final scoreboard.
type PlayerResult struct {
	Username           string
	CorrectAnswerCount uint32
	WrongAnswerCount   uint32
	AverageAnswerTime  uint32
	Retired            bool
}

func NewGame(id uint64, questions []Question, store Store) *Game {
	return &Game{
		id:        id,
		questions: questions,
		store:     store,
		players:   map[string]*PlayerProgress{},
	}
}

// Game drives one match: the fixed question list plus every player's
// progress. Players advance independently, answer by answer.
type Game struct {
	id        uint64
	questions []Question
	store     Store

	mtx     sync.Mutex
	order   []string
	players map[string]*PlayerProgress
}

func (g *Game) ID() uint64 {
	return g.id
}

// AddPlayer registers the player with a fresh tally. Re-adding a known
// player keeps the existing progress.
func (g *Game) AddPlayer(username string) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if _, ok := g.players[username]; ok {
		return
	}

	g.players[username] = &PlayerProgress{}
	g.order = append(g.order, username)
}

// QuestionForUser returns the question the player is currently on.
func (g *Game) QuestionForUser(username string) (Question, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	p, ok := g.players[username]
	if !ok {
		return Question{}, PlayerNotFoundErr
	}

	if int(p.CurrentQuestion) >= len(g.questions) {
		return Question{}, OutOfQuestionsErr
	}

	return g.questions[p.CurrentQuestion], nil
}

// SubmitAnswer scores the answer, folds the elapsed time into the player's
// running average and advances the player one question. Answering the last
// question persists the final tally. The correct answer id is returned so
// the client can reveal it once the round resolves.
func (g *Game) SubmitAnswer(username string, answerID, elapsedDeci uint32) (uint32, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	p, ok := g.players[username]
	if !ok {
		return FalseAnswerID, PlayerNotFoundErr
	}

	if int(p.CurrentQuestion) >= len(g.questions) {
		return FalseAnswerID, OutOfQuestionsErr
	}

	k := p.CurrentQuestion
	p.AvgAnswerTime = uint32(float64(p.AvgAnswerTime)*float64(k)/float64(k+1)) + elapsedDeci/(k+1)

	correctID := g.questions[p.CurrentQuestion].CorrectID
	if correctID == answerID {
		p.CorrectCount++
	} else {
		p.WrongCount++
	}

	var storeErr error
	if int(p.CurrentQuestion) >= len(g.questions)-1 {
		if err := g.store.SubmitGameStatistics(*p, username, g.id); err != nil {
			storeErr = fmt.Errorf("submit game statistics: %w", err)
		}
	}

	p.CurrentQuestion++
	return correctID, storeErr
}

// Retire flags the player as gone. The tally stays in the scoreboard.
func (g *Game) Retire(username string) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if p, ok := g.players[username]; ok {
		p.Retired = true
	}
}

// AllAdvanced reports whether every active player sits on the same
// question, that is nobody is still answering the current round.
func (g *Game) AllAdvanced() bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if len(g.players) == 0 {
		return true
	}

	current := uint32(0)
	for _, username := range g.order {
		if p := g.players[username]; !p.Retired {
			current = p.CurrentQuestion
			break
		}
	}

	for _, p := range g.players {
		if p.Retired {
			continue
		}
		if p.CurrentQuestion != current {
			return false
		}
	}

	return true
}

// IsFinished reports whether every player has either retired or run out
// of questions.
func (g *Game) IsFinished() bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	for _, p := range g.players {
		if !p.Retired && int(p.CurrentQuestion) < len(g.questions) {
			return false
		}
	}

	return true
}

// Results snapshots the scoreboard in join order.
func (g *Game) Results() []PlayerResult {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	results := make([]PlayerResult, 0, len(g.order))
	for _, username := range g.order {
		p := g.players[username]
		results = append(results, PlayerResult{
			Username:           username,
			CorrectAnswerCount: p.CorrectCount,
			WrongAnswerCount:   p.WrongCount,
			AverageAnswerTime:  p.AvgAnswerTime,
			Retired:            p.Retired,
		})
	}

	return results
}
