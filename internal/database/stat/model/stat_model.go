package model

import (
	"time"

	"github.com/google/uuid"
)

func NewStat(username string, gameID uint64) Stat {
	return Stat{ID: uuid.New(), Username: username, GameID: gameID, CreatedAt: time.Now()}
}

// Stat is one finished game for one player.
type Stat struct {
	ID       uuid.UUID `json:"-"`
	Username string    `json:"username"`
	GameID   uint64    `json:"gameID"`

	CorrectAnswers uint32 `json:"correctAnswers"`
	WrongAnswers   uint32 `json:"wrongAnswers"`
	// Running average answer time in deciseconds
	AvgAnswerTime uint32 `json:"avgAnswerTime"`

	CreatedAt time.Time `json:"createdAt"`
}

// Score rates one game: answer ratio weighted by answer speed.
func (s Stat) Score() float64 {
	total := s.CorrectAnswers + s.WrongAnswers
	if total == 0 || s.AvgAnswerTime == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(total) * (10000.0 / float64(s.AvgAnswerTime))
}

type AggregationStat struct {
	Games          int
	CorrectAnswers int
	TotalAnswers   int
	AvgAnswerTime  float64
	Score          int
}
