package server

import (
	"time"

	"github.com/trivio-games/trivio/internal/database"
)

type Config struct {
	// Logging verbosity, development encoder when set
	Debug bool `envconfig:"TRIVIA_DEBUG" default:"false"`

	// TCP address clients connect to
	Addr string `envconfig:"TRIVIA_ADDR" default:":8826"`

	// profile port
	ProfPort string `envconfig:"TRIVIA_PROF_PORT" default:"8888"`

	// Number of items in each cache
	CacheSize int `envconfig:"TRIVIA_CACHE_SIZE" default:"1024"`

	// Cadence of the finished-game sweep
	ReapInterval time.Duration `envconfig:"TRIVIA_REAP_INTERVAL" default:"10s"`

	// How long a finished game lingers so clients can collect results
	ReapGrace time.Duration `envconfig:"TRIVIA_REAP_GRACE" default:"10s"`

	Db database.Config
}
