package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/trivio-games/trivio/internal/buildinfo"
	"github.com/trivio-games/trivio/internal/cache/cachelru"
	"github.com/trivio-games/trivio/internal/database"
	"github.com/trivio-games/trivio/internal/logging"
	"github.com/trivio-games/trivio/internal/server"
	"github.com/trivio-games/trivio/internal/shutdown"
	"github.com/trivio-games/trivio/internal/store"
	"github.com/trivio-games/trivio/internal/trivia"
)

var version string

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, buildinfo.GreetingCLI, buildinfo.ProjectName, version)

	ctx, done := shutdown.New()
	defer done()

	config := server.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, config, done); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, config server.Config, done func()) error {
	logger := logging.FromContext(ctx).Named("main.realMain")

	db, err := database.NewFromEnv(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}

	defer db.Close(ctx)

	userCache, err := cachelru.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	statCache, err := cachelru.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	st, err := store.New(db, userCache, statCache)
	if err != nil {
		return fmt.Errorf("store.New: %w", err)
	}

	nextGameID, err := st.NextGameID()
	if err != nil {
		return fmt.Errorf("next game id: %w", err)
	}

	identity := trivia.NewIdentity(st)
	rooms := trivia.NewRooms(nextGameID)
	games := trivia.NewGames(st)

	go games.Reap(ctx, rooms, config.ReapInterval, config.ReapGrace)

	http.Handle("/health", server.HandleHealth(ctx))
	go func() {
		if err := http.ListenAndServe(":"+config.ProfPort, nil); err != nil {
			logger.Fatalf("pprof default sever: %v", err)
			done()
		}
	}()

	srv := server.New(&config, identity, rooms, games, st)
	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
