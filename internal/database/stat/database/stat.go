package database

import (
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/trivio-games/trivio/internal/byteutil"
	"github.com/trivio-games/trivio/internal/cache"
	"github.com/trivio-games/trivio/internal/database"
	"github.com/trivio-games/trivio/internal/database/stat/model"
)

const (
	prefix      = "stat"
	gamesBucket = "games"
	gamesKey    = "lastGameID"

	highScoreLimit = 5
)

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) userBucket(username string) []byte {
	return []byte(prefix + username)
}

func (db *DB) FetchByUsername(username string) ([]model.Stat, error) {
	bucket := db.userBucket(username)
	if db.cache != nil {
		if v, ok := db.cache.Get(string(bucket)); ok {
			return v.([]model.Stat), nil
		}
	}

	var list []model.Stat
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			// no finished games yet
			return nil
		}

		if err := b.ForEach(func(k, v []byte) error {
			var stat model.Stat
			if err := json.Unmarshal(v, &stat); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
			list = append(list, stat)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(string(bucket), list)
	}

	return list, nil
}

func (db *DB) FetchProfileStat(username string) (model.AggregationStat, error) {
	var agg model.AggregationStat

	stats, err := db.FetchByUsername(username)
	if err != nil {
		return agg, fmt.Errorf("fetch by username: %w", err)
	}

	var sumTime, sumScore float64
	for _, stat := range stats {
		agg.Games++
		agg.CorrectAnswers += int(stat.CorrectAnswers)
		agg.TotalAnswers += int(stat.CorrectAnswers + stat.WrongAnswers)
		sumTime += float64(stat.AvgAnswerTime)
		sumScore += stat.Score()
	}

	if agg.Games > 0 {
		agg.AvgAnswerTime = sumTime / float64(agg.Games)
		agg.Score = int(sumScore / float64(agg.Games))
	}

	return agg, nil
}

type highScore struct {
	username string
	score    int
}

// HighScores returns the top per-game scores across all players, best first.
func (db *DB) HighScores() ([]string, []int, error) {
	var scores []highScore
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, b *bolt.Bucket) error {
			if len(name) <= len(prefix) || byteutil.BytesToString(name[:len(prefix)]) != prefix {
				return nil
			}

			return b.ForEach(func(k, v []byte) error {
				var stat model.Stat
				if err := json.Unmarshal(v, &stat); err != nil {
					return fmt.Errorf("json unmarshal error, %w", err)
				}
				scores = append(scores, highScore{username: stat.Username, score: int(stat.Score())})
				return nil
			})
		})
	}); err != nil {
		return nil, nil, fmt.Errorf("view transaction error: %w", err)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if len(scores) > highScoreLimit {
		scores = scores[:highScoreLimit]
	}

	usernames := make([]string, len(scores))
	points := make([]int, len(scores))
	for i, s := range scores {
		usernames[i] = s.username
		points[i] = s.score
	}

	return usernames, points, nil
}

func (db *DB) Add(m model.Stat) error {
	tx, err := db.sDB.DB.Begin(true)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer tx.Rollback() //nolint

	bucket := db.userBucket(m.Username)
	b := tx.Bucket(bucket)
	if b == nil {
		bs, err := tx.CreateBucket(bucket)
		if err != nil {
			return fmt.Errorf("can not create bucket %s: %w", m.Username, err)
		}
		b = bs
	}

	binaryID, err := m.ID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := b.Put(binaryID, bytes); err != nil {
		return fmt.Errorf("put to bucket error: %w", err)
	}

	gb, err := tx.CreateBucketIfNotExists([]byte(gamesBucket))
	if err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}

	if byteutil.DecodeUint64FromBytes(gb.Get([]byte(gamesKey))) < m.GameID {
		if err := gb.Put([]byte(gamesKey), byteutil.EncodeUint64ToBytes(m.GameID)); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	if db.cache != nil {
		db.cache.Delete(string(bucket))
	}

	return nil
}

// NextGameID returns one past the persisted game-id high-water mark. The mark
// itself moves when finished-game statistics are stored.
func (db *DB) NextGameID() (uint64, error) {
	var id uint64
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(gamesBucket)); b != nil {
			id = byteutil.DecodeUint64FromBytes(b.Get([]byte(gamesKey)))
		}
		return nil
	}); err != nil {
		return 0, fmt.Errorf("view transaction error: %w", err)
	}

	return id + 1, nil
}
