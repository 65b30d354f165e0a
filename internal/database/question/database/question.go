package database

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/valyala/fastrand"
	bolt "go.etcd.io/bbolt"

	"github.com/trivio-games/trivio/internal/database"
	"github.com/trivio-games/trivio/internal/database/question/model"
)

var NotEnoughErr = fmt.Errorf("not enough questions in the bank")

const bucket = "questions"

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) Add(m model.Question) error {
	bytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	id := uuid.New()
	binaryID, err := id.MarshalBinary()
	if err != nil {
		return fmt.Errorf("uuid binary: %w", err)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if err := b.Put(binaryID, bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) Count() (int, error) {
	var n int
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		n = b.Stats().KeyN
		return nil
	}); err != nil {
		return 0, fmt.Errorf("view transaction error: %w", err)
	}

	return n, nil
}

// Seed fills an empty bank with the given set. A non-empty bank is left as is.
func (db *DB) Seed(questions []model.Question) error {
	n, err := db.Count()
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	if n > 0 {
		return nil
	}

	for _, q := range questions {
		if err := db.Add(q); err != nil {
			return fmt.Errorf("add: %w", err)
		}
	}

	return nil
}

// Fetch returns count random bank entries without repetition.
func (db *DB) Fetch(count int) ([]model.Question, error) {
	var all []model.Question
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return NotEnoughErr
		}

		if err := b.ForEach(func(k, v []byte) error {
			var q model.Question
			if err := json.Unmarshal(v, &q); err != nil {
				return fmt.Errorf("json unmarshal error, %w", err)
			}
			all = append(all, q)
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	if len(all) < count {
		return nil, NotEnoughErr
	}

	for i := len(all) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		all[i], all[j] = all[j], all[i]
	}

	return all[:count], nil
}
