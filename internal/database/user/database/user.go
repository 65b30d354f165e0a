package database

import (
	"encoding/json"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"golang.org/x/crypto/bcrypt"

	"github.com/trivio-games/trivio/internal/cache"
	"github.com/trivio-games/trivio/internal/database"
	"github.com/trivio-games/trivio/internal/database/user/model"
)

var (
	NotFoundErr = fmt.Errorf("not found")
	ExistsErr   = fmt.Errorf("already exists")
)

const bucket = "users"

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

type DB struct {
	sDB *database.DB

	cache cache.Cache
}

func (db *DB) Fetch(username string) (model.User, error) {
	var u model.User
	if db.cache != nil {
		if v, ok := db.cache.Get(username); ok {
			return v.(model.User), nil
		}
	}

	var bytes []byte
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return NotFoundErr
		}
		bytes = b.Get([]byte(username))
		return nil
	}); err != nil {
		return u, fmt.Errorf("view transaction error: %w", err)
	}

	if len(bytes) == 0 {
		return u, NotFoundErr
	}

	if err := json.Unmarshal(bytes, &u); err != nil {
		return u, fmt.Errorf("unmarshal: %v", err)
	}

	if db.cache != nil {
		db.cache.Add(username, u)
	}

	return u, nil
}

func (db *DB) Exists(username string) (bool, error) {
	_, err := db.Fetch(username)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return false, nil
		}
		return false, fmt.Errorf("fetch: %w", err)
	}
	return true, nil
}

// Match reports whether the password verifies against the stored hash.
func (db *DB) Match(username, password string) (bool, error) {
	u, err := db.Fetch(username)
	if err != nil {
		if errors.Is(err, NotFoundErr) {
			return false, nil
		}
		return false, fmt.Errorf("fetch: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return false, nil
	}

	return true, nil
}

func (db *DB) Store(m model.User) error {
	bytes, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		if b.Get([]byte(m.Username)) != nil {
			return ExistsErr
		}

		if err := b.Put([]byte(m.Username), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	if db.cache != nil {
		db.cache.Add(m.Username, m)
	}

	return nil
}

