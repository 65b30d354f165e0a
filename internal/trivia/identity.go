package trivia

import (
	"fmt"
	"sync"
)

type LoginStatus uint8

const (
	LoginOk LoginStatus = iota + 1
	LoginMismatch
	LoginAlreadyLogged
)

func NewIdentity(store Store) *Identity {
	return &Identity{store: store, logged: map[string]struct{}{}}
}

// Identity tracks which accounts hold a live session. A username may be
// logged in on at most one connection at a time.
type Identity struct {
	mtx    sync.Mutex
	logged map[string]struct{}

	store Store
}

func (i *Identity) Login(username, password string) (LoginStatus, error) {
	ok, err := i.store.CredentialsMatch(username, password)
	if err != nil {
		return 0, fmt.Errorf("credentials match: %w", err)
	}

	if !ok {
		return LoginMismatch, nil
	}

	i.mtx.Lock()
	defer i.mtx.Unlock()

	if _, found := i.logged[username]; found {
		return LoginAlreadyLogged, nil
	}

	i.logged[username] = struct{}{}
	return LoginOk, nil
}

// Signup registers the account and reports false when the username is
// taken. A fresh account starts logged in.
func (i *Identity) Signup(username, password, email string) (bool, error) {
	ok, err := i.store.AddUser(username, password, email)
	if err != nil {
		return false, fmt.Errorf("add user: %w", err)
	}

	if !ok {
		return false, nil
	}

	i.mtx.Lock()
	defer i.mtx.Unlock()

	i.logged[username] = struct{}{}
	return true, nil
}

func (i *Identity) Logout(username string) {
	i.mtx.Lock()
	defer i.mtx.Unlock()

	delete(i.logged, username)
}

func (i *Identity) IsLogged(username string) bool {
	i.mtx.Lock()
	defer i.mtx.Unlock()

	_, found := i.logged[username]
	return found
}
