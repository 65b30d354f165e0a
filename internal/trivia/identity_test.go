package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityLogin(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["alice"] = "secret"

	identity := NewIdentity(store)

	status, err := identity.Login("alice", "wrong")
	require.NoError(t, err)
	assert.Equal(t, LoginMismatch, status)
	assert.False(t, identity.IsLogged("alice"))

	status, err = identity.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, LoginOk, status)
	assert.True(t, identity.IsLogged("alice"))

	status, err = identity.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, LoginAlreadyLogged, status)
}

func TestIdentityLoginUnknownUser(t *testing.T) {
	t.Parallel()

	identity := NewIdentity(newFakeStore())

	status, err := identity.Login("ghost", "whatever")
	require.NoError(t, err)
	assert.Equal(t, LoginMismatch, status)
}

func TestIdentityLogout(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users["alice"] = "secret"

	identity := NewIdentity(store)

	_, err := identity.Login("alice", "secret")
	require.NoError(t, err)

	identity.Logout("alice")
	assert.False(t, identity.IsLogged("alice"))

	status, err := identity.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, LoginOk, status)
}

func TestIdentitySignup(t *testing.T) {
	t.Parallel()

	identity := NewIdentity(newFakeStore())

	ok, err := identity.Signup("alice", "secret", "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, identity.IsLogged("alice"), "a fresh account starts logged in")

	ok, err = identity.Signup("alice", "other", "other@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
