package server

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trivio-games/trivio/internal/protocol"
	"github.com/trivio-games/trivio/internal/trivia"
)

type fakeStore struct {
	users     map[string]string
	questions []trivia.Question

	submitted int
}

func newFakeStore() *fakeStore {
	questions := make([]trivia.Question, 0, 4)
	for i := 0; i < 4; i++ {
		questions = append(questions, trivia.Question{
			Text:      fmt.Sprintf("question %d", i),
			Answers:   []string{"a", "b", "c", "d"},
			CorrectID: 1,
		})
	}

	return &fakeStore{users: map[string]string{}, questions: questions}
}

func (f *fakeStore) UserExists(username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeStore) CredentialsMatch(username, password string) (bool, error) {
	stored, ok := f.users[username]
	return ok && stored == password, nil
}

func (f *fakeStore) AddUser(username, password, _ string) (bool, error) {
	if _, ok := f.users[username]; ok {
		return false, nil
	}
	f.users[username] = password
	return true, nil
}

func (f *fakeStore) Questions(count int) ([]trivia.Question, error) {
	if count > len(f.questions) {
		return nil, fmt.Errorf("not enough questions")
	}
	return f.questions[:count], nil
}

func (f *fakeStore) SubmitGameStatistics(trivia.PlayerProgress, string, uint64) error {
	f.submitted++
	return nil
}

func (f *fakeStore) NextGameID() (uint64, error)                     { return 1, nil }
func (f *fakeStore) PlayerGames(string) (int, error)                 { return 0, nil }
func (f *fakeStore) PlayerCorrectAnswers(string) (int, error)        { return 0, nil }
func (f *fakeStore) PlayerTotalAnswers(string) (int, error)          { return 0, nil }
func (f *fakeStore) PlayerAverageAnswerTime(string) (float64, error) { return 0, nil }
func (f *fakeStore) PlayerScore(string) (int, error)                 { return 0, nil }
func (f *fakeStore) HighScores() ([]trivia.HighScore, error)         { return nil, nil }

type harness struct {
	store    *fakeStore
	identity *trivia.Identity
	rooms    *trivia.Rooms
	games    *trivia.Games
}

func newHarness() *harness {
	store := newFakeStore()
	return &harness{
		store:    store,
		identity: trivia.NewIdentity(store),
		rooms:    trivia.NewRooms(1),
		games:    trivia.NewGames(store),
	}
}

func (h *harness) session() *Session {
	return NewSession(zap.NewNop().Sugar(), h.identity, h.rooms, h.games, h.store)
}

func request(t *testing.T, code protocol.Code, v interface{}) protocol.Request {
	t.Helper()

	var body []byte
	if v != nil {
		var err error
		body, err = json.Marshal(v)
		require.NoError(t, err)
	}

	return protocol.Request{Code: code, Body: body, ReceivedAt: time.Now()}
}

func dispatch(t *testing.T, s *Session, code protocol.Code, v interface{}) protocol.Response {
	t.Helper()

	resp, err := s.Dispatch(request(t, code, v))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp protocol.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body, v))
}

func signupAlice(t *testing.T, s *Session) {
	t.Helper()

	resp := dispatch(t, s, protocol.CodeSignupRequest, protocol.SignupRequest{
		Username: "alice1",
		Password: "Sup3r.secret",
		Email:    "alice@example.com",
	})
	require.Equal(t, protocol.CodeSignupResponse, resp.Code)
}

func TestSessionSignupAndLogin(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()

	signupAlice(t, s)

	var status protocol.StatusResponse
	resp := dispatch(t, s, protocol.CodeLogoutRequest, nil)
	require.Equal(t, protocol.CodeLogoutResponse, resp.Code)
	decode(t, resp, &status)
	assert.Equal(t, protocol.StatusSuccess, status.Status)

	// wrong password after logout
	resp = dispatch(t, s, protocol.CodeLoginRequest, protocol.LoginRequest{Username: "alice1", Password: "nope"})
	require.Equal(t, protocol.CodeErrorResponse, resp.Code)

	var errResp protocol.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, msgCredsMismatch, errResp.Message)

	resp = dispatch(t, s, protocol.CodeLoginRequest, protocol.LoginRequest{Username: "alice1", Password: "Sup3r.secret"})
	assert.Equal(t, protocol.CodeLoginResponse, resp.Code)
}

func TestSessionDoubleLogin(t *testing.T) {
	t.Parallel()

	h := newHarness()
	first := h.session()
	signupAlice(t, first)

	second := h.session()
	resp := dispatch(t, second, protocol.CodeLoginRequest, protocol.LoginRequest{Username: "alice1", Password: "Sup3r.secret"})
	require.Equal(t, protocol.CodeErrorResponse, resp.Code)

	var errResp protocol.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, msgAlreadyLogged, errResp.Message)
}

func TestSessionIrrelevantRequest(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()

	resp, err := s.Dispatch(request(t, protocol.CodeStartGameRequest, nil))
	require.ErrorIs(t, err, IrrelevantRequestErr)
	require.Equal(t, protocol.CodeErrorResponse, resp.Code)

	var errResp protocol.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, msgIrrelevantRequest, errResp.Message)
}

func TestSessionWeakSignupRejected(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()

	resp := dispatch(t, s, protocol.CodeSignupRequest, protocol.SignupRequest{
		Username: "alice1",
		Password: "weak",
		Email:    "alice@example.com",
	})
	require.Equal(t, protocol.CodeErrorResponse, resp.Code)

	var errResp protocol.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, "Password isn't strong enough!", errResp.Message)
}

func TestSessionCreateRoomAndList(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()
	signupAlice(t, s)

	resp := dispatch(t, s, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName:      "quiz",
		MaxUsers:      4,
		QuestionCount: 4,
		AnswerTimeout: 30,
	})
	require.Equal(t, protocol.CodeCreateRoomResponse, resp.Code)

	var created protocol.CreateRoomResponse
	decode(t, resp, &created)
	assert.Equal(t, protocol.StatusSuccess, created.Status)
	assert.Equal(t, uint64(1), created.RoomID)

	// a second logged-in user sees the room in the menu
	other := h.session()
	resp = dispatch(t, other, protocol.CodeSignupRequest, protocol.SignupRequest{
		Username: "bobby1",
		Password: "Sup3r.secret",
		Email:    "bob@example.com",
	})
	require.Equal(t, protocol.CodeSignupResponse, resp.Code)

	resp = dispatch(t, other, protocol.CodeGetRoomsRequest, nil)
	var rooms protocol.GetRoomsResponse
	decode(t, resp, &rooms)
	require.Len(t, rooms.Rooms, 1)
	assert.Equal(t, "quiz", rooms.Rooms[0].Name)
	assert.Equal(t, protocol.RoomOpened, rooms.Rooms[0].State)

	resp = dispatch(t, other, protocol.CodeGetPlayersInRoomRequest, protocol.GetPlayersInRoomRequest{RoomID: 1})
	var players protocol.GetPlayersInRoomResponse
	decode(t, resp, &players)
	assert.Equal(t, []string{"alice1"}, players.Players)
}

func TestSessionJoinRoomFull(t *testing.T) {
	t.Parallel()

	h := newHarness()
	admin := h.session()
	signupAlice(t, admin)

	dispatch(t, admin, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "tiny", MaxUsers: 1, QuestionCount: 4, AnswerTimeout: 30,
	})

	member := h.session()
	resp := dispatch(t, member, protocol.CodeSignupRequest, protocol.SignupRequest{
		Username: "bobby1",
		Password: "Sup3r.secret",
		Email:    "bob@example.com",
	})
	require.Equal(t, protocol.CodeSignupResponse, resp.Code)

	resp = dispatch(t, member, protocol.CodeJoinRoomRequest, protocol.JoinRoomRequest{RoomID: 1})
	require.Equal(t, protocol.CodeErrorResponse, resp.Code)

	var errResp protocol.ErrorResponse
	decode(t, resp, &errResp)
	assert.Equal(t, msgRoomFull, errResp.Message)

	// still in the menu
	resp = dispatch(t, member, protocol.CodeGetRoomsRequest, nil)
	assert.Equal(t, protocol.CodeGetRoomsResponse, resp.Code)
}

func TestSessionMemberFollowsRoomClose(t *testing.T) {
	t.Parallel()

	h := newHarness()
	admin := h.session()
	signupAlice(t, admin)
	dispatch(t, admin, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "quiz", MaxUsers: 4, QuestionCount: 4, AnswerTimeout: 30,
	})

	member := h.session()
	dispatch(t, member, protocol.CodeSignupRequest, protocol.SignupRequest{
		Username: "bobby1", Password: "Sup3r.secret", Email: "bob@example.com",
	})
	resp := dispatch(t, member, protocol.CodeJoinRoomRequest, protocol.JoinRoomRequest{RoomID: 1})
	require.Equal(t, protocol.CodeJoinRoomResponse, resp.Code)

	resp = dispatch(t, admin, protocol.CodeCloseRoomRequest, nil)
	require.Equal(t, protocol.CodeCloseRoomResponse, resp.Code)

	resp = dispatch(t, member, protocol.CodeGetRoomStateRequest, nil)
	var state protocol.GetRoomStateResponse
	decode(t, resp, &state)
	assert.Equal(t, protocol.RoomClosed, state.State)

	// back in the menu
	resp = dispatch(t, member, protocol.CodeGetRoomsRequest, nil)
	assert.Equal(t, protocol.CodeGetRoomsResponse, resp.Code)
}

func TestSessionFullGameFlow(t *testing.T) {
	t.Parallel()

	h := newHarness()
	admin := h.session()
	signupAlice(t, admin)
	dispatch(t, admin, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "quiz", MaxUsers: 4, QuestionCount: 2, AnswerTimeout: 30,
	})

	member := h.session()
	dispatch(t, member, protocol.CodeSignupRequest, protocol.SignupRequest{
		Username: "bobby1", Password: "Sup3r.secret", Email: "bob@example.com",
	})
	dispatch(t, member, protocol.CodeJoinRoomRequest, protocol.JoinRoomRequest{RoomID: 1})

	resp := dispatch(t, admin, protocol.CodeStartGameRequest, nil)
	require.Equal(t, protocol.CodeStartGameResponse, resp.Code)

	// the member polls the room state and is pulled into the game
	resp = dispatch(t, member, protocol.CodeGetRoomStateRequest, nil)
	var state protocol.GetRoomStateResponse
	decode(t, resp, &state)
	assert.Equal(t, protocol.RoomStarted, state.State)

	for round := 0; round < 2; round++ {
		for _, s := range []*Session{admin, member} {
			resp = dispatch(t, s, protocol.CodeGetQuestionRequest, nil)
			var q protocol.GetQuestionResponse
			decode(t, resp, &q)
			require.Equal(t, protocol.StatusSuccess, q.Status)
			require.Len(t, q.Answers, 4)
		}

		// the first answer of the round does not resolve it
		resp = dispatch(t, admin, protocol.CodeSubmitAnswerRequest, protocol.SubmitAnswerRequest{AnswerID: 1})
		var submitted protocol.SubmitAnswerResponse
		decode(t, resp, &submitted)
		assert.Equal(t, protocol.StatusFailure, submitted.Status)
		assert.Equal(t, trivia.FalseAnswerID, submitted.CorrectAnswerID)

		resp = dispatch(t, member, protocol.CodeSubmitAnswerRequest, protocol.SubmitAnswerRequest{AnswerID: 2})
		decode(t, resp, &submitted)
		assert.Equal(t, protocol.StatusSuccess, submitted.Status)
		assert.Equal(t, uint32(1), submitted.CorrectAnswerID)

		// the admin polls again and sees the resolved round
		resp = dispatch(t, admin, protocol.CodeSubmitAnswerRequest, protocol.SubmitAnswerRequest{AnswerID: 1})
		decode(t, resp, &submitted)
		assert.Equal(t, protocol.StatusSuccess, submitted.Status)
		assert.Equal(t, uint32(1), submitted.CorrectAnswerID)
	}

	// both players finished, stats stored exactly once each
	assert.Equal(t, 2, h.store.submitted)

	resp = dispatch(t, admin, protocol.CodeGetQuestionRequest, nil)
	var q protocol.GetQuestionResponse
	decode(t, resp, &q)
	assert.Equal(t, protocol.StatusFailure, q.Status)

	resp = dispatch(t, admin, protocol.CodeGetGameResultRequest, nil)
	var results protocol.GetGameResultsResponse
	decode(t, resp, &results)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "alice1", results.Results[0].Username)
	assert.Equal(t, uint32(2), results.Results[0].CorrectAnswerCount)
	assert.Equal(t, "bobby1", results.Results[1].Username)
	assert.Equal(t, uint32(2), results.Results[1].WrongAnswerCount)

	// after collecting the final board the admin is back in the menu
	resp = dispatch(t, admin, protocol.CodeGetRoomsRequest, nil)
	assert.Equal(t, protocol.CodeGetRoomsResponse, resp.Code)
}

func TestSessionAnswerTimeoutForcesWrong(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()
	signupAlice(t, s)
	dispatch(t, s, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "quiz", MaxUsers: 1, QuestionCount: 2, AnswerTimeout: 1,
	})
	dispatch(t, s, protocol.CodeStartGameRequest, nil)

	dispatch(t, s, protocol.CodeGetQuestionRequest, nil)
	// push the question issue time past the answer window
	s.questionIssuedAt = time.Now().Add(-5 * time.Second)

	resp := dispatch(t, s, protocol.CodeSubmitAnswerRequest, protocol.SubmitAnswerRequest{AnswerID: 1})
	var submitted protocol.SubmitAnswerResponse
	decode(t, resp, &submitted)
	assert.Equal(t, protocol.StatusSuccess, submitted.Status)

	resp = dispatch(t, s, protocol.CodeGetGameResultRequest, nil)
	var results protocol.GetGameResultsResponse
	decode(t, resp, &results)
	require.Len(t, results.Results, 1)
	assert.Equal(t, uint32(0), results.Results[0].CorrectAnswerCount)
	assert.Equal(t, uint32(1), results.Results[0].WrongAnswerCount)
	assert.Equal(t, uint32(10), results.Results[0].AverageAnswerTime, "elapsed time is clamped to the window")
}

func TestSessionLeaveGame(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()
	signupAlice(t, s)
	dispatch(t, s, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "quiz", MaxUsers: 2, QuestionCount: 2, AnswerTimeout: 30,
	})
	dispatch(t, s, protocol.CodeStartGameRequest, nil)

	resp := dispatch(t, s, protocol.CodeLeaveGameRequest, nil)
	require.Equal(t, protocol.CodeLeaveGameResponse, resp.Code)

	game, err := h.games.Fetch(1)
	require.NoError(t, err)
	require.Len(t, game.Results(), 1)
	assert.True(t, game.Results()[0].Retired)

	// back in the menu
	resp = dispatch(t, s, protocol.CodeGetRoomsRequest, nil)
	assert.Equal(t, protocol.CodeGetRoomsResponse, resp.Code)
}

func TestSessionCloseUnwind(t *testing.T) {
	t.Parallel()

	h := newHarness()
	admin := h.session()
	signupAlice(t, admin)
	dispatch(t, admin, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "quiz", MaxUsers: 4, QuestionCount: 2, AnswerTimeout: 30,
	})

	admin.Close()

	_, err := h.rooms.Fetch(1)
	assert.ErrorIs(t, err, trivia.RoomNotFoundErr, "a vanished admin closes the room")
	assert.False(t, h.identity.IsLogged("alice1"))
}

func TestSessionCloseUnwindInGame(t *testing.T) {
	t.Parallel()

	h := newHarness()
	s := h.session()
	signupAlice(t, s)
	dispatch(t, s, protocol.CodeCreateRoomRequest, protocol.CreateRoomRequest{
		RoomName: "quiz", MaxUsers: 2, QuestionCount: 2, AnswerTimeout: 30,
	})
	dispatch(t, s, protocol.CodeStartGameRequest, nil)

	s.Close()

	game, err := h.games.Fetch(1)
	require.NoError(t, err)
	require.Len(t, game.Results(), 1)
	assert.True(t, game.Results()[0].Retired)
	assert.False(t, h.identity.IsLogged("alice1"))
}
