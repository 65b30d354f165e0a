package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/trivio-games/trivio/internal/protocol"
	"github.com/trivio-games/trivio/internal/trivia"
)

type sessionState uint8

const (
	// stateLogin is the entry state of every connection, only login and
	// signup are accepted.
	stateLogin sessionState = iota + 1
	stateMenu
	stateRoomAdmin
	stateRoomMember
	stateInGame
)

// IrrelevantRequestErr flags a request the session's current state does
// not accept. The runner sends the paired error frame and then drops the
// connection, a client this far out of sync cannot be trusted to recover.
var IrrelevantRequestErr = fmt.Errorf("request is not relevant")

const (
	msgIrrelevantRequest = "Request is not relevant!"
	msgCredsMismatch     = "Username not found or password and username doesn't match."
	msgAlreadyLogged     = "User already logged in."
	msgUsernameExists    = "Username already exists."
	msgRoomNotFound      = "Room not found."
	msgRoomFull          = "The room is full!"
)

// toDeci converts whole seconds to deciseconds, the unit answer times are
// tracked in.
const toDeci = 10

func NewSession(
	logger *zap.SugaredLogger,
	identity *trivia.Identity,
	rooms *trivia.Rooms,
	games *trivia.Games,
	store trivia.Store,
) *Session {
	return &Session{
		logger:   logger,
		identity: identity,
		rooms:    rooms,
		games:    games,
		store:    store,
		state:    stateLogin,
	}
}

// Session is one connection's protocol state machine. A session belongs to
// exactly one connection goroutine, so its fields need no lock, all
// cross-session state lives behind the registries.
type Session struct {
	logger   *zap.SugaredLogger
	identity *trivia.Identity
	rooms    *trivia.Rooms
	games    *trivia.Games
	store    trivia.Store

	state    sessionState
	username string

	roomID        uint64
	answerTimeout uint32
	game          *trivia.Game

	// round bookkeeping
	questionIssuedAt time.Time
	answered         bool
	lastCorrectID    uint32
	outOfQuestions   bool
}

func (s *Session) Username() string {
	return s.username
}

// Dispatch routes one request through the state the session is currently
// in. A request the state does not accept yields the error frame together
// with IrrelevantRequestErr, the caller sends the frame and tears down.
func (s *Session) Dispatch(req protocol.Request) (protocol.Response, error) {
	switch s.state {
	case stateLogin:
		return s.handleLogin(req)
	case stateMenu:
		return s.handleMenu(req)
	case stateRoomAdmin:
		return s.handleRoomAdmin(req)
	case stateRoomMember:
		return s.handleRoomMember(req)
	case stateInGame:
		return s.handleInGame(req)
	}

	return irrelevant()
}

// Close unwinds whatever the session was in the middle of when the
// connection dropped. Best effort, state the registries no longer hold is
// skipped silently.
func (s *Session) Close() {
	switch s.state {
	case stateInGame:
		if s.game != nil {
			s.game.Retire(s.username)
		}
	case stateRoomAdmin:
		s.rooms.Delete(s.roomID)
	case stateRoomMember:
		if room, err := s.rooms.Fetch(s.roomID); err == nil {
			room.RemoveUser(s.username)
		}
	}

	if s.state != stateLogin {
		s.identity.Logout(s.username)
	}
}

func (s *Session) handleLogin(req protocol.Request) (protocol.Response, error) {
	switch req.Code {
	case protocol.CodeLoginRequest:
		return s.login(req)
	case protocol.CodeSignupRequest:
		return s.signup(req)
	}

	return irrelevant()
}

func (s *Session) login(req protocol.Request) (protocol.Response, error) {
	var r protocol.LoginRequest
	if err := json.Unmarshal(req.Body, &r); err != nil {
		return protocol.Response{}, fmt.Errorf("unmarshal login request: %w", err)
	}

	status, err := s.identity.Login(r.Username, r.Password)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("login: %w", err)
	}

	switch status {
	case trivia.LoginMismatch:
		return errorResponse(msgCredsMismatch)
	case trivia.LoginAlreadyLogged:
		return errorResponse(msgAlreadyLogged)
	}

	s.state = stateMenu
	s.username = r.Username

	return protocol.NewResponse(protocol.CodeLoginResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func (s *Session) signup(req protocol.Request) (protocol.Response, error) {
	var r protocol.SignupRequest
	if err := json.Unmarshal(req.Body, &r); err != nil {
		return protocol.Response{}, fmt.Errorf("unmarshal signup request: %w", err)
	}

	if err := trivia.ValidateSignup(r.Username, r.Password, r.Email); err != nil {
		return errorResponse(err.Error())
	}

	ok, err := s.identity.Signup(r.Username, r.Password, r.Email)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("signup: %w", err)
	}

	if !ok {
		return errorResponse(msgUsernameExists)
	}

	s.state = stateMenu
	s.username = r.Username

	return protocol.NewResponse(protocol.CodeSignupResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func (s *Session) handleMenu(req protocol.Request) (protocol.Response, error) {
	switch req.Code {
	case protocol.CodeLogoutRequest:
		return s.logout()
	case protocol.CodeGetRoomsRequest:
		return s.getRooms()
	case protocol.CodeGetPlayersInRoomRequest:
		return s.getPlayersInRoom(req)
	case protocol.CodeJoinRoomRequest:
		return s.joinRoom(req)
	case protocol.CodeCreateRoomRequest:
		return s.createRoom(req)
	case protocol.CodeGetHighScoreRequest:
		return s.getHighScore()
	case protocol.CodeGetPersonalStatsRequest:
		return s.getPersonalStats()
	}

	return irrelevant()
}

func (s *Session) logout() (protocol.Response, error) {
	s.identity.Logout(s.username)
	s.state = stateLogin
	s.username = ""

	return protocol.NewResponse(protocol.CodeLogoutResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func (s *Session) getRooms() (protocol.Response, error) {
	list := s.rooms.List()

	infos := make([]protocol.RoomInfo, 0, len(list))
	for _, room := range list {
		data := room.Data()
		infos = append(infos, protocol.RoomInfo{
			ID:                   data.ID,
			Name:                 data.Name,
			MaxPlayers:           data.MaxPlayers,
			NumOfQuestionsInGame: data.QuestionCount,
			TimePerQuestion:      data.TimePerQuestion,
			State:                wireRoomState(room.State()),
		})
	}

	return protocol.NewResponse(protocol.CodeGetRoomsResponse, protocol.GetRoomsResponse{
		Status: protocol.StatusSuccess,
		Rooms:  infos,
	})
}

func (s *Session) getPlayersInRoom(req protocol.Request) (protocol.Response, error) {
	var r protocol.GetPlayersInRoomRequest
	if err := json.Unmarshal(req.Body, &r); err != nil {
		return protocol.Response{}, fmt.Errorf("unmarshal get players request: %w", err)
	}

	room, err := s.rooms.Fetch(r.RoomID)
	if err != nil {
		return errorResponse(msgRoomNotFound)
	}

	return protocol.NewResponse(protocol.CodeGetPlayersInRoomResponse, protocol.GetPlayersInRoomResponse{
		Status:  protocol.StatusSuccess,
		Players: room.Members(),
	})
}

func (s *Session) joinRoom(req protocol.Request) (protocol.Response, error) {
	var r protocol.JoinRoomRequest
	if err := json.Unmarshal(req.Body, &r); err != nil {
		return protocol.Response{}, fmt.Errorf("unmarshal join room request: %w", err)
	}

	room, err := s.rooms.Fetch(r.RoomID)
	if err != nil {
		return errorResponse(msgRoomNotFound)
	}

	if err := room.AddUser(s.username); err != nil {
		if errors.Is(err, trivia.RoomFullErr) {
			return errorResponse(msgRoomFull)
		}

		// already a member, stay in the menu
		return protocol.NewResponse(protocol.CodeJoinRoomResponse, protocol.StatusResponse{Status: protocol.StatusFailure})
	}

	s.state = stateRoomMember
	s.roomID = r.RoomID

	return protocol.NewResponse(protocol.CodeJoinRoomResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func (s *Session) createRoom(req protocol.Request) (protocol.Response, error) {
	var r protocol.CreateRoomRequest
	if err := json.Unmarshal(req.Body, &r); err != nil {
		return protocol.Response{}, fmt.Errorf("unmarshal create room request: %w", err)
	}

	data := s.rooms.Create(s.username, r.RoomName, r.MaxUsers, r.QuestionCount, r.AnswerTimeout)

	s.state = stateRoomAdmin
	s.roomID = data.ID

	return protocol.NewResponse(protocol.CodeCreateRoomResponse, protocol.CreateRoomResponse{
		Status: protocol.StatusSuccess,
		RoomID: data.ID,
	})
}

func (s *Session) getHighScore() (protocol.Response, error) {
	lines, err := trivia.HighScoreLines(s.store)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("high score lines: %w", err)
	}

	return protocol.NewResponse(protocol.CodeGetHighScoreResponse, protocol.StatisticsResponse{
		Status:     protocol.StatusSuccess,
		Statistics: lines,
	})
}

func (s *Session) getPersonalStats() (protocol.Response, error) {
	lines, err := trivia.PersonalStats(s.store, s.username)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("personal stats: %w", err)
	}

	return protocol.NewResponse(protocol.CodeGetPersonalStatsResponse, protocol.StatisticsResponse{
		Status:     protocol.StatusSuccess,
		Statistics: lines,
	})
}

func (s *Session) handleRoomAdmin(req protocol.Request) (protocol.Response, error) {
	switch req.Code {
	case protocol.CodeCloseRoomRequest:
		return s.closeRoom()
	case protocol.CodeStartGameRequest:
		return s.startGame()
	case protocol.CodeGetRoomStateRequest:
		return s.getRoomState()
	}

	return irrelevant()
}

func (s *Session) closeRoom() (protocol.Response, error) {
	s.rooms.Delete(s.roomID)
	s.state = stateMenu

	return protocol.NewResponse(protocol.CodeCloseRoomResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func (s *Session) startGame() (protocol.Response, error) {
	room, err := s.rooms.Fetch(s.roomID)
	if err != nil {
		return errorResponse(msgRoomNotFound)
	}

	room.SetState(trivia.RoomStateInGame)

	if err := s.enterGame(room); err != nil {
		return protocol.Response{}, fmt.Errorf("enter game: %w", err)
	}

	return protocol.NewResponse(protocol.CodeStartGameResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func (s *Session) handleRoomMember(req protocol.Request) (protocol.Response, error) {
	switch req.Code {
	case protocol.CodeLeaveRoomRequest:
		return s.leaveRoom()
	case protocol.CodeGetRoomStateRequest:
		return s.getRoomState()
	}

	return irrelevant()
}

func (s *Session) leaveRoom() (protocol.Response, error) {
	if room, err := s.rooms.Fetch(s.roomID); err == nil {
		room.RemoveUser(s.username)
	}

	s.state = stateMenu

	return protocol.NewResponse(protocol.CodeLeaveRoomResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

// getRoomState reports the room as the member sees it and follows the room
// through its lifecycle: a vanished room sends the member back to the
// menu, a started game pulls the member in.
func (s *Session) getRoomState() (protocol.Response, error) {
	room, err := s.rooms.Fetch(s.roomID)
	if err != nil {
		s.state = stateMenu
		return protocol.NewResponse(protocol.CodeGetRoomStateResponse, protocol.GetRoomStateResponse{
			Status: protocol.StatusSuccess,
			State:  protocol.RoomClosed,
		})
	}

	data := room.Data()
	resp := protocol.GetRoomStateResponse{
		Status:        protocol.StatusSuccess,
		QuestionCount: data.QuestionCount,
		AnswerTimeout: data.TimePerQuestion,
		State:         wireRoomState(room.State()),
		Players:       room.Members(),
	}

	if s.state == stateRoomMember && room.State() == trivia.RoomStateInGame {
		if err := s.enterGame(room); err != nil {
			return protocol.Response{}, fmt.Errorf("enter game: %w", err)
		}
	}

	return protocol.NewResponse(protocol.CodeGetRoomStateResponse, resp)
}

// enterGame attaches the session to the room's game, creating the game on
// first entry, and flips the session into play.
func (s *Session) enterGame(room *trivia.Room) error {
	data := room.Data()

	game, err := s.games.GetOrCreate(data.ID, data.QuestionCount)
	if err != nil {
		return fmt.Errorf("get or create game: %w", err)
	}

	game.AddPlayer(s.username)

	s.state = stateInGame
	s.game = game
	s.answerTimeout = data.TimePerQuestion
	s.answered = false
	s.outOfQuestions = false
	s.lastCorrectID = trivia.FalseAnswerID

	return nil
}

func (s *Session) handleInGame(req protocol.Request) (protocol.Response, error) {
	switch req.Code {
	case protocol.CodeGetQuestionRequest:
		return s.getQuestion()
	case protocol.CodeSubmitAnswerRequest:
		return s.submitAnswer(req)
	case protocol.CodeGetGameResultRequest:
		return s.getGameResults()
	case protocol.CodeLeaveGameRequest:
		return s.leaveGame()
	}

	return irrelevant()
}

func (s *Session) getQuestion() (protocol.Response, error) {
	s.answered = false

	q, err := s.game.QuestionForUser(s.username)
	if err != nil {
		if !errors.Is(err, trivia.OutOfQuestionsErr) {
			return protocol.Response{}, fmt.Errorf("question for user: %w", err)
		}

		s.outOfQuestions = true
		return protocol.NewResponse(protocol.CodeGetQuestionResponse, protocol.GetQuestionResponse{
			Status:  protocol.StatusFailure,
			Answers: map[string]string{},
		})
	}

	answers := make(map[string]string, len(q.Answers))
	for i, a := range q.Answers {
		answers[fmt.Sprint(i)] = a
	}

	s.questionIssuedAt = time.Now()

	return protocol.NewResponse(protocol.CodeGetQuestionResponse, protocol.GetQuestionResponse{
		Status:   protocol.StatusSuccess,
		Question: q.Text,
		Answers:  answers,
	})
}

// submitAnswer scores the answer on the first call of a round and then
// serves as the poll the client repeats until every player has answered.
// The correct answer id is only revealed once the round resolves.
func (s *Session) submitAnswer(req protocol.Request) (protocol.Response, error) {
	elapsedDeci := uint32(time.Since(s.questionIssuedAt) / (100 * time.Millisecond))

	if !s.answered {
		var r protocol.SubmitAnswerRequest
		if err := json.Unmarshal(req.Body, &r); err != nil {
			return protocol.Response{}, fmt.Errorf("unmarshal submit answer request: %w", err)
		}

		answerID := r.AnswerID
		if elapsedDeci > s.answerTimeout*toDeci {
			elapsedDeci = s.answerTimeout * toDeci
			answerID = trivia.FalseAnswerID
		}

		correctID, err := s.game.SubmitAnswer(s.username, answerID, elapsedDeci)
		if err != nil {
			// the tally is already updated, losing one stat write
			// does not end the game
			s.logger.Errorf("submit answer: %v", err)
		}

		s.answered = true
		s.lastCorrectID = correctID
	}

	if s.game.AllAdvanced() || elapsedDeci > (s.answerTimeout+2)*toDeci {
		return protocol.NewResponse(protocol.CodeSubmitAnswerResponse, protocol.SubmitAnswerResponse{
			Status:          protocol.StatusSuccess,
			CorrectAnswerID: s.lastCorrectID,
		})
	}

	return protocol.NewResponse(protocol.CodeSubmitAnswerResponse, protocol.SubmitAnswerResponse{
		Status:          protocol.StatusFailure,
		CorrectAnswerID: trivia.FalseAnswerID,
	})
}

func (s *Session) getGameResults() (protocol.Response, error) {
	results := s.game.Results()

	wire := make([]protocol.PlayerResults, 0, len(results))
	for _, res := range results {
		retired := uint32(0)
		if res.Retired {
			retired = 1
		}
		wire = append(wire, protocol.PlayerResults{
			Username:           res.Username,
			CorrectAnswerCount: res.CorrectAnswerCount,
			WrongAnswerCount:   res.WrongAnswerCount,
			AverageAnswerTime:  res.AverageAnswerTime,
			HasRetired:         retired,
		})
	}

	// once the player has seen the board after the last question the
	// session returns to the menu
	if s.outOfQuestions {
		s.state = stateMenu
		s.game = nil
	}

	return protocol.NewResponse(protocol.CodeGetGameResultResponse, protocol.GetGameResultsResponse{
		Status:  protocol.StatusSuccess,
		Results: wire,
	})
}

func (s *Session) leaveGame() (protocol.Response, error) {
	s.game.Retire(s.username)
	s.state = stateMenu
	s.game = nil

	return protocol.NewResponse(protocol.CodeLeaveGameResponse, protocol.StatusResponse{Status: protocol.StatusSuccess})
}

func wireRoomState(state trivia.RoomState) uint32 {
	if state == trivia.RoomStateInGame {
		return protocol.RoomStarted
	}
	return protocol.RoomOpened
}

func errorResponse(message string) (protocol.Response, error) {
	return protocol.NewResponse(protocol.CodeErrorResponse, protocol.ErrorResponse{Message: message})
}

func irrelevant() (protocol.Response, error) {
	resp, err := errorResponse(msgIrrelevantRequest)
	if err != nil {
		return protocol.Response{}, err
	}
	return resp, IrrelevantRequestErr
}
