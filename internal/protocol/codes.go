package protocol

// Code is the one-byte message discriminator of the wire protocol.
// Requests and responses share a single namespace.
type Code uint8

const (
	CodeLoginRequest Code = iota
	CodeLoginResponse
	CodeSignupRequest
	CodeSignupResponse
	CodeErrorResponse
	CodeLogoutRequest
	CodeLogoutResponse
	CodeGetPlayersInRoomRequest
	CodeGetPlayersInRoomResponse
	CodeJoinRoomRequest
	CodeJoinRoomResponse
	CodeCreateRoomRequest
	CodeCreateRoomResponse
	CodeGetRoomsRequest
	CodeGetRoomsResponse
	CodeGetHighScoreRequest
	CodeGetHighScoreResponse
	CodeGetPersonalStatsRequest
	CodeGetPersonalStatsResponse
	CodeCloseRoomRequest
	CodeCloseRoomResponse
	CodeStartGameRequest
	CodeStartGameResponse
	CodeGetRoomStateRequest
	CodeGetRoomStateResponse
	CodeLeaveRoomRequest
	CodeLeaveRoomResponse
	CodeSubmitAnswerRequest
	CodeSubmitAnswerResponse
	CodeGetQuestionRequest
	CodeGetQuestionResponse
	CodeGetGameResultRequest
	CodeGetGameResultResponse
	CodeLeaveGameRequest
	CodeLeaveGameResponse
)

var codeNames = map[Code]string{
	CodeLoginRequest:             "loginRequest",
	CodeLoginResponse:            "loginResponse",
	CodeSignupRequest:            "signupRequest",
	CodeSignupResponse:           "signupResponse",
	CodeErrorResponse:            "errorResponse",
	CodeLogoutRequest:            "logoutRequest",
	CodeLogoutResponse:           "logoutResponse",
	CodeGetPlayersInRoomRequest:  "getPlayersInRoomRequest",
	CodeGetPlayersInRoomResponse: "getPlayersInRoomResponse",
	CodeJoinRoomRequest:          "joinRoomRequest",
	CodeJoinRoomResponse:         "joinRoomResponse",
	CodeCreateRoomRequest:        "createRoomRequest",
	CodeCreateRoomResponse:       "createRoomResponse",
	CodeGetRoomsRequest:          "getRoomsRequest",
	CodeGetRoomsResponse:         "getRoomsResponse",
	CodeGetHighScoreRequest:      "getHighScoreRequest",
	CodeGetHighScoreResponse:     "getHighScoreResponse",
	CodeGetPersonalStatsRequest:  "getPersonalStatsRequest",
	CodeGetPersonalStatsResponse: "getPersonalStatsResponse",
	CodeCloseRoomRequest:         "closeRoomRequest",
	CodeCloseRoomResponse:        "closeRoomResponse",
	CodeStartGameRequest:         "startGameRequest",
	CodeStartGameResponse:        "startGameResponse",
	CodeGetRoomStateRequest:      "getRoomStateRequest",
	CodeGetRoomStateResponse:     "getRoomStateResponse",
	CodeLeaveRoomRequest:         "leaveRoomRequest",
	CodeLeaveRoomResponse:        "leaveRoomResponse",
	CodeSubmitAnswerRequest:      "submitAnswerRequest",
	CodeSubmitAnswerResponse:     "submitAnswerResponse",
	CodeGetQuestionRequest:       "getQuestionRequest",
	CodeGetQuestionResponse:      "getQuestionResponse",
	CodeGetGameResultRequest:     "getGameResultRequest",
	CodeGetGameResultResponse:    "getGameResultResponse",
	CodeLeaveGameRequest:         "leaveGameRequest",
	CodeLeaveGameResponse:        "leaveGameResponse",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}
