package protocol

const (
	StatusSuccess uint32 = 1
	StatusFailure uint32 = 0
)

// Room lifecycle values carried in the state field of room listings and
// room-state responses.
const (
	RoomOpened  uint32 = 0
	RoomClosed  uint32 = 1
	RoomStarted uint32 = 2
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type GetPlayersInRoomRequest struct {
	RoomID uint64 `json:"roomId"`
}

type JoinRoomRequest struct {
	RoomID uint64 `json:"roomId"`
}

type CreateRoomRequest struct {
	RoomName      string `json:"roomName"`
	MaxUsers      uint32 `json:"maxUsers"`
	QuestionCount uint32 `json:"questionCount"`
	AnswerTimeout uint32 `json:"answerTimeout"`
}

type SubmitAnswerRequest struct {
	AnswerID uint32 `json:"answerId"`
}

// StatusResponse answers every operation whose result is a bare
// success/failure flag.
type StatusResponse struct {
	Status uint32 `json:"status"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type CreateRoomResponse struct {
	Status uint32 `json:"status"`
	RoomID uint64 `json:"roomId"`
}

type RoomInfo struct {
	ID                   uint64 `json:"id"`
	Name                 string `json:"name"`
	MaxPlayers           uint32 `json:"maxPlayers"`
	NumOfQuestionsInGame uint32 `json:"numOfQuestionsInGame"`
	TimePerQuestion      uint32 `json:"timePerQuestion"`
	State                uint32 `json:"state"`
}

type GetRoomsResponse struct {
	Status uint32     `json:"status"`
	Rooms  []RoomInfo `json:"Rooms"`
}

type GetPlayersInRoomResponse struct {
	Status  uint32   `json:"status"`
	Players []string `json:"players"`
}

// StatisticsResponse carries pre-rendered display lines for both the
// personal-stats and high-score listings.
type StatisticsResponse struct {
	Status     uint32   `json:"status"`
	Statistics []string `json:"statistics"`
}

type GetRoomStateResponse struct {
	Status        uint32   `json:"status"`
	QuestionCount uint32   `json:"questionCount"`
	AnswerTimeout uint32   `json:"answerTimeout"`
	State         uint32   `json:"state"`
	Players       []string `json:"players"`
}

type GetQuestionResponse struct {
	Status   uint32            `json:"status"`
	Question string            `json:"question"`
	Answers  map[string]string `json:"answers"`
}

type SubmitAnswerResponse struct {
	Status          uint32 `json:"status"`
	CorrectAnswerID uint32 `json:"correctAnswerId"`
}

type PlayerResults struct {
	Username           string `json:"username"`
	CorrectAnswerCount uint32 `json:"correctAnswerCount"`
	WrongAnswerCount   uint32 `json:"wrongAnswerCount"`
	AverageAnswerTime  uint32 `json:"averageAnswerTime"`
	HasRetired         uint32 `json:"hasRetired"`
}

type GetGameResultsResponse struct {
	Status  uint32          `json:"status"`
	Results []PlayerResults `json:"results"`
}
