package trivia

import (
	"fmt"
	"sync"
)

type RoomState uint8

const (
	// RoomStateOpen accepts joins until the admin starts the game.
	RoomStateOpen RoomState = iota + 1
	RoomStateInGame
)

var (
	RoomNotFoundErr = fmt.Errorf("room not found")
	RoomFullErr     = fmt.Errorf("The room is full!")
	MemberExistsErr = fmt.Errorf("already in the room")
)

// RoomData is the immutable part of a room, fixed at creation.
type RoomData struct {
	ID              uint64
	Name            string
	Admin           string
	MaxPlayers      uint32
	QuestionCount   uint32
	TimePerQuestion uint32
}

// Room holds the member list behind its own lock so a capacity check and
// the join it guards happen as one step.
type Room struct {
	data RoomData

	mtx     sync.RWMutex
	state   RoomState
	members []string
}

func NewRoom(data RoomData) *Room {
	r := &Room{data: data, state: RoomStateOpen}
	r.members = append(r.members, data.Admin)
	return r
}

func (r *Room) Data() RoomData {
	return r.data
}

func (r *Room) State() RoomState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.state
}

func (r *Room) SetState(state RoomState) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state = state
}

// AddUser admits the player unless the room is at capacity or the player
// is already a member.
func (r *Room) AddUser(username string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if uint32(len(r.members)) >= r.data.MaxPlayers {
		return RoomFullErr
	}

	for _, m := range r.members {
		if m == username {
			return MemberExistsErr
		}
	}

	r.members = append(r.members, username)
	return nil
}

// RemoveUser drops the player from the member list, a no-op for strangers.
func (r *Room) RemoveUser(username string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for i, m := range r.members {
		if m == username {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

func (r *Room) Members() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	members := make([]string, len(r.members))
	copy(members, r.members)
	return members
}

func NewRooms(nextID uint64) *Rooms {
	if nextID == 0 {
		nextID = 1
	}
	return &Rooms{rooms: map[uint64]*Room{}, nextID: nextID}
}

// Rooms is the registry of live rooms. Identifiers are monotonic for the
// lifetime of the process and seeded past any persisted game.
type Rooms struct {
	mtx    sync.RWMutex
	rooms  map[uint64]*Room
	nextID uint64
}

func (rs *Rooms) Create(admin, name string, maxPlayers, questionCount, timePerQuestion uint32) RoomData {
	rs.mtx.Lock()
	defer rs.mtx.Unlock()

	data := RoomData{
		ID:              rs.nextID,
		Name:            name,
		Admin:           admin,
		MaxPlayers:      maxPlayers,
		QuestionCount:   questionCount,
		TimePerQuestion: timePerQuestion,
	}
	rs.rooms[data.ID] = NewRoom(data)
	rs.nextID++

	return data
}

func (rs *Rooms) Fetch(id uint64) (*Room, error) {
	rs.mtx.RLock()
	defer rs.mtx.RUnlock()

	r, ok := rs.rooms[id]
	if !ok {
		return nil, RoomNotFoundErr
	}

	return r, nil
}

func (rs *Rooms) Delete(id uint64) {
	rs.mtx.Lock()
	defer rs.mtx.Unlock()

	delete(rs.rooms, id)
}

// List snapshots every live room, open and in game alike.
func (rs *Rooms) List() []*Room {
	rs.mtx.RLock()
	defer rs.mtx.RUnlock()

	list := make([]*Room, 0, len(rs.rooms))
	for _, r := range rs.rooms {
		list = append(list, r)
	}

	return list
}
