package rooms

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation targets a room or user that is
// not in the registry.
var ErrNotFound = errors.New("room or user not found")

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsReady bool   `json:"isReady"`
	IsHost  bool   `json:"isHost"`
}

// Room groups connected users. Users keeps insertion order, which is the
// join order and later the dealing order.
type Room struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Users     []User `json:"users"`
	IsPlaying bool   `json:"isPlaying"`
}

// RoomUpdate is a partial room update; nil fields are left untouched.
type RoomUpdate struct {
	Name      *string
	Users     *[]User
	IsPlaying *bool
}

// Registry owns every room. Construct one per server and inject it; all
// mutation goes through its methods, guarded by a single mutex.
type Registry struct {
	mu    sync.Mutex
	rooms []*Room
}

func NewRegistry() *Registry {
	return &Registry{}
}

// CreateRoom allocates an empty room and returns its id. Names are labels,
// not identifiers; duplicates are allowed.
func (r *Registry) CreateRoom(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.rooms = append(r.rooms, &Room{ID: id, Name: name})
	return id
}

// AddUserToRoom joins a user to a room. The first user to join an empty
// room becomes host and starts out ready; re-adding an existing member is a
// no-op.
func (r *Registry) AddUserToRoom(roomID, userID string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByID(roomID)
	if room == nil {
		return Room{}, ErrNotFound
	}

	for _, u := range room.Users {
		if u.ID == userID {
			return snapshot(room), nil
		}
	}

	isHost := len(room.Users) == 0
	room.Users = append(room.Users, User{ID: userID, Name: userID, IsReady: isHost, IsHost: isHost})
	return snapshot(room), nil
}

// RemoveUserFromRoom removes a member from a room. The host flag is not
// reassigned when the host leaves.
func (r *Registry) RemoveUserFromRoom(roomID, userID string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByID(roomID)
	if room == nil {
		return Room{}, ErrNotFound
	}

	room.Users = withoutUser(room.Users, userID)
	return snapshot(room), nil
}

// RemoveUserOnDisconnect removes a user located by id alone, for the case
// where the connection dropped and no room id is known. An emptied room is
// flagged as no longer playing.
func (r *Registry) RemoveUserOnDisconnect(userID string) (Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByUserID(userID)
	if room == nil {
		return Room{}, false
	}

	room.Users = withoutUser(room.Users, userID)
	if len(room.Users) == 0 {
		room.IsPlaying = false
	}
	return snapshot(room), true
}

// ToggleUserReady flips one member's ready flag.
func (r *Registry) ToggleUserReady(userID string) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByUserID(userID)
	if room == nil {
		return Room{}, ErrNotFound
	}

	for i := range room.Users {
		if room.Users[i].ID == userID {
			room.Users[i].IsReady = !room.Users[i].IsReady
		}
	}
	return snapshot(room), nil
}

// UpdateRoomProperties merges the non-nil fields of upd into the room.
func (r *Registry) UpdateRoomProperties(roomID string, upd RoomUpdate) (Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByID(roomID)
	if room == nil {
		return Room{}, ErrNotFound
	}

	if upd.Name != nil {
		room.Name = *upd.Name
	}
	if upd.Users != nil {
		room.Users = append([]User(nil), (*upd.Users)...)
	}
	if upd.IsPlaying != nil {
		room.IsPlaying = *upd.IsPlaying
	}
	return snapshot(room), nil
}

// FindRoomByUserID returns the room a user belongs to, if any.
func (r *Registry) FindRoomByUserID(userID string) (Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByUserID(userID)
	if room == nil {
		return Room{}, false
	}
	return snapshot(room), true
}

// GetRoomByID returns a room by its id.
func (r *Registry) GetRoomByID(roomID string) (Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByID(roomID)
	if room == nil {
		return Room{}, false
	}
	return snapshot(room), true
}

// GetUserByID returns a user from whichever room holds them.
func (r *Registry) GetUserByID(userID string) (User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.roomByUserID(userID)
	if room == nil {
		return User{}, false
	}
	for _, u := range room.Users {
		if u.ID == userID {
			return u, true
		}
	}
	return User{}, false
}

// GetRooms returns a snapshot of every room.
func (r *Registry) GetRooms() []Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, snapshot(room))
	}
	return out
}

// Callers must hold r.mu. Linear scans are fine at the room counts this
// server handles.
func (r *Registry) roomByID(roomID string) *Room {
	for _, room := range r.rooms {
		if room.ID == roomID {
			return room
		}
	}
	return nil
}

func (r *Registry) roomByUserID(userID string) *Room {
	for _, room := range r.rooms {
		for _, u := range room.Users {
			if u.ID == userID {
				return room
			}
		}
	}
	return nil
}

func withoutUser(users []User, userID string) []User {
	out := users[:0]
	for _, u := range users {
		if u.ID != userID {
			out = append(out, u)
		}
	}
	return out
}

func snapshot(room *Room) Room {
	out := *room
	out.Users = append([]User(nil), room.Users...)
	return out
}
