package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomAllowsDuplicateNames(t *testing.T) {
	reg := NewRegistry()

	a := reg.CreateRoom("friday night")
	b := reg.CreateRoom("friday night")

	assert.NotEqual(t, a, b)
	assert.Len(t, reg.GetRooms(), 2)
}

func TestFirstJoinerBecomesHost(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")

	room, err := reg.AddUserToRoom(id, "alice")
	require.NoError(t, err)
	require.Len(t, room.Users, 1)
	assert.True(t, room.Users[0].IsHost)
	assert.True(t, room.Users[0].IsReady)

	room, err = reg.AddUserToRoom(id, "bob")
	require.NoError(t, err)
	require.Len(t, room.Users, 2)
	assert.False(t, room.Users[1].IsHost)
	assert.False(t, room.Users[1].IsReady)
}

func TestAddUserToRoomIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")

	_, err := reg.AddUserToRoom(id, "alice")
	require.NoError(t, err)
	room, err := reg.AddUserToRoom(id, "alice")
	require.NoError(t, err)

	assert.Len(t, room.Users, 1)
}

func TestAddUserToRoomUnknownRoom(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.AddUserToRoom("nope", "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinOrderIsPreserved(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")

	for _, u := range []string{"a", "b", "c"} {
		_, err := reg.AddUserToRoom(id, u)
		require.NoError(t, err)
	}

	room, ok := reg.GetRoomByID(id)
	require.True(t, ok)
	got := []string{room.Users[0].ID, room.Users[1].ID, room.Users[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestHostIsNotReassignedWhenHostLeaves(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")
	_, _ = reg.AddUserToRoom(id, "host")
	_, _ = reg.AddUserToRoom(id, "guest")

	room, err := reg.RemoveUserFromRoom(id, "host")
	require.NoError(t, err)

	require.Len(t, room.Users, 1)
	assert.False(t, room.Users[0].IsHost, "remaining member must not inherit host")
}

func TestToggleUserReady(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")
	_, _ = reg.AddUserToRoom(id, "host")
	_, _ = reg.AddUserToRoom(id, "guest")

	room, err := reg.ToggleUserReady("guest")
	require.NoError(t, err)
	assert.True(t, room.Users[1].IsReady)

	room, err = reg.ToggleUserReady("guest")
	require.NoError(t, err)
	assert.False(t, room.Users[1].IsReady)

	_, err = reg.ToggleUserReady("stranger")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveUserOnDisconnect(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")
	_, _ = reg.AddUserToRoom(id, "host")
	_, _ = reg.AddUserToRoom(id, "guest")

	playing := true
	_, err := reg.UpdateRoomProperties(id, RoomUpdate{IsPlaying: &playing})
	require.NoError(t, err)

	room, ok := reg.RemoveUserOnDisconnect("guest")
	require.True(t, ok)
	assert.True(t, room.IsPlaying, "non-empty room keeps its playing flag")

	room, ok = reg.RemoveUserOnDisconnect("host")
	require.True(t, ok)
	assert.Empty(t, room.Users)
	assert.False(t, room.IsPlaying, "emptied room stops playing")

	_, ok = reg.RemoveUserOnDisconnect("host")
	assert.False(t, ok)
}

func TestUpdateRoomPropertiesMergesOnlySetFields(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")
	_, _ = reg.AddUserToRoom(id, "host")

	playing := true
	room, err := reg.UpdateRoomProperties(id, RoomUpdate{IsPlaying: &playing})
	require.NoError(t, err)
	assert.True(t, room.IsPlaying)
	assert.Equal(t, "table", room.Name)
	assert.Len(t, room.Users, 1)

	_, err = reg.UpdateRoomProperties("nope", RoomUpdate{IsPlaying: &playing})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookups(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")
	_, _ = reg.AddUserToRoom(id, "alice")

	room, ok := reg.FindRoomByUserID("alice")
	require.True(t, ok)
	assert.Equal(t, id, room.ID)

	_, ok = reg.FindRoomByUserID("bob")
	assert.False(t, ok)

	user, ok := reg.GetUserByID("alice")
	require.True(t, ok)
	assert.Equal(t, "alice", user.Name)

	_, ok = reg.GetUserByID("bob")
	assert.False(t, ok)
}

func TestSnapshotsDoNotAliasRegistryState(t *testing.T) {
	reg := NewRegistry()
	id := reg.CreateRoom("table")
	_, _ = reg.AddUserToRoom(id, "alice")

	room, _ := reg.GetRoomByID(id)
	room.Users[0].IsReady = false
	room.Name = "changed"

	fresh, _ := reg.GetRoomByID(id)
	assert.Equal(t, "table", fresh.Name)
	assert.True(t, fresh.Users[0].IsReady)
}
