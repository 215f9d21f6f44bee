package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomFixture struct {
	rooms    *fakeRoomRepo
	roster   *fakeRosterRepo
	sessions *fakeSessionRepo
	chat     *fakeChatRepo
	cache    *fakeRoomCache
	svc      *Rooms
}

func newRoomFixture() *roomFixture {
	f := &roomFixture{
		rooms:    newFakeRoomRepo(),
		roster:   &fakeRosterRepo{},
		sessions: newFakeSessionRepo(),
		chat:     &fakeChatRepo{},
		cache:    newFakeRoomCache(),
	}
	f.svc = NewRooms(f.rooms, f.roster, f.sessions, f.chat, f.cache, 5)
	return f
}

func TestCreateRoomSeatsHostAndSession(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	room, err := f.svc.Create(ctx, "host-1", "Dana", 3)
	require.NoError(t, err)
	assert.Len(t, room.Code, 6)
	assert.Equal(t, 3, room.TotalRounds)

	session, err := f.sessions.Get(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "host-1", session.CurrentTurn)
	assert.Equal(t, 1, session.CurrentRound)
	assert.True(t, session.IsActive)

	members, err := f.svc.Members(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "host-1", members[0].UserID)
	assert.Equal(t, "Dana", members[0].DisplayName)

	meta, err := f.cache.GetMeta(ctx, room.Code)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, room.ID, meta.RoomID)
}

func TestCreateRoomDefaultsRounds(t *testing.T) {
	f := newRoomFixture()

	room, err := f.svc.Create(context.Background(), "host-1", "", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, room.TotalRounds)
}

func TestJoinRoomIdempotent(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	room, err := f.svc.Create(ctx, "host-1", "Host", 3)
	require.NoError(t, err)

	first, err := f.svc.Join(ctx, room.Code, "u2", "Pat")
	require.NoError(t, err)

	// Retrying a join keeps the original seat.
	second, err := f.svc.Join(ctx, room.Code, "u2", "Pat again")
	require.NoError(t, err)
	assert.Equal(t, first.JoinedAt, second.JoinedAt)
	assert.Equal(t, "Pat", second.DisplayName)

	members, err := f.svc.Members(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestJoinUnknownCode(t *testing.T) {
	f := newRoomFixture()

	_, err := f.svc.Join(context.Background(), "ZZZZZZ", "u2", "Pat")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinResolvesCodeThroughCache(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	room, err := f.svc.Create(ctx, "host-1", "Host", 3)
	require.NoError(t, err)

	// With the meta entry warm, join never needs the Mongo row.
	require.NoError(t, f.rooms.Delete(ctx, room.ID))
	member, err := f.svc.Join(ctx, room.Code, "u2", "Pat")
	require.NoError(t, err)
	assert.Equal(t, room.ID, member.RoomID)

	// Cold cache falls back to Mongo.
	require.NoError(t, f.rooms.Create(ctx, room))
	require.NoError(t, f.cache.Delete(ctx, room.Code))
	member, err = f.svc.Join(ctx, room.Code, "u3", "Sam")
	require.NoError(t, err)
	assert.Equal(t, room.ID, member.RoomID)
}

func TestEndRoomHostOnly(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	room, err := f.svc.Create(ctx, "host-1", "Host", 3)
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, room.Code, "u2", "Pat")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.End(ctx, room.ID, "u2"), ErrNotHost)

	require.NoError(t, f.svc.End(ctx, room.ID, "host-1"))

	_, err = f.svc.FindByID(ctx, room.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	session, err := f.sessions.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Nil(t, session)
	members, err := f.svc.Members(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
	exists, err := f.cache.Exists(ctx, room.Code)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGeneratedCodesAvoidCollisions(t *testing.T) {
	f := newRoomFixture()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		room, err := f.svc.Create(ctx, "host-1", "Host", 1)
		require.NoError(t, err)
		assert.False(t, seen[room.Code])
		seen[room.Code] = true
		for _, c := range room.Code {
			assert.Contains(t, "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", string(c))
		}
	}
}
