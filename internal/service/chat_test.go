package service

import (
	"context"
	"testing"
	"time"

	"emojiparty/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSendAndList(t *testing.T) {
	rooms := newFakeRoomRepo()
	chat := NewChat(rooms, &fakeChatRepo{})
	ctx := context.Background()

	require.NoError(t, rooms.Create(ctx, &model.Room{ID: "room-1", Code: "ABCDEF", HostID: "host", CreatedAt: time.Now()}))

	require.NoError(t, chat.Send(ctx, "room-1", "u1", "gg"))
	require.NoError(t, chat.Send(ctx, "room-1", "u2", "close one"))

	msgs, err := chat.Messages(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "gg", msgs[0].Message)
	assert.Equal(t, "u2", msgs[1].SenderID)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestChatUnknownRoom(t *testing.T) {
	chat := NewChat(newFakeRoomRepo(), &fakeChatRepo{})
	ctx := context.Background()

	assert.ErrorIs(t, chat.Send(ctx, "missing", "u1", "hello?"), ErrRoomNotFound)
	_, err := chat.Messages(ctx, "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
