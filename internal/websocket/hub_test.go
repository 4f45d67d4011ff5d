package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gnome-horoscope/match-server/internal/game"
)

func newTestClient(roomCode, player string, buffer int) *Client {
	return &Client{
		ID:         uuid.New(),
		RoomCode:   roomCode,
		PlayerName: player,
		Send:       make(chan []byte, buffer),
	}
}

func receiveMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestRegisterBroadcastsPlayerCount(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("1234", "Alice", 8)
	hub.Register(client)

	msg := receiveMessage(t, client)
	require.Equal(t, TypePlayerCountChanged, msg.Type)
	require.Equal(t, "1234", msg.RoomCode)

	var payload map[string]int
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	require.Equal(t, 1, payload["players_count"])
}

func TestNotifyReachesEveryChannelInRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := newTestClient("1234", "Alice", 8)
	bob := newTestClient("1234", "Bob", 8)
	other := newTestClient("5678", "Clara", 8)
	hub.Register(alice)
	hub.Register(bob)
	hub.Register(other)

	require.Eventually(t, func() bool {
		return hub.ConnectedCount("1234") == 2 && hub.ConnectedCount("5678") == 1
	}, time.Second, 5*time.Millisecond)

	hub.Notify("1234", game.Event{Type: "round_results", Payload: map[string]int{"question_index": 0}})

	// в буферах могут лежать player_count_changed от регистраций
	for _, c := range []*Client{alice, bob} {
		found := false
		for i := 0; i < 4 && !found; i++ {
			found = receiveMessage(t, c).Type == TypeRoundResults
		}
		require.True(t, found)
	}

	for {
		select {
		case data := <-other.Send:
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			require.NotEqual(t, TypeRoundResults, msg.Type, "client of another room received round results")
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func TestDeadChannelIsEvictedWithoutFailingBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alive := newTestClient("1234", "Bob", 8)
	hub.Register(alive)
	require.Eventually(t, func() bool {
		return hub.ConnectedCount("1234") == 1
	}, time.Second, 5*time.Millisecond)

	// небуферизованный канал без читателя ведет себя как мертвое соединение,
	// первая же рассылка его выбрасывает
	dead := newTestClient("1234", "Alice", 0)
	hub.Register(dead)

	hub.Notify("1234", game.Event{Type: "next_question", Payload: map[string]int{"question_index": 1}})

	// живой канал получил событие, мертвый выброшен
	found := false
	for i := 0; i < 4 && !found; i++ {
		msg := receiveMessage(t, alive)
		found = msg.Type == TypeNextQuestion
	}
	require.True(t, found)

	require.Eventually(t, func() bool {
		return hub.ConnectedCount("1234") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestUnregisterDropsEmptyRoomEntry(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("1234", "Alice", 8)
	hub.Register(client)
	require.Eventually(t, func() bool {
		return hub.ConnectedCount("1234") == 1
	}, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool {
		return hub.ConnectedCount("1234") == 0
	}, time.Second, 5*time.Millisecond)

	// отписка незнакомого клиента ничего не ломает
	hub.Unregister(newTestClient("9999", "Clara", 1))
	require.Equal(t, 0, hub.ConnectedCount("9999"))
}

func TestSendMessageDoesNotBlockOnFullBuffer(t *testing.T) {
	client := newTestClient("1234", "Alice", 1)

	require.NoError(t, client.SendMessage(TypeRoomState, map[string]any{"status": "waiting"}))

	msg := receiveMessage(t, client)
	require.Equal(t, TypeRoomState, msg.Type)
	require.Equal(t, "1234", msg.RoomCode)

	require.NoError(t, client.SendMessage(TypePing, nil))
	require.ErrorIs(t, client.SendMessage(TypePing, nil), ErrClientQueueFull)
}

func TestNotifyUnknownRoomIsNoop(t *testing.T) {
	hub := NewHub()
	// комнат нет, рассылка просто никуда не уходит
	hub.Notify("0000", game.Event{Type: "game_finished", Payload: nil})
}
