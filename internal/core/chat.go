package core

import (
	"strings"
	"time"

	"github.com/vkozyrev/huddle-server/internal/utils"
)

// maxChatLen bounds a single message's trimmed length in characters.
const maxChatLen = 500

func (h *Hub) handleSendChat(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		deliver(c, errorEvent(cmd.RoomID, ErrCodeRoomNotFound, "room not found"))
		return
	}
	p, ok := room.Participants[c.ID]
	if !ok {
		deliver(c, errorEvent(room.ID, ErrCodeNotInRoom, "sender is not in the room"))
		return
	}
	if !room.Settings.AllowChat {
		deliver(c, errorEvent(room.ID, ErrCodeChatDisabled, "chat is disabled in this room"))
		return
	}

	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		deliver(c, errorEvent(room.ID, ErrCodeEmptyMessage, "message is empty"))
		return
	}
	if len([]rune(text)) > maxChatLen {
		deliver(c, errorEvent(room.ID, ErrCodeMessageTooLong, "message exceeds 500 characters"))
		return
	}

	msg := ChatMessage{
		ID:       utils.NewID(),
		Author:   p.Name,
		Text:     text,
		SentAt:   time.Now(),
		SenderID: p.ID,
		// Captured at send time, never recomputed.
		FromHost: p.ID == room.HostID,
	}
	room.AppendChat(msg)
	room.Broadcast(&Event{Kind: EventChatMessage, RoomID: room.ID, Chat: &msg})
}

// handleTyping relays a typing indicator to the other participants. Ephemeral
// and never logged; silently dropped when the sender is not in the room.
func (h *Hub) handleTyping(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		return
	}
	p, ok := room.Participants[c.ID]
	if !ok {
		return
	}
	room.BroadcastExcept(p.ID, &Event{
		Kind:   EventTyping,
		RoomID: room.ID,
		Typing: &TypingEvent{ParticipantID: p.ID, Name: p.Name, Started: cmd.Started},
	})
}
