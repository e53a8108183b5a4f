package core

import (
	"sort"
	"strings"
	"time"
)

// maxChatLog bounds the per-room chat history; oldest entries are dropped.
const maxChatLog = 100

// Settings are the per-room admission and chat switches.
type Settings struct {
	RequireApproval bool
	AllowChat       bool
}

// DefaultSettings returns the room defaults: approval required, chat allowed.
func DefaultSettings() Settings {
	return Settings{RequireApproval: true, AllowChat: true}
}

// Participant is an admitted member of a room.
type Participant struct {
	ID       string
	Name     string
	PeerID   string
	JoinedAt time.Time
	AudioOn  bool
	VideoOn  bool

	// seq is the per-room admission sequence number, used to break join
	// timestamp ties when picking a successor host.
	seq    uint64
	client *Client
}

// WaitingEntry is a join request pending host approval.
type WaitingEntry struct {
	ID          string
	Name        string
	PeerID      string
	RequestedAt time.Time

	client *Client
}

// ChatMessage is one entry of a room's bounded chat log. FromHost captures the
// sender's host status at send time and is never recomputed.
type ChatMessage struct {
	ID       string
	Author   string
	Text     string
	SentAt   time.Time
	SenderID string
	FromHost bool
}

// Room holds all state of one meeting session. It is plain data plus queries;
// every mutation happens on the hub dispatcher goroutine, so there is no lock.
// Invariants: HostID is empty or a key of Participants, and no identifier is
// ever simultaneously a key of Participants and Waiting.
type Room struct {
	ID           string
	CreatedAt    time.Time
	Settings     Settings
	HostID       string
	Participants map[string]*Participant
	Waiting      map[string]*WaitingEntry
	Chat         []ChatMessage

	seq uint64
}

// NewRoom constructs an empty room with the given settings.
func NewRoom(id string, settings Settings) *Room {
	return &Room{
		ID:           id,
		CreatedAt:    time.Now(),
		Settings:     settings,
		Participants: make(map[string]*Participant),
		Waiting:      make(map[string]*WaitingEntry),
	}
}

// NameTaken reports whether name is already used, case-insensitively, by any
// participant or waiting entry.
func (r *Room) NameTaken(name string) bool {
	folded := strings.ToLower(name)
	for _, p := range r.Participants {
		if strings.ToLower(p.Name) == folded {
			return true
		}
	}
	for _, w := range r.Waiting {
		if strings.ToLower(w.Name) == folded {
			return true
		}
	}
	return false
}

// AddParticipant inserts an admitted member keyed by its client ID.
func (r *Room) AddParticipant(c *Client, name, peerID string) *Participant {
	r.seq++
	p := &Participant{
		ID:       c.ID,
		Name:     name,
		PeerID:   peerID,
		JoinedAt: time.Now(),
		AudioOn:  true,
		VideoOn:  true,
		seq:      r.seq,
		client:   c,
	}
	r.Participants[p.ID] = p
	return p
}

// AddWaiting inserts a pending join request keyed by its client ID.
func (r *Room) AddWaiting(c *Client, name, peerID string) *WaitingEntry {
	w := &WaitingEntry{
		ID:          c.ID,
		Name:        name,
		PeerID:      peerID,
		RequestedAt: time.Now(),
		client:      c,
	}
	r.Waiting[w.ID] = w
	return w
}

// NextHost picks the successor when the host departs: the remaining
// participant with the earliest join timestamp, ties broken by admission
// order. Returns nil when the room has no participants left.
func (r *Room) NextHost() *Participant {
	var next *Participant
	for _, p := range r.Participants {
		if next == nil {
			next = p
			continue
		}
		if p.JoinedAt.Before(next.JoinedAt) ||
			(p.JoinedAt.Equal(next.JoinedAt) && p.seq < next.seq) {
			next = p
		}
	}
	return next
}

// AppendChat adds a message to the log, evicting the oldest beyond the bound.
func (r *Room) AppendChat(msg ChatMessage) {
	r.Chat = append(r.Chat, msg)
	if len(r.Chat) > maxChatLog {
		r.Chat = append(r.Chat[:0], r.Chat[len(r.Chat)-maxChatLog:]...)
	}
}

// ChatLog returns a copy of the chat history.
func (r *Room) ChatLog() []ChatMessage {
	out := make([]ChatMessage, len(r.Chat))
	copy(out, r.Chat)
	return out
}

// Empty reports whether the room has neither participants nor waiting entries.
func (r *Room) Empty() bool {
	return len(r.Participants) == 0 && len(r.Waiting) == 0
}

// ParticipantList returns the member snapshot ordered by admission.
func (r *Room) ParticipantList() []ParticipantInfo {
	out := make([]ParticipantInfo, 0, len(r.Participants))
	for _, p := range r.Participants {
		out = append(out, ParticipantInfo{
			ID:       p.ID,
			Name:     p.Name,
			PeerID:   p.PeerID,
			JoinedAt: p.JoinedAt,
			AudioOn:  p.AudioOn,
			VideoOn:  p.VideoOn,
			Host:     p.ID == r.HostID,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return r.Participants[out[i].ID].seq < r.Participants[out[j].ID].seq
	})
	return out
}

// WaitingList returns the pending entries ordered by request time.
func (r *Room) WaitingList() []WaitingInfo {
	out := make([]WaitingInfo, 0, len(r.Waiting))
	for _, w := range r.Waiting {
		out = append(out, WaitingInfo{
			ID:          w.ID,
			Name:        w.Name,
			PeerID:      w.PeerID,
			RequestedAt: w.RequestedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].RequestedAt.Before(out[j].RequestedAt)
	})
	return out
}

// Broadcast sends an event to all participants in the room.
func (r *Room) Broadcast(event *Event) {
	for _, p := range r.Participants {
		deliver(p.client, event)
	}
}

// BroadcastExcept sends an event to all participants but the given one.
func (r *Room) BroadcastExcept(exceptID string, event *Event) {
	for _, p := range r.Participants {
		if p.ID == exceptID {
			continue
		}
		deliver(p.client, event)
	}
}

// deliver pushes an event to a client without blocking the dispatcher.
func deliver(c *Client, event *Event) {
	if c == nil || c.closed {
		return
	}
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
