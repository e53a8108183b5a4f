package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin    = "join"
	InboundTypeApprove = "approve"
	InboundTypeDeny    = "deny"
	InboundTypeToggle  = "toggle_media"
	InboundTypeChat    = "chat"
	InboundTypeTyping  = "typing"
	InboundTypeRemove  = "remove"
	InboundTypeLeave   = "leave"
	InboundTypePing    = "ping"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
	OutboundTypePong  = "pong"
)

// JoinData requests admission into a room.
type JoinData struct {
	Room string `json:"room"`
	Name string `json:"name"`
	Peer string `json:"peer"`
}

// TargetData addresses a waiting entry or participant for host actions.
type TargetData struct {
	Room   string `json:"room"`
	Target string `json:"target"`
}

// ToggleData flips the sender's audio or video flag.
type ToggleData struct {
	Room    string `json:"room"`
	Kind    string `json:"kind"`
	Enabled bool   `json:"enabled"`
}

// ChatData is a chat message from the client.
type ChatData struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// TypingData signals a typing indicator change.
type TypingData struct {
	Room    string `json:"room"`
	Started bool   `json:"started"`
}

// LeaveData requests to leave a room.
type LeaveData struct {
	Room string `json:"room"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Outbound event names.
const (
	EventAdmission          = "admission"
	EventWaitingList        = "waiting_list"
	EventParticipantJoined  = "participant_joined"
	EventParticipantLeft    = "participant_left"
	EventMediaToggled       = "media_toggled"
	EventChatMessage        = "chat_message"
	EventTyping             = "typing"
	EventRemoved            = "removed"
	EventParticipantRemoved = "participant_removed"
	EventHostTransferred    = "host_transferred"
	EventHostChanged        = "host_changed"
)

// ParticipantData is the wire view of a room member.
type ParticipantData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Peer    string `json:"peer"`
	Joined  int64  `json:"joined"`
	AudioOn bool   `json:"audio_on"`
	VideoOn bool   `json:"video_on"`
	Host    bool   `json:"host"`
}

// WaitingData is the wire view of a pending join request.
type WaitingData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Peer      string `json:"peer"`
	Requested int64  `json:"requested"`
}

// ChatMessageData is the wire view of a chat log entry.
type ChatMessageData struct {
	ID       string `json:"id"`
	Author   string `json:"author"`
	Text     string `json:"text"`
	TS       int64  `json:"ts"`
	SenderID string `json:"sender_id"`
	Host     bool   `json:"host"`
}

// EventAdmissionData answers a join request.
type EventAdmissionData struct {
	Room         string            `json:"room"`
	Status       string            `json:"status"`
	Reason       string            `json:"reason,omitempty"`
	SelfID       string            `json:"self_id,omitempty"`
	HostID       string            `json:"host_id,omitempty"`
	Participants []ParticipantData `json:"participants,omitempty"`
	Chat         []ChatMessageData `json:"chat,omitempty"`
}

// EventWaitingListData carries the waiting-room snapshot for the host.
type EventWaitingListData struct {
	Room    string        `json:"room"`
	Waiting []WaitingData `json:"waiting"`
}

// EventParticipantData announces a membership or host-role change.
type EventParticipantData struct {
	Room        string          `json:"room"`
	Participant ParticipantData `json:"participant"`
}

// EventMediaToggledData announces an audio/video flag change.
type EventMediaToggledData struct {
	Room        string `json:"room"`
	Participant string `json:"participant"`
	Peer        string `json:"peer"`
	Kind        string `json:"kind"`
	Enabled     bool   `json:"enabled"`
}

// EventTypingData relays a typing indicator.
type EventTypingData struct {
	Room        string `json:"room"`
	Participant string `json:"participant"`
	Name        string `json:"name"`
	Started     bool   `json:"started"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
