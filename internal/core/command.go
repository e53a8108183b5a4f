package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom requests admission into a room.
	CommandJoinRoom CommandKind = iota
	// CommandApprove admits a waiting participant (host only).
	CommandApprove
	// CommandDeny rejects a waiting participant (host only).
	CommandDeny
	// CommandToggleMedia flips the sender's audio or video flag.
	CommandToggleMedia
	// CommandSendChat delivers a chat message to room participants.
	CommandSendChat
	// CommandTyping relays a typing indicator to other participants.
	CommandTyping
	// CommandRemoveParticipant ejects a participant (host only).
	CommandRemoveParticipant
	// CommandLeaveRoom removes the sender from a room it belongs to.
	CommandLeaveRoom
)

// MediaKind selects which media flag a toggle applies to.
type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// Command represents an action requested by a client. Fields beyond RoomID
// are populated per kind: Name/PeerID for joins, TargetID for host actions,
// Media/Enabled for toggles, Text for chat, Started for typing.
type Command struct {
	Kind     CommandKind
	RoomID   string
	Name     string
	PeerID   string
	TargetID string
	Media    MediaKind
	Enabled  bool
	Text     string
	Started  bool
}
