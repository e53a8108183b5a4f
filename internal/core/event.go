package core

import "time"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventAdmission answers a join request or a later host decision.
	EventAdmission EventKind = iota
	// EventWaitingList delivers the current waiting-room snapshot to the host.
	EventWaitingList
	// EventParticipantJoined notifies existing participants about a new member.
	EventParticipantJoined
	// EventParticipantLeft notifies the room that a member departed.
	EventParticipantLeft
	// EventMediaToggled notifies other participants about a media flag change.
	EventMediaToggled
	// EventChatMessage delivers a chat message to room participants.
	EventChatMessage
	// EventTyping relays a typing indicator to other participants.
	EventTyping
	// EventRemoved tells a participant it was ejected by the host.
	EventRemoved
	// EventParticipantRemoved tells the rest of the room about an ejection.
	EventParticipantRemoved
	// EventHostTransferred tells the new host it now holds the role.
	EventHostTransferred
	// EventHostChanged announces the new host to the whole room.
	EventHostChanged
	// EventError notifies clients about a domain error.
	EventError
)

// AdmissionStatus is the outcome of a join request.
type AdmissionStatus string

const (
	AdmissionHost     AdmissionStatus = "approved-host"
	AdmissionGuest    AdmissionStatus = "approved-guest"
	AdmissionWaiting  AdmissionStatus = "waiting"
	AdmissionRejected AdmissionStatus = "rejected"
)

// Event is sent to clients to describe what happened in the system.
// Exactly one payload pointer is non-nil per kind; Waiting is set for
// EventWaitingList, Participant for the membership and host events.
type Event struct {
	Kind        EventKind
	RoomID      string
	Admission   *AdmissionEvent
	Waiting     []WaitingInfo
	Participant *ParticipantInfo
	Media       *MediaEvent
	Chat        *ChatMessage
	Typing      *TypingEvent
	Error       *CoreError
}

// AdmissionEvent answers a join request. On approval it carries everything a
// freshly admitted participant needs to render the room: its own identifier,
// the current host, the participant snapshot and the chat log.
type AdmissionEvent struct {
	Status       AdmissionStatus
	Reason       string
	SelfID       string
	HostID       string
	Participants []ParticipantInfo
	Chat         []ChatMessage
}

// ParticipantInfo is the externally visible view of a room member.
type ParticipantInfo struct {
	ID       string
	Name     string
	PeerID   string
	JoinedAt time.Time
	AudioOn  bool
	VideoOn  bool
	Host     bool
}

// WaitingInfo is the externally visible view of a pending join request.
type WaitingInfo struct {
	ID          string
	Name        string
	PeerID      string
	RequestedAt time.Time
}

// MediaEvent describes an audio/video flag change.
type MediaEvent struct {
	ParticipantID string
	PeerID        string
	Kind          MediaKind
	Enabled       bool
}

// TypingEvent is an ephemeral typing indicator. Never logged.
type TypingEvent struct {
	ParticipantID string
	Name          string
	Started       bool
}

func errorEvent(roomID, code, msg string) *Event {
	return &Event{Kind: EventError, RoomID: roomID, Error: coreError(code, msg)}
}
