package core

import (
	"time"

	"github.com/google/uuid"
)

// Registry is the process-wide mapping from room identifier to room state.
// It is owned by the hub and only ever touched on the dispatcher goroutine.
type Registry struct {
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create generates a globally unique identifier and an empty room.
func (r *Registry) Create(settings Settings) *Room {
	room := NewRoom(uuid.NewString(), settings)
	r.rooms[room.ID] = room
	return room
}

// Get looks up a room by identifier.
func (r *Registry) Get(id string) (*Room, bool) {
	room, ok := r.rooms[id]
	return room, ok
}

// Remove deletes a room.
func (r *Registry) Remove(id string) {
	delete(r.rooms, id)
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}

// Each calls fn for every room. fn may mutate the visited room but must not
// add or remove rooms.
func (r *Registry) Each(fn func(*Room)) {
	for _, room := range r.rooms {
		fn(room)
	}
}

// RoomInfo is the read-model served by the room lookup endpoint.
type RoomInfo struct {
	ID               string
	CreatedAt        time.Time
	Settings         Settings
	HasHost          bool
	ParticipantCount int
	WaitingCount     int
	Participants     []ParticipantInfo
}

// Stats aggregates counts across all rooms for the health surface.
type Stats struct {
	Rooms        int
	Participants int
	Waiting      int
}

// RoomDump is the full per-room snapshot served by the debug surface.
type RoomDump struct {
	ID           string
	CreatedAt    time.Time
	Settings     Settings
	HostID       string
	Participants []ParticipantInfo
	Waiting      []WaitingInfo
	ChatLength   int
}

func (r *Room) info() *RoomInfo {
	return &RoomInfo{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt,
		Settings:         r.Settings,
		HasHost:          r.HostID != "",
		ParticipantCount: len(r.Participants),
		WaitingCount:     len(r.Waiting),
		Participants:     r.ParticipantList(),
	}
}

func (r *Room) dump() RoomDump {
	return RoomDump{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		Settings:     r.Settings,
		HostID:       r.HostID,
		Participants: r.ParticipantList(),
		Waiting:      r.WaitingList(),
		ChatLength:   len(r.Chat),
	}
}
