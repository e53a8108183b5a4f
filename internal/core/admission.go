package core

// Admission: who gets into a room, and how. The very first joiner always
// bootstraps as host so every room has governance from creation; everyone
// after that either waits for the host (approval rooms) or walks straight in
// (open rooms), subject to a case-insensitive display-name uniqueness check
// spanning both participants and the waiting room.

func (h *Hub) handleJoin(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		h.rejectJoin(c, cmd.RoomID, ErrCodeRoomNotFound, "room not found")
		return
	}
	if cmd.Name == "" || cmd.PeerID == "" {
		h.rejectJoin(c, room.ID, ErrCodeMissingParameters, "display name and peer id are required")
		return
	}

	// No host and nobody else around: the requester bootstraps as host
	// unconditionally, no uniqueness check needed.
	if room.HostID == "" && room.Empty() {
		h.admit(room, c, cmd.Name, cmd.PeerID, true)
		return
	}

	if room.NameTaken(cmd.Name) {
		h.rejectJoin(c, room.ID, ErrCodeDuplicateName, "display name already in use")
		return
	}

	// Vacant host with entries still waiting: the newcomer re-bootstraps the
	// role, but only after the uniqueness check above.
	if room.HostID == "" {
		h.admit(room, c, cmd.Name, cmd.PeerID, true)
		return
	}

	if !room.Settings.RequireApproval {
		h.admit(room, c, cmd.Name, cmd.PeerID, false)
		return
	}

	room.AddWaiting(c, cmd.Name, cmd.PeerID)
	deliver(c, &Event{
		Kind:      EventAdmission,
		RoomID:    room.ID,
		Admission: &AdmissionEvent{Status: AdmissionWaiting, SelfID: c.ID},
	})
	h.pushWaitingList(room)
	h.log.Info().Str("room_id", room.ID).Str("client_id", c.ID).Str("name", cmd.Name).Msg("join request waiting for host")
}

func (h *Hub) handleApprove(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		deliver(c, errorEvent(cmd.RoomID, ErrCodeRoomNotFound, "room not found"))
		return
	}
	if room.HostID != c.ID {
		deliver(c, errorEvent(room.ID, ErrCodeUnauthorized, "only the host may approve"))
		return
	}
	entry, ok := room.Waiting[cmd.TargetID]
	if !ok {
		deliver(c, errorEvent(room.ID, ErrCodeNotFound, "no such waiting participant"))
		return
	}

	delete(room.Waiting, entry.ID)
	h.admit(room, entry.client, entry.Name, entry.PeerID, false)
	h.pushWaitingList(room)
}

func (h *Hub) handleDeny(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		deliver(c, errorEvent(cmd.RoomID, ErrCodeRoomNotFound, "room not found"))
		return
	}
	if room.HostID != c.ID {
		deliver(c, errorEvent(room.ID, ErrCodeUnauthorized, "only the host may deny"))
		return
	}
	entry, ok := room.Waiting[cmd.TargetID]
	if !ok {
		deliver(c, errorEvent(room.ID, ErrCodeNotFound, "no such waiting participant"))
		return
	}

	delete(room.Waiting, entry.ID)
	deliver(entry.client, &Event{
		Kind:      EventAdmission,
		RoomID:    room.ID,
		Admission: &AdmissionEvent{Status: AdmissionRejected, Reason: ErrCodeDenied, SelfID: entry.ID},
	})
	// Close after a short delay so the denial notice gets out first.
	h.scheduleClose(entry.client)
	h.pushWaitingList(room)
	h.log.Info().Str("room_id", room.ID).Str("target_id", entry.ID).Msg("join request denied")
}

// admit turns a client into a participant: registers it, hands it the chat
// log and the current member snapshot, and announces it to the rest of the
// room. asHost marks the bootstrap join of an empty room.
func (h *Hub) admit(room *Room, c *Client, name, peerID string, asHost bool) {
	p := room.AddParticipant(c, name, peerID)
	if asHost {
		room.HostID = p.ID
	}

	status := AdmissionGuest
	if asHost {
		status = AdmissionHost
	}
	deliver(c, &Event{
		Kind:   EventAdmission,
		RoomID: room.ID,
		Admission: &AdmissionEvent{
			Status:       status,
			SelfID:       p.ID,
			HostID:       room.HostID,
			Participants: room.ParticipantList(),
			Chat:         room.ChatLog(),
		},
	})
	room.BroadcastExcept(p.ID, &Event{
		Kind:        EventParticipantJoined,
		RoomID:      room.ID,
		Participant: participantInfo(room, p),
	})
	// A re-bootstrapping host inherits whoever is still waiting.
	if asHost && len(room.Waiting) > 0 {
		h.pushWaitingList(room)
	}
	h.log.Info().Str("room_id", room.ID).Str("client_id", p.ID).
		Str("name", name).Bool("host", asHost).Msg("participant admitted")
}

func (h *Hub) rejectJoin(c *Client, roomID, code, msg string) {
	deliver(c, &Event{
		Kind:      EventAdmission,
		RoomID:    roomID,
		Admission: &AdmissionEvent{Status: AdmissionRejected, Reason: code},
	})
	h.log.Debug().Str("room_id", roomID).Str("client_id", c.ID).Str("reason", code).Msg(msg)
}

// pushWaitingList sends the current waiting snapshot to the host, if any.
func (h *Hub) pushWaitingList(room *Room) {
	host, ok := room.Participants[room.HostID]
	if !ok {
		return
	}
	deliver(host.client, &Event{
		Kind:    EventWaitingList,
		RoomID:  room.ID,
		Waiting: room.WaitingList(),
	})
}

func participantInfo(room *Room, p *Participant) *ParticipantInfo {
	return &ParticipantInfo{
		ID:       p.ID,
		Name:     p.Name,
		PeerID:   p.PeerID,
		JoinedAt: p.JoinedAt,
		AudioOn:  p.AudioOn,
		VideoOn:  p.VideoOn,
		Host:     p.ID == room.HostID,
	}
}
