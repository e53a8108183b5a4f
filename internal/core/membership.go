package core

// Membership transitions past admission: media toggles, host-initiated
// removal, voluntary leave and disconnect, and host succession.

func (h *Hub) handleToggleMedia(c *Client, cmd *Command) {
	if cmd.Media != MediaAudio && cmd.Media != MediaVideo {
		return
	}
	// A toggle may race a concurrent departure; a missing room or participant
	// is a silent no-op, not an error.
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		return
	}
	p, ok := room.Participants[c.ID]
	if !ok {
		return
	}

	if cmd.Media == MediaAudio {
		p.AudioOn = cmd.Enabled
	} else {
		p.VideoOn = cmd.Enabled
	}
	room.BroadcastExcept(p.ID, &Event{
		Kind:   EventMediaToggled,
		RoomID: room.ID,
		Media: &MediaEvent{
			ParticipantID: p.ID,
			PeerID:        p.PeerID,
			Kind:          cmd.Media,
			Enabled:       cmd.Enabled,
		},
	})
}

func (h *Hub) handleRemove(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		deliver(c, errorEvent(cmd.RoomID, ErrCodeRoomNotFound, "room not found"))
		return
	}
	if room.HostID != c.ID {
		deliver(c, errorEvent(room.ID, ErrCodeUnauthorized, "only the host may remove participants"))
		return
	}
	target, ok := room.Participants[cmd.TargetID]
	if !ok {
		deliver(c, errorEvent(room.ID, ErrCodeNotFound, "no such participant"))
		return
	}

	info := participantInfo(room, target)
	deliver(target.client, &Event{Kind: EventRemoved, RoomID: room.ID, Participant: info})
	delete(room.Participants, target.ID)
	room.Broadcast(&Event{Kind: EventParticipantRemoved, RoomID: room.ID, Participant: info})

	// The host removing itself vacates the role like any other departure.
	if target.ID == room.HostID {
		h.transferHost(room)
		h.announceHost(room)
	}

	h.scheduleClose(target.client)
	h.evictIfEmpty(room)
	h.log.Info().Str("room_id", room.ID).Str("target_id", target.ID).Msg("participant removed by host")
}

func (h *Hub) handleLeave(c *Client, cmd *Command) {
	room, ok := h.registry.Get(cmd.RoomID)
	if !ok {
		return
	}
	if _, ok := room.Participants[c.ID]; ok {
		h.leaveRoom(room, c.ID)
		return
	}
	if _, ok := room.Waiting[c.ID]; ok {
		delete(room.Waiting, c.ID)
		h.pushWaitingList(room)
		h.evictIfEmpty(room)
	}
}

// leaveRoom removes a participant, reassigns the host role if the departing
// participant held it, and tells the remainder of the room. Succession runs
// before the broadcasts so observers see a single consistent host state.
func (h *Hub) leaveRoom(room *Room, participantID string) {
	p, ok := room.Participants[participantID]
	if !ok {
		return
	}

	info := participantInfo(room, p)
	delete(room.Participants, participantID)

	wasHost := participantID == room.HostID
	if wasHost {
		h.transferHost(room)
	}

	room.Broadcast(&Event{Kind: EventParticipantLeft, RoomID: room.ID, Participant: info})
	if wasHost {
		h.announceHost(room)
	}
	h.evictIfEmpty(room)
	h.log.Info().Str("room_id", room.ID).Str("participant_id", participantID).Msg("participant left")
}

// transferHost reassigns the host role after the holder departed. Successor
// rule: earliest join timestamp among remaining participants, admission order
// breaking ties. With nobody left the role stays vacant until the next join
// bootstraps a host again.
func (h *Hub) transferHost(room *Room) {
	next := room.NextHost()
	if next == nil {
		room.HostID = ""
		return
	}
	room.HostID = next.ID
}

// announceHost notifies the new host and the whole room after a transfer.
func (h *Hub) announceHost(room *Room) {
	host, ok := room.Participants[room.HostID]
	if !ok {
		return
	}
	info := participantInfo(room, host)
	deliver(host.client, &Event{Kind: EventHostTransferred, RoomID: room.ID, Participant: info})
	room.Broadcast(&Event{Kind: EventHostChanged, RoomID: room.ID, Participant: info})
	h.log.Info().Str("room_id", room.ID).Str("host_id", host.ID).Msg("host role transferred")
}
