package core

import (
	"testing"
	"time"
)

func TestToggleMediaBroadcastsToOthers(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")
	bob := connectApproved(t, hub, alice, roomID, "bob")

	bob.Commands <- &Command{Kind: CommandToggleMedia, RoomID: roomID, Media: MediaAudio, Enabled: false}

	ev := mustEvent(t, alice.Events, EventMediaToggled)
	if ev.Media.ParticipantID != bob.ID || ev.Media.Kind != MediaAudio || ev.Media.Enabled {
		t.Fatalf("unexpected media event: %+v", ev.Media)
	}
	if ev.Media.PeerID != "peer-bob" {
		t.Fatalf("peer id not carried: %+v", ev.Media)
	}

	// The sender does not receive its own toggle.
	ensureNoEvent(t, bob.Events, EventMediaToggled, 50*time.Millisecond)
}

func TestToggleMediaUnknownRoomIsSilent(t *testing.T) {
	hub := newTestHub(t, Options{})

	alice := NewClient("a")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandToggleMedia, RoomID: "ghost", Media: MediaVideo, Enabled: true}

	// Toggles racing a departure are not errors.
	ensureNoEvent(t, alice.Events, EventError, 50*time.Millisecond)
}

func TestHostRemovesParticipant(t *testing.T) {
	hub := newTestHub(t, Options{CloseDelay: 20 * time.Millisecond})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")
	bob := connectApproved(t, hub, alice, roomID, "bob")

	alice.Commands <- &Command{Kind: CommandRemoveParticipant, RoomID: roomID, TargetID: bob.ID}

	removed := mustEvent(t, bob.Events, EventRemoved)
	if removed.Participant.ID != bob.ID {
		t.Fatalf("unexpected removed notice: %+v", removed.Participant)
	}

	broadcast := mustEvent(t, alice.Events, EventParticipantRemoved)
	if broadcast.Participant.Name != "bob" {
		t.Fatalf("unexpected removal broadcast: %+v", broadcast.Participant)
	}

	info, found, err := hub.RoomInfo(roomID)
	if err != nil || !found {
		t.Fatalf("room info: found=%v err=%v", found, err)
	}
	if info.ParticipantCount != 1 {
		t.Fatalf("expected 1 participant, got %d", info.ParticipantCount)
	}

	mustClosed(t, bob.Events)
	checkInvariants(t, hub)
}

func TestNonHostCannotRemove(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")
	bob := connectApproved(t, hub, alice, roomID, "bob")

	bob.Commands <- &Command{Kind: CommandRemoveParticipant, RoomID: roomID, TargetID: alice.ID}

	ev := mustEvent(t, bob.Events, EventError)
	if ev.Error.Code != ErrCodeUnauthorized {
		t.Fatalf("expected unauthorized, got %+v", ev.Error)
	}
}

func TestRemoveUnknownParticipantIsNotFound(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")

	alice.Commands <- &Command{Kind: CommandRemoveParticipant, RoomID: roomID, TargetID: "nobody"}

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error.Code != ErrCodeNotFound {
		t.Fatalf("expected not_found, got %+v", ev.Error)
	}
}

func TestHostSuccessionOnDisconnect(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")
	bob := connectApproved(t, hub, alice, roomID, "bob")

	hub.UnregisterClient(alice)

	transferred := mustEvent(t, bob.Events, EventHostTransferred)
	if transferred.Participant.ID != bob.ID {
		t.Fatalf("expected bob as new host, got %+v", transferred.Participant)
	}

	changed := mustEvent(t, bob.Events, EventHostChanged)
	if changed.Participant.Name != "bob" || !changed.Participant.Host {
		t.Fatalf("unexpected host broadcast: %+v", changed.Participant)
	}

	info, found, err := hub.RoomInfo(roomID)
	if err != nil || !found {
		t.Fatalf("room info: found=%v err=%v", found, err)
	}
	if info.ParticipantCount != 1 || !info.HasHost {
		t.Fatalf("unexpected room state after succession: %+v", info)
	}
	checkInvariants(t, hub)
}

func TestSuccessionPicksEarliestJoiner(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")
	bob := connectApproved(t, hub, alice, roomID, "bob")
	carol := connectApproved(t, hub, alice, roomID, "carol")

	hub.UnregisterClient(alice)

	changed := mustEvent(t, carol.Events, EventHostChanged)
	if changed.Participant.ID != bob.ID {
		t.Fatalf("expected bob (earliest joiner) as host, got %+v", changed.Participant)
	}
	mustEvent(t, bob.Events, EventHostTransferred)
}

func TestExplicitLeaveBroadcasts(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")
	bob := connectApproved(t, hub, alice, roomID, "bob")

	bob.Commands <- &Command{Kind: CommandLeaveRoom, RoomID: roomID}

	left := mustEvent(t, alice.Events, EventParticipantLeft)
	if left.Participant.Name != "bob" || left.Participant.PeerID != "peer-bob" {
		t.Fatalf("unexpected leave broadcast: %+v", left.Participant)
	}

	info, _, err := hub.RoomInfo(roomID)
	if err != nil {
		t.Fatalf("room info: %v", err)
	}
	if info.ParticipantCount != 1 {
		t.Fatalf("expected 1 participant, got %d", info.ParticipantCount)
	}
}

func TestWaitingDisconnectUpdatesHost(t *testing.T) {
	hub := newTestHub(t, Options{})
	roomID := createRoom(t, hub, DefaultSettings())
	alice := connectHost(t, hub, roomID, "alice")

	bob := NewClient("b")
	hub.RegisterClient(bob)
	joinRoom(bob, roomID, "bob", "peer-b")
	mustEvent(t, bob.Events, EventAdmission)

	list := mustEvent(t, alice.Events, EventWaitingList)
	if len(list.Waiting) != 1 {
		t.Fatalf("expected 1 waiting entry, got %+v", list.Waiting)
	}

	hub.UnregisterClient(bob)

	emptied := mustEvent(t, alice.Events, EventWaitingList)
	if len(emptied.Waiting) != 0 {
		t.Fatalf("expected empty waiting list, got %+v", emptied.Waiting)
	}
	checkInvariants(t, hub)
}
