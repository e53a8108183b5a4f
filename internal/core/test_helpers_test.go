package core

import (
	"context"
	"testing"
	"time"
)

func newTestHub(t *testing.T, opts Options) *Hub {
	t.Helper()

	hub := NewHub(nil, opts)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func createRoom(t *testing.T, hub *Hub, settings Settings) string {
	t.Helper()

	id, err := hub.CreateRoom(settings)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	return id
}

func joinRoom(c *Client, roomID, name, peer string) {
	c.Commands <- &Command{Kind: CommandJoinRoom, RoomID: roomID, Name: name, PeerID: peer}
}

// connectHost registers a fresh client and joins it as the bootstrap host.
func connectHost(t *testing.T, hub *Hub, roomID, name string) *Client {
	t.Helper()

	c := NewClient("host-" + name)
	hub.RegisterClient(c)
	joinRoom(c, roomID, name, "peer-"+name)

	ev := mustEvent(t, c.Events, EventAdmission)
	if ev.Admission.Status != AdmissionHost {
		t.Fatalf("expected host admission, got %+v", ev.Admission)
	}
	return c
}

// connectApproved registers a fresh client, joins it, and has the host
// approve it. Drains the host's waiting-list updates along the way.
func connectApproved(t *testing.T, hub *Hub, host *Client, roomID, name string) *Client {
	t.Helper()

	c := NewClient("guest-" + name)
	hub.RegisterClient(c)
	joinRoom(c, roomID, name, "peer-"+name)

	waitEv := mustEvent(t, c.Events, EventAdmission)
	if waitEv.Admission.Status != AdmissionWaiting {
		t.Fatalf("expected waiting admission, got %+v", waitEv.Admission)
	}

	// Skip stale waiting-list updates from earlier approvals; wait for the
	// one that actually lists this joiner.
	mustWaitingEntry(t, host.Events, name)

	host.Commands <- &Command{Kind: CommandApprove, RoomID: roomID, TargetID: c.ID}

	approvedEv := mustEvent(t, c.Events, EventAdmission)
	if approvedEv.Admission.Status != AdmissionGuest {
		t.Fatalf("expected guest admission, got %+v", approvedEv.Admission)
	}
	return c
}

// mustWaitingEntry reads waiting-list events until one names the given
// joiner, discarding earlier (possibly already-empty) snapshots.
func mustWaitingEntry(t *testing.T, ch <-chan *Event, name string) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev := mustEvent(t, ch, EventWaitingList)
		for _, w := range ev.Waiting {
			if w.Name == name {
				return ev
			}
		}
	}
	t.Fatalf("no waiting-list event naming %q received", name)
	return nil
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// ensureNoEvent fails if an event of the given kind arrives within wait.
func ensureNoEvent(t *testing.T, ch <-chan *Event, kind EventKind, wait time.Duration) {
	t.Helper()

	timer := time.After(wait)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		case <-timer:
			return
		}
	}
}

// mustClosed waits for the client's event channel to be closed by the hub.
func mustClosed(t *testing.T, ch <-chan *Event) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("expected events channel to be closed")
		}
	}
}

// checkInvariants verifies the structural room invariants after mutations:
// the host is absent or a participant, and no identifier sits in both the
// participant set and the waiting room.
func checkInvariants(t *testing.T, hub *Hub) {
	t.Helper()

	dumps, err := hub.DebugSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, dump := range dumps {
		participants := make(map[string]bool, len(dump.Participants))
		for _, p := range dump.Participants {
			participants[p.ID] = true
		}
		if dump.HostID != "" && !participants[dump.HostID] {
			t.Fatalf("room %s: host %s is not a participant", dump.ID, dump.HostID)
		}
		for _, w := range dump.Waiting {
			if participants[w.ID] {
				t.Fatalf("room %s: %s is both participant and waiting", dump.ID, w.ID)
			}
		}
	}
}
