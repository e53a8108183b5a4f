package core

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Default scheduling delays. Both are tunables, not correctness invariants:
// every deferred action re-checks its precondition when it fires.
const (
	// DefaultGracePeriod is how long an empty room survives before eviction.
	DefaultGracePeriod = 45 * time.Second
	// DefaultCloseDelay is the pause between a deny/remove notice and the
	// forced close of the target connection, so the notice gets delivered.
	DefaultCloseDelay = 500 * time.Millisecond
)

// ErrHubClosed is returned by synchronous hub calls after Run has exited.
var ErrHubClosed = errors.New("hub closed")

// Options tune hub scheduling delays. Zero values fall back to defaults.
type Options struct {
	GracePeriod time.Duration
	CloseDelay  time.Duration
}

type envelope struct {
	client *Client
	cmd    *Command
}

// Hub coordinates all rooms. A single dispatcher goroutine started by Run
// owns every room and client mutation, so handlers never interleave; blocking
// work is pushed out as scheduled tasks that re-validate state when they fire.
type Hub struct {
	registry *Registry
	clients  map[string]*Client

	register   chan *Client
	unregister chan *Client
	inbox      chan envelope
	tasks      chan func()
	done       chan struct{}

	gracePeriod time.Duration
	closeDelay  time.Duration
	log         zerolog.Logger
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger, opts Options) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.CloseDelay <= 0 {
		opts.CloseDelay = DefaultCloseDelay
	}
	return &Hub{
		registry:    NewRegistry(),
		clients:     make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbox:       make(chan envelope, 64),
		tasks:       make(chan func(), 64),
		done:        make(chan struct{}),
		gracePeriod: opts.GracePeriod,
		closeDelay:  opts.CloseDelay,
		log:         logger.With().Str("component", "hub").Logger(),
	}
}

// Run processes connection events and state mutations one at a time until the
// context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			go h.pump(c)
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case env := <-h.inbox:
			h.dispatch(env.client, env.cmd)
		case task := <-h.tasks:
			h.runTask(task)
		}
	}
}

// RegisterClient hands a new connection to the hub. The caller owns the
// Commands channel and closes it when the connection goes away.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient removes a disconnected client from every room it touches.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// pump forwards one client's commands into the dispatcher inbox.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.inbox <- envelope{client: c, cmd: cmd}:
			case <-h.done:
				return
			}
		case <-h.done:
			return
		}
	}
}

// dispatch routes one command to its handler. A panic in a handler is
// contained here: it must not take down the process or corrupt other rooms.
func (h *Hub) dispatch(c *Client, cmd *Command) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Str("client_id", c.ID).Msg("handler panicked")
			deliver(c, errorEvent(cmd.RoomID, ErrCodeInternal, "internal error"))
		}
	}()

	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd)
	case CommandApprove:
		h.handleApprove(c, cmd)
	case CommandDeny:
		h.handleDeny(c, cmd)
	case CommandToggleMedia:
		h.handleToggleMedia(c, cmd)
	case CommandSendChat:
		h.handleSendChat(c, cmd)
	case CommandTyping:
		h.handleTyping(c, cmd)
	case CommandRemoveParticipant:
		h.handleRemove(c, cmd)
	case CommandLeaveRoom:
		h.handleLeave(c, cmd)
	default:
		deliver(c, errorEvent(cmd.RoomID, ErrCodeInternal, "unknown command"))
	}
}

func (h *Hub) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("scheduled task panicked")
		}
	}()
	task()
}

// schedule runs task on the dispatcher goroutine after the delay. The task
// must re-check its precondition: the world may have moved on since.
func (h *Hub) schedule(delay time.Duration, task func()) {
	time.AfterFunc(delay, func() {
		select {
		case h.tasks <- task:
		case <-h.done:
		}
	})
}

// call runs fn on the dispatcher goroutine and waits for it to finish.
// Used by the HTTP layer for reads and room creation.
func (h *Hub) call(fn func()) error {
	ran := make(chan struct{})
	wrapped := func() {
		defer close(ran)
		fn()
	}
	select {
	case h.tasks <- wrapped:
	case <-h.done:
		return ErrHubClosed
	}
	select {
	case <-ran:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// CreateRoom registers a new empty room and returns its identifier.
func (h *Hub) CreateRoom(settings Settings) (string, error) {
	var id string
	err := h.call(func() {
		room := h.registry.Create(settings)
		id = room.ID
		// A room nobody ever joins is still garbage after the grace window.
		h.scheduleEviction(id)
		h.log.Info().Str("room_id", id).
			Bool("require_approval", settings.RequireApproval).
			Bool("allow_chat", settings.AllowChat).
			Msg("room created")
	})
	return id, err
}

// RoomInfo returns the lookup view of one room, or found=false.
func (h *Hub) RoomInfo(id string) (info *RoomInfo, found bool, err error) {
	err = h.call(func() {
		if room, ok := h.registry.Get(id); ok {
			info = room.info()
			found = true
		}
	})
	return info, found, err
}

// Stats aggregates counts across all rooms.
func (h *Hub) Stats() (Stats, error) {
	var s Stats
	err := h.call(func() {
		s.Rooms = h.registry.Len()
		h.registry.Each(func(room *Room) {
			s.Participants += len(room.Participants)
			s.Waiting += len(room.Waiting)
		})
	})
	return s, err
}

// DebugSnapshot dumps every room. Non-production surface.
func (h *Hub) DebugSnapshot() ([]RoomDump, error) {
	var dumps []RoomDump
	err := h.call(func() {
		dumps = make([]RoomDump, 0, h.registry.Len())
		h.registry.Each(func(room *Room) {
			dumps = append(dumps, room.dump())
		})
	})
	return dumps, err
}

// closeClient force-closes a client's event stream. The write loop of the
// connection gateway exits on the closed channel and tears down the socket.
func (h *Hub) closeClient(c *Client) {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	close(c.Events)
}

// scheduleClose force-closes the connection after the close delay, unless the
// client has been admitted somewhere in the meantime.
func (h *Hub) scheduleClose(c *Client) {
	h.schedule(h.closeDelay, func() {
		if _, ok := h.clients[c.ID]; !ok {
			return
		}
		if h.clientInAnyRoom(c.ID) {
			return
		}
		h.log.Debug().Str("client_id", c.ID).Msg("forcing connection close")
		h.closeClient(c)
	})
}

func (h *Hub) clientInAnyRoom(id string) bool {
	found := false
	h.registry.Each(func(room *Room) {
		if _, ok := room.Participants[id]; ok {
			found = true
		}
		if _, ok := room.Waiting[id]; ok {
			found = true
		}
	})
	return found
}

// scheduleEviction deletes the room after the grace period if it is still
// empty. Holds only the room id so a racing join simply wins.
func (h *Hub) scheduleEviction(roomID string) {
	h.schedule(h.gracePeriod, func() {
		room, ok := h.registry.Get(roomID)
		if !ok || !room.Empty() {
			return
		}
		h.registry.Remove(roomID)
		h.log.Info().Str("room_id", roomID).Msg("idle room evicted")
	})
}

// evictIfEmpty arms the eviction timer when a departure emptied the room.
func (h *Hub) evictIfEmpty(room *Room) {
	if room.Empty() {
		h.scheduleEviction(room.ID)
	}
}

// handleDisconnect scans every room for traces of the connection: a
// participant match runs the full leave path, a waiting match just drops the
// entry and refreshes the host's waiting list.
func (h *Hub) handleDisconnect(c *Client) {
	h.registry.Each(func(room *Room) {
		if _, ok := room.Participants[c.ID]; ok {
			h.leaveRoom(room, c.ID)
			return
		}
		if _, ok := room.Waiting[c.ID]; ok {
			delete(room.Waiting, c.ID)
			h.pushWaitingList(room)
			h.evictIfEmpty(room)
		}
	})
	delete(h.clients, c.ID)
	h.closeClient(c)
	h.log.Debug().Str("client_id", c.ID).Msg("client disconnected")
}
