package core

// Client is one connected socket as seen by the core layer. The connection
// gateway creates it on accept and feeds Commands from its read loop; the hub
// pushes Events consumed by the write loop. The client ID doubles as the
// participant identifier for the lifetime of the connection.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// closed is owned by the hub dispatcher goroutine. Once set, Events has
	// been closed and no further events are delivered.
	closed bool
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
	}
}
