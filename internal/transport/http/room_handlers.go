package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vkozyrev/huddle-server/internal/core"
)

// RoomHandlers provides HTTP handlers for the room lifecycle endpoints.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{hub: hub, log: logger}
}

// CreateRoomRequest represents the create room request body. Both switches
// default to the room defaults when omitted.
type CreateRoomRequest struct {
	RequireApproval *bool `json:"require_approval"`
	AllowChat       *bool `json:"allow_chat"`
}

// CreateRoomResponse carries the generated room identifier.
type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

// RoomInfoResponse represents a room in API responses.
type RoomInfoResponse struct {
	ID               string                `json:"id"`
	CreatedAt        string                `json:"created_at"`
	RequireApproval  bool                  `json:"require_approval"`
	AllowChat        bool                  `json:"allow_chat"`
	HasHost          bool                  `json:"has_host"`
	ParticipantCount int                   `json:"participant_count"`
	WaitingCount     int                   `json:"waiting_count"`
	Participants     []ParticipantResponse `json:"participants"`
}

// ParticipantResponse represents a room member in API responses.
type ParticipantResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Peer     string `json:"peer"`
	JoinedAt string `json:"joined_at"`
	AudioOn  bool   `json:"audio_on"`
	VideoOn  bool   `json:"video_on"`
	Host     bool   `json:"host"`
}

// HealthResponse reports aggregate counts for the liveness surface.
type HealthResponse struct {
	Status       string `json:"status"`
	Rooms        int    `json:"rooms"`
	Participants int    `json:"participants"`
	Waiting      int    `json:"waiting"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	// An empty body means default settings; anything unparsable is an error.
	var req CreateRoomRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Debug().Err(err).Msg("invalid create room request")
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	settings := core.DefaultSettings()
	if req.RequireApproval != nil {
		settings.RequireApproval = *req.RequireApproval
	}
	if req.AllowChat != nil {
		settings.AllowChat = *req.AllowChat
	}

	roomID, err := h.hub.CreateRoom(settings)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("room_id", roomID).Msg("room created via api")
	c.JSON(http.StatusCreated, CreateRoomResponse{RoomID: roomID})
}

// GetRoom handles room lookup.
// GET /api/rooms/:id
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	info, found, err := h.hub.RoomInfo(c.Param("id"))
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read room info")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	participants := make([]ParticipantResponse, 0, len(info.Participants))
	for _, p := range info.Participants {
		participants = append(participants, ParticipantResponse{
			ID:       p.ID,
			Name:     p.Name,
			Peer:     p.PeerID,
			JoinedAt: p.JoinedAt.Format(time.RFC3339),
			AudioOn:  p.AudioOn,
			VideoOn:  p.VideoOn,
			Host:     p.Host,
		})
	}

	c.JSON(http.StatusOK, RoomInfoResponse{
		ID:               info.ID,
		CreatedAt:        info.CreatedAt.Format(time.RFC3339),
		RequireApproval:  info.Settings.RequireApproval,
		AllowChat:        info.Settings.AllowChat,
		HasHost:          info.HasHost,
		ParticipantCount: info.ParticipantCount,
		WaitingCount:     info.WaitingCount,
		Participants:     participants,
	})
}

// Health reports aggregate counts.
// GET /health
func (h *RoomHandlers) Health(c *gin.Context) {
	stats, err := h.hub.Stats()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "down"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		Rooms:        stats.Rooms,
		Participants: stats.Participants,
		Waiting:      stats.Waiting,
	})
}

// DebugRooms dumps full room snapshots. Mounted in debug mode only.
// GET /debug/rooms
func (h *RoomHandlers) DebugRooms(c *gin.Context) {
	dumps, err := h.hub.DebugSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dumps)
}
