package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"energy-calculator/entities"
	"energy-calculator/metrics"
	"energy-calculator/usecases"
	"energy-calculator/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Live form message types
const (
	msgSetField   = "set_field"
	msgCalculate  = "calculate"
	msgReset      = "reset"
	msgValidation = "validation"
	msgEstimate   = "estimate"
	msgError      = "error"
)

type incomingMessage struct {
	Type  string `json:"type"` // set_field | calculate | reset
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

type validationMessage struct {
	Type       string                     `json:"type"`
	Validation usecases.ValidationSummary `json:"validation"`
	Selections []entities.Selection       `json:"selections"`
}

type estimateMessage struct {
	Type     string                    `json:"type"`
	Profile  entities.HouseholdProfile `json:"profile"`
	Estimate *entities.EnergyEstimate  `json:"estimate"`
}

type errorMessage struct {
	Type    string   `json:"type"`
	Error   string   `json:"error"`
	Field   string   `json:"field,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// liveConn is one open live form. Replies go to this connection only.
type liveConn struct {
	id   string
	conn ws.Conn
}

// WSHandler groups dependencies for the live form
type WSHandler struct {
	mgr      *ws.Manager
	sessions *usecases.SessionUseCase
}

func NewWSHandler(mgr *ws.Manager, sessions *usecases.SessionUseCase) *WSHandler {
	return &WSHandler{mgr: mgr, sessions: sessions}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleLiveForm upgrades to websocket and applies form edits as they arrive.
// GET /ws?session=<session_id>
func (h *WSHandler) HandleLiveForm(c *gin.Context) {
	sessionID := c.Query("session")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
		return
	}
	session, err := h.sessions.GetSession(c.Request.Context(), sessionID)
	if errors.Is(err, entities.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		zap.L().Error("loading live form session", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	live := liveConn{id: sessionID, conn: conn}
	h.mgr.Register(sessionID, conn)
	metrics.ConnectionOpened()
	zap.L().Info("live form connected", zap.String("session_id", sessionID))

	defer func() {
		h.mgr.Unregister(sessionID, conn)
		metrics.ConnectionClosed()
		zap.L().Info("live form disconnected", zap.String("session_id", sessionID))
	}()

	// first frame mirrors the current state
	h.pushValidation(live, session)
	if session.Calculated {
		h.send(live, estimateMessage{Type: msgEstimate, Profile: session.Profile, Estimate: session.LastEstimate})
	}

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("live form read error", zap.String("session_id", sessionID), zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var msg incomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			h.send(live, errorMessage{Type: msgError, Error: "invalid json"})
			continue
		}
		h.handleMessage(c, live, msg)
	}
}

func (h *WSHandler) handleMessage(c *gin.Context, live liveConn, msg incomingMessage) {
	ctx := c.Request.Context()
	sessionID := live.id

	switch msg.Type {
	case msgSetField:
		session, err := h.sessions.SetField(ctx, sessionID, msg.Field, msg.Value)
		if err != nil {
			h.sendError(live, err)
			return
		}
		h.pushValidation(live, session)

	case msgCalculate:
		session, err := h.sessions.Calculate(ctx, sessionID, usecases.SourceLiveForm)
		if err != nil {
			h.sendError(live, err)
			return
		}
		h.send(live, estimateMessage{Type: msgEstimate, Profile: session.Profile, Estimate: session.LastEstimate})

	case msgReset:
		session, err := h.sessions.Reset(ctx, sessionID)
		if err != nil {
			h.sendError(live, err)
			return
		}
		h.pushValidation(live, session)

	default:
		h.send(live, errorMessage{Type: msgError, Error: "unknown message type: " + msg.Type})
	}
}

func (h *WSHandler) pushValidation(live liveConn, session *entities.Session) {
	h.send(live, validationMessage{
		Type:       msgValidation,
		Validation: usecases.Summarize(session.Profile),
		Selections: session.Profile.Selections(),
	})
}

func (h *WSHandler) sendError(live liveConn, err error) {
	out := errorMessage{Type: msgError, Error: err.Error()}

	var fieldErr *usecases.FieldError
	var incomplete *entities.IncompleteProfileError
	switch {
	case errors.As(err, &fieldErr):
		out.Field = fieldErr.Field
		out.Error = fieldErr.Err.Error()
	case errors.As(err, &incomplete):
		out.Error = "Please fill in all the required fields before calculating"
		out.Missing = incomplete.Missing
	}
	h.send(live, out)
}

func (h *WSHandler) send(live liveConn, v interface{}) {
	if err := h.mgr.SendTo(live.id, live.conn, v); err != nil {
		zap.L().Debug("live form send failed", zap.String("session_id", live.id), zap.Error(err))
	}
}

// GetConnectedSessions GET /api/v1/sessions/connected
func (h *WSHandler) GetConnectedSessions(c *gin.Context) {
	ids := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"sessions": ids, "count": len(ids)})
}
