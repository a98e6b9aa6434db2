package messages

import (
	"github.com/tecu23/chess-clock/pkg/clock"
	"github.com/tecu23/chess-clock/pkg/presets"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

// Outbound message types
const (
	Connected         = "CONNECTED"
	Controls          = "CONTROLS"
	Params            = "PARAMS"
	Presets           = "PRESETS"
	SessionCreated    = "SESSION_CREATED"
	ClockUpdated      = "CLOCK_UPDATED"
	MoveCountUpdated  = "MOVE_COUNT_UPDATED"
	GameOver          = "GAME_OVER"
	SessionTerminated = "SESSION_TERMINATED"
	Error             = "ERROR"
)

// OutboundMessage is how we wrap responses before sending
// them to the client
type OutboundMessage struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

type ControlsPayload struct {
	Controls []timecontrol.Info `json:"controls"`
}

type ParamsPayload struct {
	Type   string              `json:"type"`
	Params []timecontrol.Param `json:"params"`
}

type PresetsPayload struct {
	Presets []presets.Preset `json:"presets"`
}

// SessionCreatedPayload represents the payload after a session is created
type SessionCreatedPayload struct {
	SessionID string      `json:"session_id"`
	Type      string      `json:"type"`
	State     clock.State `json:"state"`
}

// ClockUpdatedPayload carries both clocks after they changed
type ClockUpdatedPayload struct {
	SessionID    string             `json:"session_id"`
	Times        clock.Times        `json:"times"`
	ActivePlayer timecontrol.Player `json:"active_player"`
	Status       [2]string          `json:"status"`
}

type MoveCountUpdatedPayload struct {
	SessionID string          `json:"session_id"`
	MoveCount clock.MoveCount `json:"move_count"`
}

// GameOverPayload names the player who ran out of time
type GameOverPayload struct {
	SessionID string             `json:"session_id"`
	Loser     timecontrol.Player `json:"loser"`
}

type SessionTerminatedPayload struct {
	SessionID string `json:"session_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
