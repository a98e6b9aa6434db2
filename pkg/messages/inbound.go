package messages

import "encoding/json"

// Inbound message types
const (
	ListControls     = "LIST_CONTROLS"
	GetParams        = "GET_PARAMS"
	ListPresets      = "LIST_PRESETS"
	CreateSession    = "CREATE_SESSION"
	StartClock       = "START_CLOCK"
	PauseClock       = "PAUSE_CLOCK"
	SwitchPlayer     = "SWITCH_PLAYER"
	ResetClock       = "RESET_CLOCK"
	TerminateSession = "TERMINATE_SESSION"
)

// InboundMessage is the generic wrapper for messages coming from the client.
// The "type" field tells us the action; "payload" is the data we parse further.
type InboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// GetParamsPayload asks for the parameter schema of one time control type
type GetParamsPayload struct {
	Type string `json:"type"`
}

// CreateSessionPayload creates a clock either from a preset or from a type and its
// configuration. Preset wins when both are given.
type CreateSessionPayload struct {
	Type   string         `json:"type,omitempty"`
	Config map[string]any `json:"config,omitempty"`
	Preset string         `json:"preset,omitempty"`
}

// SessionPayload addresses an existing session
type SessionPayload struct {
	SessionID string `json:"session_id"`
}
