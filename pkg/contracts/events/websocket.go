// Package events contains the WebSocket message contract of the dashboard toggle channel.
package events

import (
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Client to server: the user's intent ({"monthly": true}).
	MessageTypeIntent MessageType = "dashboard:intent"

	// Server to client: a freshly built dashboard.
	MessageTypeSnapshot MessageType = "dashboard:snapshot"

	// Connection messages
	MessageTypeConnect   MessageType = "connect"
	MessageTypeError     MessageType = "error"
	MessageTypeHeartbeat MessageType = "heartbeat"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// WebSocketMessage represents a complete WebSocket message
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"`
}

// IntentMessage is what the page sends when the toggle changes:
// {"type":"dashboard:intent","data":{"monthly":true},"id":"..."}. A bare {"monthly": true}
// without envelope fields is accepted too; data wins when both are present.
type IntentMessage struct {
	Type    MessageType `json:"type,omitempty"`
	ID      string      `json:"id,omitempty"`
	Data    *IntentData `json:"data,omitempty"`
	Monthly bool        `json:"monthly"`
}

// IntentData is the payload of an intent message.
type IntentData struct {
	Monthly bool `json:"monthly"`
}

// ShowMonthly reports the requested monthly toggle state.
func (m IntentMessage) ShowMonthly() bool {
	if m.Data != nil {
		return m.Data.Monthly
	}
	return m.Monthly
}

// ConnectData is sent once after the upgrade.
type ConnectData struct {
	SessionID string   `json:"session_id"`
	Columns   []string `json:"columns,omitempty"`
}

// ErrorData is the payload of an error message
type ErrorData struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Fatal   bool        `json:"fatal"`
}
