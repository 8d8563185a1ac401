package server

import (
	"encoding/json"
	"fmt"
)

// MessageType names a websocket message.
type MessageType string

const (
	// Inbound
	MessageMove     MessageType = "move"
	MessagePosition MessageType = "position"
	MessageUndo     MessageType = "undo"
	MessageEngine   MessageType = "engine"

	// Outbound
	MessageState MessageType = "state"
	MessageError MessageType = "error"
)

// Message is the websocket envelope.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorPayload is the payload of an error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

func newMessage(t MessageType, payload interface{}) Message {
	data, err := json.Marshal(payload)
	if err != nil {
		return errorMessage(err)
	}
	return Message{Type: t, Payload: data}
}

func errorMessage(err error) Message {
	data, _ := json.Marshal(ErrorPayload{Error: err.Error()})
	return Message{Type: MessageError, Payload: data}
}

func errUnknownMessage(t MessageType) error {
	return fmt.Errorf("unknown message type %q", t)
}
