// Package lexws implements a small WebSocket protocol for streaming tokens to remote clients such
// as editors or out-of-process parsers. Its message flow mirrors the graphql-ws protocol:
//
//	client: connection_init    server: connection_ack, ka
//	client: start {source}     server: data {item}..., [error], complete
//	client: stop               server: complete
//	client: connection_terminate
package lexws

import (
	"encoding/json"
)

const WebSocketSubprotocol = "loonge-lex"

// MessageType represents a lexws message type.
type MessageType string

// MessageType represents a lexws message type.
const (
	MessageTypeConnectionInit      MessageType = "connection_init"
	MessageTypeConnectionAck       MessageType = "connection_ack"
	MessageTypeConnectionError     MessageType = "connection_error"
	MessageTypeConnectionKeepAlive MessageType = "ka"
	MessageTypeConnectionTerminate MessageType = "connection_terminate"
	MessageTypeStart               MessageType = "start"
	MessageTypeStop                MessageType = "stop"
	MessageTypeData                MessageType = "data"
	MessageTypeError               MessageType = "error"
	MessageTypeComplete            MessageType = "complete"
)

// Message represents a lexws message. This can be used for both client and server messages.
type Message struct {
	Id      string          `json:"id,omitempty"`
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartPayload is the payload of a start message.
type StartPayload struct {
	Source string `json:"source"`
}
