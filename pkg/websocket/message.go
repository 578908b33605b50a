package websocket

import "time"

// Envelope is the frame sent to board clients; Type tells the client how to read Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
