package net

import "InkBoard/internal/geom"

// MessageType tags a message exchanged between a peer and the host.
type MessageType string

const (
	MsgOpen   MessageType = "open"
	MsgPoints MessageType = "points"
	MsgClose  MessageType = "close"
	// MsgError is sent by the host when it rejects a peer message.
	MsgError MessageType = "error"
)

// Message is one JSON frame on the websocket. Points are already in
// drawing space.
type Message struct {
	Type   MessageType  `json:"type"`
	Stroke string       `json:"stroke,omitempty"`
	Points []geom.Point `json:"points,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Path is the HTTP path the hub is mounted on.
const Path = "/ink"

// URL returns the websocket URL of a host listening on addr (host:port).
func URL(addr string) string {
	return "ws://" + addr + Path
}
