package net

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"InkBoard/internal/geom"
	"InkBoard/internal/logger"
)

// Client streams local strokes to a host.
type Client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	errors chan Message
	done   chan struct{}
}

// Dial connects to the hub at url (see URL).
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{
		conn:   conn,
		errors: make(chan Message, 16),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// readLoop collects host rejections until the connection ends.
func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.errors)
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != MsgError {
			continue
		}
		select {
		case c.errors <- msg:
		default:
			logger.Logger().Warn("dropping host error", "stroke", msg.Stroke, "error", msg.Error)
		}
	}
}

// Errors delivers messages the host rejected. It is closed when the
// connection ends.
func (c *Client) Errors() <-chan Message {
	return c.errors
}

// Done is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Open starts a stroke on the host.
func (c *Client) Open(id string, points ...geom.Point) error {
	return c.send(Message{Type: MsgOpen, Stroke: id, Points: points})
}

// Points appends samples to an open stroke.
func (c *Client) Points(id string, points ...geom.Point) error {
	return c.send(Message{Type: MsgPoints, Stroke: id, Points: points})
}

// CloseStroke ends a stroke, as releasing the pointer would.
func (c *Client) CloseStroke(id string) error {
	return c.send(Message{Type: MsgClose, Stroke: id})
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	c.mu.Unlock()

	select {
	case <-c.done:
	case <-time.After(time.Second):
	}
	return c.conn.Close()
}
