package client

import (
	"context"
	"filler/communication"
	"fmt"

	"github.com/gorilla/websocket"
)

// Client talks to a game server over one websocket connection. Send and Receive may be
// used from different goroutines, but neither from more than one at a time.
type Client struct {
	conn *websocket.Conn
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Send(m communication.Message) error {
	if err := c.conn.WriteJSON(m); err != nil {
		return fmt.Errorf("failed to send %s: %w", m.Action, err)
	}
	return nil
}

// Receive blocks until the next response. Heartbeats are skipped.
func (c *Client) Receive() (communication.Response, error) {
	for {
		var r communication.Response
		if err := c.conn.ReadJSON(&r); err != nil {
			return communication.Response{}, fmt.Errorf("failed to receive: %w", err)
		}
		if r.Type != communication.TypePing {
			return r, nil
		}
	}
}

func (c *Client) Close() error {
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
