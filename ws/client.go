package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Client is one live websocket connection. UserID stays empty until the
// connection identifies itself with an onlineUser event.
type Client struct {
	Conn   *websocket.Conn
	UserID string

	writeMu sync.Mutex
}

// WriteJSON serializes concurrent writes on the same connection.
func (c *Client) WriteJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}
