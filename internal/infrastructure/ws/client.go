package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Dispatcher receives decoded envelopes from a client's read pump. The
// hub implements it; Disconnect is called exactly once per client when
// the read pump exits.
type Dispatcher interface {
	Dispatch(c *Client, msg *Inbound)
	Disconnect(c *Client)
}

type Client struct {
	conn     *connWrapper
	Message  chan *WSMessage
	ID       string `json:"id"`
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

func NewClient(conn *websocket.Conn, id, roomID, username string) *Client {
	return &Client{
		conn:     newConnWrapper(conn),
		Message:  make(chan *WSMessage, 64), // buffered to avoid dead-locks on slow clients
		ID:       id,
		RoomID:   roomID,
		Username: username,
	}
}

// Send queues msg for delivery, dropping it if the client is too slow.
func (c *Client) Send(msg *WSMessage) {
	select {
	case c.Message <- msg:
	default:
		log.Printf("client %s buffer full, dropping message", c.ID)
	}
}

func (c *Client) ReadPump(d Dispatcher) {
	defer func() {
		// Disconnect returns once the hub has dropped this client, so
		// closing the channel here cannot race a hub send.
		d.Disconnect(c)
		close(c.Message)
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			break
		}

		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.Send(NewError(c.RoomID, "malformed message"))
			continue
		}

		d.Dispatch(c, &msg)
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (client %s): %v", c.ID, err)
			break
		}
	}
}
