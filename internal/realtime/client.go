package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"taskflow/internal/auth"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-host checks are left to the reverse proxy in front of us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one authenticated websocket connection. Its ID doubles as
// the origin id mutating HTTP requests use to be excluded from their
// own board's fan-out.
type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID

	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	boardID uuid.UUID
}

// joinMessage is the only inbound frame the server understands.
type joinMessage struct {
	Type    string    `json:"type"`
	BoardID uuid.UUID `json:"board_id"`
}

// welcomeMessage announces the connection's id so the client can tag
// its subsequent HTTP mutations with it.
type welcomeMessage struct {
	Type     string    `json:"type"`
	ClientID uuid.UUID `json:"client_id"`
}

// ServeWS authenticates the connect-time token, upgrades the
// connection and runs the read/write pumps. The token travels in the
// query string because browsers cannot set headers on websocket
// handshakes.
func ServeWS(hub *Hub, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}

		userIDStr, err := auth.ParseToken(token, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("realtime: upgrade failed: %v", err)
			return
		}

		client := &Client{
			ID:     uuid.New(),
			UserID: userID,
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, sendBuffer),
		}

		welcome, _ := json.Marshal(welcomeMessage{Type: "welcome", ClientID: client.ID})
		client.send <- welcome

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Leave(c)
		c.conn.Close()
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read error for user %s: %v", c.UserID, err)
			}
			return
		}

		var msg joinMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.Type != "join" {
			continue
		}
		c.hub.Join(c, msg.BoardID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
