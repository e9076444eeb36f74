package controllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"plantmon/middlewares"
	"plantmon/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	Conn   *websocket.Conn
	UserID uint
}

var (
	wsClients   = make(map[*websocket.Conn]wsClient)
	wsClientsMu sync.Mutex
)

// HandleWebSocket registers a dashboard connection for live notification
// pushes. The read loop exists only to detect the close.
func HandleWebSocket(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wsClientsMu.Lock()
	wsClients[conn] = wsClient{Conn: conn, UserID: userID}
	wsClientsMu.Unlock()

	defer func() {
		wsClientsMu.Lock()
		delete(wsClients, conn)
		wsClientsMu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastNotification pushes a notification to the owning user's open
// dashboard connections.
func BroadcastNotification(n models.Notification) {
	msg, _ := json.Marshal(gin.H{
		"type":         "notification",
		"notification": n,
	})

	wsClientsMu.Lock()
	defer wsClientsMu.Unlock()
	for conn, client := range wsClients {
		if client.UserID != n.UserID {
			continue
		}
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}
