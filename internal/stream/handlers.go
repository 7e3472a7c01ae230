package stream

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ValidTopic rejects names that would collide with the redis channel layout.
func ValidTopic(topic string) bool {
	return topic != "" && len(topic) <= 128 && !strings.ContainsAny(topic, ":*?[] ")
}

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	r.Get("/ws/:topic", func(c *fiber.Ctx) error {
		if !ValidTopic(c.Params("topic")) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid topic")
		}
		return c.Next()
	}, websocket.New(func(c *websocket.Conn) {
		serve(c, hub, c.Params("topic"))
	}))
}

// serve pumps hub payloads to the socket until either side goes away.
// Inbound frames are only read to notice closes and pongs.
func serve(c *websocket.Conn, hub *Hub, topic string) {
	client := hub.Register(topic)
	defer hub.Unregister(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				_ = c.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-ticker.C:
				if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
	hub.Unregister(client)
	<-done
}
