package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/gofiber/contrib/websocket"
)

var (
	eventClients = make(map[uint]map[*websocket.Conn]bool)
	eventMu      sync.Mutex
)

func eventChannel(eventId uint) string {
	return fmt.Sprintf("event:%d", eventId)
}

// BroadcastEventSeats publishes the current seat count for an event on its
// Redis channel. No-op when Redis is not configured.
func BroadcastEventSeats(eventId uint) {
	if database.Redis == nil {
		return
	}

	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err != nil {
		log.Printf("broadcast: failed to load event %d: %v", eventId, err)
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"eventId":        event.ID,
		"availableSeats": event.AvailableSeats,
		"totalSeats":     event.TotalSeats,
	})
	if err := database.Redis.Publish(context.Background(), eventChannel(eventId), payload).Err(); err != nil {
		log.Printf("broadcast: publish failed for event %d: %v", eventId, err)
	}
}

// EventSeatSocket keeps a client subscribed to one event's seat updates.
func EventSeatSocket(c *websocket.Conn) {
	id64, _ := strconv.ParseUint(c.Params("id"), 10, 64)
	eventId := uint(id64)

	defer func() {
		eventMu.Lock()
		if eventClients[eventId] != nil {
			delete(eventClients[eventId], c)
		}
		eventMu.Unlock()
		c.Close()
	}()

	eventMu.Lock()
	if eventClients[eventId] == nil {
		eventClients[eventId] = make(map[*websocket.Conn]bool)
	}
	eventClients[eventId][c] = true
	eventMu.Unlock()

	// Initial snapshot.
	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err == nil {
		c.WriteJSON(map[string]interface{}{
			"eventId":        event.ID,
			"availableSeats": event.AvailableSeats,
			"totalSeats":     event.TotalSeats,
		})
	}

	if database.Redis == nil {
		return
	}

	pubsub := database.Redis.Subscribe(context.Background(), eventChannel(eventId))
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		eventMu.Lock()
		for conn := range eventClients[eventId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(eventClients[eventId], conn)
			}
		}
		eventMu.Unlock()
	}
}
