package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-reservation/models"
)

// Event types
const (
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventTableCreate       = "table_create"
	EventTableUpdate       = "table_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard dan menyiarkan perubahan
// reservasi/meja secara real-time
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient -> menambahkan connection ke set
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastReservationCreate -> reservasi baru dibuat
func BroadcastReservationCreate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationCreate,
		Data:  reservation,
	})
}

// BroadcastReservationUpdate -> status/data reservasi berubah
func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationUpdate,
		Data:  reservation,
	})
}

// BroadcastTableCreate -> meja baru dibuat
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{
		Event: EventTableCreate,
		Data:  table,
	})
}

// BroadcastTableUpdate -> penempatan meja berubah (seat/release)
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("events: failed to marshal message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Client mati dibersihkan saat broadcast berikutnya gagal juga
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
