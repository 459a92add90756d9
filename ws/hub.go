package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	ProjectClients map[string]map[*websocket.Conn]*Client // keyed by project id
	UserClients    map[string]map[*websocket.Conn]*Client // keyed by user id
	Mutex          sync.RWMutex
}

var H = Hub{
	ProjectClients: make(map[string]map[*websocket.Conn]*Client),
	UserClients:    make(map[string]map[*websocket.Conn]*Client),
}

// ProjectStatusUpdate is pushed to a project room whenever the lifecycle
// changes step or project status.
type ProjectStatusUpdate struct {
	Type      string  `json:"type"`
	ProjectID string  `json:"project_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
}

// UserEvent is pushed to a student's own connections (awards, certificates).
type UserEvent struct {
	Type    string `json:"type"`
	Event   string `json:"event"`
	Message string `json:"message"`
}

func (h *Hub) RegisterProject(projectID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.ProjectClients[projectID]; !ok {
		h.ProjectClients[projectID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.ProjectClients[projectID][conn] = client

	go h.writePump(client)
}

func (h *Hub) UnregisterProject(projectID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.ProjectClients[projectID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.ProjectClients, projectID)
		}
	}
}

func (h *Hub) RegisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.UserClients[userID]; !ok {
		h.UserClients[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.UserClients[userID][conn] = client

	go h.writePump(client)
}

func (h *Hub) UnregisterUser(userID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.UserClients[userID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.UserClients, userID)
		}
	}
}

func (h *Hub) BroadcastProject(projectID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.ProjectClients[projectID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) BroadcastUser(userID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.UserClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// SendProjectStatusUpdate notifies everyone watching a project.
func SendProjectStatusUpdate(projectID, status string, progress float64) {
	update := ProjectStatusUpdate{
		Type:      "project_status",
		ProjectID: projectID,
		Status:    status,
		Progress:  progress,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.BroadcastProject(projectID, data)
}

// SendUserEvent notifies a student's open connections.
func SendUserEvent(userID, event, message string) {
	ev := UserEvent{
		Type:    "user_event",
		Event:   event,
		Message: message,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.BroadcastUser(userID, data)
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
