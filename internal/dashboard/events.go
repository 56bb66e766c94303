package dashboard

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/codeviz/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event types pushed to connected pages.
const (
	eventLoading = "loading"
	eventGraph   = "graph"
	eventError   = "error"
	eventIdle    = "idle"
)

// event is the outgoing WebSocket message format.
type event struct {
	Type      string       `json:"type"`
	Kind      session.Kind `json:"kind,omitempty"`
	DiagramID string       `json:"diagram_id,omitempty"`
	Message   string       `json:"message,omitempty"`
	Loading   bool         `json:"loading"`
}

// hub fans events out to every connected page. Slow subscribers drop
// events rather than block request handlers.
type hub struct {
	mu   sync.Mutex
	subs map[chan event]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan event]struct{})}
}

func (h *hub) subscribe() chan event {
	ch := make(chan event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

func (h *hub) broadcast(ev event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("dashboard: dropping %s event for slow subscriber", ev.Type)
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (d *Dashboard) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ch := d.events.subscribe()
	defer d.events.unsubscribe(ch)

	// The page never sends anything; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("dashboard: websocket read: %v", err)
				}
				return
			}
		}
	}()

	// Send the current state so a late page starts in sync.
	if err := conn.WriteJSON(event{Type: eventIdle, Loading: d.state.Loading()}); err != nil {
		log.Printf("dashboard: websocket write: %v", err)
		return
	}

	for {
		select {
		case <-closed:
			return
		case ev := <-ch:
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("dashboard: websocket write: %v", err)
				return
			}
		}
	}
}
