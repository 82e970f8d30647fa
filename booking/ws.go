package booking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"alpacafarm/models"
	"alpacafarm/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// subscriber owns one dashboard connection. Only its writer goroutine writes
// to conn; closing send tells the writer to say goodbye and hang up.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed pushes booking events to connected admin dashboards. It is an
// mq.Emitter so it can sit next to the Redis publisher.
type Feed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
}

func NewFeed() *Feed {
	return &Feed{
		upgrader: websocket.Upgrader{
			// admin panel may be served from another origin; the token is the gate
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// GET /api/admin/bookings/live
func (f *Feed) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Feed] upgrade failed: %v", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	f.add(sub)
	go sub.writer()

	// reads only detect the client going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	f.remove(sub)
}

func (s *subscriber) writer() {
	defer s.conn.Close()
	for msg := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
}

func (f *Feed) add(sub *subscriber) {
	f.mu.Lock()
	f.subs[sub] = struct{}{}
	f.mu.Unlock()
}

// remove is safe to call more than once per subscriber.
func (f *Feed) remove(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub]; ok {
		delete(f.subs, sub)
		close(sub.send)
	}
}

func (f *Feed) Emit(_ context.Context, event mq.ContentEvent) {
	if event.Collection != models.BookingsCollection {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Feed] failed to marshal event: %v", err)
		return
	}
	f.broadcast(data)
}

// broadcast never blocks on a socket. A subscriber whose buffer is full is
// too slow to keep up and gets dropped.
func (f *Feed) broadcast(val []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for sub := range f.subs {
		select {
		case sub.send <- val:
		default:
			log.Printf("[Feed] dropping slow subscriber")
			delete(f.subs, sub)
			close(sub.send)
		}
	}
}

// Subscribers reports how many dashboards are connected.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close drops every connection; used on shutdown.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		delete(f.subs, sub)
		close(sub.send)
	}
}
