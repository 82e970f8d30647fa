package mq

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const ContentChannel = "content-events"

// Actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ContentEvent describes one change to a collection.
type ContentEvent struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
	Payload    any       `json:"payload,omitempty"`
}

// Emitter receives content events. Emitting never fails the request that
// caused the change; implementations log their own errors.
type Emitter interface {
	Emit(ctx context.Context, event ContentEvent)
}

// NewEvent stamps an event with the current time.
func NewEvent(collection, action, id string, payload any) ContentEvent {
	return ContentEvent{Collection: collection, Action: action, ID: id, At: time.Now().UTC(), Payload: payload}
}

// RedisEmitter publishes events to a Redis channel.
type RedisEmitter struct {
	Conn    *redis.Client
	Channel string
}

func NewRedisEmitter(conn *redis.Client) *RedisEmitter {
	return &RedisEmitter{Conn: conn, Channel: ContentChannel}
}

func (e *RedisEmitter) Emit(ctx context.Context, event ContentEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] failed to marshal event: %v", err)
		return
	}
	// the request context may already be cancelled by the time we publish
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := e.Conn.Publish(pubCtx, e.Channel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s/%s to %s: %v", event.Collection, event.Action, e.Channel, err)
	}
}

// LogEmitter only logs; used when Redis is not configured.
type LogEmitter struct{}

func (LogEmitter) Emit(_ context.Context, event ContentEvent) {
	log.Printf("[Emit] %s %s %s", event.Collection, event.Action, event.ID)
}

// Multi fans one event out to several emitters.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, event ContentEvent) {
	for _, e := range m {
		if e != nil {
			e.Emit(ctx, event)
		}
	}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []ContentEvent
}

func (r *Recorder) Emit(_ context.Context, event ContentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *Recorder) Events() []ContentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ContentEvent(nil), r.events...)
}
