package utils

import (
	"sync"
)

const (
	EventThreadCreated  = "thread_created"
	EventThreadDeleted  = "thread_deleted"
	EventThreadReported = "thread_reported"
	EventReplyCreated   = "reply_created"
	EventReplyDeleted   = "reply_deleted"
	EventReplyReported  = "reply_reported"
)

// Events lists every event the board services publish.
var Events = []string{
	EventThreadCreated,
	EventThreadDeleted,
	EventThreadReported,
	EventReplyCreated,
	EventReplyDeleted,
	EventReplyReported,
}

type Event struct {
	Event string      `json:"event"`
	Board string      `json:"board"`
	Data  interface{} `json:"data"`
}

type Handler func(event Event)

// EventBus delivers events to synchronous subscribers and to a buffered channel.
// Publishing never blocks: when the channel is full the event is dropped for
// channel readers.
type EventBus struct {
	subscribers map[string][]Handler
	events      chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]Handler),
		events:      make(chan Event, 100),
	}
}

func (eb *EventBus) Publish(event, board string, data interface{}) {
	e := Event{Event: event, Board: board, Data: data}

	eb.mu.RLock()
	handlers := eb.subscribers[event]
	eb.mu.RUnlock()
	for _, h := range handlers {
		h(e)
	}

	select {
	case eb.events <- e:
	default:
	}
}

func (eb *EventBus) Subscribe(event string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[event] = append(eb.subscribers[event], handler)
}

func (eb *EventBus) SubscribeCh() <-chan Event {
	return eb.events
}
