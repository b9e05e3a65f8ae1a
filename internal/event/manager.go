package event

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mtx       sync.RWMutex
	listeners = make([]*Listener, 0)
)

type Listener struct {
	eventType Type
	channel   chan interface{}
}

func AddEventListener(eventType Type, callback func(msg interface{})) {
	zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: AddListener")

	listener := Listener{
		eventType: eventType,
		channel:   make(chan interface{}, 64),
	}

	mtx.Lock()
	listeners = append(listeners, &listener)
	mtx.Unlock()

	go func() {
		for msg := range listener.channel {
			callback(msg)
		}
	}()
}

// EmitEvent delivers msg to every listener registered for eventType. Sends go
// straight into each listener's buffered channel, so one listener always
// receives events in the order they were emitted.
func EmitEvent(eventType Type, msg interface{}) {
	mtx.RLock()
	defer mtx.RUnlock()

	if len(listeners) == 0 {
		zap.L().Debug("No event listeners available")
	}

	for _, listener := range listeners {
		if listener.eventType == eventType {
			zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: Emitting event")
			listener.channel <- msg
		}
	}
}

// Reset drops every listener and ends its delivery goroutine once its buffered
// messages are drained.
func Reset() {
	mtx.Lock()
	defer mtx.Unlock()

	for _, listener := range listeners {
		close(listener.channel)
	}

	listeners = listeners[:0]
}
