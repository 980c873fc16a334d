package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Broker is the in-process Bus used when no NATS server is configured.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*brokerSub
	closed bool
}

type brokerSub struct {
	pattern string
	ch      chan []byte
}

var _ Bus = (*Broker)(nil)

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*brokerSub)}
}

// Publish delivers event to every matching subscriber without blocking.
func (b *Broker) Publish(_ context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("broker closed")
	}
	for _, sub := range b.subs {
		if !Matches(sub.pattern, subject) {
			continue
		}
		select {
		case sub.ch <- data:
		default:
		}
	}
	return nil
}

// Subscribe implements Bus.
func (b *Broker) Subscribe(subject string, buffer int) (<-chan []byte, func(), error) {
	if buffer <= 0 {
		buffer = 64
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, nil, fmt.Errorf("broker closed")
	}
	b.nextID++
	id := b.nextID
	sub := &brokerSub{pattern: subject, ch: make(chan []byte, buffer)}
	b.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
	return sub.ch, cancel, nil
}

// Close closes every subscriber channel.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
	return nil
}
