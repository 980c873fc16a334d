// Package events carries resource change notifications between the API
// handlers and live subscribers, over NATS or an in-process broker.
package events

import (
	"context"
	"strings"
)

// Bus publishes JSON events to dotted subjects and fans them out to
// subscribers. Subjects support the NATS wildcards "*" (one token) and ">"
// (one or more trailing tokens) on the subscribe side.
type Bus interface {
	Publish(ctx context.Context, subject string, event any) error
	// Subscribe returns a channel of raw payloads. Payloads are dropped when
	// the channel is full. The returned cancel func unsubscribes and closes
	// the channel.
	Subscribe(subject string, buffer int) (<-chan []byte, func(), error)
	Close() error
}

// Subject joins tokens into a dotted subject, skipping empty ones.
func Subject(tokens ...string) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ".")
}

// Matches reports whether subject matches pattern using NATS wildcard rules.
func Matches(pattern, subject string) bool {
	p := strings.Split(pattern, ".")
	s := strings.Split(subject, ".")
	for i, token := range p {
		if token == ">" {
			return len(s) > i
		}
		if i >= len(s) {
			return false
		}
		if token != "*" && token != s[i] {
			return false
		}
	}
	return len(p) == len(s)
}
