package events

import (
	"context"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestNATS starts an embedded NATS server and returns its client URL.
func startTestNATS(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(srv.Shutdown)
	require.True(t, srv.ReadyForConnections(5*time.Second), "embedded NATS not ready")
	return srv.ClientURL()
}

func receive(t *testing.T, ch <-chan []byte) string {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		return string(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}

func TestMatches(t *testing.T) {
	cases := []struct {
		pattern, subject string
		want             bool
	}{
		{"admin.posts.created", "admin.posts.created", true},
		{"admin.posts.*", "admin.posts.deleted", true},
		{"admin.*", "admin.posts.deleted", false},
		{"admin.>", "admin.posts.deleted", true},
		{"admin.>", "admin", false},
		{"admin.posts", "admin.posts.created", false},
		{"admin.categories.*", "admin.posts.created", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Matches(tc.pattern, tc.subject), "%s ~ %s", tc.pattern, tc.subject)
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "admin.posts.created", Subject("admin", "posts", "created"))
	assert.Equal(t, "posts.created", Subject("", "posts", "created"))
}

func TestBroker(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	posts, cancelPosts, err := b.Subscribe("admin.posts.*", 4)
	require.NoError(t, err)
	all, cancelAll, err := b.Subscribe("admin.>", 4)
	require.NoError(t, err)
	defer cancelAll()

	require.NoError(t, b.Publish(context.Background(), "admin.posts.created", map[string]int{"id": 1}))
	require.NoError(t, b.Publish(context.Background(), "admin.categories.deleted", map[string]int{"id": 2}))

	assert.JSONEq(t, `{"id":1}`, receive(t, posts))
	assert.JSONEq(t, `{"id":1}`, receive(t, all))
	assert.JSONEq(t, `{"id":2}`, receive(t, all))

	cancelPosts()
	cancelPosts()
	_, ok := <-posts
	assert.False(t, ok)
}

func TestBrokerDropsWhenFull(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel, err := b.Subscribe("x", 1)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, b.Publish(context.Background(), "x", 1))
	require.NoError(t, b.Publish(context.Background(), "x", 2))
	assert.Equal(t, "1", receive(t, ch))
	assert.Empty(t, ch)
}

func TestNATSBusRoundTrip(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSBus(url)
	require.NoError(t, err)
	defer pub.Close()

	sub, err := NewNATSBus(url)
	require.NoError(t, err)
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("admin.posts.>", 8)
	require.NoError(t, err)

	require.NoError(t, pub.Publish(context.Background(), "admin.posts.updated", map[string]any{"ids": []int{3}}))
	assert.JSONEq(t, `{"ids":[3]}`, receive(t, ch))

	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}
