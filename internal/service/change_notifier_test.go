package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/models"
	"github.com/noah-isme/refine-admin-api/pkg/events"
)

func TestChangeNotifierSubjectsAndFiltering(t *testing.T) {
	broker := events.NewBroker()
	defer broker.Close()
	metrics := NewMetricsService()
	n := NewChangeNotifier(broker, "admin", metrics, zap.NewNop())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	assert.Equal(t, "admin.posts.created", n.Subject(models.ResourcePosts, models.ChangeCreated))

	posts, cancel, err := n.Subscribe(models.ResourcePosts, 4)
	require.NoError(t, err)
	defer cancel()

	n.Notify(context.Background(), models.ResourceCategories, models.ChangeUpdated, models.ChangePayload{IDs: []int64{9}})
	n.Notify(context.Background(), models.ResourcePosts, models.ChangeDeleted, models.ChangePayload{IDs: []int64{1, 2}})

	select {
	case raw := <-posts:
		var evt models.ChangeEvent
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, models.ChangeEvent{
			Channel: "resources/posts",
			Type:    models.ChangeDeleted,
			Payload: models.ChangePayload{IDs: []int64{1, 2}},
			Date:    fixed,
		}, evt)
	case <-time.After(time.Second):
		t.Fatal("expected posts event")
	}
	select {
	case raw := <-posts:
		t.Fatalf("unexpected event %s", raw)
	default:
	}
	assert.Equal(t, uint64(2), metrics.Snapshot().EventsPublished)
}

func TestChangeNotifierNilIsNoop(t *testing.T) {
	var n *ChangeNotifier
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), models.ResourcePosts, models.ChangeCreated, models.ChangePayload{})
	})
}
