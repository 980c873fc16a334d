package handler

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/refine-admin-api/internal/gridfilter"
	"github.com/noah-isme/refine-admin-api/internal/models"
	appErrors "github.com/noah-isme/refine-admin-api/pkg/errors"
	"github.com/noah-isme/refine-admin-api/pkg/response"
)

type changeSubscriber interface {
	Subscribe(resource string, buffer int) (<-chan []byte, func(), error)
}

type connectionGauge interface {
	LiveConnected(delta int)
}

// LiveConfig tunes the websocket endpoint.
type LiveConfig struct {
	OriginPatterns []string
	BufferSize     int
}

// liveClientMessage is sent by the dashboard to narrow the posts stream to
// the rows its grid currently shows.
type liveClientMessage struct {
	FilterModel *gridfilter.FilterModel `json:"filterModel"`
}

type liveErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LiveHandler streams resource change events over websockets.
type LiveHandler struct {
	events changeSubscriber
	gauge  connectionGauge
	cfg    LiveConfig
	logger *zap.Logger
}

// NewLiveHandler constructs a LiveHandler.
func NewLiveHandler(events changeSubscriber, gauge connectionGauge, cfg LiveConfig, logger *zap.Logger) *LiveHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 16
	}
	return &LiveHandler{events: events, gauge: gauge, cfg: cfg, logger: logger}
}

// Subscribe godoc
// @Summary Live resource updates
// @Description Upgrades to a websocket streaming {channel, type, payload, date} events for the resource. Clients may send {"filterModel": ...} to receive only matching post creations; updates and deletes are always delivered.
// @Tags Live
// @Param resource path string true "posts, categories or roles"
// @Param access_token query string false "Access token when the Authorization header cannot be set"
// @Success 101
// @Failure 404 {object} response.Envelope
// @Router /live/{resource} [get]
func (h *LiveHandler) Subscribe(c *gin.Context) {
	resource := c.Param("resource")
	switch resource {
	case models.ResourcePosts, models.ResourceCategories, models.ResourceRoles:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown live resource"))
		return
	}

	stream, cancel, err := h.events.Subscribe(resource, h.cfg.BufferSize)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to subscribe to changes"))
		return
	}
	defer cancel()

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.cfg.OriginPatterns})
	if err != nil {
		h.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	if h.gauge != nil {
		h.gauge.LiveConnected(1)
		defer h.gauge.LiveConnected(-1)
	}

	ctx, stop := context.WithCancel(c.Request.Context())
	defer stop()

	var filter atomic.Pointer[gridfilter.FilterModel]
	go func() {
		defer stop()
		for {
			var msg liveClientMessage
			if err := wsjson.Read(ctx, conn, &msg); err != nil {
				return
			}
			if msg.FilterModel == nil {
				continue
			}
			if _, err := gridfilter.ToBackendFilter(*msg.FilterModel); err != nil {
				appErr := appErrors.FromError(err)
				_ = wsjson.Write(ctx, conn, liveErrorMessage{Type: "error", Code: appErr.Code, Message: appErr.Message})
				continue
			}
			model := *msg.FilterModel
			filter.Store(&model)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case raw, ok := <-stream:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "event stream closed")
				return
			}
			var event models.ChangeEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				h.logger.Warn("dropping malformed change event", zap.Error(err))
				continue
			}
			if !visible(event, filter.Load()) {
				continue
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				return
			}
		}
	}
}

// visible reports whether a subscriber with the given filter should see the
// event. Only creations are matched against the filter: an update may move a
// row into or out of the current view, and deletes carry no post body.
func visible(event models.ChangeEvent, filter *gridfilter.FilterModel) bool {
	if filter == nil || event.Type != models.ChangeCreated || event.Payload.Post == nil {
		return true
	}
	ok, err := gridfilter.MatchModel(gridfilter.PostRow(*event.Payload.Post), *filter)
	return err == nil && ok
}
