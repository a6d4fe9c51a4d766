package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"containerops/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const heartbeatInterval = 15 * time.Second

// EventSubscriber is the source of the event stream, usually the broadcast hub.
type EventSubscriber interface {
	Subscribe() (<-chan order.Event, func(), error)
}

// StreamEvents handles GET /api/v1/events. Each order event becomes one server-sent
// event named after its type. Views reload what they show when an event arrives.
func (s *Server) StreamEvents(c echo.Context) error {
	events, cancel, err := s.events.Subscribe()
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, Error{
			Code:    http.StatusServiceUnavailable,
			Message: err.Error(),
		})
	}
	defer cancel()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	if _, err = fmt.Fprint(w, "retry: 5000\n\n"); err != nil {
		return nil
	}
	w.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	var id uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err = fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}

			payload, marshalErr := json.Marshal(newEventResponse(event))
			if marshalErr != nil {
				s.logger.Error("encode event", zap.Error(marshalErr))
				continue
			}

			id++
			if _, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", id, event.Type, payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
