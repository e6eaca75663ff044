package events

import (
	"errors"
	"net/http"
	"sync"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	domainAuth "medmate/internal/core/services/auth"
	s "medmate/internal/core/services/get_user_by_session_token"
	"medmate/internal/http/handlers/auth"
	"medmate/internal/http/handlers/response"
	occurrencenotifier "medmate/internal/implementations/occurrence_notifier"

	"github.com/r3labs/sse/v2"
)

// subscribers counts open connections per stream. A user may follow the
// same stream from several tabs.
type subscribers struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *subscribers) add(streamID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[streamID]++
}

// remove reports whether the last subscriber of the stream has left.
func (c *subscribers) remove(streamID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[streamID]--
	if c.counts[streamID] > 0 {
		return false
	}
	delete(c.counts, streamID)
	return true
}

type Handler struct {
	log         logging.Logger
	service     services.Service[s.Input, s.Result]
	sseServer   *sse.Server
	subscribers *subscribers
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{
		log:         log,
		sseServer:   sseServer,
		service:     service,
		subscribers: &subscribers{counts: make(map[string]int)},
	}
}

// ServeHTTP streams due occurrences of the authenticated user. EventSource
// cannot send headers, so the session token may come from the URL.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if token, ok := auth.ParseStreamToken(r); ok {
		r = r.WithContext(domainAuth.WithAuthToken(r.Context(), token))
	}

	result, err := h.service.Run(r.Context(), s.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != occurrencenotifier.StreamID(result.User.ID) {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}

	h.subscribers.add(streamID)
	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from occurrence events.",
			logging.Entry("userID", result.User.ID),
		)
		if h.subscribers.remove(streamID) {
			h.sseServer.RemoveStream(streamID)
		}
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to occurrence events.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("streamID", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
