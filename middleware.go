package booksclient

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// loggingTransport logs every round trip with a per-request ID, tagged with
// the fixed component tag. Installed as the outermost middleware layer when
// Config.Verbose is set.
type loggingTransport struct {
	next   http.RoundTripper
	logger zerolog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := uuid.NewString()

	req = req.Clone(req.Context())
	req.Header.Set("X-Request-ID", id)

	t.logger.Debug().
		Str("request_id", id).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("request started")

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Error().
			Str("request_id", id).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("duration", duration).
			Err(err).
			Msg("request failed")
		return nil, err
	}

	evt := t.logger.Debug()
	if resp.StatusCode >= http.StatusBadRequest {
		evt = t.logger.Warn()
	}
	evt.
		Str("request_id", id).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("request completed")

	return resp, err
}
