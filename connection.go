package booksclient

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// componentTag labels every log entry emitted by this package.
const componentTag = "booksclient"

// Connection is a transport handle bound to a base URL, a default header
// set, and an ordered middleware chain (logging, auth signing, network
// transport; non-2xx statuses are raised as typed errors after the round
// trip). Immutable once built; safe for concurrent reuse to the extent the
// underlying transport is.
type Connection struct {
	baseURL       string
	legacyBaseURL string
	headers       map[string]string
	httpClient    *http.Client
	logger        zerolog.Logger
	strict        bool
}

// AuthorizedJSONConnection builds a connection that encodes request bodies
// as JSON. Header overrides in cfg.Headers are merged over the built-in
// defaults (Accept: application/json;charset=UTF-8, Content-Type:
// application/json).
func AuthorizedJSONConnection(cfg Config, creds Credentials) (*Connection, error) {
	return newConnection(cfg, creds, map[string]string{
		"Accept":       "application/json;charset=UTF-8",
		"Content-Type": "application/json",
	})
}

// AuthorizedMultipartConnection builds a connection for multipart uploads.
// The multipart encoder sets the boundary-qualified Content-Type on each
// request.
func AuthorizedMultipartConnection(cfg Config, creds Credentials) (*Connection, error) {
	return newConnection(cfg, creds, map[string]string{
		"Accept":       "application/json;charset=UTF-8",
		"Content-Type": "multipart/form-data",
	})
}

func newConnection(cfg Config, creds Credentials, defaults map[string]string) (*Connection, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport.(*http.Transport).Clone()
	}

	rt, err := creds.transport(base)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", componentTag).Logger()

	// Detailed logger sits outermost so it observes the signed request.
	if cfg.Verbose {
		rt = &loggingTransport{next: rt, logger: logger}
	}

	headers := make(map[string]string, len(defaults)+len(cfg.Headers))
	for k, v := range defaults {
		headers[k] = v
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &Connection{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		legacyBaseURL: strings.TrimRight(cfg.LegacyBaseURL, "/"),
		headers:       headers,
		httpClient: &http.Client{
			Transport: rt,
			Timeout:   cfg.Timeout,
		},
		logger: logger,
		strict: cfg.StrictDecode,
	}, nil
}

// joinURL resolves a request path against a base URL. Absolute paths pass
// through unchanged.
func joinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
