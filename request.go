package booksclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	entity  string
	payload any
	params  any
	headers map[string]string
}

// WithEntity sets the plural entity label used to extract the payload from
// the response envelope ("customers", "invoices").
func WithEntity(plural string) RequestOption {
	return func(o *requestOptions) {
		o.entity = plural
	}
}

// WithPayload sets the request body. Required for POST and PUT; ignored for
// GET and DELETE. Accepts any JSON-serializable value, a *MultipartBody on
// multipart connections, raw bytes, or an io.Reader.
func WithPayload(v any) RequestOption {
	return func(o *requestOptions) {
		o.payload = v
	}
}

// WithParams sets query parameters, appended to the path for GET and DELETE.
// Accepts url.Values, map[string]string, or a struct with `url` tags.
func WithParams(v any) RequestOption {
	return func(o *requestOptions) {
		o.params = v
	}
}

// WithHeader adds a request-specific header, overriding connection defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// Request dispatches a single call: it finalizes the path, encodes the body
// for mutating verbs, issues the call through the middleware chain, and
// hands the raw response to the normalizer.
//
// Only GET, POST, PUT and DELETE are supported; any other verb is a caller
// programming error and fails immediately. GET and DELETE never carry a
// body, even when a payload was supplied; POST and PUT require one.
func (c *Connection) Request(ctx context.Context, verb, path string, opts ...RequestOption) (*Result, error) {
	verb = strings.ToUpper(verb)

	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var body io.Reader
	var contentType string

	switch verb {
	case http.MethodGet, http.MethodDelete:
		// No body for reads and deletes.
	case http.MethodPost, http.MethodPut:
		if o.payload == nil {
			return nil, NewInvalidArgumentError(fmt.Sprintf("%s requires a payload", verb))
		}
		var err error
		body, contentType, err = encodePayload(o.payload)
		if err != nil {
			return nil, NewInvalidArgumentError(fmt.Sprintf("encode payload: %v", err))
		}
	default:
		return nil, NewInvalidArgumentError(fmt.Sprintf("unsupported verb %q", verb))
	}

	req, err := http.NewRequestWithContext(ctx, verb, joinURL(c.baseURL, path), body)
	if err != nil {
		return nil, NewInvalidArgumentError(fmt.Sprintf("create request: %v", err))
	}

	if o.params != nil && (verb == http.MethodGet || verb == http.MethodDelete) {
		vals, err := encodeParams(o.params)
		if err != nil {
			return nil, NewInvalidArgumentError(fmt.Sprintf("encode params: %v", err))
		}
		q := req.URL.Query()
		for k, vv := range vals {
			for _, v := range vv {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range o.headers {
		req.Header.Set(k, v)
	}
	// The multipart encoder supplies a boundary-qualified content type that
	// must win over the connection default.
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return c.normalize(raw, o.entity)
}

// Get issues a GET request.
func (c *Connection) Get(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodGet, path, opts...)
}

// Post issues a POST request with a JSON-serialized payload.
func (c *Connection) Post(ctx context.Context, path string, payload any, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodPost, path, append(opts, WithPayload(payload))...)
}

// Put issues a PUT request with a JSON-serialized payload.
func (c *Connection) Put(ctx context.Context, path string, payload any, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodPut, path, append(opts, WithPayload(payload))...)
}

// Delete issues a DELETE request.
func (c *Connection) Delete(ctx context.Context, path string, opts ...RequestOption) (*Result, error) {
	return c.Request(ctx, http.MethodDelete, path, opts...)
}

// do issues the prepared request and raises typed errors for transport
// failures and non-2xx statuses. Transport and HTTP errors always surface;
// they are never swallowed by the normalizer's degradation policy.
func (c *Connection) do(req *http.Request) (*RawResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       data,
	}

	if classErr := classifyStatus(resp.StatusCode, data); classErr != nil {
		return raw, classErr
	}
	return raw, nil
}

// encodePayload converts a payload into a body reader and, for multipart
// bodies, the boundary-qualified content type.
func encodePayload(payload any) (io.Reader, string, error) {
	switch v := payload.(type) {
	case *MultipartBody:
		return v.encode()
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "", nil
	}
}

// encodeParams converts supported parameter shapes into url.Values.
func encodeParams(params any) (url.Values, error) {
	switch v := params.(type) {
	case url.Values:
		return v, nil
	case map[string]string:
		vals := make(url.Values, len(v))
		for k, val := range v {
			vals.Set(k, val)
		}
		return vals, nil
	default:
		return query.Values(params)
	}
}
