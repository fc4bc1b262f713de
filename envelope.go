package booksclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// envelopeKind tags the three known envelope shapes the upstream API wraps
// payloads in, plus a generic fallback. List queries, attachment endpoints
// and single-entity endpoints each wrap the payload differently, so
// extraction branches on shape rather than trusting a fixed schema.
type envelopeKind int

const (
	envelopeGeneric envelopeKind = iota
	envelopeQueryList
	envelopeAttachableList
)

const (
	queryResponseKey      = "QueryResponse"
	attachableResponseKey = "AttachableResponse"
)

// Result is the normalized outcome of a request.
type Result struct {
	// Value is the extracted payload: a mapping, a sequence, raw bytes for
	// non-JSON responses, or nil for an empty result set.
	Value any
	// Raw is the unparsed response body.
	Raw []byte
	// Degraded reports that parsing or extraction failed and Value holds a
	// best-effort intermediate instead of a fully normalized payload.
	Degraded bool
	// Err is the parse/extraction failure behind a degraded result.
	Err error
}

// detectEnvelope inspects which well-known key is present in a parsed body.
func detectEnvelope(body map[string]any) envelopeKind {
	if _, ok := body[queryResponseKey]; ok {
		return envelopeQueryList
	}
	if _, ok := body[attachableResponseKey]; ok {
		return envelopeAttachableList
	}
	return envelopeGeneric
}

// normalize parses a raw response and, when an entity name is supplied,
// extracts the meaningful payload from the envelope.
//
// Failures while parsing or extracting never propagate by default: the
// diagnostic is logged and the caller receives the best-effort intermediate
// value in a degraded Result. This asymmetry is a deliberate usability
// trade-off for an upstream API that routinely returns malformed and
// non-self-consistent payloads; Config.StrictDecode opts into surfacing
// these failures as errors instead.
func (c *Connection) normalize(resp *RawResponse, entity string) (*Result, error) {
	// Non-JSON bodies (PDF downloads and the like) pass through opaque.
	if !strings.Contains(resp.ContentType(), "json") {
		return &Result{Value: resp.Body, Raw: resp.Body}, nil
	}

	var parsed any
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return c.degrade(entity, resp.Body, resp.Body, err)
	}

	if entity == "" {
		return &Result{Value: parsed, Raw: resp.Body}, nil
	}

	body, ok := parsed.(map[string]any)
	if !ok {
		return &Result{Value: parsed, Raw: resp.Body}, nil
	}

	key := entityKey(entity)

	switch detectEnvelope(body) {
	case envelopeQueryList:
		sub, ok := body[queryResponseKey].(map[string]any)
		if !ok {
			err := fmt.Errorf("%s is not a mapping", queryResponseKey)
			return c.degrade(entity, resp.Body, body[queryResponseKey], err)
		}
		// An empty query response is an empty result set, not an error.
		if len(sub) == 0 {
			return &Result{Raw: resp.Body}, nil
		}
		if v, ok := sub[key]; ok {
			return &Result{Value: v, Raw: resp.Body}, nil
		}
		return &Result{Value: sub, Raw: resp.Body}, nil

	case envelopeAttachableList:
		seq, ok := body[attachableResponseKey].([]any)
		if !ok {
			err := fmt.Errorf("%s is not a sequence", attachableResponseKey)
			return c.degrade(entity, resp.Body, body[attachableResponseKey], err)
		}
		// Empty sequence: the first element is nil by contract.
		if len(seq) == 0 {
			return &Result{Raw: resp.Body}, nil
		}
		first, ok := seq[0].(map[string]any)
		if !ok {
			return &Result{Value: seq[0], Raw: resp.Body}, nil
		}
		if v, ok := first[key]; ok {
			return &Result{Value: v, Raw: resp.Body}, nil
		}
		return &Result{Value: first, Raw: resp.Body}, nil

	default:
		if v, ok := body[key]; ok {
			return &Result{Value: v, Raw: resp.Body}, nil
		}
		c.logger.Debug().
			Str("entity", key).
			Msg("entity key absent from response, returning full body")
		return &Result{Value: body, Raw: resp.Body}, nil
	}
}

// degrade logs a normalization failure and returns the attempted
// intermediate value, or the error itself in strict mode.
func (c *Connection) degrade(entity string, raw []byte, attempted any, err error) (*Result, error) {
	c.logger.Warn().
		Str("entity", entity).
		Bytes("body", raw).
		Err(err).
		Msg("response normalization failed, returning best-effort value")

	if c.strict {
		return nil, NewDecodeError(err, raw)
	}
	return &Result{Value: attempted, Raw: raw, Degraded: true, Err: err}, nil
}
