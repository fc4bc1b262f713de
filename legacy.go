package booksclient

import "context"

// Disconnect calls the legacy disconnect endpoint. The response passes
// through the normalizer with no entity name, so the full parsed body is
// returned.
func (c *Connection) Disconnect(ctx context.Context) (*Result, error) {
	return c.Get(ctx, joinURL(c.legacyBaseURL, "/disconnect"))
}

// Reconnect calls the legacy reconnect endpoint.
func (c *Connection) Reconnect(ctx context.Context) (*Result, error) {
	return c.Get(ctx, joinURL(c.legacyBaseURL, "/reconnect"))
}
