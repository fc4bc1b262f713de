// Package booksclient is an HTTP client adapter for the accounting-platform
// REST API. It builds authenticated connections (OAuth1 request signing or
// OAuth2 bearer tokens, mutually exclusive), dispatches JSON or multipart
// requests, and unwraps the API's inconsistent response envelopes into
// caller-usable values.
//
// # Basic Usage
//
//	conn, err := booksclient.AuthorizedJSONConnection(booksclient.Config{
//	    BaseURL: "https://api.example.com/v3/company/123",
//	}, booksclient.BearerCredentials("my-access-token"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := conn.Get(ctx, "/query",
//	    booksclient.WithEntity("customers"),
//	    booksclient.WithParams(map[string]string{"query": "select * from Customer"}),
//	)
//
// # Response envelopes
//
// The upstream API wraps payloads in one of three envelope shapes depending
// on the endpoint (query lists, attachment lists, single entities). When an
// entity name is supplied, the normalizer branches on the envelope shape and
// extracts the meaningful payload; non-JSON responses (PDF downloads and the
// like) pass through as raw bytes. Malformed responses degrade rather than
// fail: the Result carries the best-effort value together with the decode
// error, unless Config.StrictDecode is set.
package booksclient
