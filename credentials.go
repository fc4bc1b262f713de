package booksclient

import (
	"context"
	"net/http"

	"github.com/dghubble/oauth1"
	"golang.org/x/oauth2"
)

// Credentials holds the authorization material for a connection. Exactly one
// of the two schemes may be populated:
//
//   - OAuth1: ConsumerKey, ConsumerSecret, Token and TokenSecret, all four
//     required together. Requests are signed per-request.
//   - OAuth2: AccessToken alone. Requests carry a bearer token.
//
// Credentials is an immutable value; the scheme is selected once at
// connection build time and never re-evaluated.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string

	AccessToken string
}

// OAuth1Credentials creates OAuth1 signing credentials.
func OAuth1Credentials(consumerKey, consumerSecret, token, tokenSecret string) Credentials {
	return Credentials{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Token:          token,
		TokenSecret:    tokenSecret,
	}
}

// BearerCredentials creates OAuth2 bearer-token credentials.
func BearerCredentials(accessToken string) Credentials {
	return Credentials{AccessToken: accessToken}
}

// authScheme tags the outcome of credential selection.
type authScheme int

const (
	authUnconfigured authScheme = iota
	authOAuth1
	authOAuth2
)

// selectScheme picks the auth scheme for a credentials value. OAuth1 wins
// when its token is set; with neither scheme populated the selection fails
// closed with a configuration error.
func (c Credentials) selectScheme() (authScheme, error) {
	switch {
	case c.Token != "":
		return authOAuth1, nil
	case c.AccessToken != "":
		return authOAuth2, nil
	default:
		return authUnconfigured, NewConfigurationError("must set either token or access_token")
	}
}

// Validate rejects credentials that populate both schemes or only part of
// the OAuth1 quad.
func (c Credentials) Validate() error {
	oauth1Set := c.ConsumerKey != "" || c.ConsumerSecret != "" || c.Token != "" || c.TokenSecret != ""
	if oauth1Set && c.AccessToken != "" {
		return NewConfigurationError("token and access_token are mutually exclusive")
	}
	if oauth1Set {
		if c.ConsumerKey == "" || c.ConsumerSecret == "" || c.Token == "" || c.TokenSecret == "" {
			return NewConfigurationError("oauth1 credentials require consumer key, consumer secret, token and token secret")
		}
	}
	return nil
}

// transport wraps base with the signing middleware for the selected scheme.
func (c Credentials) transport(base http.RoundTripper) (http.RoundTripper, error) {
	scheme, err := c.selectScheme()
	if err != nil {
		return nil, err
	}

	switch scheme {
	case authOAuth1:
		cfg := oauth1.NewConfig(c.ConsumerKey, c.ConsumerSecret)
		token := oauth1.NewToken(c.Token, c.TokenSecret)
		ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: base})
		return cfg.Client(ctx, token).Transport, nil
	case authOAuth2:
		return &oauth2.Transport{
			Base:   base,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.AccessToken}),
		}, nil
	default:
		return nil, NewConfigurationError("must set either token or access_token")
	}
}
