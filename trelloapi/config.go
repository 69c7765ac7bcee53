package trelloapi

import (
	"net/http"
	"strings"
)

// DefaultBaseURL is the public Trello API host.
const DefaultBaseURL = "https://api.trello.com"

// Config is the immutable configuration of a Client. Authentication is part of the value, so
// an authorized and an unauthorized client are simply two clients built from two Configs.
type Config struct {
	// BaseURL is the scheme and host of the API, without a trailing slash.
	BaseURL string
	// Key and Token are sent as the "key" and "token" query parameters of every request.
	Key   string
	Token string
	// HTTPClient is used for all requests; if nil, http.DefaultClient is used.
	HTTPClient *http.Client
}

// Unauthenticated returns a copy of the configuration with an empty key and token.
func (c Config) Unauthenticated() Config {
	c.Key = ""
	c.Token = ""
	return c
}

// HasCredentials returns true if both a key and a token are set.
func (c Config) HasCredentials() bool {
	return c.Key != "" && c.Token != ""
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(c.BaseURL, "/")
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
