// Package auth guards the websocket endpoint with API keys
package auth

import (
	"crypto/subtle"
	"net/http"
	"sync"
)

const (
	HeaderName = "X-Api-Key"
	QueryParam = "api_key" // Browsers cannot set headers on a websocket handshake
)

// APIKeyAuth provides a simple API key authentication
type APIKeyAuth struct {
	mu        sync.RWMutex
	validKeys map[string]struct{}
}

// NewAPIKeyAuth creates a new API key authentication middleware
func NewAPIKeyAuth(keys []string) *APIKeyAuth {
	a := &APIKeyAuth{validKeys: make(map[string]struct{})}
	for _, key := range keys {
		a.AddKey(key)
	}
	return a
}

// AddKey adds a new valid API key
func (a *APIKeyAuth) AddKey(key string) {
	if key == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.validKeys[key] = struct{}{}
}

// RemoveKey removes a valid API key
func (a *APIKeyAuth) RemoveKey(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.validKeys, key)
}

// Enabled reports whether any key is configured. Without keys every request is let through.
func (a *APIKeyAuth) Enabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.validKeys) > 0
}

// IsValidKey checks if a key is valid
func (a *APIKeyAuth) IsValidKey(key string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	valid := false
	for k := range a.validKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			valid = true
		}
	}
	return valid
}

// Allowed checks the key carried by a request, in the header or the query string.
func (a *APIKeyAuth) Allowed(r *http.Request) bool {
	if !a.Enabled() {
		return true
	}

	key := r.Header.Get(HeaderName)
	if key == "" {
		key = r.URL.Query().Get(QueryParam)
	}
	return key != "" && a.IsValidKey(key)
}
