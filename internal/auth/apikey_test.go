package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth_Keys(t *testing.T) {
	a := NewAPIKeyAuth([]string{"alpha", "", "beta"})

	assert.True(t, a.Enabled())
	assert.True(t, a.IsValidKey("alpha"))
	assert.True(t, a.IsValidKey("beta"))
	assert.False(t, a.IsValidKey(""))
	assert.False(t, a.IsValidKey("alph"))

	a.RemoveKey("alpha")
	assert.False(t, a.IsValidKey("alpha"))

	a.AddKey("gamma")
	assert.True(t, a.IsValidKey("gamma"))
}

func TestAPIKeyAuth_Allowed(t *testing.T) {
	a := NewAPIKeyAuth([]string{"secret"})

	r := httptest.NewRequest("GET", "/ws", nil)
	assert.False(t, a.Allowed(r))

	r.Header.Set(HeaderName, "wrong")
	assert.False(t, a.Allowed(r))

	r.Header.Set(HeaderName, "secret")
	assert.True(t, a.Allowed(r))

	assert.True(t, a.Allowed(httptest.NewRequest("GET", "/ws?api_key=secret", nil)))
	assert.False(t, a.Allowed(httptest.NewRequest("GET", "/ws?api_key=nope", nil)))
}

func TestAPIKeyAuth_DisabledWithoutKeys(t *testing.T) {
	a := NewAPIKeyAuth(nil)

	assert.False(t, a.Enabled())
	assert.True(t, a.Allowed(httptest.NewRequest("GET", "/ws", nil)))
}
