package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	rl := newRateLimiter(5)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.allow("client-a"), "request %d should be allowed", i)
	}
	assert.False(t, rl.allow("client-a"))
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := newRateLimiter(1)
	assert.True(t, rl.allow("client-a"))
	assert.False(t, rl.allow("client-a"))
	assert.True(t, rl.allow("client-b"))
}

func TestClientID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.2.3:54321"
	assert.Equal(t, "10.1.2.3", clientID(req))

	req.RemoteAddr = "weird-addr"
	assert.Equal(t, "weird-addr", clientID(req))
}
