package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3)
	assert.True(t, rl.Allow("a@x"))
	assert.True(t, rl.Allow("a@x"))
	assert.True(t, rl.Allow("a@x"))
	assert.False(t, rl.Allow("a@x"))
}

func TestRateLimiterTracksIdentitiesIndependently(t *testing.T) {
	rl := NewRateLimiter(1)
	assert.True(t, rl.Allow("a@x"))
	assert.True(t, rl.Allow("b@x"))
	assert.False(t, rl.Allow("a@x"))
	assert.False(t, rl.Allow("b@x"))
}
