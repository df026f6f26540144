package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksAfterMaxAttempts(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other clients are unaffected
	assert.True(t, rl.Allow("10.0.0.2"))

	assert.False(t, rl.GetBlockedUntil("10.0.0.1").IsZero())
}

func TestRateLimiterRecordSuccessResets(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	rl.RecordSuccess("10.0.0.1")

	assert.True(t, rl.Allow("10.0.0.1"))
}
