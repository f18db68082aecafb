package session_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventgames/snakeladders-go/internal/application/session"
)

func TestLadderPrompt_TimeoutCommitsClimb(t *testing.T) {
	resolved := make(chan bool, 1)
	session.NewLadderPrompt(10*time.Millisecond, func(climb bool) {
		resolved <- climb
	})

	select {
	case climb := <-resolved:
		assert.True(t, climb, "timeout must default to climb")
	case <-time.After(time.Second):
		t.Fatal("prompt never resolved")
	}
}

func TestLadderPrompt_ExplicitChoiceBeatsTimeout(t *testing.T) {
	var calls atomic.Int32
	resolved := make(chan bool, 2)
	prompt := session.NewLadderPrompt(20*time.Millisecond, func(climb bool) {
		calls.Add(1)
		resolved <- climb
	})

	prompt.Choose(false)

	select {
	case climb := <-resolved:
		assert.False(t, climb)
	case <-time.After(time.Second):
		t.Fatal("prompt never resolved")
	}

	// Give the canceled timer a chance to misfire, then check exactly-once.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLadderPrompt_ResolvesExactlyOnce(t *testing.T) {
	var calls atomic.Int32
	prompt := session.NewLadderPrompt(10*time.Millisecond, func(climb bool) {
		calls.Add(1)
	})

	prompt.Choose(true)
	prompt.Choose(false)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
}

func TestLadderPrompt_CancelSuppressesBothPaths(t *testing.T) {
	var calls atomic.Int32
	prompt := session.NewLadderPrompt(10*time.Millisecond, func(climb bool) {
		calls.Add(1)
	})

	prompt.Cancel()
	prompt.Choose(true)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
}

func TestRollCountdown_SignalsWithoutMutation(t *testing.T) {
	expired := make(chan struct{})
	session.NewRollCountdown(10*time.Millisecond, func() {
		close(expired)
	})

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("countdown never expired")
	}
}

func TestRollCountdown_StopPreventsExpiry(t *testing.T) {
	var fired atomic.Int32
	countdown := session.NewRollCountdown(20*time.Millisecond, func() {
		fired.Add(1)
	})

	countdown.Stop()
	time.Sleep(60 * time.Millisecond)

	require.Equal(t, int32(0), fired.Load())
}
