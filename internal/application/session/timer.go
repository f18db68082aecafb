package session

import (
	"sync"
	"time"
)

// DefaultRollWindow is the dice-roll decision window. Expiry only signals;
// no state changes until the roll actually happens.
const DefaultRollWindow = 15 * time.Second

// DefaultLadderWindow is the ladder-choice window. Expiry commits the
// default outcome: climb.
const DefaultLadderWindow = 5 * time.Second

// RollCountdown is the soft deadline on rolling. When it expires, onExpire
// fires once and the UI signals "time's up"; nothing is rolled automatically
// and no state mutates. Stop cancels a countdown that hasn't fired.
type RollCountdown struct {
	once  sync.Once
	timer *time.Timer
}

// NewRollCountdown starts a countdown that fires onExpire after d.
func NewRollCountdown(d time.Duration, onExpire func()) *RollCountdown {
	c := &RollCountdown{}
	c.timer = time.AfterFunc(d, func() {
		c.once.Do(onExpire)
	})
	return c
}

// Stop cancels the countdown. Safe to call after expiry.
func (c *RollCountdown) Stop() {
	c.timer.Stop()
	c.once.Do(func() {})
}

// LadderPrompt is the 5-second climb-or-stay decision. It resolves exactly
// once: either from an explicit Choose or from the timeout committing the
// default "climb". Whichever path resolves first cancels the other.
type LadderPrompt struct {
	once    sync.Once
	timer   *time.Timer
	resolve func(climb bool)
}

// NewLadderPrompt starts the choice window. onResolve is invoked exactly
// once with the player's choice, or with true when the window expires.
func NewLadderPrompt(d time.Duration, onResolve func(climb bool)) *LadderPrompt {
	p := &LadderPrompt{resolve: onResolve}
	p.timer = time.AfterFunc(d, func() {
		p.fire(true)
	})
	return p
}

// Choose resolves the prompt with an explicit decision. Calls after the
// prompt has resolved are ignored.
func (p *LadderPrompt) Choose(climb bool) {
	p.fire(climb)
}

// Cancel abandons the prompt without resolving, for teardown paths like a
// game reset. After Cancel neither the timeout nor Choose can fire.
func (p *LadderPrompt) Cancel() {
	p.timer.Stop()
	p.once.Do(func() {})
}

func (p *LadderPrompt) fire(climb bool) {
	p.once.Do(func() {
		p.timer.Stop()
		p.resolve(climb)
	})
}
