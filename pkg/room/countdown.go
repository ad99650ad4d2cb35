package room

import (
	"homegame-server/pkg/holdem"
	"time"
)

// countdown is a scheduled advance to the next hand
// Every countdown gets a new generation; a tick from an older generation is ignored,
// so a cancelled countdown can never deal.
type countdown struct {
	generation int
	timer      timer
}

// startCountdown broadcasts the seconds remaining once a second and deals when it reaches zero
// NOTE: must only be called from the run loop
func (d *Dealer) startCountdown(seconds int) {
	d.cancelCountdown()
	d.countdown.generation++
	d.tick(d.countdown.generation, seconds)
}

// cancelCountdown stops a pending countdown
// NOTE: must only be called from the run loop
func (d *Dealer) cancelCountdown() {
	d.countdown.generation++
	if d.countdown.timer != nil {
		d.countdown.timer.Stop()
		d.countdown.timer = nil
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) tick(generation, remaining int) {
	if generation != d.countdown.generation {
		return
	}

	if remaining <= 0 {
		d.countdown.timer = nil
		d.autoAdvance()
		return
	}

	d.broadcast(&Countdown{
		Type:    TypeNextHandCountdown,
		Seconds: remaining,
	})

	d.countdown.timer = d.afterFunc(time.Second, func() {
		d.enqueue(func() {
			d.tick(generation, remaining-1)
		})
	})
}

// autoAdvance deals the next hand when the countdown runs out
// NOTE: must only be called from the run loop
func (d *Dealer) autoAdvance() {
	if d.game == nil || d.game.Phase != holdem.Complete {
		return
	}

	if err := d.dealNextHand(); err != nil {
		d.log.WithError(err).Info("could not deal the next hand")
		d.broadcastState()
	}
}
