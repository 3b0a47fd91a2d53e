// Package clock implements fixed-rate tick pacing for the headless
// driver, grounded on common/src/util/clock.rs.
package clock

import "time"

// Clock paces a loop to a target tick rate, sleeping off whatever time
// remains in the budget after the caller's own work and reporting the
// actual elapsed dt (which may exceed the target period if the caller
// ran long — this is never clamped, matching the reference's behavior
// of reporting true elapsed time rather than a fixed tick length).
type Clock struct {
	period time.Duration
	last   time.Time

	history    []time.Duration
	historyCap int
}

// New builds a Clock targeting tps ticks per second.
func New(tps float64) *Clock {
	return &Clock{
		period:     time.Duration(float64(time.Second) / tps),
		last:       time.Time{},
		historyCap: 32,
	}
}

// Tick sleeps, if necessary, to round out the target period since the
// previous call, then returns the actual elapsed duration. The first
// call never sleeps (there is no previous tick to measure from) and
// returns zero.
func (c *Clock) Tick() time.Duration {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	elapsed := now.Sub(c.last)
	if remaining := c.period - elapsed; remaining > 0 {
		time.Sleep(remaining)
		now = time.Now()
		elapsed = now.Sub(c.last)
	}
	c.last = now

	c.history = append(c.history, elapsed)
	if len(c.history) > c.historyCap {
		c.history = c.history[len(c.history)-c.historyCap:]
	}
	return elapsed
}

// TPS returns the measured ticks-per-second averaged over the recent
// history window.
func (c *Clock) TPS() float64 {
	if len(c.history) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range c.history {
		total += d
	}
	avg := total / time.Duration(len(c.history))
	if avg == 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
