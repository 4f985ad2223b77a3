package logvisor

import "time"

// Reference point of every uptime clock, taken when the package is
// initialized so that the default registry counts from process start no
// matter when it is first used.
var processStart = time.Now()

// uptimeClock is the elapsed-time source of a registry. time.Since style
// subtraction uses the monotonic clock reading of start.
type uptimeClock struct {
	start time.Time
	now   func() time.Time // replaceable in tests
}

func newUptimeClock() *uptimeClock {
	return &uptimeClock{start: processStart, now: time.Now}
}

// Seconds elapsed since the clock start.
func (c *uptimeClock) uptime() float64 {
	return c.now().Sub(c.start).Seconds()
}
