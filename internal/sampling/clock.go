package sampling

import "time"

// Clock is a monotonic millisecond source. The 32-bit width wraps roughly
// every 49.7 days; the scheduler's elapsed-time arithmetic tolerates that.
type Clock interface {
	NowMillis() uint32
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock counting milliseconds since construction.
// time.Since uses the monotonic reading, so wall-clock adjustments do not
// affect it.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) NowMillis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}
