package sampling

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/accel"
)

type fakeClock struct {
	now uint32
}

func (c *fakeClock) NowMillis() uint32 { return c.now }

type fakeDevice struct {
	sample accel.RawSample
	err    error
	reads  int
}

func (d *fakeDevice) ReadMotion() (accel.RawSample, error) {
	d.reads++
	if d.err != nil {
		return accel.RawSample{}, d.err
	}
	return d.sample, nil
}

func (d *fakeDevice) Probe() bool { return d.err == nil }

type emitted struct {
	ts              uint32
	ax, ay, az, mag float64
}

type recordingSink struct {
	emits []emitted
	err   error
}

func (s *recordingSink) Emit(ts uint32, ax, ay, az, mag float64) error {
	if s.err != nil {
		return s.err
	}
	s.emits = append(s.emits, emitted{ts, ax, ay, az, mag})
	return nil
}

func newTestScheduler(interval uint32) (*Scheduler, *fakeClock, *fakeDevice, *recordingSink) {
	clock := &fakeClock{}
	dev := &fakeDevice{sample: accel.RawSample{Ax: 16384}}
	sink := &recordingSink{}
	return NewScheduler(interval, accel.FullScaleLSBPerG, clock, dev, sink), clock, dev, sink
}

func TestPollBeforeIntervalIsNoOp(t *testing.T) {
	sched, clock, dev, sink := newTestScheduler(50)

	// Anchor at 1000.
	clock.now = 1000
	fired, err := sched.Poll()
	require.NoError(t, err)
	require.True(t, fired)

	// 49ms later: nothing happens, state untouched.
	clock.now = 1049
	fired, err = sched.Poll()
	require.NoError(t, err)
	require.False(t, fired)
	require.Equal(t, uint32(1000), sched.lastSample)
	require.Equal(t, 1, dev.reads)
	require.Len(t, sink.emits, 1)
}

func TestPollFiresAtInterval(t *testing.T) {
	sched, clock, _, sink := newTestScheduler(50)

	clock.now = 1000
	_, err := sched.Poll()
	require.NoError(t, err)

	clock.now = 1050
	fired, err := sched.Poll()
	require.NoError(t, err)
	require.True(t, fired)
	require.Equal(t, uint32(1050), sched.lastSample)

	require.Len(t, sink.emits, 2)
	last := sink.emits[1]
	require.Equal(t, uint32(1050), last.ts)
	require.Equal(t, 1.0, last.ax)
	require.Equal(t, 0.0, last.ay)
	require.Equal(t, 0.0, last.az)
	require.Equal(t, 1.0, last.mag)
}

func TestNoCatchUpAfterLongStall(t *testing.T) {
	sched, clock, _, sink := newTestScheduler(50)

	clock.now = 1000
	_, err := sched.Poll()
	require.NoError(t, err)

	// The loop stalled for 100 intervals. One sample, anchored to now.
	clock.now = 6000
	fired, err := sched.Poll()
	require.NoError(t, err)
	require.True(t, fired)
	require.Len(t, sink.emits, 2)
	require.Equal(t, uint32(6000), sched.lastSample)

	// Immediately after, we are Idle again.
	fired, err = sched.Poll()
	require.NoError(t, err)
	require.False(t, fired)
	require.Len(t, sink.emits, 2)
}

func TestRepeatedPollingEmitsOnSchedule(t *testing.T) {
	sched, clock, _, sink := newTestScheduler(50)

	// Invoke every millisecond for one second; only the 50ms cadence fires.
	for ms := uint32(1); ms <= 1000; ms++ {
		clock.now = ms
		_, err := sched.Poll()
		require.NoError(t, err)
	}
	require.Len(t, sink.emits, 20)
	require.Equal(t, uint32(50), sink.emits[0].ts)
	require.Equal(t, uint32(1000), sink.emits[19].ts)
}

func TestReadErrorSkipsEmissionButKeepsCadence(t *testing.T) {
	sched, clock, dev, sink := newTestScheduler(50)

	dev.err = errors.New("i2c: bus fault")
	clock.now = 1000
	fired, err := sched.Poll()
	require.Error(t, err)
	require.True(t, fired)
	require.Empty(t, sink.emits)

	// Anchor advanced anyway: the very next Poll is a no-op, no retry storm.
	require.Equal(t, uint32(1000), sched.lastSample)
	clock.now = 1001
	fired, err = sched.Poll()
	require.NoError(t, err)
	require.False(t, fired)
	require.Equal(t, 1, dev.reads)

	// Sensor recovers: next interval emits again.
	dev.err = nil
	clock.now = 1050
	_, err = sched.Poll()
	require.NoError(t, err)
	require.Len(t, sink.emits, 1)
}

func TestSinkErrorIsReported(t *testing.T) {
	sched, clock, _, sink := newTestScheduler(50)

	sink.err = errors.New("serial: port closed")
	clock.now = 100
	fired, err := sched.Poll()
	require.Error(t, err)
	require.True(t, fired)
	require.Equal(t, uint32(100), sched.lastSample)
}

func TestElapsedAcrossClockWrap(t *testing.T) {
	sched, clock, _, sink := newTestScheduler(50)

	// Anchor 10ms before the 32-bit wrap.
	clock.now = math.MaxUint32 - 9
	_, err := sched.Poll()
	require.NoError(t, err)
	require.Len(t, sink.emits, 1)

	// 15ms later the clock has wrapped to 5. Elapsed must be 15, not huge.
	clock.now = 5
	fired, err := sched.Poll()
	require.NoError(t, err)
	require.False(t, fired)
	require.Len(t, sink.emits, 1)

	// 50ms after the anchor (wrapped value 40) it fires again.
	clock.now = 40
	fired, err = sched.Poll()
	require.NoError(t, err)
	require.True(t, fired)
	require.Len(t, sink.emits, 2)
	require.Equal(t, uint32(40), sink.emits[1].ts)
}

func TestPathologicalInputPropagates(t *testing.T) {
	sched, clock, dev, sink := newTestScheduler(50)

	// MinInt16 is a legal reading; it converts to -2g, not an overflow.
	dev.sample = accel.RawSample{Ax: math.MinInt16}
	clock.now = 50
	_, err := sched.Poll()
	require.NoError(t, err)
	require.Len(t, sink.emits, 1)
	require.Equal(t, -2.0, sink.emits[0].ax)
	require.Equal(t, 2.0, sink.emits[0].mag)
}
