// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sampling

import (
	"fmt"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/accel"
)

// DeviceReader provides raw accelerometer data. Probe is called once at
// startup; its result is reported but a failure is not fatal.
type DeviceReader interface {
	ReadMotion() (accel.RawSample, error)
	Probe() bool
}

// Sink receives one converted record per fired sample cycle.
type Sink interface {
	Emit(timestampMS uint32, ax, ay, az, magnitude float64) error
}

// Scheduler decides on each Poll whether the configured interval has
// elapsed since the last fired sample and, if so, runs exactly one
// read-convert-emit cycle. It never blocks beyond the collaborators' own
// latency, so it is safe to call far more often than the interval.
//
// Not safe for concurrent use; it is meant to be driven from a single
// cooperative loop.
type Scheduler struct {
	interval  uint32
	fullScale float64
	clock     Clock
	dev       DeviceReader
	sink      Sink

	lastSample uint32
}

// NewScheduler builds a scheduler with all collaborators injected.
// intervalMS is the minimum time between fired samples; fullScale is the
// raw-to-g divisor for the sensor's configured range.
func NewScheduler(intervalMS uint32, fullScale float64, clock Clock, dev DeviceReader, sink Sink) *Scheduler {
	return &Scheduler{
		interval:  intervalMS,
		fullScale: fullScale,
		clock:     clock,
		dev:       dev,
		sink:      sink,
	}
}

// Poll runs at most one sample cycle. The returned bool reports whether
// the interval had elapsed (a cycle fired or was at least attempted).
// A device read error skips the emission for that cycle but still
// advances the anchor, so a dead sensor is retried once per interval
// rather than on every invocation.
func (s *Scheduler) Poll() (bool, error) {
	now := s.clock.NowMillis()

	// Unsigned subtraction stays correct across the 32-bit wrap as long
	// as the real elapsed time is below 2^32 ms.
	if now-s.lastSample < s.interval {
		return false, nil
	}

	// Anchor to now rather than lastSample+interval: missed cycles are
	// dropped, not replayed, so a stalled loop never causes a burst.
	s.lastSample = now

	raw, err := s.dev.ReadMotion()
	if err != nil {
		return true, fmt.Errorf("sampling: motion read: %w", err)
	}

	ax := accel.ToPhysical(raw.Ax, s.fullScale)
	ay := accel.ToPhysical(raw.Ay, s.fullScale)
	az := accel.ToPhysical(raw.Az, s.fullScale)
	mag := accel.Magnitude(ax, ay, az)

	if err := s.sink.Emit(now, ax, ay, az, mag); err != nil {
		return true, fmt.Errorf("sampling: emit: %w", err)
	}
	return true, nil
}
