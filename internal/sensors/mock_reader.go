// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"math"
	"time"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/accel"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/sampling"
)

type mockReader struct {
	start time.Time
}

// NewMockReader returns a DeviceReader that generates smooth synthetic
// motion around 1g on Z, for running the pipeline without hardware.
func NewMockReader() sampling.DeviceReader {
	return &mockReader{start: time.Now()}
}

func (m *mockReader) ReadMotion() (accel.RawSample, error) {
	elapsed := time.Since(m.start).Seconds()

	return accel.RawSample{
		Ax: int16(2500 * math.Sin(elapsed)),
		Ay: int16(1800 * math.Cos(elapsed*0.7)),
		Az: int16(16384 - 400*math.Sin(elapsed*1.3)),
	}, nil
}

func (m *mockReader) Probe() bool { return true }
