package accel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPhysical(t *testing.T) {
	tests := []struct {
		name      string
		raw       int16
		fullScale float64
		want      float64
	}{
		{"one g", 16384, 16384.0, 1.0},
		{"zero", 0, 16384.0, 0.0},
		{"negative one g", -16384, 16384.0, -1.0},
		{"half g", 8192, 16384.0, 0.5},
		{"max positive", math.MaxInt16, 16384.0, 32767.0 / 16384.0},
		{"min negative", math.MinInt16, 16384.0, -2.0},
		{"four g range", 16384, 8192.0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToPhysical(tt.raw, tt.fullScale))
		})
	}
}

func TestToPhysicalLinearity(t *testing.T) {
	// to_physical(k*raw) == k*to_physical(raw) for in-range multiples
	const raw = 100
	for k := int16(-300); k <= 300; k++ {
		got := ToPhysical(k*raw, FullScaleLSBPerG)
		want := float64(k) * ToPhysical(raw, FullScaleLSBPerG)
		require.InDelta(t, want, got, 1e-12, "k=%d", k)
	}
}

func TestMagnitude(t *testing.T) {
	require.Equal(t, 0.0, Magnitude(0, 0, 0))
	require.Equal(t, 1.0, Magnitude(1, 0, 0))
	require.Equal(t, 5.0, Magnitude(3, 4, 0))

	// sign invariance
	require.Equal(t, Magnitude(0.3, -0.4, 0.5), Magnitude(-0.3, 0.4, -0.5))

	// single-axis magnitude is the absolute value
	require.Equal(t, 0.71, Magnitude(-0.71, 0, 0))

	// NaN propagates, it is not suppressed
	require.True(t, math.IsNaN(Magnitude(math.NaN(), 0, 0)))
}

func TestRoundTripOneG(t *testing.T) {
	// raw (16384, 0, 0) at the ±2g full scale is exactly 1g on X
	ax := ToPhysical(16384, FullScaleLSBPerG)
	ay := ToPhysical(0, FullScaleLSBPerG)
	az := ToPhysical(0, FullScaleLSBPerG)

	require.Equal(t, 1.0, ax)
	require.Equal(t, 0.0, ay)
	require.Equal(t, 0.0, az)
	require.Equal(t, 1.0, Magnitude(ax, ay, az))
}

func TestDiagonalOneG(t *testing.T) {
	// 45° tilt in the XY plane: both axes read ~0.71g, magnitude ~1g
	ax := ToPhysical(11585, FullScaleLSBPerG)
	ay := ToPhysical(11585, FullScaleLSBPerG)

	require.InDelta(t, 0.71, ax, 0.005)
	require.InDelta(t, 0.71, ay, 0.005)
	require.InDelta(t, 1.00, Magnitude(ax, ay, 0), 0.005)
}
