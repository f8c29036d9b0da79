package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderIsStable(t *testing.T) {
	// The Python collector matches this line verbatim to skip it.
	require.Equal(t, "Timestamp (ms),Ax (G),Ay (G),Az (G),Magnitud (G)", Header)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name         string
		ts           uint32
		x, y, z, mag float64
		want         string
	}{
		{"one g on x", 1050, 1, 0, 0, 1, "1050,1.00,0.00,0.00,1.00"},
		{"diagonal", 50, 0.707, 0.707, 0, 0.9998, "50,0.71,0.71,0.00,1.00"},
		{"negative axes", 200, -1.5, -0.25, 0.125, 1.526, "200,-1.50,-0.25,0.13,1.53"},
		{"zero timestamp", 0, 0, 0, 0, 0, "0,0.00,0.00,0.00,0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Format(tt.ts, tt.x, tt.y, tt.z, tt.mag))
		})
	}
}

func TestParse(t *testing.T) {
	r, err := Parse("1050,1.00,0.00,-0.25,1.03\r\n")
	require.NoError(t, err)
	require.Equal(t, Record{TimestampMS: 1050, Ax: 1, Ay: 0, Az: -0.25, Magnitude: 1.03}, r)
}

func TestParseRejectsMalformedLines(t *testing.T) {
	for _, line := range []string{
		"",
		"1050,1.00,0.00",
		"1050,1.00,0.00,0.00,1.00,extra",
		"abc,1.00,0.00,0.00,1.00",
		"1050,one,0.00,0.00,1.00",
		"-5,1.00,0.00,0.00,1.00", // timestamp is unsigned
	} {
		_, err := Parse(line)
		require.Error(t, err, "line %q", line)
	}
}

func TestWriterEmitsHeaderOnceThenSamples(t *testing.T) {
	var buf strings.Builder

	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.Emit(1050, 1, 0, 0, 1))
	require.NoError(t, w.Emit(1100, 0.71, 0.71, 0, 1))

	want := Header + "\n" +
		"1050,1.00,0.00,0.00,1.00\n" +
		"1100,0.71,0.71,0.00,1.00\n"
	require.Equal(t, want, buf.String())
}
