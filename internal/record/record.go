// Package record defines the textual sample stream shared by the sampler
// (producer side) and the collector (consumer side). The format is fixed:
// one header line at startup, then one comma-separated line per sample.
package record

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header is the line emitted once when the stream opens.
const Header = "Timestamp (ms),Ax (G),Ay (G),Az (G),Magnitud (G)"

// Record is one parsed line of the sample stream.
type Record struct {
	TimestampMS uint32
	Ax          float64
	Ay          float64
	Az          float64
	Magnitude   float64
}

// Format renders one sample line, without the trailing newline.
func Format(timestampMS uint32, ax, ay, az, magnitude float64) string {
	return fmt.Sprintf("%d,%.2f,%.2f,%.2f,%.2f", timestampMS, ax, ay, az, magnitude)
}

// Parse reads one sample line back into a Record. Header and blank lines
// are not accepted here; callers skip them before parsing.
func Parse(line string) (Record, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 5 {
		return Record{}, fmt.Errorf("record: expected 5 fields, got %d in %q", len(parts), line)
	}

	ts, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("record: bad timestamp %q: %w", parts[0], err)
	}

	var vals [4]float64
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Record{}, fmt.Errorf("record: bad field %d %q: %w", i+1, p, err)
		}
		vals[i] = v
	}

	return Record{
		TimestampMS: uint32(ts),
		Ax:          vals[0],
		Ay:          vals[1],
		Az:          vals[2],
		Magnitude:   vals[3],
	}, nil
}

// Writer emits the sample stream onto an io.Writer (stdout, serial port).
// It implements the scheduler's Sink.
type Writer struct {
	w io.Writer
}

// NewWriter writes the header line and returns a Writer for the stream.
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return nil, fmt.Errorf("record: write header: %w", err)
	}
	return &Writer{w: w}, nil
}

// Emit writes one sample line.
func (w *Writer) Emit(timestampMS uint32, ax, ay, az, magnitude float64) error {
	if _, err := fmt.Fprintln(w.w, Format(timestampMS, ax, ay, az, magnitude)); err != nil {
		return fmt.Errorf("record: write sample: %w", err)
	}
	return nil
}
