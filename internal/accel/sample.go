package accel

// RawSample is a single accelerometer reading straight off the sensor,
// in LSB counts. The gyro words from the same motion block are discarded
// by the device layer.
type RawSample struct {
	Ax int16 `json:"ax"`
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`
}

// Sample is one converted reading in units of standard gravity,
// suitable for JSON and MQTT.
type Sample struct {
	TimestampMS uint32  `json:"timestamp_ms"`
	Ax          float64 `json:"ax_g"`
	Ay          float64 `json:"ay_g"`
	Az          float64 `json:"az_g"`
	Magnitude   float64 `json:"magnitude_g"`
}
