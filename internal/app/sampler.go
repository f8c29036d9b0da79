package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/accel"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/config"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/record"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/sampling"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/sensors"
)

// pollTick is how often the driving loop invokes the scheduler. It only
// bounds the firing jitter; the scheduler enforces the actual cadence.
const pollTick = 2 * time.Millisecond

// mqttSink publishes each fired sample as retained JSON, mirroring the
// serial record stream for networked consumers.
type mqttSink struct {
	client mqtt.Client
	topic  string
}

func (s *mqttSink) Emit(timestampMS uint32, ax, ay, az, magnitude float64) error {
	payload, err := json.Marshal(accel.Sample{
		TimestampMS: timestampMS,
		Ax:          ax,
		Ay:          ay,
		Az:          az,
		Magnitude:   magnitude,
	})
	if err != nil {
		return fmt.Errorf("sample marshal: %w", err)
	}
	if token := s.client.Publish(s.topic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("sample publish: %w", token.Error())
	}
	return nil
}

// multiSink fans one emission out to every sink. All sinks are attempted;
// the first error is reported.
type multiSink []sampling.Sink

func (m multiSink) Emit(timestampMS uint32, ax, ay, az, magnitude float64) error {
	var firstErr error
	for _, s := range m {
		if err := s.Emit(timestampMS, ax, ay, az, magnitude); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RunSampler wires the accelerometer, the record stream, and MQTT into the
// sample scheduler and drives it from a fast cooperative loop.
func RunSampler() error {
	log.Println("starting motion sampler (MPU6050 → serial CSV + MQTT)")

	cfg := config.Get()

	// --- Device ---
	var dev sampling.DeviceReader
	if cfg.UseMockSensor {
		log.Println("sampler: using mock accelerometer")
		dev = sensors.NewMockReader()
	} else {
		addr := cfg.MPUI2CAddr
		if addr == 0 {
			addr = sensors.DefaultAddr
		}
		mpu, err := sensors.NewMPU6050(cfg.I2CBus, addr)
		if err != nil {
			return err
		}
		defer mpu.Close()
		dev = mpu
	}

	// One-shot connectivity probe, reported but non-fatal. A sensor that
	// shows up later simply starts answering reads.
	if dev.Probe() {
		log.Println("sampler: MPU6050 OK")
	} else {
		log.Println("sampler: ERROR: MPU6050 not detected, polling anyway")
	}

	// --- Record stream (serial or stdout) ---
	var out io.Writer = os.Stdout
	if cfg.SerialPort != "" {
		port, err := serial.Open(serial.OpenOptions{
			PortName:        cfg.SerialPort,
			BaudRate:        uint(cfg.SerialBaud),
			DataBits:        8,
			StopBits:        1,
			MinimumReadSize: 1,
			ParityMode:      serial.PARITY_NONE,
		})
		if err != nil {
			return fmt.Errorf("sampler: serial open (%s): %w", cfg.SerialPort, err)
		}
		defer port.Close()
		log.Printf("sampler: serial port opened on %s at %d baud", cfg.SerialPort, cfg.SerialBaud)
		out = port
	}

	stream, err := record.NewWriter(out) // header line goes out here
	if err != nil {
		return fmt.Errorf("sampler: %w", err)
	}

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDSampler)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Println("sampler: connected to MQTT, starting sample loop")

	sched := sampling.NewScheduler(
		uint32(cfg.SampleIntervalMS),
		cfg.AccelFullScale,
		sampling.NewSystemClock(),
		dev,
		multiSink{stream, &mqttSink{client: client, topic: cfg.TopicSamples}},
	)

	// Cooperative loop: poll far more often than the sample interval and
	// let the scheduler decide when a cycle fires. Failed cycles are
	// logged and the cadence continues.
	ticker := time.NewTicker(pollTick)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := sched.Poll(); err != nil {
			log.Printf("sampler: %v", err)
		}
	}
	return nil
}
