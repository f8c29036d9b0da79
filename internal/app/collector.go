package app

import (
	"bufio"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/config"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/record"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/storage"
)

// RunCollector reads the CSV sample stream from the serial port and stores
// each record in the gesture database for the training pipeline.
func RunCollector() error {
	cfg := config.Get()

	if cfg.SerialPort == "" {
		return fmt.Errorf("collector: SERIAL_PORT is required")
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("collector: DB_PATH is required")
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if n, err := store.CountSamples(); err == nil {
		log.Printf("collector: database %s holds %s rows", cfg.DBPath, humanize.Comma(n))
	}

	serialOpts := serial.OpenOptions{
		PortName:        cfg.SerialPort,
		BaudRate:        uint(cfg.SerialBaud),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("collector: serial open (%s): %w", cfg.SerialPort, err)
	}
	defer port.Close()
	log.Printf("collector: serial port opened on %s at %d baud", serialOpts.PortName, serialOpts.BaudRate)

	reader := bufio.NewReader(port)
	var stored int64

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("collector: serial read error: %v", err)
			return err
		}

		line = strings.TrimSpace(line)
		// The sampler re-emits its header whenever it restarts.
		if line == "" || strings.HasPrefix(line, "Timestamp") {
			continue
		}

		rec, err := record.Parse(line)
		if err != nil {
			// partial line right after attach, or serial noise
			log.Printf("collector: %v", err)
			continue
		}

		if err := store.InsertSample(time.Now(), rec); err != nil {
			log.Printf("collector: %v", err)
			continue
		}

		stored++
		if stored%500 == 0 {
			log.Printf("collector: %s samples stored", humanize.Comma(stored))
		}
	}
}
