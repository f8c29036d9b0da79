package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/accel"
	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/config"
)

// RunDisplay shows the live acceleration and magnitude on the SSD1306 OLED,
// fed from the MQTT sample topic.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: SSD1306 initialized")

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	var (
		mu         sync.RWMutex
		lastSample accel.Sample
		haveSample bool
	)

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicSamples, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s accel.Sample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("display: sample unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastSample = s
		haveSample = true
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicSamples)

	interval := cfg.DisplayUpdateInterval
	if interval <= 0 {
		interval = 250
	}

	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		mu.RLock()
		s := lastSample
		have := haveSample
		mu.RUnlock()

		if err := updateSampleDisplay(dev, s, have); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func newTextDrawer(img *image1bit.VerticalLSB) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
}

func showSplash(dev *ssd1306.Dev) error {
	img := image1bit.NewVerticalLSB(dev.Bounds())

	drawer := newTextDrawer(img)
	drawer.Dot = fixed.P(0, 26)
	drawer.DrawBytes([]byte("Automata IoT"))
	drawer.Dot = fixed.P(0, 39)
	drawer.DrawBytes([]byte("motion sampler"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func updateSampleDisplay(dev *ssd1306.Dev, s accel.Sample, haveData bool) error {
	img := image1bit.NewVerticalLSB(dev.Bounds())

	drawer := newTextDrawer(img)

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Accel"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("Ax %6.2f G", s.Ax)))

		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte(fmt.Sprintf("Ay %6.2f G", s.Ay)))

		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte(fmt.Sprintf("Az %6.2f G", s.Az)))

		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("|A| %5.2f G", s.Magnitude)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
