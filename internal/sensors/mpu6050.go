// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/accel"
)

// MPU-6050 register map, per RM-MPU-6000A rev 4.2.
const (
	// DefaultAddr is the device address with AD0 pulled low.
	DefaultAddr = 0x68

	regAccelXoutH = 0x3B
	regPwrMgmt1   = 0x6B
	regWhoAmI     = 0x75

	whoAmIValue = 0x68

	// accel(6) + temp(2) + gyro(6), big-endian int16 each
	motionBlockLen = 14
)

// MPU6050 is a register-level handle to the accelerometer over I2C.
// It implements the scheduler's DeviceReader.
type MPU6050 struct {
	dev i2c.Dev
	bus i2c.BusCloser
}

// NewMPU6050 opens the named I2C bus (empty string picks the first one),
// wakes the device out of sleep, and returns a reader. The device powers
// up in the ±2g range, which matches accel.FullScaleLSBPerG.
func NewMPU6050(busName string, addr uint16) (*MPU6050, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("mpu6050: periph host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("mpu6050: I2C open (%q): %w", busName, err)
	}

	d := &MPU6050{
		dev: i2c.Dev{Bus: bus, Addr: addr},
		bus: bus,
	}

	// Clear the SLEEP bit so the sensor starts converting.
	if err := d.writeReg(regPwrMgmt1, 0x00); err != nil {
		bus.Close()
		return nil, fmt.Errorf("mpu6050: wake: %w", err)
	}

	return d, nil
}

// Probe reports whether the device answers with the expected WHO_AM_I.
func (d *MPU6050) Probe() bool {
	var v [1]byte
	if err := d.dev.Tx([]byte{regWhoAmI}, v[:]); err != nil {
		return false
	}
	return v[0] == whoAmIValue
}

// ReadMotion burst-reads the 14-byte motion block and keeps the
// accelerometer words. The temperature and gyro words are discarded.
func (d *MPU6050) ReadMotion() (accel.RawSample, error) {
	var buf [motionBlockLen]byte
	if err := d.dev.Tx([]byte{regAccelXoutH}, buf[:]); err != nil {
		return accel.RawSample{}, fmt.Errorf("mpu6050: motion block read: %w", err)
	}

	return accel.RawSample{
		Ax: int16(binary.BigEndian.Uint16(buf[0:2])),
		Ay: int16(binary.BigEndian.Uint16(buf[2:4])),
		Az: int16(binary.BigEndian.Uint16(buf[4:6])),
	}, nil
}

// Close releases the I2C bus.
func (d *MPU6050) Close() error {
	return d.bus.Close()
}

func (d *MPU6050) writeReg(reg, val byte) error {
	return d.dev.Tx([]byte{reg, val}, nil)
}
