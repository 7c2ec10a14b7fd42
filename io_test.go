// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestIOFlatPort(t *testing.T) {
	const address uint16 = 0x21
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Begin: port low, the presence-check read, then the
			// all-input release.
			{Addr: address, W: []byte{0x00}},
			{Addr: address, R: []byte{0x00}},
			{Addr: address, W: []byte{0xFF}},
			// Switching to all outputs drives the port low again.
			{Addr: address, W: []byte{0x00}},
			// All-output port writes.
			{Addr: address, W: []byte{0xAA}},
			{Addr: address, W: []byte{0xAB}},
			// Back to all inputs: every line released.
			{Addr: address, W: []byte{0xFF}},
			{Addr: address, R: []byte{0x55}},
		},
		DontPanic: true,
	}
	port := NewIO(bus, address, PCF8574)
	if err := port.Begin(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = port.Close() })

	if err := port.PortMode(true); err != nil {
		t.Fatal(err)
	}
	if err := port.WritePort(0xAA); err != nil {
		t.Fatal(err)
	}
	if err := port.DigitalWrite(0, gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := port.PortMode(false); err != nil {
		t.Fatal(err)
	}
	v, err := port.ReadPort()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x55 {
		t.Errorf("ReadPort() = %#02x, want 0x55", v)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIOShadowMasksInputs(t *testing.T) {
	const address uint16 = 0x22
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x00}},
			{Addr: address, R: []byte{0x00}},
			{Addr: address, W: []byte{0xFF}},
			// Bit 0 becomes an output, driven low; inputs stay high.
			{Addr: address, W: []byte{0xFE}},
			// Only bit 0 of the 0xFF lands in the shadow; the high
			// input bits on the wire are release bits, not data.
			{Addr: address, W: []byte{0xFF}},
			{Addr: address, W: []byte{0xFE}},
		},
		DontPanic: true,
	}
	port := NewIO(bus, address, PCF8574)
	if err := port.Begin(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = port.Close() })

	if err := port.PinMode(0, true); err != nil {
		t.Fatal(err)
	}
	if err := port.WritePort(0xFF); err != nil {
		t.Fatal(err)
	}
	if port.shadow != 0x01 {
		t.Errorf("shadow = %#02x, want 0x01", port.shadow)
	}
	if err := port.WritePort(0x00); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIOInputLineReleasedHigh(t *testing.T) {
	const address uint16 = 0x26
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x00}},
			{Addr: address, R: []byte{0x00}},
			{Addr: address, W: []byte{0xFF}},
			{Addr: address, W: []byte{0x00}},
			// Turning line 5 back into an input must write its bit
			// high, or the chip keeps sinking it low.
			{Addr: address, W: []byte{0x20}},
			// An external device holding the line high is now visible.
			{Addr: address, R: []byte{0x20}},
		},
		DontPanic: true,
	}
	port := NewIO(bus, address, PCF8574)
	if err := port.Begin(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = port.Close() })

	if err := port.PortMode(true); err != nil {
		t.Fatal(err)
	}
	if err := port.PinMode(5, false); err != nil {
		t.Fatal(err)
	}
	if l := port.DigitalRead(5); l != gpio.High {
		t.Errorf("DigitalRead(5) = %s, want High", l)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIORegisterChip(t *testing.T) {
	const address uint16 = 0x23
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Begin runs the register setup before the presence check,
			// then pushes the all-input direction mask.
			{Addr: address, W: []byte{mcpIOCON, mcpByteMode}},
			{Addr: address, W: []byte{mcpIODIR, 0x00}},
			{Addr: address, W: []byte{mcpOLAT, 0x00}},
			{Addr: address, R: []byte{0x00}},
			{Addr: address, W: []byte{mcpIODIR, 0xFF}},
			{Addr: address, W: []byte{mcpGPIO, 0x00}},
			// All outputs: the direction register changes while the
			// latch bits stay bare data.
			{Addr: address, W: []byte{mcpIODIR, 0x00}},
			{Addr: address, W: []byte{mcpGPIO, 0x00}},
			// Port writes address the GPIO register.
			{Addr: address, W: []byte{mcpGPIO, 0x08}},
			// Port reads do too.
			{Addr: address, W: []byte{mcpGPIO}, R: []byte{0xFF}},
		},
		DontPanic: true,
	}
	port := NewIO(bus, address, MCP23008)
	if err := port.Begin(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = port.Close() })

	if err := port.PortMode(true); err != nil {
		t.Fatal(err)
	}
	if err := port.DigitalWrite(3, gpio.High); err != nil {
		t.Fatal(err)
	}
	// Every line is an output, so the read reports nothing.
	if v, err := port.ReadPort(); err != nil || v != 0 {
		t.Errorf("ReadPort() = %#02x, %v; want 0, nil", v, err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIOBeginIdentifies(t *testing.T) {
	const address uint16 = 0x24
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x00, 0xFF}},
			{Addr: address, W: []byte{0x00}},
			{Addr: address, R: []byte{0xFF}},
			{Addr: address, W: []byte{mcpIOCON, mcpByteMode}},
			{Addr: address, W: []byte{mcpIODIR, 0x00}},
			{Addr: address, W: []byte{mcpOLAT, 0x00}},
			{Addr: address, R: []byte{0x00}},
			{Addr: address, W: []byte{mcpIODIR, 0xFF}},
			{Addr: address, W: []byte{mcpGPIO, 0x00}},
		},
		DontPanic: true,
	}
	port := NewIO(bus, address, Unknown)
	if err := port.Begin(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = port.Close() })
	if port.chip != MCP23008 {
		t.Errorf("chip = %q, want %q", port.chip, MCP23008)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIOBeforeBegin(t *testing.T) {
	bus := &i2ctest.Playback{DontPanic: true}
	port := NewIO(bus, 0x20, PCF8574)
	// Everything is a silent no-op until Begin succeeds.
	if err := port.PortMode(true); err != nil {
		t.Fatal(err)
	}
	if err := port.PinMode(0, true); err != nil {
		t.Fatal(err)
	}
	if err := port.WritePort(0xFF); err != nil {
		t.Fatal(err)
	}
	if err := port.DigitalWrite(0, gpio.High); err != nil {
		t.Fatal(err)
	}
	if v, err := port.ReadPort(); err != nil || v != 0 {
		t.Errorf("ReadPort() = %#02x, %v; want 0, nil", v, err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIOPins(t *testing.T) {
	const address uint16 = 0x25
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x00}},
			{Addr: address, R: []byte{0x00}},
			{Addr: address, W: []byte{0xFF}},
			// Pin 2 switched to output, then driven high. The other
			// lines keep their release bits.
			{Addr: address, W: []byte{0xFB}},
			{Addr: address, W: []byte{0xFF}},
			// Pin 5 read while an input.
			{Addr: address, R: []byte{0x20}},
		},
		DontPanic: true,
	}
	port := NewIO(bus, address, PCF8574)
	if err := port.Begin(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = port.Close() })

	if len(port.Pins) != 8 {
		t.Fatalf("len(Pins) = %d, want 8", len(port.Pins))
	}
	if err := port.Pins[2].Out(gpio.High); err != nil {
		t.Fatal(err)
	}
	if err := port.Pins[5].In(gpio.Float, gpio.NoEdge); err != nil {
		t.Fatal(err)
	}
	if l := port.Pins[5].Read(); l != gpio.High {
		t.Errorf("Read() = %s, want High", l)
	}
	if port.Pins[2].Function() != "Out" || port.Pins[5].Function() != "In" {
		t.Errorf("Function() = %s,%s", port.Pins[2].Function(), port.Pins[5].Function())
	}
	// The pins are registered globally by name.
	if p := gpioreg.ByName("PCF8574_25_GPIO2"); p == nil {
		t.Error("pin not registered with gpioreg")
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}
