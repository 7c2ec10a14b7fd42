// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/i2c"
)

const packageName = "liquidcrystal"

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), packageName) {
		return err
	}
	return fmt.Errorf("%s: %w", packageName, err)
}

// Mode selects which LCD register a Send targets.
type Mode int

const (
	// Command writes to the LCD instruction register.
	Command Mode = iota
	// Data writes to the LCD data register (Rs high).
	Data
	// FourBits transmits only the low nibble of the value, command
	// tagged. It exists for the mode-entry handshake issued before the
	// display has committed to 4-bit operation.
	FourBits
)

// Dev is an HD44780 compatible character LCD behind an I²C expander
// backpack.
//
// Dev is not safe for concurrent use.
type Dev struct {
	bus  i2c.Bus
	addr uint16
	chip ChipType
	ops  chipOps

	en, rw, rs byte
	data       [4]byte

	blMask   byte
	blStatus byte
	polarity Polarity

	rows, cols int
	began      bool
	on         bool
	cursor     bool
	blink      bool
}

// New configures an LCD on the given bus. It performs no I/O: the bus may
// not even be functional yet when New runs. Pass AddressUnknown and/or
// Unknown to have Begin locate and classify the expander.
func New(bus i2c.Bus, addr uint16, chip ChipType, pins Pins) (*Dev, error) {
	if err := pins.validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		bus:  bus,
		addr: addr,
		chip: chip,
		en:   1 << uint(pins.En),
		rw:   1 << uint(pins.Rw),
		rs:   1 << uint(pins.Rs),
		data: [4]byte{
			1 << uint(pins.D4),
			1 << uint(pins.D5),
			1 << uint(pins.D6),
			1 << uint(pins.D7),
		},
	}
	if chip != Unknown {
		d.ops = opsFor(chip)
	}
	if pins.Backlight != NoBacklight {
		d.SetBacklightPin(pins.Backlight, pins.Polarity)
	}
	return d, nil
}

// Begin resolves the expander address and chip type if either was left
// unknown, runs the one-time expander register setup and then takes the
// display through its 4-bit initialization. dotsize is LCD5x8Dots or
// LCD5x10Dots.
//
// Begin is the first call allowed to touch the bus. It returns an error
// when no usable expander can be found; every later operation on a device
// that never completed Begin is a silent no-op.
func (d *Dev) Begin(cols, rows int, dotsize byte) error {
	if !d.began {
		if err := d.initExpander(); err != nil {
			return err
		}
		d.began = true
	}
	d.cols = cols
	d.rows = rows
	return d.initDisplay(dotsize)
}

// initExpander resolves address and chip type and configures the chip.
func (d *Dev) initExpander() error {
	if d.addr == AddressUnknown {
		d.addr = locate(d.bus)
	}
	if d.addr == AddressUnknown {
		return fmt.Errorf("%s: no device acknowledged on the bus", packageName)
	}
	if d.chip == Unknown {
		d.chip = identify(d.bus, d.addr)
	}
	if d.chip == Unknown {
		return fmt.Errorf("%s: device at %#02x is not a recognized expander", packageName, d.addr)
	}
	d.ops = opsFor(d.chip)
	return wrap(d.ops.setup(d.bus, d.addr))
}

// ready reports whether address and chip type are both resolved. Until
// then nothing may be transmitted.
func (d *Dev) ready() bool {
	return d.addr != AddressUnknown && d.ops != nil
}

// Send writes one value to the LCD. Command and Data values are split into
// high and low nibbles and latched as two frames inside a single bus
// transaction. Data values of '\r' and '\n' are silently dropped so that
// naive text printing doesn't draw garbage glyphs.
//
// On a device that hasn't completed Begin (and wasn't given both address
// and chip type up front) Send does nothing and returns nil.
func (d *Dev) Send(value byte, mode Mode) error {
	if !d.ready() {
		return nil
	}
	if mode == FourBits {
		w := d.ops.prefix(make([]byte, 0, 3))
		w = d.write4bits(w, value&0x0F, Command)
		return wrap(d.bus.Tx(d.addr, w, nil))
	}
	if mode == Data && (value == '\r' || value == '\n') {
		return nil
	}
	// Both nibbles ride in the same transaction.
	w := d.ops.prefix(make([]byte, 0, 5))
	w = d.write4bits(w, value>>4, mode)
	w = d.write4bits(w, value&0x0F, mode)
	return wrap(d.bus.Tx(d.addr, w, nil))
}

// write4bits maps the low nibble of value onto the configured data lines,
// merges the register-select bit for Data mode and the current backlight
// status bit, and appends the enable pulse for the resulting frame.
func (d *Dev) write4bits(w []byte, value byte, mode Mode) []byte {
	var frame byte
	for i := 0; i < 4; i++ {
		if value&1 != 0 {
			frame |= d.data[i]
		}
		value >>= 1
	}
	if mode == Data {
		frame |= d.rs
	}
	frame |= d.blStatus
	return d.pulseEnable(w, frame)
}

// pulseEnable queues the frame with the enable line high, then low. No
// delay separates the two: both bytes travel back to back in one bus
// transaction, and even a 400kHz transaction is far slower than the LCD's
// minimum enable pulse width and settle time. Inserting a sleep here would
// only slow every write down.
func (d *Dev) pulseEnable(w []byte, frame byte) []byte {
	return append(w, frame|d.en, frame&^d.en)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	chip := string(d.chip)
	if chip == "" {
		chip = "unknown"
	}
	return fmt.Sprintf("%s{%s@%#02x} Rows: %d Cols: %d", packageName, chip, d.addr, d.rows, d.cols)
}

// Addr returns the resolved expander address, or AddressUnknown before a
// successful Begin on an auto-detect device.
func (d *Dev) Addr() uint16 {
	return d.addr
}

// Chip returns the resolved expander type.
func (d *Dev) Chip() ChipType {
	return d.chip
}
