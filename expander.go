// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"periph.io/x/conn/v3/i2c"
)

// ChipType is the model of I²C I/O expander on the backpack.
type ChipType string

const (
	// Unknown requests chip auto-detection during Begin.
	Unknown ChipType = ""
	// PCF8574 is a flat 8-bit port with no addressable registers.
	PCF8574 ChipType = "PCF8574"
	// MCP23008 exposes direction/config/output-latch registers behind an
	// internal address pointer.
	MCP23008 ChipType = "MCP23008"
)

// AddressUnknown requests a bus scan during Begin. The scan only gives a
// correct result when the backpack is the sole device on the bus.
const AddressUnknown uint16 = 0xFF

// MCP23008 register map.
const (
	mcpIODIR byte = 0x00 // direction, 1 = input
	mcpIOCON byte = 0x05 // configuration
	mcpGPIO  byte = 0x09 // port, writes fall through to OLAT
	mcpOLAT  byte = 0x0A // output latch

	// IOCON.SEQOP. Disables address pointer auto-increment ("byte mode"),
	// so back to back bytes in one transaction keep hitting the same
	// register. The nibble writes and enable toggles rely on this.
	mcpByteMode byte = 0x20
)

// chipOps covers what differs between the two expander families: the
// one-time register setup and whatever a write session must start with.
// It is selected once when the chip type is resolved; nothing else in the
// package compares chip types.
type chipOps interface {
	// setup performs the one-time register configuration and forces all
	// outputs low.
	setup(bus i2c.Bus, addr uint16) error
	// prefix appends the bytes a write session needs before the first
	// frame byte, if any.
	prefix(w []byte) []byte
	// port appends the register byte addressing the output port for a
	// single register-style write, if any.
	port(w []byte) []byte
	// direction pushes the direction mask (1 = input) to the chip's
	// direction register, when it has one.
	direction(bus i2c.Bus, addr uint16, mask byte) error
	// inputMask returns the bits a port write must force high so the
	// lines in mask can float and be read back, for chips whose inputs
	// are quasi-bidirectional.
	inputMask(mask byte) byte
}

type mcp23008Ops struct{}

func (mcp23008Ops) setup(bus i2c.Bus, addr uint16) error {
	if err := bus.Tx(addr, []byte{mcpIOCON, mcpByteMode}, nil); err != nil {
		return err
	}
	// All lines are outputs.
	if err := bus.Tx(addr, []byte{mcpIODIR, 0x00}, nil); err != nil {
		return err
	}
	// Leave the address pointer on OLAT with the port driven low.
	return bus.Tx(addr, []byte{mcpOLAT, 0x00}, nil)
}

func (mcp23008Ops) prefix(w []byte) []byte {
	return append(w, mcpOLAT)
}

func (mcp23008Ops) port(w []byte) []byte {
	return append(w, mcpGPIO)
}

func (mcp23008Ops) direction(bus i2c.Bus, addr uint16, mask byte) error {
	return bus.Tx(addr, []byte{mcpIODIR, mask}, nil)
}

func (mcp23008Ops) inputMask(mask byte) byte {
	// Input pins are high-impedance once IODIR says so; the latch bits
	// don't matter.
	return 0
}

type pcf8574Ops struct{}

func (pcf8574Ops) setup(bus i2c.Bus, addr uint16) error {
	// No registers; a bare byte write drives the port low.
	return bus.Tx(addr, []byte{0x00}, nil)
}

func (pcf8574Ops) prefix(w []byte) []byte {
	return w
}

func (pcf8574Ops) port(w []byte) []byte {
	return w
}

func (pcf8574Ops) direction(bus i2c.Bus, addr uint16, mask byte) error {
	// No direction register; the quasi-bidirectional pins float only
	// while driven high, which inputMask folds into every port write.
	return nil
}

func (pcf8574Ops) inputMask(mask byte) byte {
	return mask
}

func opsFor(chip ChipType) chipOps {
	if chip == MCP23008 {
		return mcp23008Ops{}
	}
	return pcf8574Ops{}
}

// identify probes the device at addr and classifies it.
//
// 0xFF is written to register offset 0 (the MCP23008 direction register; a
// PCF8574 sees two plain port writes of 0x00 then 0xFF), the pointer is
// moved back to offset 0 (one more 0x00 port write on a PCF8574) and one
// byte is read back. An MCP23008 returns the 0xFF it stored in IODIR; a
// PCF8574 returns the 0x00 its port was last driven to. Anything else is
// unrecognized.
//
// The probe is destructive: it leaves the output pins driven low on a
// PCF8574 and the direction register all-input on an MCP23008.
func identify(bus i2c.Bus, addr uint16) ChipType {
	if err := bus.Tx(addr, []byte{mcpIODIR, 0xFF}, nil); err != nil {
		return Unknown
	}
	if err := bus.Tx(addr, []byte{mcpIODIR}, nil); err != nil {
		return Unknown
	}
	var r [1]byte
	if err := bus.Tx(addr, nil, r[:]); err != nil {
		return Unknown
	}
	switch r[0] {
	case 0xFF:
		return MCP23008
	case 0x00:
		return PCF8574
	}
	return Unknown
}

// locate scans addresses 0..127 and returns the first one that both
// acknowledges a zero-length write and identifies as a supported expander.
// Returns AddressUnknown when nothing qualifies.
//
// The identify result is only used as an acceptance filter; a chip type the
// caller already knows is never overridden by the scan.
func locate(bus i2c.Bus) uint16 {
	for addr := uint16(0); addr <= 0x7F; addr++ {
		if err := bus.Tx(addr, nil, nil); err != nil {
			continue
		}
		if identify(bus, addr) != Unknown {
			return addr
		}
	}
	return AddressUnknown
}
