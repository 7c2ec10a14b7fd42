// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"fmt"
	"log"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// IO exposes the backpack expander as a plain 8-bit I/O port, for boards
// that use the spare expander lines for keys or LEDs rather than an LCD.
// It keeps a logical direction mask (all lines start as inputs) and an
// output shadow; neither is ever read back from the chip, so a failed
// write leaves the shadow optimistic. On a PCF8574 the quasi-bidirectional
// input lines are held high so external devices can pull them; on an
// MCP23008 the mask goes to the direction register.
//
// Until Begin succeeds every port operation is a silent no-op that
// returns nil and touches nothing on the bus, like Dev.Send before
// resolution.
//
// Pins, populated by Begin, drives the port through the gpio.PinIO
// interface.
type IO struct {
	bus  i2c.Bus
	addr uint16
	chip ChipType
	ops  chipOps

	Pins []gpio.PinIO

	mu      sync.Mutex
	dirMask byte // 1 = input
	shadow  byte
	ready   bool
}

// NewIO configures an expander port. No I/O happens until Begin.
func NewIO(bus i2c.Bus, addr uint16, chip ChipType) *IO {
	return &IO{
		bus:     bus,
		addr:    addr,
		chip:    chip,
		dirMask: 0xFF,
	}
}

// Begin classifies the chip when the type wasn't given, runs the register
// setup and verifies the device answers a read. It registers one
// gpio.PinIO per port line.
func (dev *IO) Begin() error {
	if dev.chip == Unknown {
		dev.chip = identify(dev.bus, dev.addr)
	}
	if dev.chip == Unknown {
		return fmt.Errorf("%s: device at %#02x is not a recognized expander", packageName, dev.addr)
	}
	dev.ops = opsFor(dev.chip)
	if err := dev.ops.setup(dev.bus, dev.addr); err != nil {
		return wrap(err)
	}
	var r [1]byte
	if err := dev.bus.Tx(dev.addr, nil, r[:]); err != nil {
		return wrap(err)
	}
	dev.shadow = r[0]
	dev.ready = true
	// Setup left every line a driven-low output; release the lines the
	// direction mask marks as inputs.
	dev.mu.Lock()
	err := dev.syncDirection()
	dev.mu.Unlock()
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%02x", dev.chip, dev.addr)
	dev.Pins = make([]gpio.PinIO, 8)
	for i := range dev.Pins {
		dev.Pins[i] = &ioPin{dev: dev, number: i, name: fmt.Sprintf("%s_GPIO%d", name, i)}
		// Ignore registration failure.
		_ = gpioreg.Register(dev.Pins[i])
	}
	return nil
}

// Close removes the pin registrations.
func (dev *IO) Close() error {
	for _, p := range dev.Pins {
		if err := gpioreg.Unregister(p.Name()); err != nil {
			return err
		}
	}
	dev.Pins = nil
	return nil
}

// PinMode sets one line as output or input and pushes the new direction
// to the chip.
func (dev *IO) PinMode(pin int, output bool) error {
	if !dev.ready || pin < 0 || pin > 7 {
		return nil
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	mask := dev.dirMask
	if output {
		mask &^= 1 << uint(pin)
	} else {
		mask |= 1 << uint(pin)
	}
	if mask == dev.dirMask {
		return nil
	}
	dev.dirMask = mask
	return dev.syncDirection()
}

// PortMode sets the whole port as outputs or inputs.
func (dev *IO) PortMode(output bool) error {
	if !dev.ready {
		return nil
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	mask := byte(0xFF)
	if output {
		mask = 0x00
	}
	if mask == dev.dirMask {
		return nil
	}
	dev.dirMask = mask
	return dev.syncDirection()
}

// syncDirection pushes the direction mask to the chip and rewrites the
// port so freshly released input lines float high on a PCF8574.
// dev.mu must be held.
func (dev *IO) syncDirection() error {
	if err := dev.ops.direction(dev.bus, dev.addr, dev.dirMask); err != nil {
		return wrap(err)
	}
	return dev.writeShadow(dev.shadow)
}

// WritePort drives every output line from value. Bits belonging to input
// lines are forced low; the result becomes the new shadow.
func (dev *IO) WritePort(value byte) error {
	if !dev.ready {
		return nil
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.writeShadow(value)
}

// writeShadow pushes value through the direction mask to the port. The
// chip's input mask is OR-ed into the wire byte so quasi-bidirectional
// input lines stay released. dev.mu must be held.
func (dev *IO) writeShadow(value byte) error {
	dev.shadow = value &^ dev.dirMask
	w := dev.ops.port(make([]byte, 0, 2))
	w = append(w, dev.shadow|dev.ops.inputMask(dev.dirMask))
	return wrap(dev.bus.Tx(dev.addr, w, nil))
}

// ReadPort returns the state of the input lines; output line bits read as
// zero.
func (dev *IO) ReadPort() (byte, error) {
	if !dev.ready {
		return 0, nil
	}
	w := dev.ops.port(nil)
	var r [1]byte
	if err := dev.bus.Tx(dev.addr, w, r[:]); err != nil {
		return 0, wrap(err)
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return r[0] & dev.dirMask, nil
}

// DigitalWrite sets one output line. Writes to lines configured as inputs
// are masked off.
func (dev *IO) DigitalWrite(pin int, l gpio.Level) error {
	if !dev.ready || pin < 0 || pin > 7 {
		return nil
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	bit := (byte(1) << uint(pin)) &^ dev.dirMask
	v := dev.shadow
	if l {
		v |= bit
	} else {
		v &^= bit
	}
	return dev.writeShadow(v)
}

// DigitalRead returns the level of one input line.
func (dev *IO) DigitalRead(pin int) gpio.Level {
	if !dev.ready || pin < 0 || pin > 7 {
		return gpio.Low
	}
	v, err := dev.ReadPort()
	if err != nil {
		return gpio.Low
	}
	return (v>>uint(pin))&1 == 1
}

func (dev *IO) String() string {
	return fmt.Sprintf("%s_%02x", dev.chip, dev.addr)
}

// ioPin adapts one expander line to gpio.PinIO.
type ioPin struct {
	dev    *IO
	number int
	name   string
}

func (p *ioPin) Name() string {
	return p.name
}

func (p *ioPin) Number() int {
	return p.number
}

func (p *ioPin) String() string {
	return p.name
}

func (p *ioPin) Function() string {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	if p.dev.dirMask&(1<<uint(p.number)) != 0 {
		return "In"
	}
	return "Out"
}

func (p *ioPin) Halt() error {
	return nil
}

// In configures the line as an input, releasing it so external devices
// can drive it. The expanders have no configurable pulls; pull requests
// other than float are ignored.
func (p *ioPin) In(pull gpio.Pull, edge gpio.Edge) error {
	return p.dev.PinMode(p.number, false)
}

func (p *ioPin) Read() gpio.Level {
	return p.dev.DigitalRead(p.number)
}

func (p *ioPin) Out(l gpio.Level) error {
	err := p.dev.PinMode(p.number, true)
	if err == nil {
		err = p.dev.DigitalWrite(p.number, l)
	}
	if err != nil {
		log.Println(err)
	}
	return err
}

func (p *ioPin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *ioPin) DefaultPull() gpio.Pull {
	return gpio.Float
}

func (p *ioPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

// The expanders' interrupt line isn't wired on these backpacks.
func (p *ioPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &ioPin{}
