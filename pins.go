// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import "fmt"

// Polarity is the backlight drive polarity. Boards switching the backlight
// LED through a PNP transistor need Negative.
type Polarity int

const (
	Positive Polarity = iota
	Negative
)

// NoBacklight marks a board whose backlight is not controlled through the
// expander.
const NoBacklight = -1

// Pins describes how the LCD lines are wired to the expander outputs. Each
// value is a bit offset 0-7 on the expander port.
//
// The R/W line is mapped but always held low; the driver never reads from
// the LCD. Boards that tie R/W straight to ground assign it a spare output.
type Pins struct {
	En, Rw, Rs     int
	D4, D5, D6, D7 int
	// Backlight is the backlight control offset, or NoBacklight.
	Backlight int
	Polarity  Polarity
}

// Canned wirings for the common backpack boards. Board names follow the
// silkscreen/vendor. The Adafruit #292 carries an MCP23008; the others a
// PCF8574.
var (
	// ElectroFun EXTRAIO, no backlight control.
	BoardExtraIO = Pins{En: 6, Rw: 5, Rs: 4, D4: 0, D5: 1, D6: 2, D7: 3, Backlight: NoBacklight}
	// ElectroFun EXTRAIO with the NPN backlight transistor fitted.
	BoardExtraIOBL = Pins{En: 6, Rw: 5, Rs: 4, D4: 0, D5: 1, D6: 2, D7: 3, Backlight: 7, Polarity: Negative}
	BoardMJKDZ     = Pins{En: 4, Rw: 5, Rs: 6, D4: 0, D5: 1, D6: 2, D7: 3, Backlight: 7, Polarity: Negative}
	BoardLCM1602   = Pins{En: 2, Rw: 1, Rs: 0, D4: 4, D5: 5, D6: 6, D7: 7, Backlight: 3, Polarity: Negative}
	// YwRobot, DFRobot and SainSmart backpacks share this wiring.
	BoardYwRobot  = Pins{En: 2, Rw: 1, Rs: 0, D4: 4, D5: 5, D6: 6, D7: 7, Backlight: 3, Polarity: Positive}
	BoardAdafruit = Pins{En: 2, Rw: 0, Rs: 1, D4: 3, D5: 4, D6: 5, D7: 6, Backlight: 7, Polarity: Positive}
)

// validate checks that every offset is inside the 8-bit port and that no
// two LCD lines share an output.
func (p Pins) validate() error {
	offsets := []int{p.En, p.Rw, p.Rs, p.D4, p.D5, p.D6, p.D7}
	if p.Backlight != NoBacklight {
		offsets = append(offsets, p.Backlight)
	}
	var seen byte
	for _, o := range offsets {
		if o < 0 || o > 7 {
			return fmt.Errorf("%s: pin offset %d out of range 0-7", packageName, o)
		}
		if seen&(1<<uint(o)) != 0 {
			return fmt.Errorf("%s: pin offset %d assigned twice", packageName, o)
		}
		seen |= 1 << uint(o)
	}
	return nil
}
