// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package liquidcrystal drives HD44780 compatible character LCDs connected
// through an I²C I/O expander backpack.
//
// The backpack chips found on these boards come in two flavors. The PCF8574
// is a flat 8-bit quasi-bidirectional port with no internal registers: bytes
// written on the bus land directly on the output pins. The MCP23008 exposes
// a register file (direction, configuration, output latch) behind an internal
// address pointer. This package hides the difference: it can be told which
// chip is present, or it can probe the device and classify it, and it can
// scan the bus to find the backpack when the address isn't known either.
//
// The LCD itself is driven in 4-bit mode. Each command or data byte is split
// into two nibbles, mapped onto the expander outputs according to the board's
// pin wiring, merged with the register-select and backlight bits, and latched
// with an enable pulse. All bytes belonging to one LCD write go out in a
// single I²C transaction.
//
// Constructing a device performs no I/O; the first call to Begin resolves
// the address and chip type, configures the expander and runs the LCD's
// 4-bit initialization handshake. This matters on hosts where the bus isn't
// usable yet at construction time.
//
// Dev implements display.TextDisplay and display.DisplayBacklight from
// periph.io/x/conn/v3/display.
//
// Known backpack wirings (ElectroFun, MJKDZ, LCM1602, YwRobot/DFRobot/
// SainSmart, Adafruit #292) ship as canned Pins values.
//
// # Datasheets
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/21919e.pdf
package liquidcrystal
