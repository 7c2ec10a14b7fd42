// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"periph.io/x/conn/v3/i2c"
)

// NewYwRobotBackpack returns a display wired like the YwRobot / DFRobot /
// SainSmart PCF8574 backpacks (usually at 0x27 or 0x3F). Call Begin before
// any other operation.
func NewYwRobotBackpack(bus i2c.Bus, addr uint16) (*Dev, error) {
	return New(bus, addr, PCF8574, BoardYwRobot)
}

// NewAdafruitBackpack returns a display wired like the Adafruit #292
// I2C/SPI backpack in I²C mode, which carries an MCP23008 (usually at
// 0x20). Call Begin before any other operation.
//
// # Product Information
//
// https://www.adafruit.com/product/292
func NewAdafruitBackpack(bus i2c.Bus, addr uint16) (*Dev, error) {
	return New(bus, addr, MCP23008, BoardAdafruit)
}

// NewAutoDetect returns a display whose expander address and chip type are
// resolved by probing the bus on the first Begin. Only reliable when the
// backpack is the sole device on the bus.
func NewAutoDetect(bus i2c.Bus, pins Pins) (*Dev, error) {
	return New(bus, AddressUnknown, Unknown, pins)
}
