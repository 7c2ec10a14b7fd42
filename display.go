// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// Character dot matrix height, passed to Begin.
const (
	LCD5x8Dots  byte = 0x00
	LCD5x10Dots byte = 0x04
)

const (
	// cmdByte marks the following byte in a Write stream as an LCD
	// command rather than a character.
	cmdByte byte = 0xfe

	cmdClear       byte = 0x01
	cmdHome        byte = 0x02
	cmdDisplayCtrl byte = 0x08
	cmdShift       byte = 0x10
	cmdFunctionSet byte = 0x20
	cmdSetDDRAM    byte = 0x80

	twoLine byte = 0x08

	// Clear and home are the slow instructions; the LCD needs ~1.5ms to
	// execute them.
	execClearHome = 2 * time.Millisecond
)

var (
	ErrNotImplemented = fmt.Errorf("%s: %w", packageName, display.ErrNotImplemented)

	rowConstants = [][]byte{{0, 0, 64}, {0, 0, 64, 20, 84}}
)

// Return the row offset value. ok is false when the geometry has more
// rows than the offset table covers.
func getRowConstant(row, maxcols, maxrows int) (byte, bool) {
	var offset int
	if maxcols != 16 || maxrows > 2 {
		offset = 1
	}
	if row >= len(rowConstants[offset]) {
		return 0, false
	}
	return rowConstants[offset][row], true
}

// initDisplay takes the LCD through the 4-bit mode entry handshake and the
// initial function/display configuration. The raw nibble writes follow the
// HD44780 datasheet reset-by-instruction sequence; the display hasn't
// committed to 4-bit operation yet, so full bytes can't be sent.
func (d *Dev) initDisplay(dotsize byte) error {
	if err := d.Send(0x03, FourBits); err != nil {
		return err
	}
	time.Sleep(4100 * time.Microsecond)
	_ = d.Send(0x03, FourBits)
	time.Sleep(4100 * time.Microsecond)
	_ = d.Send(0x03, FourBits)
	time.Sleep(150 * time.Microsecond)
	_ = d.Send(0x02, FourBits)

	fn := cmdFunctionSet | dotsize
	if d.rows > 1 {
		fn |= twoLine
	}
	_ = d.Send(fn, Command)
	_ = d.Cursor(display.CursorOff)
	_ = d.Display(true)
	if err := d.Clear(); err != nil {
		return err
	}
	_ = d.Home()
	return d.SetBacklight(1)
}

// commands sends a run of LCD instructions.
func (d *Dev) commands(cmds []byte) error {
	for _, c := range cmds {
		if err := d.Send(c, Command); err != nil {
			return err
		}
		if c == cmdClear || c == cmdHome {
			time.Sleep(execClearHome)
		}
	}
	return nil
}

// Write sends bytes to the display. Bytes prefixed with cmdByte (0xfe) at
// the start of p are treated as LCD commands; anything else is drawn as
// characters at the cursor position. Carriage returns and linefeeds are
// consumed without output.
func (d *Dev) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}
	if p[0] == cmdByte {
		n = len(p) - 1
		err = d.commands(p[1:])
		return
	}
	for _, b := range p {
		if err = d.Send(b, Data); err != nil {
			return
		}
		n++
	}
	return
}

// Write a string output to the display.
func (d *Dev) WriteString(text string) (int, error) {
	return d.Write([]byte(text))
}

// Clears the screen and moves the cursor to the first position.
func (d *Dev) Clear() error {
	_, err := d.Write([]byte{cmdByte, cmdClear})
	return err
}

// Move the cursor home (MinRow(),MinCol())
func (d *Dev) Home() error {
	_, err := d.Write([]byte{cmdByte, cmdHome})
	return err
}

// Return the number of columns the display supports
func (d *Dev) Cols() int {
	return d.cols
}

// Return the number of rows the display supports.
func (d *Dev) Rows() int {
	return d.rows
}

// Return the min column position.
func (d *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (d *Dev) MinRow() int {
	return 1
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
func (d *Dev) Cursor(modes ...display.CursorMode) (err error) {
	val := cmdDisplayCtrl
	if d.on {
		val |= 0x04
	}
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			d.blink = false
			d.cursor = false
		case display.CursorBlink:
			d.blink = true
			d.cursor = true
			val |= 0x01
		case display.CursorUnderline:
			d.cursor = true
			d.blink = true
			val |= 0x02
		case display.CursorBlock:
			d.cursor = true
			d.blink = true
			val |= 0x01
		default:
			err = fmt.Errorf("%s: unexpected cursor mode %d", packageName, mode)
			return
		}
	}
	_, err = d.Write([]byte{cmdByte, val & 0x0f})
	return
}

// Turn the display on / off
func (d *Dev) Display(on bool) error {
	d.on = on
	val := cmdDisplayCtrl
	if on {
		val |= 0x04
	}
	if d.blink {
		val |= 0x01
	}
	if d.cursor {
		val |= 0x02
	}
	_, err := d.Write([]byte{cmdByte, val})
	return err
}

// Move the cursor forward or backward.
func (d *Dev) Move(dir display.CursorDirection) (err error) {
	val := cmdShift
	switch dir {
	case display.Backward:
	case display.Forward:
		val |= 0x04
	case display.Down, display.Up:
		fallthrough
	default:
		err = ErrNotImplemented
		return
	}
	_, err = d.Write([]byte{cmdByte, val})
	return
}

// Move the cursor to arbitrary position.
func (d *Dev) MoveTo(row, col int) (err error) {
	if row < d.MinRow() || row > d.rows || col < d.MinCol() || col > d.cols {
		err = fmt.Errorf("%s: MoveTo(%d,%d) value out of range", packageName, row, col)
		return
	}
	rowcon, ok := getRowConstant(row, d.cols, d.rows)
	if !ok {
		err = fmt.Errorf("%s: MoveTo(%d,%d) value out of range", packageName, row, col)
		return
	}
	cmd := cmdSetDDRAM | (rowcon + byte(col-1))
	_, err = d.Write([]byte{cmdByte, cmd})
	return
}

// Not supported by this device. Returns display.ErrNotImplemented
func (d *Dev) AutoScroll(enabled bool) error {
	return ErrNotImplemented
}

// Halt clears the display, turns the backlight off, and turns the display
// off.
func (d *Dev) Halt() error {
	_ = d.Clear()
	_ = d.SetBacklight(0)
	return d.Display(false)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
var _ conn.Resource = &Dev{}
