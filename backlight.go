// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package liquidcrystal

import (
	"periph.io/x/conn/v3/display"
)

// SetBacklightPin records which expander output switches the backlight and
// with what polarity. Pure configuration, no I/O: it runs from New, before
// the bus is necessarily usable. The stored status bit is merged into every
// frame from then on.
func (d *Dev) SetBacklightPin(pin int, pol Polarity) {
	d.blMask = 1 << uint(pin)
	d.polarity = pol
}

// SetBacklight turns the backlight on (value > 0) or off, honoring the
// configured polarity. When a backlight pin is configured and the device is
// initialized, the new status mask is pushed to the output port immediately
// in its own transaction, independent of any display traffic. Without a
// configured pin this is a no-op.
func (d *Dev) SetBacklight(value uint8) error {
	if d.blMask == 0 {
		return nil
	}
	if (d.polarity == Positive && value > 0) || (d.polarity == Negative && value == 0) {
		d.blStatus = d.blMask
	} else {
		d.blStatus = 0
	}
	if !d.ready() {
		return nil
	}
	w := d.ops.prefix(make([]byte, 0, 2))
	w = append(w, d.blStatus)
	return wrap(d.bus.Tx(d.addr, w, nil))
}

// Backlight implements display.DisplayBacklight. Any non-zero intensity
// turns the backlight on; there is no dimming on these boards.
func (d *Dev) Backlight(intensity display.Intensity) error {
	if intensity > 0 {
		return d.SetBacklight(1)
	}
	return d.SetBacklight(0)
}
