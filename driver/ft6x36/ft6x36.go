// Package ft6x36 implements a driver for the FT6x36 family of
// capacitive touch controllers.
//
// Datasheet: https://www.buydisplay.com/download/ic/FT6236-FT6336-FT6436L-FT6436_Datasheet.pdf
package ft6x36

import (
	"image"

	"periph.io/x/conn/v3/i2c"
)

// Addr is the fixed bus address of the controller.
const Addr = 0x38

const (
	_TD_STATUS = 0x02
	_TH_GROUP  = 0x80
	_VEND_ID   = 0xa3
	_CHIP_ID   = 0xa8
)

type Dev struct {
	d i2c.Dev
	// Allocate enough space for a touch event read.
	buf [5]byte
}

func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{
		d: i2c.Dev{Bus: bus, Addr: addr},
	}
}

// ID reads the chip and vendor identification registers.
func (d *Dev) ID() (chip, vendor byte, err error) {
	var b [1]byte
	if err := d.d.Tx([]byte{_CHIP_ID}, b[:]); err != nil {
		return 0, 0, err
	}
	chip = b[0]
	if err := d.d.Tx([]byte{_VEND_ID}, b[:]); err != nil {
		return 0, 0, err
	}
	return chip, b[0], nil
}

// ValidChipID reports whether chip identifies an FT6x36-family part.
// Unrelated devices are known to squat on address 0x38, so an ACK there
// means nothing without this check.
func ValidChipID(chip byte) bool {
	return chip == 0x06 || chip == 0x36
}

// SetThreshold sets the touch detection threshold.
func (d *Dev) SetThreshold(v byte) error {
	return d.d.Tx([]byte{_TH_GROUP, v}, nil)
}

// ReadTouchPoint returns the first touch point in controller
// coordinates, if a contact is down. Transfer failures report no touch.
func (d *Dev) ReadTouchPoint() (image.Point, bool) {
	wr := [1]byte{_TD_STATUS}
	rd := d.buf[:]
	if err := d.d.Tx(wr[:], rd); err != nil {
		return image.Point{}, false
	}

	switch rd[0] {
	case 0, 255:
		return image.Point{}, false
	}

	return image.Point{
		X: int(rd[1]&0x0f)<<8 + int(rd[2]),
		Y: int(rd[3]&0x0f)<<8 + int(rd[4]),
	}, true
}
