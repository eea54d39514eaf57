// Package gt911 implements a driver for the Goodix GT911 capacitive
// touch controller, which tracks up to 5 simultaneous points.
//
// The controller signals new data through a buffer-ready flag in its
// status register. The host must write the register back to zero after
// every read that observed the flag, or the controller stops producing
// data.
package gt911

import (
	"encoding/binary"
	"fmt"
	"image"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// The two addresses the chip can be strapped to; the interrupt line
// level during reset selects between them.
const (
	AddrPrimary   = 0x5d
	AddrSecondary = 0x14
)

const (
	_CONFIG     = 0x8047 // config block; resolution at +1..+4
	_PRODUCT_ID = 0x8140 // 4 ASCII bytes
	_STATUS     = 0x814e // bit7 = buffer ready, low nibble = point count
	_POINTS     = 0x8150 // first of 5 point blocks
)

const (
	maxPoints = 5
	pointSize = 8
	// Coordinate fields read as all-ones when the block holds no data.
	sentinel = 0xffff
)

// Touch is a single tracked contact in controller coordinates.
type Touch struct {
	Pos  image.Point
	Size int
	ID   int
}

type Dev struct {
	d   i2c.Dev
	buf [maxPoints * pointSize]byte
}

func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{
		d: i2c.Dev{Bus: bus, Addr: addr},
	}
}

// Configure resets the controller if the reset line is wired and
// verifies that it responds. Both pins may be nil.
func (d *Dev) Configure(rst, irq gpio.PinIO) error {
	if rst != nil {
		// The chip samples the interrupt line during reset to pick
		// its address; low selects AddrPrimary.
		if irq != nil {
			irq.Out(gpio.Low)
		}
		rst.Out(gpio.Low)
		time.Sleep(10 * time.Millisecond)
		rst.Out(gpio.High)
		time.Sleep(10 * time.Millisecond)
		if irq != nil {
			irq.In(gpio.PullUp, gpio.NoEdge)
		}
	}
	if _, err := d.ProductID(); err != nil {
		return fmt.Errorf("gt911: no response at %#02x: %w", d.d.Addr, err)
	}
	return nil
}

// ProductID returns the ASCII product identifier, "911" on genuine
// parts.
func (d *Dev) ProductID() (string, error) {
	var b [4]byte
	if err := d.readRegs(_PRODUCT_ID, b[:]); err != nil {
		return "", err
	}
	return strings.TrimRight(string(b[:]), "\x00"), nil
}

// Resolution returns the panel resolution the controller's config block
// is programmed for.
func (d *Dev) Resolution() (image.Point, error) {
	var b [5]byte
	if err := d.readRegs(_CONFIG, b[:]); err != nil {
		return image.Point{}, err
	}
	return image.Point{
		X: int(binary.LittleEndian.Uint16(b[1:3])),
		Y: int(binary.LittleEndian.Uint16(b[3:5])),
	}, nil
}

// ReadTouches returns the active contacts, nil when there are none or
// no new data is ready. Whenever the buffer-ready flag was observed the
// status register is cleared before returning, even if the point data
// was unusable.
func (d *Dev) ReadTouches() ([]Touch, error) {
	var status [1]byte
	if err := d.readRegs(_STATUS, status[:]); err != nil {
		return nil, err
	}
	if status[0]&0x80 == 0 {
		return nil, nil
	}
	n := int(status[0] & 0x0f)
	if n > maxPoints {
		n = maxPoints
	}

	var touches []Touch
	var readErr error
	if n > 0 {
		buf := d.buf[:n*pointSize]
		if readErr = d.readRegs(_POINTS, buf); readErr == nil {
			for i := 0; i < n; i++ {
				if t, ok := decodeTouch(buf[i*pointSize:]); ok {
					touches = append(touches, t)
				}
			}
		}
	}

	if err := d.writeReg(_STATUS, 0); err != nil && readErr == nil {
		readErr = err
	}
	return touches, readErr
}

// decodeTouch decodes one point block: x u16le, y u16le, size u16le,
// id, reserved. Blocks with sentinel coordinates are dropped; some
// firmware revisions raise buffer-ready before the block is written.
func decodeTouch(b []byte) (Touch, bool) {
	x := binary.LittleEndian.Uint16(b[0:2])
	y := binary.LittleEndian.Uint16(b[2:4])
	if x == sentinel || y == sentinel {
		return Touch{}, false
	}
	return Touch{
		Pos:  image.Point{X: int(x), Y: int(y)},
		Size: int(binary.LittleEndian.Uint16(b[4:6])),
		ID:   int(b[6]),
	}, true
}

func (d *Dev) readRegs(reg uint16, buf []byte) error {
	return d.d.Tx([]byte{byte(reg >> 8), byte(reg)}, buf)
}

func (d *Dev) writeReg(reg uint16, v byte) error {
	return d.d.Tx([]byte{byte(reg >> 8), byte(reg), v}, nil)
}
