package touch

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// fakeBus simulates the shared I2C bus with a scripted device behind
// each address. Addresses without a device NACK.
type fakeBus struct {
	devs  map[uint16]func(w, r []byte) error
	ops   []busOp
	speed physic.Frequency
}

type busOp struct {
	addr uint16
	w    []byte
	r    int
}

var _ i2c.Bus = (*fakeBus)(nil)

func (b *fakeBus) String() string { return "fake" }

func (b *fakeBus) SetSpeed(f physic.Frequency) error {
	b.speed = f
	return nil
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.ops = append(b.ops, busOp{addr: addr, w: append([]byte(nil), w...), r: len(r)})
	dev, ok := b.devs[addr]
	if !ok {
		return errors.New("fake: nack")
	}
	return dev(w, r)
}

// gt911Sim models the GT911 registers the subsystem touches.
type gt911Sim struct {
	status byte
	block  [8]byte
	// clears counts zero writes to the status register.
	clears int
	// failProductID makes the 0x8140 read NACK, as clone parts that
	// reject the full init sequence do.
	failProductID bool
	// failBlock makes the point block read NACK.
	failBlock bool
}

func (g *gt911Sim) tx(w, r []byte) error {
	if len(w) == 0 {
		// Bare probe.
		if len(r) > 0 {
			r[0] = 0
		}
		return nil
	}
	if len(w) < 2 {
		return errors.New("fake: short write")
	}
	reg := uint16(w[0])<<8 | uint16(w[1])
	if len(w) == 3 && len(r) == 0 {
		if reg == 0x814e && w[2] == 0 {
			g.clears++
			g.status &^= 0x80
		}
		return nil
	}
	switch reg {
	case 0x814e:
		r[0] = g.status
	case 0x8150:
		if g.failBlock {
			return errors.New("fake: nack")
		}
		copy(r, g.block[:])
	case 0x8140:
		if g.failProductID {
			return errors.New("fake: nack")
		}
		copy(r, "911\x00")
	case 0x8047:
		copy(r, []byte{0x5a, 0x20, 0x03, 0xe0, 0x01}) // 800x480
	default:
		return errors.New("fake: bad register")
	}
	return nil
}

func (g *gt911Sim) setPoint(x, y, size int, id byte) {
	g.block = [8]byte{
		byte(x), byte(x >> 8),
		byte(y), byte(y >> 8),
		byte(size), byte(size >> 8),
		id, 0,
	}
}

// ft6x36Sim models the FT6x36 registers the subsystem touches.
type ft6x36Sim struct {
	chipID   byte
	vendorID byte
	touching bool
	x, y     int
}

func (f *ft6x36Sim) tx(w, r []byte) error {
	if len(w) == 0 {
		if len(r) > 0 {
			r[0] = 0
		}
		return nil
	}
	switch w[0] {
	case 0xa8:
		r[0] = f.chipID
	case 0xa3:
		r[0] = f.vendorID
	case 0x80:
		// Threshold write.
		return nil
	case 0x02:
		if !f.touching {
			r[0] = 0
			return nil
		}
		r[0] = 1
		r[1] = byte(f.x >> 8)
		r[2] = byte(f.x)
		r[3] = byte(f.y >> 8)
		r[4] = byte(f.y)
	default:
		return errors.New("fake: bad register")
	}
	return nil
}
