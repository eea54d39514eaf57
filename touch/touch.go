// package touch identifies and reads the capacitive touch controller on
// the panel's shared I2C bus.
//
// Two incompatible controller families are supported: the FT6x36 (single
// point, 8-bit register map) and the GT911 (up to 5 points, 16-bit
// register map with an explicit buffer-ready handshake). Boards ship
// with either, so Open probes the bus, validates the match and resolves
// a reader once; after that Poll costs a bus transaction or two per
// tick and no dispatch.
package touch

import (
	"errors"
	"image"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"hushpanel.dev/driver/ft6x36"
	"hushpanel.dev/driver/gt911"
)

// Kind is a detected controller family.
type Kind int

const (
	None Kind = iota
	FT6x36
	GT911
)

func (k Kind) String() string {
	switch k {
	case FT6x36:
		return "FT6x36"
	case GT911:
		return "GT911"
	default:
		return "none"
	}
}

// Identity is the result of controller identification. Addr is
// meaningful only when Kind is not None.
type Identity struct {
	Kind Kind
	Addr uint16
}

// Point is one pointer sample in panel pixel coordinates, orientation
// corrected and clamped to the panel. It carries no identity across
// polls; the UI layer owns any gesture state built on top.
type Point struct {
	Pos     image.Point
	Pressed bool
}

// Opts configures the touch subsystem.
type Opts struct {
	// Panel dimensions in pixels. The zero value selects 800x480.
	Width  int
	Height int

	// Mounting of the touch layer relative to the panel.
	SwapAxes bool
	InvertX  bool
	InvertY  bool

	// Optional controller reset and interrupt lines. Nil means not
	// wired.
	Reset     gpio.PinIO
	Interrupt gpio.PinIO
}

// Device is the single entry point the UI layer polls. It owns the
// touch controller's bus transactions.
type Device struct {
	bus  i2c.Bus
	opts Opts
	id   Identity

	// read is resolved once during Open so Poll never dispatches on
	// the controller kind.
	read func() Point

	ft *ft6x36.Dev
	gt *gt911.Dev

	lastDump time.Time
}

const (
	// Probe and configure at a rate even marginal bus wiring handles;
	// switch up once a controller is confirmed.
	slowSpeed = 100 * physic.KiloHertz
	fastSpeed = 400 * physic.KiloHertz
)

// Open recovers the bus if needed, identifies the controller and
// prepares the matching reader. Finding no controller is not an error:
// the returned device simply reports released forever.
func Open(bus i2c.Bus, opts *Opts) (*Device, error) {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = 800, 480
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, errors.New("touch: invalid panel dimensions")
	}
	d := &Device{bus: bus, opts: o}

	// Free the bus first in case a peer wedged it mid-transfer.
	if p, ok := bus.(i2c.Pins); ok {
		if scl, sda := p.SCL(), p.SDA(); scl != gpio.INVALID && sda != gpio.INVALID {
			if !Recover(scl, sda) {
				log.Printf("touch: bus recovery failed, probing anyway")
			}
		}
	}
	if err := bus.SetSpeed(slowSpeed); err != nil {
		log.Printf("touch: bus speed: %v", err)
	}

	d.id = d.identify()
	switch d.id.Kind {
	case FT6x36:
		ft := ft6x36.New(bus, d.id.Addr)
		if err := ft.SetThreshold(30); err != nil {
			log.Printf("touch: ft6x36 setup failed: %v", err)
			d.id = Identity{}
		} else {
			d.ft = ft
			d.read = d.readFT
		}
	case GT911:
		gt := gt911.New(bus, d.id.Addr)
		if err := gt.Configure(o.Reset, o.Interrupt); err != nil {
			// Clones that ACK probes but reject configuration are
			// still readable through the bare register protocol.
			log.Printf("touch: gt911 driver init failed, using raw reads: %v", err)
			d.read = d.readGT911Raw
		} else {
			d.gt = gt
			d.read = d.readGT
		}
	}

	if d.id.Kind != None {
		if err := bus.SetSpeed(fastSpeed); err != nil {
			log.Printf("touch: bus speed: %v", err)
		}
		log.Printf("touch: %v ready at %#02x", d.id.Kind, d.id.Addr)
	} else {
		log.Printf("touch: no controller found at 0x38/0x5d/0x14")
	}
	return d, nil
}

// Identity returns the identification result, fixed at Open time.
func (d *Device) Identity() Identity {
	return d.id
}

// Poll returns the current pointer state. It is meant to be called once
// per UI frame tick; any failure degrades to a released sample for that
// tick and the next tick retries independently.
func (d *Device) Poll() Point {
	if d.read == nil {
		return Point{}
	}
	return d.read()
}

func (d *Device) readFT() Point {
	p, ok := d.ft.ReadTouchPoint()
	if !ok {
		return Point{}
	}
	return Point{Pos: d.opts.mapPoint(p.X, p.Y), Pressed: true}
}

func (d *Device) readGT() Point {
	ts, err := d.gt.ReadTouches()
	if err != nil || len(ts) == 0 {
		return Point{}
	}
	return Point{Pos: d.opts.mapPoint(ts[0].Pos.X, ts[0].Pos.Y), Pressed: true}
}
