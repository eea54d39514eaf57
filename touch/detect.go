package touch

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"hushpanel.dev/driver/ft6x36"
	"hushpanel.dev/driver/gt911"
)

// Candidate addresses. GT911 parts come strapped to either of two
// addresses depending on the interrupt line level at reset.
const (
	ftAddr          = ft6x36.Addr
	gtAddrPrimary   = gt911.AddrPrimary
	gtAddrSecondary = gt911.AddrSecondary
)

// identify resolves which controller is on the bus, if any. The FT6x36
// is checked first and wins only if its identity registers validate;
// an ACK alone is not enough since other parts use address 0x38.
func (d *Device) identify() Identity {
	resetSequence(d.opts.Reset, d.opts.Interrupt)

	hasFT := probe(d.bus, ftAddr)
	hasGTPri := probe(d.bus, gtAddrPrimary)
	hasGTSec := probe(d.bus, gtAddrSecondary)
	log.Printf("touch: probe 0x38=%t 0x5d=%t 0x14=%t", hasFT, hasGTPri, hasGTSec)

	if hasFT {
		ft := ft6x36.New(d.bus, ftAddr)
		chip, vendor, err := ft.ID()
		if err == nil && ft6x36.ValidChipID(chip) {
			log.Printf("touch: ft6x36 chip=%#02x vendor=%#02x", chip, vendor)
			return Identity{Kind: FT6x36, Addr: ftAddr}
		}
		log.Printf("touch: 0x38 acked but IDs are not FT6x36, ignoring")
	}

	if hasGTPri || hasGTSec {
		addr := uint16(gtAddrPrimary)
		if !hasGTPri {
			addr = gtAddrSecondary
		}
		d.logGTInfo(addr)
		return Identity{Kind: GT911, Addr: addr}
	}

	return Identity{}
}

// logGTInfo reads the product ID and configured resolution for the log.
// Best-effort; failures here do not affect identification.
func (d *Device) logGTInfo(addr uint16) {
	gt := gt911.New(d.bus, addr)
	if id, err := gt.ProductID(); err == nil {
		log.Printf("touch: gt911 product %q at %#02x", id, addr)
	}
	if res, err := gt.Resolution(); err == nil {
		log.Printf("touch: gt911 configured for %dx%d", res.X, res.Y)
	}
}

// resetSequence pulses the controller reset line if it is wired. The
// timing is the GT911 one; FT6x36 parts tolerate it. Holding the
// interrupt line low through reset selects the GT911's primary address.
func resetSequence(rst, irq gpio.PinIO) {
	if rst == nil {
		if irq != nil {
			irq.In(gpio.PullUp, gpio.NoEdge)
		}
		return
	}
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
