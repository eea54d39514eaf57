package touch

import (
	"encoding/binary"
	"log"
	"time"
)

// The minimum of the GT911 register map needed to read one point
// without the full driver.
const (
	gtRegStatus = 0x814e // bit7 = buffer ready, low nibble = point count
	gtRegPoints = 0x8150 // first point block: x u16le, y u16le, size u16le, id, reserved
)

// Coordinate fields read as all-ones when the block holds no data.
const gtSentinel = 0xffff

// readGT911Raw reads one point straight from the registers, for boards
// where the full driver failed to initialize.
//
// The acceptance rule (count > 0 and neither coordinate is the
// sentinel) is empirical: some firmware revisions raise buffer-ready
// before the point block is valid. Treat it as a quirk workaround, not
// as protocol.
func (d *Device) readGT911Raw() Point {
	var status [1]byte
	if err := readRegs(d.bus, d.id.Addr, gtRegStatus, status[:]); err != nil {
		return Point{}
	}
	if status[0]&0x80 == 0 {
		return Point{}
	}
	n := int(status[0] & 0x0f)

	var pt Point
	var blk [8]byte
	// Read the block even when the count is zero; the dump below is
	// the only window into what the firmware actually latched.
	if err := readRegs(d.bus, d.id.Addr, gtRegPoints, blk[:]); err == nil {
		x := int(binary.LittleEndian.Uint16(blk[0:2]))
		y := int(binary.LittleEndian.Uint16(blk[2:4]))
		if n > 0 && x != gtSentinel && y != gtSentinel {
			pt = Point{Pos: d.opts.mapPoint(x, y), Pressed: true}
		}
		if now := time.Now(); now.Sub(d.lastDump) > 500*time.Millisecond {
			size := binary.LittleEndian.Uint16(blk[4:6])
			log.Printf("touch: gt911 status=%#02x n=%d x=%d y=%d size=%d id=%d",
				status[0], n, x, y, size, blk[6])
			d.lastDump = now
		}
	}

	// The controller produces no new data until the ready flag is
	// cleared, so clear it whether or not a point was accepted.
	writeReg(d.bus, d.id.Addr, gtRegStatus, 0)

	return pt
}
