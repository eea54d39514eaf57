package touch

import "periph.io/x/conn/v3/i2c"

// readRegs reads len(buf) bytes starting at the 16-bit register reg.
// The register address and the read happen in one transaction, so the
// bus is not released in between. Partial reads do not exist at this
// layer; any error means the whole transfer is untrusted.
func readRegs(bus i2c.Bus, addr, reg uint16, buf []byte) error {
	w := [2]byte{byte(reg >> 8), byte(reg)}
	return bus.Tx(addr, w[:], buf)
}

// writeReg writes one byte to the 16-bit register reg.
func writeReg(bus i2c.Bus, addr, reg uint16, v byte) error {
	return bus.Tx(addr, []byte{byte(reg >> 8), byte(reg), v}, nil)
}

// probe reports whether a device acknowledges addr. The check reads a
// single byte; Linux buses expose no bare-ACK primitive.
func probe(bus i2c.Bus, addr uint16) bool {
	var b [1]byte
	return bus.Tx(addr, nil, b[:]) == nil
}
