package touch

import "periph.io/x/conn/v3/i2c"

// Scan probes every 7-bit address and returns the ones that answered.
// Diagnostics only; the result is meant for a console or log line, not
// for identification.
func Scan(bus i2c.Bus) []uint16 {
	var found []uint16
	for addr := uint16(0x01); addr < 0x7f; addr++ {
		if probe(bus, addr) {
			found = append(found, addr)
		}
	}
	return found
}
