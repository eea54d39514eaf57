package touch

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Recover frees an I2C bus whose data line is held low by a peripheral
// stuck mid-transfer. Both lines are released to pulled-up inputs; if
// SDA still reads low, SCL is clocked for up to the 16 bits a wedged
// device can have left in flight, then a manual STOP is driven. The
// return value reports whether SDA reads high afterwards.
//
// The pins must be muxed as GPIOs while this runs. The caller restores
// the bus configuration (and a conservative clock rate) afterwards.
// Failure is not fatal: later probes simply see NACKs.
func Recover(scl, sda gpio.PinIO) bool {
	if scl == nil || sda == nil {
		return false
	}
	if err := scl.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return false
	}
	if err := sda.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return false
	}
	time.Sleep(time.Millisecond)
	if sda.Read() == gpio.High {
		return true
	}

	// SDA held low: clock it free.
	for i := 0; i < 16 && sda.Read() == gpio.Low; i++ {
		scl.Out(gpio.High)
		time.Sleep(5 * time.Microsecond)
		scl.Out(gpio.Low)
		time.Sleep(5 * time.Microsecond)
	}

	// STOP condition: SDA low to high while SCL is high.
	sda.Out(gpio.Low)
	time.Sleep(5 * time.Microsecond)
	scl.Out(gpio.High)
	time.Sleep(5 * time.Microsecond)
	sda.Out(gpio.High)
	time.Sleep(5 * time.Microsecond)

	sda.In(gpio.PullUp, gpio.NoEdge)
	return sda.Read() == gpio.High
}
