package touch

import (
	"image"
	"time"
)

// Event is a change in pointer state: a press, a release, or a drag to
// a new position while pressed.
type Event struct {
	Pos     image.Point
	Pressed bool
}

// Events polls the device every interval and delivers state changes on
// ch until the returned stop function is called. The device must not be
// polled from elsewhere while the stream runs; the bus has a single
// owner.
func (d *Device) Events(interval time.Duration, ch chan<- Event) (stop func()) {
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		var last Point
		for {
			select {
			case <-done:
				return
			case <-t.C:
			}
			p := d.Poll()
			if p == last {
				continue
			}
			last = p
			select {
			case ch <- Event{Pos: p.Pos, Pressed: p.Pressed}:
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
