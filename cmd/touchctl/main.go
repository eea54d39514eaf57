// command touchctl probes and exercises the panel's touch controller:
// bus scan, controller identification, and a live pointer watch.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"hushpanel.dev/config"
	"hushpanel.dev/touch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "touchctl: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/hushpanel/touch.yml", "configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: touchctl [flags] [scan|info|watch]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "watch"
	}
	switch cmd {
	case "scan":
		return scan(bus)
	case "info":
		dev, err := open(bus, cfg)
		if err != nil {
			return err
		}
		id := dev.Identity()
		if id.Kind == touch.None {
			fmt.Println("no touch controller")
		} else {
			fmt.Printf("%v at %#02x\n", id.Kind, id.Addr)
		}
		return nil
	case "watch":
		dev, err := open(bus, cfg)
		if err != nil {
			return err
		}
		return watch(dev, cfg)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func open(bus i2c.Bus, cfg *config.Config) (*touch.Device, error) {
	return touch.Open(bus, &touch.Opts{
		Width:     cfg.Panel.Width,
		Height:    cfg.Panel.Height,
		SwapAxes:  cfg.Orientation.SwapAxes,
		InvertX:   cfg.Orientation.InvertX,
		InvertY:   cfg.Orientation.InvertY,
		Reset:     pin(cfg.Pins.Reset),
		Interrupt: pin(cfg.Pins.Interrupt),
	})
}

// pin resolves a configured pin name; empty means not wired.
func pin(name string) gpio.PinIO {
	if name == "" {
		return nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		log.Printf("touchctl: unknown pin %q, treating as not wired", name)
		return nil
	}
	return p
}

func scan(bus i2c.Bus) error {
	addrs := touch.Scan(bus)
	if len(addrs) == 0 {
		fmt.Println("i2c scan: no devices")
		return nil
	}
	fmt.Print("i2c scan:")
	for _, a := range addrs {
		fmt.Printf(" %#02x", a)
	}
	fmt.Println()
	return nil
}

func watch(dev *touch.Device, cfg *config.Config) error {
	id := dev.Identity()
	if id.Kind == touch.None {
		return errors.New("no touch controller found")
	}
	fmt.Printf("%v at %#02x, ctrl-c to stop\n", id.Kind, id.Addr)

	events := make(chan touch.Event)
	stop := dev.Events(time.Duration(cfg.PollInterval)*time.Millisecond, events)
	defer stop()
	for ev := range events {
		state := "release"
		if ev.Pressed {
			state = "press"
		}
		fmt.Printf("%-7s %4d,%4d\n", state, ev.Pos.X, ev.Pos.Y)
	}
	return nil
}
