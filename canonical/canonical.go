// Package canonical turns raw netlist nets into a pinmap.Project: pins are
// normalized against an MCU profile, roles and buses are inferred from net
// names, and capability warnings are collected.
package canonical

import (
	"fmt"
	"regexp"

	"github.com/edaniels/golog"
	"go.uber.org/multierr"

	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/netlist"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

var powerNetRe = regexp.MustCompile(`(?i)VCC|VDD|VBUS|3V3|5V|1V8|GND|VSS|GROUND|VREF|AVDD|DVDD`)

// IsPower reports whether a net is a supply or ground rail. Rails may
// legitimately join several MCU pins and never become pin constants.
func IsPower(net string) bool { return powerNetRe.MatchString(net) }

// Options tune Build.
type Options struct {
	Name     string
	Platform string
	Logger   golog.Logger
}

type assigned struct {
	net string
	pin string
	def mcu.PinDefinition
}

// Build creates a project from nets. Pins that do not normalize are logged and
// dropped; a pin shared by two nets or a signal net touching several pins
// fails the build with a *pinmap.ConfigurationError.
func Build(nets []netlist.Net, profile *mcu.Profile, opts Options) (*pinmap.Project, error) {
	logger := opts.Logger
	if logger == nil {
		logger = golog.Global()
	}

	var signals []assigned
	var errs error
	usedBy := map[string]string{}
	for _, net := range nets {
		if IsPower(net.Name) {
			logger.Debugw("skipping power net", "net", net.Name)
			continue
		}
		var pins []string
		for _, raw := range net.Pins {
			name, err := profile.Normalize(raw)
			if err != nil {
				logger.Warnw("skipping pin", "net", net.Name, "pin", raw, "error", err)
				continue
			}
			pins = append(pins, name)
		}
		if len(pins) == 0 {
			continue
		}
		for _, pin := range pins {
			if prev, ok := usedBy[pin]; ok {
				errs = multierr.Append(errs, pinmap.NewConfigurationError(
					"pin %s used by multiple nets: %q and %q", pin, net.Name, prev))
				continue
			}
			usedBy[pin] = net.Name
		}
		if len(pins) > 1 {
			errs = multierr.Append(errs, pinmap.NewConfigurationError(
				"net %q connects to multiple pins %v - may indicate routing error", net.Name, pins))
			continue
		}
		def, _ := profile.Pin(pins[0])
		signals = append(signals, assigned{net: net.Name, pin: pins[0], def: def})
	}
	if errs != nil {
		return nil, pinmap.ConfigurationErrorFrom(errs)
	}

	p := &pinmap.Project{
		Name:     opts.Name,
		MCU:      profile.Name,
		Platform: opts.Platform,
	}
	for _, s := range signals {
		role := pinmap.InferRole(s.net)
		bus := pinmap.InferBus(s.net, role)
		p.Pins = append(p.Pins, pinmap.Pin{
			Name:        s.net,
			Number:      s.def.Number,
			Role:        role,
			Description: pinmap.Describe(role, bus),
			Bus:         bus,
			Physical:    s.pin,
		})
		for _, w := range profile.CheckAssignment(s.pin, role) {
			p.Warnings = append(p.Warnings, fmt.Sprintf("%s (%s): %s", s.net, s.pin, w))
		}
		if s.def.SpecialFunction != "" {
			p.SpecialPins = append(p.SpecialPins, s.pin)
		}
	}
	p.Pairs = pinmap.DetectPairs(p.Pins)
	p.Warnings = append(p.Warnings, lonelyPairs(p)...)

	for _, w := range p.Warnings {
		logger.Debugw("pin assignment warning", "project", p.Name, "warning", w)
	}
	return p, nil
}

func lonelyPairs(p *pinmap.Project) []string {
	paired := map[string]bool{}
	for _, pair := range p.Pairs {
		paired[pair.Positive] = true
		paired[pair.Negative] = true
	}
	var out []string
	for _, pin := range p.Pins {
		switch pin.Role.Family() {
		case pinmap.FamilyUSB, pinmap.FamilyCAN:
			if !paired[pin.Name] {
				out = append(out, fmt.Sprintf("Potential lonely differential pair: %q has no partner", pin.Name))
			}
		}
	}
	return out
}
