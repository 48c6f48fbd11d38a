package arduino

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pinmapgen/pinmapgen/pinmap"
)

// A Profile is everything the renderer needs to know about one Arduino
// target: the guard token, the core include, which roles the target can serve
// and how each peripheral is brought up.
type Profile struct {
	Name    string
	Aliases []string
	Guard   string
	Include string
	// Unsupported roles make a project fail validation for this target.
	Unsupported []pinmap.Role
	Peripherals []Peripheral
}

// A Peripheral is a conditionally emitted setup block.
type Peripheral struct {
	Family  pinmap.Family
	Include string
	// Object returns the library object driving a bus instance, e.g. "SPI1".
	Object func(bus string) string
	Calls  []Call
}

// A Call is one statement of a setup macro. Format receives the library
// object and, when Line is set, the macro name of the pin serving that role.
type Call struct {
	Format string
	Line   pinmap.Role
}

// Supports reports whether the target can serve role r.
func (p *Profile) Supports(r pinmap.Role) bool {
	for _, u := range p.Unsupported {
		if u == r {
			return false
		}
	}
	return r.Valid()
}

func instanced(base string) func(string) string {
	return func(bus string) string {
		if n := pinmap.BusIndex(bus); n > 0 {
			return base + strconv.Itoa(n)
		}
		return base
	}
}

// RP2040 is the Arduino-on-RP2040 (arduino-pico / PlatformIO) target.
var RP2040 = &Profile{
	Name:        "arduino-rp2040",
	Aliases:     []string{"rp2040", "arduino"},
	Guard:       "PINMAP_ARDUINO_H",
	Include:     "<Arduino.h>",
	Unsupported: []pinmap.Role{pinmap.RoleCANH, pinmap.RoleCANL, pinmap.RoleDAC},
	Peripherals: []Peripheral{
		{
			Family:  pinmap.FamilySPI,
			Include: "<SPI.h>",
			Object:  instanced("SPI"),
			Calls: []Call{
				{"%s.setMOSI(%s)", pinmap.RoleSPIMOSI},
				{"%s.setMISO(%s)", pinmap.RoleSPIMISO},
				{"%s.setSCK(%s)", pinmap.RoleSPISCK},
				{"%s.begin()", pinmap.RoleUnknown},
				{"%s.setClockDivider(SPI_CLOCK_DIV2)", pinmap.RoleUnknown},
			},
		},
		{
			Family:  pinmap.FamilyI2C,
			Include: "<Wire.h>",
			Object:  instanced("Wire"),
			Calls: []Call{
				{"%s.setSDA(%s)", pinmap.RoleI2CSDA},
				{"%s.setSCL(%s)", pinmap.RoleI2CSCL},
				{"%s.setClock(freq)", pinmap.RoleUnknown},
				{"%s.begin()", pinmap.RoleUnknown},
			},
		},
	},
}

var profiles = []*Profile{RP2040}

// Lookup finds the profile for a platform selector. An empty selector picks
// the default RP2040 target.
func Lookup(platform string) (*Profile, error) {
	sel := strings.ToLower(strings.TrimSpace(platform))
	if sel == "" {
		return RP2040, nil
	}
	for _, p := range profiles {
		if p.Name == sel {
			return p, nil
		}
		for _, a := range p.Aliases {
			if a == sel {
				return p, nil
			}
		}
	}
	return nil, &pinmap.UnsupportedPlatformError{Platform: platform, Supported: Platforms()}
}

// Platforms lists the registered profile names.
func Platforms() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
